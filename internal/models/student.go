package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student belongs to exactly one School for its lifetime. The student code is
// generated at creation and immutable afterwards.
//
// DetailedScores and DailyAttendance hold the serialized academic record
// structures (see internal/records). Both default to the canonical empty map
// so a fresh student decodes to {} without a prior write.
type Student struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	SchoolID    uint   `json:"school_id" gorm:"not null;index"`
	FullName    string `json:"full_name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	StudentCode string `json:"student_code" gorm:"uniqueIndex;not null;size:20"`
	Grade       string `json:"grade" gorm:"not null;size:100" validate:"required"`
	Branch      string `json:"branch" gorm:"size:100"`
	Room        string `json:"room" gorm:"not null;size:100" validate:"required"`

	DetailedScores  datatypes.JSON `json:"detailed_scores" gorm:"type:text;default:'{}'"`
	DailyAttendance datatypes.JSON `json:"daily_attendance" gorm:"type:text;default:'{}'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on code-login lookups.
	SchoolName string `json:"school_name,omitempty" gorm:"-"`
}

func (Student) TableName() string {
	return "students"
}

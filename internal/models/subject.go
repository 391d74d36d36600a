package models

import (
	"time"
)

// Subject is a named course scoped to a School. Score and attendance entries
// reference subjects by name; removing a subject does not rewrite stored
// records, so historical keys may outlive their subject row.
type Subject struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	SchoolID uint   `json:"school_id" gorm:"not null;index:idx_subjects_school_name,unique"`
	Name     string `json:"name" gorm:"not null;size:100;index:idx_subjects_school_name,unique" validate:"required,min=1,max=100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subject) TableName() string {
	return "subjects"
}

// DefaultSubjects seed a newly created school's course list.
var DefaultSubjects = []string{
	"اللغة العربية",
	"الرياضيات",
	"العلوم",
	"الانجليزية",
}

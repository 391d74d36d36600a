package models

import (
	"time"
)

type StudyType string

const (
	StudyMorning StudyType = "morning"
	StudyEvening StudyType = "evening"
)

type SchoolLevel string

const (
	LevelPrimary     SchoolLevel = "primary"
	LevelMiddle      SchoolLevel = "middle"
	LevelSecondary   SchoolLevel = "secondary"
	LevelPreparatory SchoolLevel = "preparatory"
)

type GenderType string

const (
	GenderBoys  GenderType = "boys"
	GenderGirls GenderType = "girls"
	GenderMixed GenderType = "mixed"
)

type School struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	Name       string      `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Code       string      `json:"code" gorm:"uniqueIndex;not null;size:20"`
	StudyType  StudyType   `json:"study_type" gorm:"not null;size:20" validate:"required,oneof=morning evening"`
	Level      SchoolLevel `json:"level" gorm:"not null;size:20" validate:"required,oneof=primary middle secondary preparatory"`
	GenderType GenderType  `json:"gender_type" gorm:"not null;size:20" validate:"required,oneof=boys girls mixed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Students []Student `json:"-" gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE"`
	Subjects []Subject `json:"-" gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE"`
}

func (School) TableName() string {
	return "schools"
}

package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleSchool  UserRole = "school"
	RoleStudent UserRole = "student"
)

// User is an administrative account. Schools and students authenticate with
// generated codes instead, so the only stored role today is "admin".
type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;default:admin;size:20"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

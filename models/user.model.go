package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	FirstName string `json:"first_name" gorm:"default:''"`
	LastName  string `json:"last_name" gorm:"default:''"`
	Email     string `json:"email" gorm:"unique;not null"`
	Role      string `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR, ADMIN
	IsDeleted bool   `json:"-" gorm:"default:false"`
}

// FullName joins first and last name, skipping whichever is empty.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

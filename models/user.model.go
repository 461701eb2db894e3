package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Email               string     `json:"email" gorm:"unique;not null"`
	Username            string     `json:"username" gorm:"unique;not null"`
	FirstName           string     `json:"first_name" gorm:"default:''"`
	LastName            string     `json:"last_name" gorm:"default:''"`
	Role                string     `json:"role" gorm:"default:'student'"` // student, instructor, admin
	Password            string     `json:"-" gorm:"not null"`
	Bio                 string     `json:"bio" gorm:"type:text;default:''"`
	IsActive            bool       `json:"is_active" gorm:"default:true"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}

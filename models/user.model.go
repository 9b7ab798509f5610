package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser       = "USER"
	RoleInstructor = "INSTRUCTOR"
	RoleCompany    = "COMPANY"
	RoleAdmin      = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage    string     `gorm:"default:''"`
	Name            string     `gorm:"default:''"`
	Email           string     `gorm:"unique;not null"`
	Role            string     `gorm:"default:'USER'"` // USER, INSTRUCTOR, COMPANY, ADMIN
	Password        string     `json:"-" gorm:"not null"`
	IsEmailVerified bool       `gorm:"default:false"`
	LastLogin       time.Time  `gorm:"default:NULL"`
	IsBlocked       bool       `gorm:"default:false"`
	BlockedUntil    *time.Time `json:"blocked_until"`
	IsDeleted       bool       `gorm:"default:false"`
}

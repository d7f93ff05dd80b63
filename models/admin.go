package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a console user. Passwords are stored as bcrypt hashes.
type Admin struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	FullName    string         `gorm:"size:255" json:"full_name"`
	Email       string         `gorm:"uniqueIndex;size:150" json:"email"`
	Password    string         `gorm:"size:255" json:"-"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Admin) TableName() string { return "admins" }

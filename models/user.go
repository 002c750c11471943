package models

import (
	"time"
)

// User is an account created through registration. Only the bcrypt hash of
// the password is stored.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

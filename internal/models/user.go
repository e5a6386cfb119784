package models

import (
	"time"
)

// User is a registered account. The raw password is never stored.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:120;not null"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

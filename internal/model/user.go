package model

import "time"

// User represents an account in the portal.
type User struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Name         string      `json:"usuario" gorm:"column:usuario;size:255;not null"`
	Email        string      `json:"email" gorm:"type:TEXT COLLATE NOCASE;uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Level        AccessLevel `json:"nivel" gorm:"column:nivel;not null;default:1;index"`
	Sector       string      `json:"setor" gorm:"column:setor;size:255;not null"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// TableName keeps the table name used by the existing portal database.
func (User) TableName() string { return "users" }

// Role returns the label derived from the stored level.
func (u *User) Role() Role { return u.Level.Role() }

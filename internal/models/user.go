package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash, never serialized
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`     // Elevated privileges flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}

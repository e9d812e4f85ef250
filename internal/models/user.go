package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                 // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`       // Bcrypt hash of the password
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Registration timestamp
}

// ProfileInput carries the fields submitted from the profile settings form.
type ProfileInput struct {
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     string // optional; empty keeps the current password
	ConfirmPassword string
}

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID    int64
	Username  string
	SessionID string    // token id, used for revocation
	ExpiresAt time.Time // token expiry
}

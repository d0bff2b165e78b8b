package models

import (
	"time"
)

// User defines the identity model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id"`                // Unique identifier for the user
	Email     string    `json:"email" db:"email"`          // Unique login email, stored lowercased
	Password  string    `json:"-" db:"password"`           // bcrypt digest, never serialized
	FirstName string    `json:"firstName" db:"first_name"` // User's first name
	LastName  string    `json:"lastName" db:"last_name"`   // User's last name
	IsActive  bool      `json:"isActive" db:"is_active"`   // Inactive users cannot log in or be listed
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

package models

import "time"

// Teacher defines the profile model based on the 'teachers' table
type Teacher struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"userId" db:"user_id"` // One profile per user
	UniversityName string     `json:"universityName" db:"university_name"`
	Gender         Gender     `json:"gender" db:"gender"`
	YearJoined     int        `json:"yearJoined" db:"year_joined"`
	Department     *string    `json:"department,omitempty" db:"department"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
}

// TeacherProfile is a user joined with their (possibly missing) teacher row.
// Profile fields are nil when the user has not created a profile yet.
type TeacherProfile struct {
	UserID         int64
	Email          string
	FirstName      string
	LastName       string
	TeacherID      *int64
	UniversityName *string
	Gender         *Gender
	YearJoined     *int
	Department     *string
	DateOfBirth    *time.Time
}

// HasProfile reports whether a teachers row was joined
func (p *TeacherProfile) HasProfile() bool {
	return p.TeacherID != nil
}

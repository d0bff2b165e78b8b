package dto

// RegisterRequest is the signup body: identity fields plus the teacher profile
type RegisterRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	UniversityName string  `json:"universityName"`
	Gender         string  `json:"gender"`
	YearJoined     int     `json:"yearJoined"`
	Department     *string `json:"department,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"` // YYYY-MM-DD
}

// RegisterResponse is returned with 201 on signup
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// MeResponse is the body of GET /api/me
type MeResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

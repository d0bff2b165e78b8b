package dto

import (
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/validation"
)

// CreateTeacherRequest creates the caller's profile after signup.
// Department and dateOfBirth are required here, unlike at signup.
type CreateTeacherRequest struct {
	UniversityName string `json:"universityName"`
	Gender         string `json:"gender"`
	YearJoined     int    `json:"yearJoined"`
	Department     string `json:"department"`
	DateOfBirth    string `json:"dateOfBirth"`
}

// CreateTeacherResponse is returned with 201
type CreateTeacherResponse struct {
	Message   string `json:"message"`
	TeacherID int64  `json:"teacherId"`
}

// TeacherProfileResponse is a user with their teacher fields (empty when no profile exists)
type TeacherProfileResponse struct {
	UserID         int64   `json:"userId"`
	Email          string  `json:"email"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	TeacherID      *int64  `json:"teacherId"`
	UniversityName *string `json:"universityName"`
	Gender         *string `json:"gender"`
	YearJoined     *int    `json:"yearJoined"`
	Department     *string `json:"department"`
	DateOfBirth    *string `json:"dateOfBirth"`
}

// ProfileResponse is the body of GET /profile
type ProfileResponse struct {
	Success bool                    `json:"success"`
	Data    *TeacherProfileResponse `json:"data"`
}

// NewTeacherProfileResponse converts the joined row for output
func NewTeacherProfileResponse(p *models.TeacherProfile) *TeacherProfileResponse {
	resp := &TeacherProfileResponse{
		UserID:         p.UserID,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		TeacherID:      p.TeacherID,
		UniversityName: p.UniversityName,
		YearJoined:     p.YearJoined,
		Department:     p.Department,
	}
	if p.Gender != nil {
		g := string(*p.Gender)
		resp.Gender = &g
	}
	if p.DateOfBirth != nil {
		d := p.DateOfBirth.Format(validation.DateLayout)
		resp.DateOfBirth = &d
	}
	return resp
}

// NewTeacherProfileList converts a listing
func NewTeacherProfileList(profiles []models.TeacherProfile) []*TeacherProfileResponse {
	out := make([]*TeacherProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, NewTeacherProfileResponse(&profiles[i]))
	}
	return out
}


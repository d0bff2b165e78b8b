package services

import (
	"strings"
	"time"

	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/models"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/apperrors"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/pkg/validation"
)

// bcrypt only reads the first 72 bytes
const maxPasswordBytes = 72

// normalizeEmail trims and lowercases so lookups are case-insensitive
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(field, field+" is required")
	}
	if !validation.NewStringValidation(value).WithMaxLength(validation.NameMaxLength).Validate() {
		return apperrors.NewValidationError(field, field+" is too long")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	if !validation.IsEmail(email) {
		return apperrors.NewValidationError("email", "email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password", "password is required")
	}
	if !validation.NewStringValidation(password).WithMinLength(validation.PasswordMinLength).Validate() {
		return apperrors.NewValidationError("password", "password must be at least 8 characters long")
	}
	if len(password) > maxPasswordBytes {
		return apperrors.NewValidationError("password", "password must be at most 72 bytes long")
	}
	return nil
}

// profileInput is the teacher part of a signup or profile request
type profileInput struct {
	UniversityName string
	Gender         string
	YearJoined     int
	Department     *string
	DateOfBirth    *string
}

// buildTeacher validates the profile fields and converts them to a model.
// Department and date of birth are only mandatory when requireOptional is set.
func buildTeacher(in profileInput, requireOptional bool, now time.Time) (*models.Teacher, error) {
	university := strings.TrimSpace(in.UniversityName)
	if university == "" {
		return nil, apperrors.NewValidationError("universityName", "universityName is required")
	}
	if !validation.NewStringValidation(university).WithMaxLength(validation.InstitutionMaxLength).Validate() {
		return nil, apperrors.NewValidationError("universityName", "universityName is too long")
	}

	if in.Gender == "" {
		return nil, apperrors.NewValidationError("gender", "gender is required")
	}
	gender := models.Gender(in.Gender)
	if !gender.IsValid() {
		return nil, apperrors.NewValidationError("gender", "gender must be one of Male, Female, Other")
	}

	if in.YearJoined == 0 {
		return nil, apperrors.NewValidationError("yearJoined", "yearJoined is required")
	}
	if !validation.YearJoinedInRange(in.YearJoined, now) {
		return nil, apperrors.NewValidationError("yearJoined", "yearJoined is out of range")
	}

	teacher := &models.Teacher{
		UniversityName: university,
		Gender:         gender,
		YearJoined:     in.YearJoined,
	}

	var dept string
	if in.Department != nil {
		dept = strings.TrimSpace(*in.Department)
	}
	if dept == "" && requireOptional {
		return nil, apperrors.NewValidationError("department", "department is required")
	}
	if !validation.NewStringValidation(dept).
		WithRequired(requireOptional).
		WithMaxLength(validation.InstitutionMaxLength).
		Validate() {
		return nil, apperrors.NewValidationError("department", "department is too long")
	}
	if dept != "" {
		teacher.Department = &dept
	}

	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		dob, ok := validation.ParseDate(*in.DateOfBirth)
		if !ok {
			return nil, apperrors.NewValidationError("dateOfBirth", "dateOfBirth must be formatted YYYY-MM-DD")
		}
		if dob.After(now) {
			return nil, apperrors.NewValidationError("dateOfBirth", "dateOfBirth cannot be in the future")
		}
		teacher.DateOfBirth = &dob
	} else if requireOptional {
		return nil, apperrors.NewValidationError("dateOfBirth", "dateOfBirth is required")
	}

	return teacher, nil
}

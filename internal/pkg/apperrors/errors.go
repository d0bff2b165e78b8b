package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("malformed token")
	ErrTokenInvalid       = errors.New("invalid token")

	// Throttling
	ErrRateLimited = errors.New("too many requests")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInputTooLong     = errors.New("input too long")
)

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrProfileExists      = errors.New("teacher profile already exists")
)

// Storage errors
var (
	ErrInsertFailed        = errors.New("insert returned no identifier")
	ErrForeignKeyViolation = errors.New("referenced record does not exist")
)

// NewValidationError wraps ErrValidationFailed with the offending field
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned when a caller has exhausted its attempt budget.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

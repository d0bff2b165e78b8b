package validation

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// Validation rule patterns
var (
	// Email validation pattern, applied to the lowercased address
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Password min length
	PasswordMinLength = 8

	// Name and institution max length, matching the VARCHAR columns
	NameMaxLength        = 100
	InstitutionMaxLength = 255

	// Earliest accepted year_joined
	MinYearJoined = 1900

	// DateLayout is the accepted dateOfBirth format
	DateLayout = "2006-01-02"
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// StringValidation checks a single string field
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new required string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length in characters
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length in characters
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsEmail reports whether s is a syntactically valid (lowercased) email address
func IsEmail(s string) bool {
	return NewStringValidation(s).WithMaxLength(255).WithPattern(CompiledPatterns.Email).Validate()
}

// YearJoinedInRange accepts MinYearJoined through next year relative to now
func YearJoinedInRange(year int, now time.Time) bool {
	return year >= MinYearJoined && year <= now.Year()+1
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

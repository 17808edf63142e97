package user

import (
	"regexp"
	"strings"
	"unicode"
)

// SignupDTO is the transport shape for account creation.
type SignupDTO struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department,omitempty"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Validate checks required fields and returns a ValidationError on failure.
func (d SignupDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if !usernamePattern.MatchString(d.Username) {
		return ValidationError{Msg: "username must contain only letters, numbers, and underscores"}
	}
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !emailPattern.MatchString(d.Email) {
		return ValidationError{Msg: "email is not valid"}
	}
	if err := validatePassword(d.Password); err != nil {
		return err
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ValidationError{Msg: "password does not meet complexity requirements"}
	}
	return nil
}

// ToUser maps the DTO onto a domain User; the password hash is filled by the
// service after hashing.
func (d SignupDTO) ToUser() *User {
	u := &User{
		Username: d.Username,
		Email:    strings.ToLower(d.Email),
		IsActive: true,
	}
	if d.Department != "" {
		dept := d.Department
		u.Department = &dept
	}
	return u
}

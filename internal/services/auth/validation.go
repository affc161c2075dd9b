// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	nameMaxLength     = 50
	emailMaxLength    = 200
	passwordMinLength = 8
	passwordMaxLength = 20
	passwordSpecials  = "@$!%*?&"
)

// ValidationError is a single rejected field. Code doubles as the message ID
// for localisation; Message is the English fallback.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is returned when request input violates one or more rules.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0].Message
}

// Messages returns all error messages.
func (e *ValidationErrors) Messages() []string {
	messages := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		messages[i] = err.Message
	}
	return messages
}

// ValidationResult holds all validation errors.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Err returns nil for a valid result and *ValidationErrors otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationErrors{Errors: r.Errors}
}

func newResult(errs []ValidationError) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// SignupParams is the signup request body.
type SignupParams struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate checks every field and collects all violations.
func (p SignupParams) Validate() ValidationResult {
	var errs []ValidationError
	errs = append(errs, validateName("firstName", "first_name", p.FirstName)...)
	errs = append(errs, validateName("lastName", "last_name", p.LastName)...)
	errs = append(errs, validateEmail(p.Email)...)
	errs = append(errs, validatePassword(p.Password)...)
	return newResult(errs)
}

// LoginParams is the login request body.
type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks every field and collects all violations.
func (p LoginParams) Validate() ValidationResult {
	var errs []ValidationError
	errs = append(errs, validateEmail(p.Email)...)
	errs = append(errs, validatePassword(p.Password)...)
	return newResult(errs)
}

func validateName(field, code, value string) []ValidationError {
	if value == "" {
		return []ValidationError{{
			Field:   field,
			Code:    code + "_required",
			Message: field + " is required.",
		}}
	}
	if utf8.RuneCountInString(value) > nameMaxLength {
		return []ValidationError{{
			Field:   field,
			Code:    code + "_length",
			Message: field + " must be between 1 and 50 characters.",
		}}
	}
	return nil
}

func validateEmail(value string) []ValidationError {
	if value == "" {
		return []ValidationError{{
			Field:   "email",
			Code:    "email_required",
			Message: "email is required.",
		}}
	}

	var errs []ValidationError
	if !IsValidEmail(value) {
		errs = append(errs, ValidationError{
			Field:   "email",
			Code:    "email_invalid",
			Message: "Invalid email format.",
		})
	}
	if utf8.RuneCountInString(value) > emailMaxLength {
		errs = append(errs, ValidationError{
			Field:   "email",
			Code:    "email_length",
			Message: "email must be between 1 and 200 characters.",
		})
	}
	return errs
}

func validatePassword(value string) []ValidationError {
	if value == "" {
		return []ValidationError{{
			Field:   "password",
			Code:    "password_required",
			Message: "password is required.",
		}}
	}
	if !IsValidPassword(value) {
		return []ValidationError{{
			Field:   "password",
			Code:    "password_format",
			Message: "password must be between 8 and 20 characters long, include 1 letter, 1 number, and 1 special character.",
		}}
	}
	return nil
}

// IsValidEmail accepts a bare addr-spec with a dotted domain, e.g. "ada@example.com".
func IsValidEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(value, '@')
	domain := value[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// IsValidPassword reports whether value is 8 to 20 characters drawn from ASCII
// letters, digits and @$!%*?&, with at least one of each class.
func IsValidPassword(value string) bool {
	if len(value) < passwordMinLength || len(value) > passwordMaxLength {
		return false
	}

	var hasLetter, hasDigit, hasSpecial bool
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.IndexByte(passwordSpecials, c) >= 0:
			hasSpecial = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

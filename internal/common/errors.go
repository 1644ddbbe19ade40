// Package common contains shared sentinel errors and constants used across
// listkeeper components. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Auth errors. Unknown email and wrong password are deliberately
	// indistinguishable to avoid account enumeration.
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")

	// Signup errors.
	ErrorEmailExists = errors.New("email already exists")
	ErrorValidation  = errors.New("validation error")

	// Entity lookup errors.
	ErrorListNotFound = errors.New("list not found")
	ErrorTaskNotFound = errors.New("task not found")

	// Count coercion failure on task updates.
	ErrorNotANumber = errors.New("not a number")
)

// ValidationError reports which field failed validation and why.
// errors.Is(err, ErrorValidation) matches any ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

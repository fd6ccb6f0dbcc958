package apperrors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError carries the raw message shown to API callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError that matches ErrInvalidInput under errors.Is.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

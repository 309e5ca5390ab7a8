package ml

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField marks a required input field that was not supplied.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidNumber marks an input field that is not a finite number.
	ErrInvalidNumber = errors.New("invalid number")
)

// FieldError reports which input field failed validation and why.
// It wraps ErrMissingField or ErrInvalidNumber so callers can branch
// with errors.Is.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("field %q is required", e.Field)
	}
	return fmt.Sprintf("field %q must be a finite number, got %q", e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Kind returns a stable machine-readable name for the failure.
func (e *FieldError) Kind() string {
	if errors.Is(e.Err, ErrMissingField) {
		return "missing_field"
	}
	return "invalid_number"
}

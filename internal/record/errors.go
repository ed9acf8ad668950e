package record

import (
	"errors"
	"fmt"
)

// ValidationError reports caller-supplied data that violates a field
// constraint. Validation happens at the boundary, before a payload
// reaches the store.
type ValidationError struct {
	// Field names the offending field in its JSON form.
	Field string

	// Message describes the violated constraint.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidation returns true if the error is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

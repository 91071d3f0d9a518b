// Package errors provides custom error types for catalog operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")

// ValidationError reports a product payload that failed a business rule.
// It is raised before any datastore access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

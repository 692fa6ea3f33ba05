package filter

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a filter field whose value is outside its domain.
//
// Validation failures are client-caused: they surface to the caller with the
// offending field name and the allowed domain, and are never retried.
type ValidationError struct {
	// Field is the JSON name of the offending field.
	Field string

	// Message describes the violation.
	Message string

	// Allowed optionally lists the permitted values for enum-like fields.
	Allowed []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s: %s (allowed: %s)", e.Field, e.Message, strings.Join(e.Allowed, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError returns true if err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func notInDomain(field, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%q is not a valid value", value),
		Allowed: allowed,
	}
}

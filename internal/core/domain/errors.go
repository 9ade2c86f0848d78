package domain

import (
	"errors"
	"fmt"
)

var ErrAuthRequired = errors.New("authentication required")
var ErrNotFound = errors.New("not found")
var ErrValidation = errors.New("validation failed")

// UpstreamError carries the status and message the remote CMS returned for a
// failed call. Message is the remote text verbatim when it was parseable,
// otherwise a generic default tied to the attempted operation.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Message)
}

// Validationf builds a field-specific validation error that the error handler
// maps to a 400 response.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// internal/domain/errors.go
package domain

import "fmt"

// ValidationError reports a bad input: a negative monetary amount, a missing
// required field, or an unknown period token. It is returned synchronously
// and never silently corrected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TransientIOError wraps a failed remote probe, load, or migration call.
// Callers recover by falling back to the local store or by aborting the
// migration; the error is surfaced as a non-fatal status indicator.
type TransientIOError struct {
	Op  string
	Err error
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("transient io: %s: %v", e.Op, e.Err)
}

func (e *TransientIOError) Unwrap() error { return e.Err }

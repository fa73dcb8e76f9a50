package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no document matched the identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID means the identifier is not a structurally valid storage key.
	ErrInvalidID = errors.New("invalid id")
	// ErrMalformedDocument means a persisted document lacks an expected field.
	ErrMalformedDocument = errors.New("malformed document")
)

// ValidationError reports an inbound record that violates a field constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// StorageError wraps an unexpected failure from the storage backend.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

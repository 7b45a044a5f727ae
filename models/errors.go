package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrPayloadTooLarge is returned when an uploaded image exceeds MaxImageSize.
	ErrPayloadTooLarge = errors.New("image size exceeds 5MB limit")
	// ErrNotFound is returned when a delete target does not exist.
	ErrNotFound = errors.New("school not found")
)

// MaxImageSize is the largest accepted image, in bytes.
const MaxImageSize = 5 * 1024 * 1024

// ValidationError reports required fields that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// StoreError wraps a database failure. Op names the repository operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// BackendError wraps a failure of an image storage backend.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database, or exists but is not owned by the
// caller for an owner-only operation.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing state: an
// overlapping booking or a second review by the same author for one spot.
// Handlers should map this to HTTP 403 Forbidden.
var ErrConflict = errors.New("conflict")

// ErrUnknownUser is returned when a write references a caller id that has no
// users row, e.g. a validly signed token for a deleted account.
// Handlers should map this to HTTP 401.
var ErrUnknownUser = errors.New("unknown user")

// FieldError carries a per-field reason map alongside one of the sentinels
// above. errors.Is(err, domain.ErrValidation) keeps working through it.
type FieldError struct {
	Kind   error
	Fields map[string]string
}

// NewValidationError builds a FieldError wrapping ErrValidation.
func NewValidationError(fields map[string]string) *FieldError {
	return &FieldError{Kind: ErrValidation, Fields: fields}
}

// NewConflictError builds a FieldError wrapping ErrConflict.
func NewConflictError(fields map[string]string) *FieldError {
	return &FieldError{Kind: ErrConflict, Fields: fields}
}

// Error renders the fields in key order so messages are stable in logs and tests.
func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *FieldError) Unwrap() error { return e.Kind }

// FieldsOf returns the field reasons carried anywhere in err's chain, or nil.
func FieldsOf(err error) map[string]string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}

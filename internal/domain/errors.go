package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrSessionNotFound signals an unknown or expired dashboard session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidQuery signals a filter, sort or search value that cannot be applied.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRecord signals a restaurant record that failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrStoreNotLoaded signals that the record store has not been populated yet.
	ErrStoreNotLoaded = errors.New("record store not loaded")
	// ErrAlreadyLoaded signals a second load attempt on a load-once store.
	ErrAlreadyLoaded = errors.New("record store already loaded")
	// ErrLoadFailed signals that the one-time load of the data resource failed.
	ErrLoadFailed = errors.New("record load failed")
)

// QueryFieldError wraps ErrInvalidQuery with the offending field and value.
type QueryFieldError struct {
	Field string
	Value string
}

func (e *QueryFieldError) Error() string {
	return fmt.Sprintf("%s: unsupported %s %q", ErrInvalidQuery.Error(), e.Field, e.Value)
}

func (e *QueryFieldError) Unwrap() error { return ErrInvalidQuery }

// NewQueryFieldError creates an invalid query error for a field.
func NewQueryFieldError(field, value string) error {
	return &QueryFieldError{Field: field, Value: value}
}

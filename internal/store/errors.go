package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when the requested location holds no data yet.
	ErrNotFound = errors.New("entity not found")

	// ErrUnsupported is returned when a file format cannot serve the requested
	// kind of data, e.g. an answer key stored in sqlite.
	ErrUnsupported = errors.New("unsupported format")
)

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "answer key", "record")
	Operation string // The operation that failed (e.g., "load", "save")
	Path      string // Location being read or written
	Row       int    // 1-based row number, 0 when not row-specific
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s %s failed for %s row %d: %v", e.Entity, e.Operation, e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("%s %s failed for %s: %v", e.Entity, e.Operation, e.Path, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, path and wrapped error.
func NewStoreError(entity, operation, path string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewRowError creates a StoreError pointing at a specific row.
func NewRowError(entity, operation, path string, row int, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Path:      path,
		Row:       row,
		Err:       err,
	}
}

// IsNotFoundError checks if the error is a "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

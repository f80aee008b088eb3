// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSlotConflict indicates a timetable slot already occupies the requested day/period.
	ErrSlotConflict = errors.New("slot already occupied")

	// ErrUnauthorized indicates a request lacked valid admin credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrProviderDisabled indicates an optional capability (chat fallback,
	// summarization) was invoked without a configured provider.
	ErrProviderDisabled = errors.New("provider not configured")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// StoreError represents timetable store failures with context.
type StoreError struct {
	Table string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error (table=%s, op=%s): %v", e.Table, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new store error.
func NewStoreError(table, op string, err error) *StoreError {
	return &StoreError{
		Table: table,
		Op:    op,
		Err:   err,
	}
}

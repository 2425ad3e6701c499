// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-pool.

package api

import "fmt"

// Common errors used across the library.
var (
	// ErrMaxPowerTooSmall is reported at pool construction when the
	// configured maximum power of two cannot hold even one size class.
	ErrMaxPowerTooSmall = fmt.Errorf("max power must be at least 4")

	// ErrClassTooSmall is reported when a requested capacity exceeds
	// every configured size class. Recoverable: the caller may retry
	// with a smaller request or build a pool with a higher max power.
	ErrClassTooSmall = fmt.Errorf("no size class can satisfy the requested capacity")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeMaxPowerTooSmall
	ErrCodeClassTooSmall
	ErrCodeInternal
)

// Error represents a structured error with code, cause and context.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel cause so errors.Is matches.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithCause attaches a sentinel cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

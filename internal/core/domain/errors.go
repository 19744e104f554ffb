package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrPostNotFound       = errors.New("post not found")
)

// ValidationError reports malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthenticationError wraps one of ErrUserNotFound, ErrInvalidCredentials,
// ErrAccessDenied or ErrInvalidToken. Cause carries the underlying library
// error, if any, and is never shown to the client.
type AuthenticationError struct {
	Err   error
	Cause error
}

func (e *AuthenticationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Err, e.Cause)
	}
	return e.Err.Error()
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// NewAuthenticationError wraps err as an AuthenticationError.
func NewAuthenticationError(err error) *AuthenticationError {
	return &AuthenticationError{Err: err}
}

// StoreError wraps a persistence failure with the logical operation that failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err as a StoreError for op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

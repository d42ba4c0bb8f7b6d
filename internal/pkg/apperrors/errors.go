package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error surfaced to a client wraps one of these.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Token errors, both reported as ErrUnauthorized
var (
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrTokenInvalid = fmt.Errorf("%w: invalid token", ErrUnauthorized)
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	// Details holds one entry per violated constraint for validation failures
	Details []string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches per-field messages to the error
func (e *CustomError) WithDetails(details ...string) *CustomError {
	e.Details = append(e.Details, details...)
	return e
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

func NewUnauthorizedError(message string) error {
	return NewCustomError(ErrUnauthorized, message)
}

func NewNotFoundError(message string) error {
	return NewCustomError(ErrNotFound, message)
}

// NewValidationError aggregates every violated constraint into one bad request
func NewValidationError(messages []string) error {
	return NewCustomError(ErrBadRequest, strings.Join(messages, "; ")).WithDetails(messages...)
}

// Message returns the client-facing message of err, falling back to fallback
// when err carries no CustomError.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// Details returns the per-field messages carried by err, if any
func Details(err error) []string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

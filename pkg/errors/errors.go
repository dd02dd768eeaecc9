package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeAuthRequired ErrorType = "AUTH_REQUIRED"

	// Infrastructure errors
	ErrorTypeRemoteWrite ErrorType = "REMOTE_WRITE"
	ErrorTypeExternal    ErrorType = "EXTERNAL"
	ErrorTypeInternal    ErrorType = "INTERNAL"
)

// AppError is the application error type carried across layers. It keeps
// the HTTP status and field details so handlers can respond without
// re-interpreting messages.
type AppError struct {
	Type       ErrorType         `json:"type"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	Cause      error             `json:"-"`
	HTTPStatus int               `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a field-level validation error. It blocks
// submission without contacting any remote service.
func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewRemoteWriteError creates an error for a failed create/update/register
// call against the remote store. The caller's local state must be
// preserved when this is returned.
func NewRemoteWriteError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeRemoteWrite,
		Message:    fmt.Sprintf("remote operation '%s' failed", operation),
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewExternalError creates an error for a failed call to a collaborator
// outside the remote store (code host, payment provider).
func NewExternalError(service string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Message:    fmt.Sprintf("call to %s failed", service),
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewAuthRequiredError creates an error for actions that need a signed-in
// identity when none is present.
func NewAuthRequiredError(message string) *AppError {
	if message == "" {
		message = "please sign in to continue"
	}
	return &AppError{
		Type:       ErrorTypeAuthRequired,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// AsAppError extracts an AppError from an error chain, falling back to an
// internal error wrapping err.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("internal error").WithCause(err)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

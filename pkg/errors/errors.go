// Package errors provides typed errors for the application
package errors

import stderrors "errors"

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeUpstream
	ErrorTypeUnavailable
	ErrorTypeInternal
)

// baseError is the base implementation for all error types
type baseError struct {
	msg   string
	cause error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ValidationError represents a validation error (400)
type ValidationError struct {
	baseError
}

// NewValidationError creates a new ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{baseError{msg: msg}}
}

// WrapValidationError creates a ValidationError carrying its cause
func WrapValidationError(msg string, cause error) *ValidationError {
	return &ValidationError{baseError{msg: msg, cause: cause}}
}

// UpstreamError represents a failure of a third-party service (502)
type UpstreamError struct {
	baseError
}

// NewUpstreamError creates a new UpstreamError
func NewUpstreamError(msg string, cause error) *UpstreamError {
	return &UpstreamError{baseError{msg: msg, cause: cause}}
}

// InternalError represents an internal server error (500)
type InternalError struct {
	baseError
}

// NewInternalError creates a new InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{baseError{msg: msg}}
}

// UnavailableError represents a request refused while the service stops (503)
type UnavailableError struct {
	baseError
}

// NewUnavailableError creates a new UnavailableError
func NewUnavailableError(msg string) *UnavailableError {
	return &UnavailableError{baseError{msg: msg}}
}

// TypeOf reports the category of err, ErrorTypeInternal for unknown errors
func TypeOf(err error) ErrorType {
	switch {
	case IsValidationError(err):
		return ErrorTypeValidation
	case IsUpstreamError(err):
		return ErrorTypeUpstream
	case IsUnavailableError(err):
		return ErrorTypeUnavailable
	default:
		return ErrorTypeInternal
	}
}

// IsValidationError checks if error is a ValidationError
func IsValidationError(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

// IsUpstreamError checks if error is an UpstreamError
func IsUpstreamError(err error) bool {
	var target *UpstreamError
	return stderrors.As(err, &target)
}

// IsUnavailableError checks if error is an UnavailableError
func IsUnavailableError(err error) bool {
	var target *UnavailableError
	return stderrors.As(err, &target)
}

// IsInternalError checks if error is an InternalError
func IsInternalError(err error) bool {
	var target *InternalError
	return stderrors.As(err, &target)
}

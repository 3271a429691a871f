package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel failures shared by all services. NotFound means the entity does not
// exist; Forbidden means it exists but belongs to another user. Callers must be
// able to tell the two apart, so they are never merged.
var (
	ErrNotFound  = stderrors.New("resource not found")
	ErrForbidden = stderrors.New("access forbidden")
)

// ValidationError reports malformed or inconsistent input. The message is
// caller-facing and specific.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a validation failure with a formatted message.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a mutation that would violate a referential or
// uniqueness guard, as opposed to malformed input.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict creates a conflict failure with a formatted message.
func NewConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return stderrors.As(err, &v)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return stderrors.As(err, &c)
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// IsForbidden reports whether err is (or wraps) ErrForbidden.
func IsForbidden(err error) bool {
	return stderrors.Is(err, ErrForbidden)
}

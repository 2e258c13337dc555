// Package errors carries the application error type the orchestration core
// returns for rejected requests. Engine failures do not use it; those travel
// as outcome values, never as errors.
package errors

import "fmt"

// Sentinel errors callers can match with errors.Is.
var (
	ErrInvalidRequest    = New("invalid request")
	ErrEmptyInput        = New("input is empty")
	ErrUnknownCapability = New("unknown capability")
)

// Error pairs a message with an optional wrapped cause.
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors by message, so a wrapped sentinel still compares equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// RequiredField reports a missing required field.
func RequiredField(field string) error {
	return Newf("%s is required", field)
}

// InvalidField reports a field value and why it was rejected.
func InvalidField(field string, reason string) error {
	return Newf("%s is invalid: %s", field, reason)
}

// Unsupported reports a value outside the accepted set.
func Unsupported(field string, value string) error {
	return Newf("%s not supported: %s", field, value)
}

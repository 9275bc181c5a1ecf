// Package apperrors defines the typed error surfaced to Discord users.
package apperrors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeUpstream   = "UPSTREAM_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error carries a user-facing message plus diagnostic context.
type Error struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// NewValidation reports bad user input for the named option.
func NewValidation(message, field string, value any) *Error {
	return &Error{
		Message: message,
		Code:    CodeValidation,
		Context: map[string]any{
			"field": field,
			"value": value,
		},
	}
}

// NewUpstream reports a failed call to an external data source.
func NewUpstream(message, source string, cause error) *Error {
	return &Error{
		Message: message,
		Code:    CodeUpstream,
		Context: map[string]any{"source": source},
		Cause:   cause,
	}
}

// UserMessage extracts the message meant for end users. Errors that are not
// *Error get a generic text so internals never leak into chat.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == CodeValidation
}

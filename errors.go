package moodlews

import (
	"fmt"
)

// ErrorType classifies a construction or call failure.
type ErrorType string

const (
	// ErrorTypeMissingParameter indicates a required parameter was absent.
	ErrorTypeMissingParameter ErrorType = "MissingParameter"

	// ErrorTypeInvalidFormat indicates a parameter failed its pattern, type
	// or enum check after coercion.
	ErrorTypeInvalidFormat ErrorType = "InvalidFormat"

	// ErrorTypeInvalidURL indicates a base URL that is not an absolute
	// https URL ending in a path separator.
	ErrorTypeInvalidURL ErrorType = "InvalidUrl"

	// ErrorTypeInvalidToken indicates a token that is not 32 lowercase
	// hexadecimal characters.
	ErrorTypeInvalidToken ErrorType = "InvalidToken"

	// ErrorTypeInvalidDuration indicates a timeout value that does not
	// resolve to a positive millisecond count.
	ErrorTypeInvalidDuration ErrorType = "InvalidDuration"

	// ErrorTypeTransport indicates the executor failed to obtain a
	// successful response (network error, non-2xx status, timeout).
	ErrorTypeTransport ErrorType = "TransportError"
)

// Error is a structured failure raised at construction or call time.
// Validation failures carry the offending parameter name and value;
// transport failures carry the underlying cause.
type Error struct {
	Type    ErrorType
	Param   string
	Message string
	Value   any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Param != "" {
		msg = fmt.Sprintf("%s: parameter %q %s", e.Type, e.Param, e.Message)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// newParamError builds a validation failure for a single parameter.
func newParamError(t ErrorType, param, message string, value any) *Error {
	return &Error{Type: t, Param: param, Message: message, Value: value}
}

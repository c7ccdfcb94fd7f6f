package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	// Reference data errors
	ErrCodeStaleReference ErrorCode = "STALE_REFERENCE"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"

	// Input errors
	ErrCodeValidation   ErrorCode = "VALIDATION"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// TripError is a structured error carrying a code and optional details.
type TripError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *TripError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TripError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *TripError) WithDetail(key string, value interface{}) *TripError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new TripError
func New(code ErrorCode, message string) *TripError {
	return &TripError{Code: code, Message: message}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *TripError {
	return &TripError{Code: code, Message: message, Cause: err}
}

// Is reports whether any error in err's chain is a TripError with the given code.
func Is(err error, code ErrorCode) bool {
	var te *TripError
	if stderrors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// GetCode returns the code of the first TripError in err's chain, or "".
func GetCode(err error) ErrorCode {
	var te *TripError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}

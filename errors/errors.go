package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// Error is a coded error carrying a human readable message and an optional
// wrapped cause.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// Message describes what failed.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient.
func (e *Error) Retryable() bool {
	return e.Code.Retryable()
}

// MarshalJSON serializes the error for API responses. The cause is rendered
// as a string so that arbitrary error types serialize safely.
func (e *Error) MarshalJSON() ([]byte, error) {
	payload := struct {
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
		Cause   string    `json:"cause,omitempty"`
	}{
		Code:    e.Code,
		Message: e.Message,
	}
	if e.Err != nil {
		payload.Cause = e.Err.Error()
	}
	return json.Marshal(payload)
}

// New creates a coded error without a cause.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, falling back to
// any error exposing an ErrorCode method. Context cancellation and deadlines
// map to CodeTimeout; anything else without a code is CodeUnknown.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	var carrier interface{ ErrorCode() ErrorCode }
	if stderrors.As(err, &carrier) {
		return carrier.ErrorCode()
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return CodeTimeout
	}
	if stderrors.Is(err, context.Canceled) {
		return CodeTimeout
	}
	return CodeUnknown
}

// IsRetryable reports whether err is classified as transient.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return CodeOf(err).Retryable()
}

// Is is a passthrough to the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is a passthrough to the standard library errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Join is a passthrough to the standard library errors.Join.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

package storage

import (
	"errors"
	"fmt"

	ferrors "github.com/magnifact/pdf-table-extractor/errors"
)

// Error represents a storage operation error with context about the operation that failed.
// It wraps the underlying backend error with additional context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "get", "put", "stat")
	Op string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Key is the object key (if applicable)
	Key string

	// Err is the underlying error from the backend or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("storage.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("storage.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("storage.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode classifies the error for retry decisions and responses.
func (e *Error) ErrorCode() ferrors.ErrorCode {
	return Classify(e.Err)
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for common storage failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("storage: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("storage: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("storage: access denied")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("storage: invalid input")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("storage: invalid object key")

	// ErrTooManyRequests indicates that the request rate is too high
	ErrTooManyRequests = errors.New("storage: too many requests")

	// ErrConnection indicates a connection error
	ErrConnection = errors.New("storage: connection error")
)

// Classify maps an error chain to an error code. Sentinel errors decide the
// code; anything unrecognized is treated as a transient storage failure.
func Classify(err error) ferrors.ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound), errors.Is(err, ErrBucketNotFound):
		return ferrors.CodeNotFound
	case errors.Is(err, ErrAccessDenied):
		return ferrors.CodeForbidden
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidObjectKey):
		return ferrors.CodeInvalidInput
	case errors.Is(err, ErrTooManyRequests):
		return ferrors.CodeRateLimit
	case errors.Is(err, ErrConnection):
		return ferrors.CodeNetwork
	}

	if code := ferrors.CodeOf(err); code == ferrors.CodeTimeout {
		return code
	}
	return ferrors.CodeStorage
}

// IsObjectNotFound checks if an error indicates that an object was not found.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidObjectKey)
}

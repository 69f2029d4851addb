// Package errors provides the error handling system for the PDF table extractor.
// It extends Go's standard error handling with structured error codes, retry classification,
// context preservation, and API serialization capabilities.
package errors

import "net/http"

// ErrorCode represents a specific error condition in the extractor.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates a requested object or bucket does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Permission errors.

	// CodeForbidden indicates the credentials lack permission for the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Validation errors.

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeTooLarge indicates the input exceeds the configured size limit.
	CodeTooLarge ErrorCode = "INPUT_TOO_LARGE"

	// Infrastructure errors.

	// CodeStorage indicates a storage operation failed.
	CodeStorage ErrorCode = "STORAGE_ERROR"

	// CodeNetwork indicates a network operation failed.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeRateLimit indicates the rate limit has been exceeded.
	CodeRateLimit ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Conversion errors.

	// CodeWorkbookFailed indicates the spreadsheet could not be produced.
	CodeWorkbookFailed ErrorCode = "WORKBOOK_FAILED"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Retryable reports whether an operation failing with this code may succeed
// when attempted again without changes to its input.
func (c ErrorCode) Retryable() bool {
	switch c {
	case CodeStorage, CodeNetwork, CodeTimeout, CodeRateLimit, CodeUnknown:
		return true
	default:
		return false
	}
}

// HTTPStatus maps the code to the HTTP status reported for a failed record.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidInput, CodeInvalidConfig:
		return http.StatusBadRequest
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

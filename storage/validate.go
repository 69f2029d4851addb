package storage

import (
	"path"
	"strings"
	"unicode"
)

// maxKeyLength is the S3 limit on object key length in bytes.
const maxKeyLength = 1024

// ValidateBucket rejects empty bucket names.
func ValidateBucket(op, bucket string) error {
	if strings.TrimSpace(bucket) == "" {
		return NewError(op, ErrInvalidInput).
			WithBucket(bucket).
			WithMessage("bucket name cannot be empty")
	}
	return nil
}

// ValidateObjectKey validates that an object key is safe to use with every backend.
// This includes preventing path traversal, which matters for the local backend.
func ValidateObjectKey(key string) error {
	if key == "" {
		return NewError("validateObjectKey", ErrInvalidObjectKey).
			WithKey(key).
			WithMessage("object key cannot be empty")
	}

	if hasPathTraversal(key) {
		return NewError("validateObjectKey", ErrInvalidObjectKey).
			WithKey(key).
			WithMessage("object key cannot contain path traversal sequences")
	}

	if len(key) > maxKeyLength {
		return NewError("validateObjectKey", ErrInvalidObjectKey).
			WithKey(key).
			WithMessage("object key cannot exceed 1024 bytes")
	}

	if hasControlCharacters(key) {
		return NewError("validateObjectKey", ErrInvalidObjectKey).
			WithKey(key).
			WithMessage("object key cannot contain control characters")
	}

	return nil
}

// ValidateObject validates a bucket and key pair for operation op.
func ValidateObject(op, bucket, key string) error {
	if err := ValidateBucket(op, bucket); err != nil {
		return err
	}
	if err := ValidateObjectKey(key); err != nil {
		return NewObjectError(op, bucket, key, err)
	}
	return nil
}

// hasPathTraversal checks for parent directory segments and absolute paths.
func hasPathTraversal(key string) bool {
	normalized := strings.ReplaceAll(key, "\\", "/")
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return true
		}
	}

	if strings.HasPrefix(normalized, "/") {
		return true
	}

	// Windows-style absolute paths
	if len(normalized) >= 3 && normalized[1] == ':' && normalized[2] == '/' {
		return true
	}

	return strings.HasPrefix(path.Clean(normalized), "..")
}

// hasControlCharacters checks for control characters in the key
func hasControlCharacters(key string) bool {
	for _, char := range key {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}

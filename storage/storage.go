// Package storage defines the object storage abstraction the converter reads
// PDFs from and writes workbooks to, along with the error types and input
// validation shared by every backend.
//
// Backends live in sub-packages:
//
//   - storage/s3: Amazon S3 through the AWS SDK v2
//   - storage/minio: MinIO and other S3-compatible services through minio-go
//   - storage/local: a directory tree through go-billy
//
// All backends translate their native errors into the sentinel errors of this
// package so callers can use errors.Is regardless of the backend in use.
package storage

import (
	"context"
	"time"
)

// Store is the minimal object storage surface needed by the converter.
// Implementations must be safe for concurrent use.
type Store interface {
	// Stat returns metadata for an object without downloading it.
	Stat(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// Get downloads an entire object into memory.
	Get(ctx context.Context, bucket, key string) ([]byte, error)

	// Put uploads data as a single object, replacing any existing object.
	Put(ctx context.Context, bucket, key string, data []byte, opts PutOptions) error
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	// Key is the object key.
	Key string

	// Size is the object size in bytes.
	Size int64

	// ContentType is the MIME type recorded for the object, if any.
	ContentType string

	// LastModified is when the object was last written.
	LastModified time.Time

	// ETag is the entity tag reported by the backend, if any.
	ETag string

	// Metadata contains user-defined metadata.
	Metadata map[string]string
}

// PutOptions controls how an object is written.
type PutOptions struct {
	// ContentType is the MIME type to record. Backends sniff the content
	// when it is empty.
	ContentType string

	// Metadata contains user-defined metadata to attach to the object.
	Metadata map[string]string
}

// DefaultContentType is used when content type detection fails.
const DefaultContentType = "application/octet-stream"

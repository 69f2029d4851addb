package minio

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/minio/minio-go/v7"

	"github.com/magnifact/pdf-table-extractor/storage"
)

// translateError maps minio-go errors onto storage sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	var sentinel error
	switch resp.Code {
	case "NoSuchKey", "NotFound":
		sentinel = storage.ErrObjectNotFound
	case "NoSuchBucket":
		sentinel = storage.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		sentinel = storage.ErrAccessDenied
	case "SlowDown", "SlowDownRead", "SlowDownWrite", "XMinioServerNotInitialized":
		sentinel = storage.ErrTooManyRequests
	case "InvalidBucketName", "InvalidArgument", "XMinioInvalidObjectName":
		sentinel = storage.ErrInvalidInput
	}

	if sentinel == nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			sentinel = storage.ErrObjectNotFound
		case http.StatusForbidden:
			sentinel = storage.ErrAccessDenied
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			sentinel = storage.ErrTooManyRequests
		}
	}

	if sentinel == nil {
		var netErr net.Error
		if errors.As(err, &netErr) {
			sentinel = storage.ErrConnection
		}
	}

	if sentinel == nil {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

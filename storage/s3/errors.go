package s3

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/magnifact/pdf-table-extractor/storage"
)

// translateError converts AWS SDK errors to storage sentinel errors.
// Errors that cannot be classified are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if sentinel := sentinelFor(err); sentinel != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

func sentinelFor(err error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return storage.ErrObjectNotFound
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return storage.ErrObjectNotFound
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return storage.ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return storage.ErrObjectNotFound
		case "NoSuchBucket":
			return storage.ErrBucketNotFound
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return storage.ErrAccessDenied
		case "SlowDown", "Throttling", "ThrottlingException", "TooManyRequests":
			return storage.ErrTooManyRequests
		case "InvalidBucketName", "KeyTooLongError", "InvalidArgument":
			return storage.ErrInvalidInput
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.HTTPStatusCode() {
		case http.StatusNotFound:
			return storage.ErrObjectNotFound
		case http.StatusForbidden:
			return storage.ErrAccessDenied
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			return storage.ErrTooManyRequests
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return storage.ErrConnection
	}

	return nil
}

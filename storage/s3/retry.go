package s3

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"
)

const (
	// DefaultMaxAttempts is the number of attempts made for an operation,
	// including the first one.
	DefaultMaxAttempts = 3

	defaultBaseDelay = 200 * time.Millisecond
	defaultMaxDelay  = 5 * time.Second
)

// retryableCodes lists S3 error codes that indicate a transient failure.
var retryableCodes = map[string]struct{}{
	"SlowDown":             {},
	"Throttling":           {},
	"ThrottlingException":  {},
	"RequestLimitExceeded": {},
	"TooManyRequests":      {},
	"RequestTimeout":       {},
	"RequestTimeTooSkewed": {},
	"InternalError":        {},
	"ServiceUnavailable":   {},
}

// BackoffRetryer implements aws.Retryer with exponential backoff and jitter.
// It retries throttling, server-side and network failures only.
//
// Thread Safety: all fields are set at creation time and never modified.
type BackoffRetryer struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

var _ aws.Retryer = (*BackoffRetryer)(nil)

// NewBackoffRetryer creates a retryer making at most maxAttempts attempts.
// Non-positive values fall back to DefaultMaxAttempts.
func NewBackoffRetryer(maxAttempts int) *BackoffRetryer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &BackoffRetryer{
		maxAttempts: maxAttempts,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
	}
}

// MaxAttempts returns the maximum number of attempts.
func (r *BackoffRetryer) MaxAttempts() int {
	return r.maxAttempts
}

// RetryDelay returns baseDelay * 2^(attempt-1) with ±25% jitter, capped at maxDelay.
func (r *BackoffRetryer) RetryDelay(attempt int, _ error) (time.Duration, error) {
	if attempt < 1 {
		attempt = 1
	}
	delay := time.Duration(math.Pow(2, float64(attempt-1))) * r.baseDelay

	jitterRange := int64(float64(delay) * 0.25)
	if jitterRange > 0 {
		delay += time.Duration(rand.Int63n(2*jitterRange) - jitterRange)
	}

	if delay > r.maxDelay {
		delay = r.maxDelay
	}
	if delay < 0 {
		delay = 0
	}
	return delay, nil
}

// IsErrorRetryable reports whether err is a transient S3 failure.
func (r *BackoffRetryer) IsErrorRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := retryableCodes[apiErr.ErrorCode()]; ok {
			return true
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.HTTPStatusCode()
		return status == 429 || status >= 500
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// GetRetryToken always grants a retry; the attempt limit bounds retries.
func (r *BackoffRetryer) GetRetryToken(context.Context, error) (func(error) error, error) {
	return func(error) error { return nil }, nil
}

// GetInitialToken returns a no-op release function.
func (r *BackoffRetryer) GetInitialToken() func(error) error {
	return func(error) error { return nil }
}

package s3

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"github.com/magnifact/pdf-table-extractor/storage"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no such key", err: &types.NoSuchKey{Message: aws.String("x")}, want: storage.ErrObjectNotFound},
		{name: "not found", err: &types.NotFound{}, want: storage.ErrObjectNotFound},
		{name: "no such bucket", err: &types.NoSuchBucket{}, want: storage.ErrBucketNotFound},
		{name: "api not found code", err: &smithy.GenericAPIError{Code: "NotFound"}, want: storage.ErrObjectNotFound},
		{name: "forbidden", err: &smithy.GenericAPIError{Code: "Forbidden"}, want: storage.ErrAccessDenied},
		{name: "slow down", err: &smithy.GenericAPIError{Code: "SlowDown"}, want: storage.ErrTooManyRequests},
		{name: "invalid bucket", err: &smithy.GenericAPIError{Code: "InvalidBucketName"}, want: storage.ErrInvalidInput},
		{name: "http 403", err: responseError(http.StatusForbidden), want: storage.ErrAccessDenied},
		{name: "http 404", err: responseError(http.StatusNotFound), want: storage.ErrObjectNotFound},
		{name: "network", err: &net.DNSError{Err: "no such host", Name: "s3"}, want: storage.ErrConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "original error must stay in the chain")
		})
	}
}

func TestTranslateError_Passthrough(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, translateError(plain))

	assert.ErrorIs(t, translateError(context.DeadlineExceeded), context.DeadlineExceeded)
}

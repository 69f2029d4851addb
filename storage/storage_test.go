package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/magnifact/pdf-table-extractor/errors"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bucket and key",
			err:  NewObjectError("get", "b", "k.pdf", ErrObjectNotFound),
			want: "storage.get b/k.pdf: storage: object not found",
		},
		{
			name: "bucket only",
			err:  NewError("put", ErrAccessDenied).WithBucket("b"),
			want: "storage.put bucket b: storage: access denied",
		},
		{
			name: "key only",
			err:  NewError("stat", ErrInvalidInput).WithKey("k"),
			want: "storage.stat object k: storage: invalid input",
		},
		{
			name: "no context",
			err:  NewError("get", ErrConnection),
			want: "storage.get: storage: connection error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_WithMessagePreservesSentinel(t *testing.T) {
	err := NewError("put", ErrInvalidInput).WithMessage("bucket name cannot be empty")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "bucket name cannot be empty")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ferrors.ErrorCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "not found", err: NewObjectError("get", "b", "k", ErrObjectNotFound), want: ferrors.CodeNotFound},
		{name: "bucket not found", err: ErrBucketNotFound, want: ferrors.CodeNotFound},
		{name: "access denied", err: ErrAccessDenied, want: ferrors.CodeForbidden},
		{name: "invalid key", err: ErrInvalidObjectKey, want: ferrors.CodeInvalidInput},
		{name: "throttled", err: ErrTooManyRequests, want: ferrors.CodeRateLimit},
		{name: "connection", err: ErrConnection, want: ferrors.CodeNetwork},
		{name: "deadline", err: fmt.Errorf("get: %w", context.DeadlineExceeded), want: ferrors.CodeTimeout},
		{name: "unknown", err: errors.New("500 internal"), want: ferrors.CodeStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestError_CodeDrivesRetry(t *testing.T) {
	transient := NewObjectError("get", "b", "k", errors.New("connection reset"))
	assert.True(t, ferrors.IsRetryable(transient))

	permanent := NewObjectError("get", "b", "k", ErrObjectNotFound)
	assert.False(t, ferrors.IsRetryable(permanent))
	assert.Equal(t, ferrors.CodeNotFound, ferrors.CodeOf(permanent))
}

func TestValidateObjectKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "simple", key: "input-pdf-files/report.pdf"},
		{name: "spaces and unicode", key: "input-pdf-files/Q3 résumé.pdf"},
		{name: "double dot inside name", key: "input-pdf-files/report..v2.pdf"},
		{name: "empty", key: "", wantErr: true},
		{name: "parent segment", key: "input-pdf-files/../secret.pdf", wantErr: true},
		{name: "leading parent", key: "../secret.pdf", wantErr: true},
		{name: "absolute", key: "/etc/passwd", wantErr: true},
		{name: "windows absolute", key: "C:\\temp\\a.pdf", wantErr: true},
		{name: "control char", key: "input\x00.pdf", wantErr: true},
		{name: "too long", key: strings.Repeat("a", 1025), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectKey(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidObjectKey))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateObject(t *testing.T) {
	err := ValidateObject("get", "", "a.pdf")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))

	err = ValidateObject("get", "bucket", "../a.pdf")
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.Contains(t, err.Error(), "storage.get bucket/../a.pdf")

	assert.NoError(t, ValidateObject("get", "bucket", "a.pdf"))
}

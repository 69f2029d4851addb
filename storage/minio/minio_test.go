package minio

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/magnifact/pdf-table-extractor/errors"
	"github.com/magnifact/pdf-table-extractor/storage"
)

type mockAPI struct {
	statFunc func(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	putFunc  func(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

func (m *mockAPI) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	if m.statFunc != nil {
		return m.statFunc(ctx, bucket, key, opts)
	}
	return minio.ObjectInfo{}, errors.New("StatObject not implemented")
}

func (m *mockAPI) GetObject(context.Context, string, string, minio.GetObjectOptions) (*minio.Object, error) {
	return nil, errors.New("GetObject not implemented")
}

func (m *mockAPI) PutObject(
	ctx context.Context,
	bucket, key string,
	r io.Reader,
	size int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	if m.putFunc != nil {
		return m.putFunc(ctx, bucket, key, r, size, opts)
	}
	return minio.UploadInfo{}, errors.New("PutObject not implemented")
}

func TestNew(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.True(t, storage.IsInvalidInput(err))

	store, err := New(Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestStore_Stat(t *testing.T) {
	modified := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store := NewWithAPI(&mockAPI{
		statFunc: func(_ context.Context, bucket, key string, _ minio.StatObjectOptions) (minio.ObjectInfo, error) {
			assert.Equal(t, "b", bucket)
			assert.Equal(t, "input-pdf-files/a.pdf", key)
			return minio.ObjectInfo{
				Key:          key,
				Size:         42,
				ContentType:  "application/pdf",
				LastModified: modified,
				ETag:         "etag",
				UserMetadata: map[string]string{"Source-Key": "x"},
			}, nil
		},
	})

	info, err := store.Stat(context.Background(), "b", "input-pdf-files/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(42), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.Equal(t, modified, info.LastModified)
	assert.Equal(t, map[string]string{"source-key": "x"}, info.Metadata)
}

func TestStore_StatNotFound(t *testing.T) {
	store := NewWithAPI(&mockAPI{
		statFunc: func(context.Context, string, string, minio.StatObjectOptions) (minio.ObjectInfo, error) {
			return minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
		},
	})

	_, err := store.Stat(context.Background(), "b", "a.pdf")
	require.Error(t, err)
	assert.True(t, storage.IsObjectNotFound(err))
	assert.Equal(t, ferrors.CodeNotFound, ferrors.CodeOf(err))
}

func TestStore_Put(t *testing.T) {
	var gotOpts minio.PutObjectOptions
	var gotBody []byte
	store := NewWithAPI(&mockAPI{
		putFunc: func(_ context.Context, _, _ string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
			gotOpts = opts
			var err error
			gotBody, err = io.ReadAll(r)
			assert.Equal(t, int64(len(gotBody)), size)
			return minio.UploadInfo{Size: size}, err
		},
	})

	err := store.Put(context.Background(), "b", "output-files/a.xlsx", []byte("payload"), storage.PutOptions{
		ContentType: "application/x-test",
		Metadata:    map[string]string{"table-count": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "application/x-test", gotOpts.ContentType)
	assert.Equal(t, map[string]string{"table-count": "1"}, gotOpts.UserMetadata)
	assert.Equal(t, []byte("payload"), gotBody)
}

func TestStore_PutInvalidKey(t *testing.T) {
	store := NewWithAPI(&mockAPI{})
	err := store.Put(context.Background(), "b", "../x", []byte("x"), storage.PutOptions{})
	assert.True(t, storage.IsInvalidInput(err))
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no such key", err: minio.ErrorResponse{Code: "NoSuchKey"}, want: storage.ErrObjectNotFound},
		{name: "no such bucket", err: minio.ErrorResponse{Code: "NoSuchBucket"}, want: storage.ErrBucketNotFound},
		{name: "access denied", err: minio.ErrorResponse{Code: "AccessDenied"}, want: storage.ErrAccessDenied},
		{name: "slow down", err: minio.ErrorResponse{Code: "SlowDown"}, want: storage.ErrTooManyRequests},
		{name: "invalid name", err: minio.ErrorResponse{Code: "InvalidBucketName"}, want: storage.ErrInvalidInput},
		{name: "status 403", err: minio.ErrorResponse{StatusCode: http.StatusForbidden}, want: storage.ErrAccessDenied},
		{name: "status 503", err: minio.ErrorResponse{StatusCode: http.StatusServiceUnavailable}, want: storage.ErrTooManyRequests},
		{name: "network", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: storage.ErrConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err), tt.want)
		})
	}

	assert.NoError(t, translateError(nil))
	plain := errors.New("boom")
	assert.Equal(t, plain, translateError(plain))
}

// Package minio implements storage.Store on MinIO and other S3-compatible
// services using minio-go.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/magnifact/pdf-table-extractor/storage"
	s3store "github.com/magnifact/pdf-table-extractor/storage/s3"
)

// API defines the subset of the minio-go client used by this package.
type API interface {
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (*minio.Object, error)
	PutObject(
		ctx context.Context,
		bucket, key string,
		reader io.Reader,
		size int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

var _ API = (*minio.Client)(nil)

// Config holds the connection settings for a MinIO endpoint.
type Config struct {
	// Endpoint is host[:port] without a scheme.
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	UseSSL       bool
	Region       string

	// Credentials replaces the static keys when set.
	Credentials credentials.Provider
}

// Store implements storage.Store on a MinIO server.
type Store struct {
	api    API
	logger *slog.Logger
}

var _ storage.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger configures the store with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New connects to the MinIO endpoint described by cfg.
func New(cfg Config, opts ...Option) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, storage.NewError("new", storage.ErrInvalidInput).WithMessage("endpoint cannot be empty")
	}

	creds := credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken)
	if cfg.Credentials != nil {
		creds = credentials.New(cfg.Credentials)
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, storage.NewError("new", fmt.Errorf("failed to create minio client: %w", err))
	}

	return NewWithAPI(client, opts...), nil
}

// NewWithAPI wraps an existing client.
func NewWithAPI(api API, opts ...Option) *Store {
	s := &Store{api: api}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stat returns object metadata using StatObject.
func (s *Store) Stat(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	if err := storage.ValidateObject("stat", bucket, key); err != nil {
		return nil, err
	}

	info, err := s.api.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, s.handleError(ctx, "stat", bucket, key, err)
	}

	result := &storage.ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
		ETag:         info.ETag,
	}
	if len(info.UserMetadata) > 0 {
		result.Metadata = make(map[string]string, len(info.UserMetadata))
		// minio-go returns canonical header casing; S3 reports keys in lower case.
		for k, v := range info.UserMetadata {
			result.Metadata[strings.ToLower(k)] = v
		}
	}
	return result, nil
}

// Get downloads an entire object into memory.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := storage.ValidateObject("get", bucket, key); err != nil {
		return nil, err
	}

	obj, err := s.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.handleError(ctx, "get", bucket, key, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	// minio-go defers the request until the first read, so missing objects
	// surface here.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.handleError(ctx, "get", bucket, key, err)
	}
	return data, nil
}

// Put uploads data as a single object. An empty content type is sniffed from the data.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, opts storage.PutOptions) error {
	if err := storage.ValidateObject("put", bucket, key); err != nil {
		return err
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = s3store.DetectContentType(data)
	}

	_, err := s.api.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return s.handleError(ctx, "put", bucket, key, err)
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "uploaded object",
			"bucket", bucket,
			"key", key,
			"bytes", len(data),
			"content_type", contentType)
	}
	return nil
}

func (s *Store) handleError(ctx context.Context, op, bucket, key string, err error) error {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "minio operation failed",
			"operation", op,
			"bucket", bucket,
			"key", key,
			"error", err)
	}
	return storage.NewObjectError(op, bucket, key, translateError(err))
}

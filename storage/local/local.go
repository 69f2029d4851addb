// Package local implements storage.Store on a directory tree through go-billy.
//
// Each bucket is a top-level directory below the root and object keys are
// slash-separated paths inside it. The backend is used for development
// without cloud access and, with an in-memory filesystem, in tests.
// User metadata is not persisted.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/magnifact/pdf-table-extractor/storage"
)

// Store implements storage.Store on a billy.Filesystem.
type Store struct {
	fs     billy.Filesystem
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

// New creates a store on the given filesystem.
func New(fsys billy.Filesystem, opts ...Option) *Store {
	s := &Store{fs: fsys}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOS creates a store rooted at a directory on the local disk.
func NewOS(root string, opts ...Option) *Store {
	return New(osfs.New(root), opts...)
}

// NewInMemory creates a store backed by an in-memory filesystem.
func NewInMemory(opts ...Option) *Store {
	return New(memfs.New(), opts...)
}

// Filesystem returns the underlying go-billy filesystem.
//
//nolint:ireturn // exposes the adapter target.
func (s *Store) Filesystem() billy.Filesystem {
	return s.fs
}

// Stat returns file metadata. The content type is sniffed from the file header.
func (s *Store) Stat(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	if err := storage.ValidateObject("stat", bucket, key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, storage.NewObjectError("stat", bucket, key, err)
	}

	name := objectPath(bucket, key)
	info, err := s.fs.Stat(name)
	if err != nil {
		return nil, s.handleError(ctx, "stat", bucket, key, err)
	}
	if info.IsDir() {
		return nil, storage.NewObjectError("stat", bucket, key, storage.ErrObjectNotFound)
	}

	return &storage.ObjectInfo{
		Key:          key,
		Size:         info.Size(),
		ContentType:  s.sniff(name),
		LastModified: info.ModTime(),
	}, nil
}

// Get reads the whole file.
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := storage.ValidateObject("get", bucket, key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, storage.NewObjectError("get", bucket, key, err)
	}

	data, err := util.ReadFile(s.fs, objectPath(bucket, key))
	if err != nil {
		return nil, s.handleError(ctx, "get", bucket, key, err)
	}
	return data, nil
}

// Put writes data to a temporary file next to the target and renames it
// into place, creating parent directories as needed.
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, _ storage.PutOptions) error {
	if err := storage.ValidateObject("put", bucket, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return storage.NewObjectError("put", bucket, key, err)
	}

	name := objectPath(bucket, key)
	dir := path.Dir(name)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return s.handleError(ctx, "put", bucket, key, err)
	}

	tmp, err := util.TempFile(s.fs, dir, ".upload-")
	if err != nil {
		return s.handleError(ctx, "put", bucket, key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return s.handleError(ctx, "put", bucket, key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return s.handleError(ctx, "put", bucket, key, err)
	}
	if err := s.fs.Rename(tmpName, name); err != nil {
		_ = s.fs.Remove(tmpName)
		return s.handleError(ctx, "put", bucket, key, err)
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "wrote object",
			"bucket", bucket,
			"key", key,
			"bytes", len(data))
	}
	return nil
}

func (s *Store) sniff(name string) string {
	f, err := s.fs.Open(name)
	if err != nil {
		return storage.DefaultContentType
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(io.LimitReader(f, 3072))
	if err != nil {
		return storage.DefaultContentType
	}
	return mtype.String()
}

func (s *Store) handleError(ctx context.Context, op, bucket, key string, err error) error {
	translated := err
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if _, statErr := s.fs.Stat(bucket); statErr != nil && op != "put" {
			translated = fmt.Errorf("%w: %w", storage.ErrBucketNotFound, err)
		} else {
			translated = fmt.Errorf("%w: %w", storage.ErrObjectNotFound, err)
		}
	case errors.Is(err, fs.ErrPermission):
		translated = fmt.Errorf("%w: %w", storage.ErrAccessDenied, err)
	}

	if s.logger != nil {
		s.logger.ErrorContext(ctx, "local storage operation failed",
			"operation", op,
			"bucket", bucket,
			"key", key,
			"error", err)
	}
	return storage.NewObjectError(op, bucket, key, translated)
}

func objectPath(bucket, key string) string {
	return path.Join(bucket, key)
}

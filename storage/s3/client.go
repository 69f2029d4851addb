package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"

	"github.com/magnifact/pdf-table-extractor/storage"
)

// Client implements storage.Store on Amazon S3.
// It is safe for concurrent use.
type Client struct {
	api    API
	logger *slog.Logger
}

var _ storage.Store = (*Client)(nil)

// New creates an S3 client. AWS configuration is loaded from the default
// credential chain unless WithAWSConfig is given.
func New(ctx context.Context, options ...Option) (*Client, error) {
	opts := defaultOptions()
	applyOptions(opts, options)

	var cfg aws.Config
	if opts.awsConfig != nil {
		cfg = *opts.awsConfig
	} else {
		var loadOpts []func(*config.LoadOptions) error
		if opts.region != "" {
			loadOpts = append(loadOpts, config.WithRegion(opts.region))
		}
		if opts.accessKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(opts.accessKey, opts.secretKey, ""),
			))
		}

		var err error
		cfg, err = config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, storage.NewError("new", fmt.Errorf("failed to load AWS config: %w", err))
		}
	}

	if opts.region != "" {
		cfg.Region = opts.region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	retryer := opts.retryer
	if retryer == nil {
		retryer = NewBackoffRetryer(opts.maxRetries)
	}
	cfg.Retryer = func() aws.Retryer { return retryer }

	var s3Opts []func(*s3.Options)
	if opts.endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.endpoint)
		})
	}
	if opts.forcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	if opts.timeout > 0 {
		httpClient := &http.Client{Timeout: opts.timeout}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return &Client{
		api:    s3.NewFromConfig(cfg, s3Opts...),
		logger: opts.logger,
	}, nil
}

// NewWithAPI creates a client around an existing API implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api API, options ...Option) *Client {
	opts := defaultOptions()
	applyOptions(opts, options)

	return &Client{
		api:    api,
		logger: opts.logger,
	}
}

// Stat returns metadata for an object using HeadObject.
func (c *Client) Stat(ctx context.Context, bucket, key string) (*storage.ObjectInfo, error) {
	if err := storage.ValidateObject("stat", bucket, key); err != nil {
		return nil, err
	}

	out, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, c.handleError("stat", bucket, key, err)
	}

	info := &storage.ObjectInfo{
		Key:          key,
		Size:         aws.ToInt64(out.ContentLength),
		ContentType:  aws.ToString(out.ContentType),
		LastModified: aws.ToTime(out.LastModified),
		ETag:         aws.ToString(out.ETag),
	}
	if len(out.Metadata) > 0 {
		info.Metadata = make(map[string]string, len(out.Metadata))
		for k, v := range out.Metadata {
			info.Metadata[k] = v
		}
	}
	return info, nil
}

// Get downloads an entire object into memory.
func (c *Client) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := storage.ValidateObject("get", bucket, key); err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, c.handleError("get", bucket, key, err)
	}
	if out.Body == nil {
		return []byte{}, nil
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if n := aws.ToInt64(out.ContentLength); n > 0 {
		buf.Grow(int(n))
	}
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return nil, c.handleError("get", bucket, key, fmt.Errorf("failed to read object body: %w", err))
	}

	c.log(ctx, slog.LevelDebug, "downloaded object",
		"bucket", bucket,
		"key", key,
		"bytes", buf.Len(),
		"duration", time.Since(start),
	)
	return buf.Bytes(), nil
}

// Put uploads data as a single object. When opts.ContentType is empty the
// content type is sniffed from the data.
func (c *Client) Put(ctx context.Context, bucket, key string, data []byte, opts storage.PutOptions) error {
	if err := storage.ValidateObject("put", bucket, key); err != nil {
		return err
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = DetectContentType(data)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if len(opts.Metadata) > 0 {
		input.Metadata = make(map[string]string, len(opts.Metadata))
		for k, v := range opts.Metadata {
			input.Metadata[k] = v
		}
	}

	start := time.Now()
	if _, err := c.api.PutObject(ctx, input); err != nil {
		return c.handleError("put", bucket, key, err)
	}

	c.log(ctx, slog.LevelDebug, "uploaded object",
		"bucket", bucket,
		"key", key,
		"bytes", len(data),
		"content_type", contentType,
		"duration", time.Since(start),
	)
	return nil
}

// DetectContentType sniffs the MIME type of data, falling back to
// storage.DefaultContentType.
func DetectContentType(data []byte) string {
	if len(data) == 0 {
		return storage.DefaultContentType
	}
	mtype := mimetype.Detect(data)
	if mtype == nil {
		return storage.DefaultContentType
	}
	return mtype.String()
}

// handleError translates and logs an SDK error.
func (c *Client) handleError(op, bucket, key string, err error) error {
	wrapped := storage.NewObjectError(op, bucket, key, translateError(err))
	c.log(context.Background(), slog.LevelError, "S3 operation failed",
		"operation", op,
		"bucket", bucket,
		"key", key,
		"error", err,
	)
	return wrapped
}

func (c *Client) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Log(ctx, level, msg, args...)
}

// Package bootstrap assembles the application from a configuration.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/magnifact/pdf-table-extractor/config"
	"github.com/magnifact/pdf-table-extractor/converter"
	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
	"github.com/magnifact/pdf-table-extractor/extract"
	"github.com/magnifact/pdf-table-extractor/handler"
	"github.com/magnifact/pdf-table-extractor/secrets"
	"github.com/magnifact/pdf-table-extractor/storage"
	"github.com/magnifact/pdf-table-extractor/storage/local"
	"github.com/magnifact/pdf-table-extractor/storage/minio"
	s3store "github.com/magnifact/pdf-table-extractor/storage/s3"
	"github.com/magnifact/pdf-table-extractor/workbook"
)

// secretsCacheTTL bounds how long fetched MinIO credentials are reused
// before the secret is read again.
const secretsCacheTTL = 15 * time.Minute

// App holds the wired components.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     storage.Store
	Extractor *extract.Extractor
	Writer    *workbook.Writer
	Converter *converter.Converter
	Handler   *handler.Handler
}

type appOptions struct {
	logOutput io.Writer
	store     storage.Store
	awsConfig *aws.Config
}

// Option is a functional option for configuring New.
type Option func(*appOptions)

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.logOutput = w
	}
}

// WithStore uses store instead of the configured backend.
func WithStore(store storage.Store) Option {
	return func(o *appOptions) {
		o.store = store
	}
}

// WithAWSConfig uses cfg instead of loading the default AWS configuration.
func WithAWSConfig(cfg aws.Config) Option {
	return func(o *appOptions) {
		o.awsConfig = &cfg
	}
}

// NewLogger creates the slog logger described by cfg writing to w.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// New validates cfg and wires the store, extractor, workbook writer,
// converter and handler.
func New(ctx context.Context, cfg *config.Config, options ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := &appOptions{logOutput: os.Stderr}
	for _, option := range options {
		option(opts)
	}

	app := &App{Config: cfg, Logger: NewLogger(cfg, opts.logOutput)}

	app.Store = opts.store
	if app.Store == nil {
		store, err := newStore(ctx, cfg, opts, app.Logger)
		if err != nil {
			return nil, err
		}
		app.Store = store
	}

	app.Extractor = extract.New(
		extract.WithStrategy(cfg.Strategy),
		extract.WithLogger(app.Logger),
	)
	app.Writer = workbook.NewWriter(
		workbook.WithColumnPadding(cfg.ColumnPadding),
		workbook.WithMaxColumnWidth(cfg.MaxColumnWidth),
		workbook.WithLogger(app.Logger),
	)
	app.Converter = converter.New(app.Store, app.Extractor, app.Writer,
		converter.WithOutputFolder(cfg.OutputFolder),
		converter.WithOutputBucket(cfg.OutputBucket),
		converter.WithMaxBytes(cfg.MaxPDFBytes),
		converter.WithLogger(app.Logger),
	)
	app.Handler = handler.New(app.Converter, cfg.InputPrefix(), handler.WithLogger(app.Logger))

	app.Logger.DebugContext(ctx, "application initialized",
		"backend", cfg.Backend,
		"strategy", cfg.Strategy,
		"input_folder", cfg.InputFolder,
		"output_folder", cfg.OutputFolder)
	return app, nil
}

func newStore(ctx context.Context, cfg *config.Config, opts *appOptions, logger *slog.Logger) (storage.Store, error) {
	switch cfg.Backend {
	case domain.StorageBackendLocal:
		return local.NewOS(cfg.LocalRoot, local.WithLogger(logger)), nil

	case domain.StorageBackendMinio:
		return newMinioStore(ctx, cfg, opts, logger)

	default:
		awsCfg, err := loadAWSConfig(ctx, cfg, opts)
		if err != nil {
			return nil, err
		}
		store, err := s3store.New(ctx,
			s3store.WithAWSConfig(&awsCfg),
			s3store.WithRegion(cfg.S3.Region),
			s3store.WithEndpoint(cfg.S3.Endpoint),
			s3store.WithForcePathStyle(cfg.S3.ForcePathStyle),
			s3store.WithMaxRetries(cfg.S3.MaxRetries),
			s3store.WithLogger(logger),
		)
		if err != nil {
			return nil, ferrors.Wrap(err, ferrors.CodeInvalidConfig, "failed to create S3 store")
		}
		return store, nil
	}
}

func newMinioStore(ctx context.Context, cfg *config.Config, opts *appOptions, logger *slog.Logger) (storage.Store, error) {
	mcfg := minio.Config{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		UseSSL:    cfg.Minio.UseSSL,
		Region:    cfg.S3.Region,
	}

	if cfg.Minio.CredentialsSecret != "" {
		awsCfg, err := loadAWSConfig(ctx, cfg, opts)
		if err != nil {
			return nil, err
		}
		client := secrets.NewClient(awsCfg,
			secrets.WithLogger(logger),
			secrets.WithRetryer(s3store.NewBackoffRetryer(cfg.S3.MaxRetries)),
			secrets.WithCache(secrets.NewInMemoryCache(secretsCacheTTL, 0)),
		)
		provider := newSecretCredentials(client, cfg.Minio.CredentialsSecret, secretsCacheTTL)
		if _, err := provider.load(ctx); err != nil {
			return nil, ferrors.Wrap(err, secrets.Code(err),
				fmt.Sprintf("failed to load MinIO credentials from secret %s", cfg.Minio.CredentialsSecret))
		}
		mcfg.Credentials = provider
	}

	store, err := minio.New(mcfg, minio.WithLogger(logger))
	if err != nil {
		return nil, ferrors.Wrap(err, ferrors.CodeInvalidConfig, "failed to create MinIO store")
	}
	return store, nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config, opts *appOptions) (aws.Config, error) {
	if opts.awsConfig != nil {
		return *opts.awsConfig, nil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, ferrors.Wrap(err, ferrors.CodeInvalidConfig, "failed to load AWS configuration")
	}
	return awsCfg, nil
}

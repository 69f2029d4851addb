// Package config provides loading and validation of the extractor's runtime
// configuration from environment variables.
//
// # Basic Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.InputFolder, cfg.OutputFolder)
//
// Tests and embedders can supply their own lookup function:
//
//	cfg, err := config.Load(func(key string) (string, bool) {
//	    v, ok := overrides[key]
//	    return v, ok
//	})
//
// Every value has a default so an empty environment yields a usable
// configuration for the S3 backend.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/magnifact/pdf-table-extractor/domain"
	"github.com/magnifact/pdf-table-extractor/errors"
)

// Environment variable names.
const (
	EnvBucketName         = "BUCKET_NAME"
	EnvInputFolder        = "INPUT_FOLDER_NAME"
	EnvOutputFolder       = "OUTPUT_FOLDER_NAME"
	EnvOutputBucket       = "OUTPUT_BUCKET_NAME"
	EnvStorageBackend     = "STORAGE_BACKEND"
	EnvAWSRegion          = "AWS_REGION"
	EnvS3Endpoint         = "S3_ENDPOINT"
	EnvS3ForcePathStyle   = "S3_FORCE_PATH_STYLE"
	EnvS3MaxRetries       = "S3_MAX_RETRIES"
	EnvMinioEndpoint      = "MINIO_ENDPOINT"
	EnvMinioAccessKey     = "MINIO_ACCESS_KEY"
	EnvMinioSecretKey     = "MINIO_SECRET_KEY"
	EnvMinioUseSSL        = "MINIO_USE_SSL"
	EnvMinioCredentialsID = "MINIO_CREDENTIALS_SECRET"
	EnvLocalRoot          = "LOCAL_ROOT"
	EnvTableStrategy      = "TABLE_STRATEGY"
	EnvMaxColumnWidth     = "MAX_COLUMN_WIDTH"
	EnvColumnPadding      = "COLUMN_PADDING"
	EnvMaxPDFBytes        = "MAX_PDF_BYTES"
	EnvLogLevel           = "LOG_LEVEL"
	EnvLogFormat          = "LOG_FORMAT"
)

// Defaults applied when a variable is unset or empty.
const (
	DefaultBucketName     = "magnifact-pdf"
	DefaultInputFolder    = "input-pdf-files"
	DefaultOutputFolder   = "output-files"
	DefaultS3MaxRetries   = 3
	DefaultLocalRoot      = "."
	DefaultMaxColumnWidth = 50
	DefaultColumnPadding  = 2
	DefaultMaxPDFBytes    = 100 * 1024 * 1024
	DefaultLogFormat      = "json"
)

// Config is the complete runtime configuration.
type Config struct {
	// BucketName is the default bucket used by the CLI when none is given.
	BucketName string

	// InputFolder is the key prefix (without trailing slash) PDFs must live under.
	InputFolder string

	// OutputFolder is the key prefix (without trailing slash) workbooks are written under.
	OutputFolder string

	// OutputBucket overrides the destination bucket. Empty means the source bucket.
	OutputBucket string

	// Backend selects the storage implementation.
	Backend domain.StorageBackend

	S3    S3Config
	Minio MinioConfig

	// LocalRoot is the directory holding buckets for the local backend.
	LocalRoot string

	// Strategy selects the table detection strategy.
	Strategy domain.TableStrategy

	// MaxColumnWidth caps spreadsheet column widths.
	MaxColumnWidth float64

	// ColumnPadding is added to the longest cell length of a column.
	ColumnPadding float64

	// MaxPDFBytes refuses inputs larger than this many bytes. Zero disables the check.
	MaxPDFBytes int64

	// LogLevel is the minimum slog level.
	LogLevel slog.Level

	// LogFormat is "json" or "text".
	LogFormat string
}

// S3Config configures the AWS S3 backend.
type S3Config struct {
	Region         string
	Endpoint       string
	ForcePathStyle bool
	MaxRetries     int
}

// MinioConfig configures the MinIO backend.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// CredentialsSecret names a Secrets Manager secret holding the access and
	// secret keys. When set it takes precedence over AccessKey/SecretKey.
	CredentialsSecret string
}

// Default returns the configuration used when the environment is empty.
func Default() *Config {
	return &Config{
		BucketName:     DefaultBucketName,
		InputFolder:    DefaultInputFolder,
		OutputFolder:   DefaultOutputFolder,
		Backend:        domain.StorageBackendS3,
		S3:             S3Config{MaxRetries: DefaultS3MaxRetries},
		LocalRoot:      DefaultLocalRoot,
		Strategy:       domain.TableStrategyLattice,
		MaxColumnWidth: DefaultMaxColumnWidth,
		ColumnPadding:  DefaultColumnPadding,
		MaxPDFBytes:    DefaultMaxPDFBytes,
		LogLevel:       slog.LevelInfo,
		LogFormat:      DefaultLogFormat,
	}
}

// FromEnv loads the configuration from the process environment.
func FromEnv() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load builds a configuration from lookup and validates it.
func Load(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	env := &envReader{lookup: lookup}

	cfg.BucketName = env.str(EnvBucketName, cfg.BucketName)
	cfg.InputFolder = normalizeFolder(env.str(EnvInputFolder, cfg.InputFolder))
	cfg.OutputFolder = normalizeFolder(env.str(EnvOutputFolder, cfg.OutputFolder))
	cfg.OutputBucket = env.str(EnvOutputBucket, "")
	cfg.Backend = domain.StorageBackend(strings.ToLower(env.str(EnvStorageBackend, string(cfg.Backend))))

	cfg.S3.Region = env.str(EnvAWSRegion, "")
	cfg.S3.Endpoint = env.str(EnvS3Endpoint, "")
	cfg.S3.ForcePathStyle = env.boolean(EnvS3ForcePathStyle, false)
	cfg.S3.MaxRetries = env.integer(EnvS3MaxRetries, cfg.S3.MaxRetries)

	cfg.Minio.Endpoint = env.str(EnvMinioEndpoint, "")
	cfg.Minio.AccessKey = env.str(EnvMinioAccessKey, "")
	cfg.Minio.SecretKey = env.str(EnvMinioSecretKey, "")
	cfg.Minio.UseSSL = env.boolean(EnvMinioUseSSL, false)
	cfg.Minio.CredentialsSecret = env.str(EnvMinioCredentialsID, "")

	cfg.LocalRoot = env.str(EnvLocalRoot, cfg.LocalRoot)
	cfg.Strategy = domain.TableStrategy(strings.ToLower(env.str(EnvTableStrategy, string(cfg.Strategy))))
	cfg.MaxColumnWidth = env.float(EnvMaxColumnWidth, cfg.MaxColumnWidth)
	cfg.ColumnPadding = env.float(EnvColumnPadding, cfg.ColumnPadding)
	cfg.MaxPDFBytes = int64(env.integer(EnvMaxPDFBytes, int(cfg.MaxPDFBytes)))
	cfg.LogLevel = env.level(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(env.str(EnvLogFormat, cfg.LogFormat))

	if len(env.problems) > 0 {
		return nil, errors.New(
			errors.CodeInvalidConfig,
			fmt.Sprintf("failed to parse environment: %s", strings.Join(env.problems, "; ")),
		)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InputPrefix returns the input folder with its trailing slash.
func (c *Config) InputPrefix() string {
	return c.InputFolder + "/"
}

// normalizeFolder trims surrounding whitespace and slashes.
func normalizeFolder(folder string) string {
	return strings.Trim(strings.TrimSpace(folder), "/")
}

// envReader reads typed values and records parse problems instead of
// failing on the first one.
type envReader struct {
	lookup   func(string) (string, bool)
	problems []string
}

func (r *envReader) str(key, def string) string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

func (r *envReader) boolean(key string, def bool) bool {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s: invalid boolean %q", key, raw))
		return def
	}
	return v
}

func (r *envReader) integer(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s: invalid integer %q", key, raw))
		return def
	}
	return v
}

func (r *envReader) float(key string, def float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s: invalid number %q", key, raw))
		return def
	}
	return v
}

func (r *envReader) level(key string, def slog.Level) slog.Level {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s: invalid log level %q", key, raw))
		return def
	}
	return lvl
}

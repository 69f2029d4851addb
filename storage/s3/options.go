package s3

import (
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// clientOptions holds configuration options for the S3 client.
type clientOptions struct {
	region         string
	endpoint       string
	forcePathStyle bool
	maxRetries     int
	timeout        time.Duration
	awsConfig      *aws.Config
	accessKey      string
	secretKey      string
	retryer        aws.Retryer
	logger         *slog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*clientOptions)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the region from the credential chain.
func WithRegion(region string) Option {
	return func(o *clientOptions) {
		o.region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		o.endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
func WithForcePathStyle(forcePathStyle bool) Option {
	return func(o *clientOptions) {
		o.forcePathStyle = forcePathStyle
	}
}

// WithMaxRetries sets the maximum number of attempts made by the retryer.
// Values below 1 are ignored.
func WithMaxRetries(maxRetries int) Option {
	return func(o *clientOptions) {
		if maxRetries > 0 {
			o.maxRetries = maxRetries
		}
	}
}

// WithTimeout bounds every individual S3 operation.
// Default is no timeout (0).
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
func WithAWSConfig(cfg *aws.Config) Option {
	return func(o *clientOptions) {
		o.awsConfig = cfg
	}
}

// WithStaticCredentials uses a fixed access key pair instead of the default
// credential chain.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(o *clientOptions) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// WithRetryer replaces the default exponential backoff retryer.
func WithRetryer(retryer aws.Retryer) Option {
	return func(o *clientOptions) {
		o.retryer = retryer
	}
}

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

func defaultOptions() *clientOptions {
	return &clientOptions{
		maxRetries: DefaultMaxAttempts,
	}
}

func applyOptions(opts *clientOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
}

package secrets

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type clientOptions struct {
	logger   *slog.Logger
	cache    Cache
	retryer  aws.Retryer
	endpoint string
}

// Option is a functional option for configuring the Client.
type Option func(*clientOptions)

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithCache configures the client with a cache implementation.
// If cache is nil, caching will be disabled.
func WithCache(cache Cache) Option {
	return func(opts *clientOptions) {
		opts.cache = cache
	}
}

// WithRetryer configures the client with a custom retryer.
// If retryer is nil, default AWS SDK retry behavior will be used.
func WithRetryer(retryer aws.Retryer) Option {
	return func(opts *clientOptions) {
		opts.retryer = retryer
	}
}

// WithEndpoint points the client at a custom endpoint such as LocalStack.
func WithEndpoint(endpoint string) Option {
	return func(opts *clientOptions) {
		opts.endpoint = endpoint
	}
}

func applyOptions(opts *clientOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
}

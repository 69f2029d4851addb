package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
)

// AWS error code constants
const (
	ResourceNotFoundException = "ResourceNotFoundException"
	AccessDeniedException     = "AccessDeniedException"
)

// Client retrieves secrets from AWS Secrets Manager.
type Client struct {
	api    ManagerAPI
	logger *slog.Logger
	cache  Cache
}

// Credentials is a static access key pair stored as a JSON secret:
//
//	{"access_key": "...", "secret_key": "...", "session_token": "..."}
type Credentials struct {
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	SessionToken string `json:"session_token,omitempty"`
}

// NewClient creates a client from an AWS configuration.
func NewClient(cfg aws.Config, options ...Option) *Client {
	opts := &clientOptions{}
	applyOptions(opts, options)

	api := secretsmanager.NewFromConfig(cfg, func(o *secretsmanager.Options) {
		if opts.retryer != nil {
			o.Retryer = opts.retryer
		}
		if opts.endpoint != "" {
			o.BaseEndpoint = aws.String(opts.endpoint)
		}
	})

	return NewClientWithAPI(api, options...)
}

// NewClientWithAPI creates a client around an existing ManagerAPI.
// This is primarily used for testing with mocked clients.
func NewClientWithAPI(api ManagerAPI, options ...Option) *Client {
	opts := &clientOptions{}
	applyOptions(opts, options)

	return &Client{
		api:    api,
		logger: opts.logger,
		cache:  opts.cache,
	}
}

// GetSecret retrieves the string value of a secret. Binary secrets are
// returned as their raw bytes converted to a string.
func (c *Client) GetSecret(ctx context.Context, secretName string) (string, error) {
	if secretName == "" {
		return "", fmt.Errorf("secret name cannot be empty")
	}

	c.logInfo(ctx, "retrieving secret", "secret_name", secretName)

	output, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return "", c.handleError(ctx, secretName, err)
	}

	switch {
	case output.SecretString != nil && *output.SecretString != "":
		return *output.SecretString, nil
	case len(output.SecretBinary) > 0:
		return string(output.SecretBinary), nil
	default:
		return "", fmt.Errorf("GetSecret %s: %w", secretName, ErrSecretEmpty)
	}
}

// GetSecretCached returns a cached value when available and otherwise
// fetches and caches it. Without a cache it behaves like GetSecret.
func (c *Client) GetSecretCached(ctx context.Context, secretName string) (string, error) {
	if c.cache == nil {
		return c.GetSecret(ctx, secretName)
	}

	if value, ok := c.cache.Get(secretName); ok {
		c.logInfo(ctx, "cache hit for secret", "secret_name", secretName)
		return value, nil
	}

	value, err := c.GetSecret(ctx, secretName)
	if err != nil {
		return "", err
	}
	c.cache.Set(secretName, value, 0)
	return value, nil
}

// InvalidateCache removes a specific secret from the cache.
func (c *Client) InvalidateCache(secretName string) {
	if c.cache == nil || secretName == "" {
		return
	}
	c.cache.Delete(secretName)
}

// GetCredentials loads a Credentials document from a JSON secret.
func (c *Client) GetCredentials(ctx context.Context, secretName string) (*Credentials, error) {
	value, err := c.GetSecretCached(ctx, secretName)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(value), &creds); err != nil {
		return nil, fmt.Errorf("GetCredentials %s: %w", secretName, ErrInvalidCredentials)
	}
	creds.AccessKey = strings.TrimSpace(creds.AccessKey)
	creds.SecretKey = strings.TrimSpace(creds.SecretKey)
	if creds.AccessKey == "" || creds.SecretKey == "" {
		return nil, fmt.Errorf("GetCredentials %s: %w", secretName, ErrInvalidCredentials)
	}
	return &creds, nil
}

// handleError maps Secrets Manager API errors to package errors.
func (c *Client) handleError(ctx context.Context, secretName string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case ResourceNotFoundException:
			return fmt.Errorf("GetSecret %s: %w", secretName, ErrSecretNotFound)
		case AccessDeniedException:
			return fmt.Errorf("GetSecret %s: %w", secretName, ErrAccessDenied)
		}
	}

	if c.logger != nil {
		c.logger.ErrorContext(ctx, "failed to retrieve secret",
			"secret_name", secretName,
			"error", err)
	}
	return fmt.Errorf("GetSecret operation failed: %w", err)
}

func (c *Client) logInfo(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.InfoContext(ctx, msg, args...)
	}
}

package secrets

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// ManagerAPI defines the subset of the AWS Secrets Manager client used here.
type ManagerAPI interface {
	// GetSecretValue retrieves the value of a secret from AWS Secrets Manager.
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
}

var _ ManagerAPI = (*secretsmanager.Client)(nil)

// Cache defines the interface for caching secret values.
// Implementations should be thread-safe for concurrent access.
type Cache interface {
	// Get retrieves a value from the cache by key.
	Get(key string) (string, bool)

	// Set stores a value in the cache with the specified key and TTL.
	// A zero TTL means the cache default.
	Set(key, value string, ttl time.Duration)

	// Delete removes a key from the cache.
	Delete(key string)
}

// Package secrets provides a small AWS Secrets Manager client used to load
// storage credentials at startup.
//
// Secret values are never logged; only secret names and operation metadata
// are. Values fetched through GetSecretCached are kept in an in-memory TTL
// cache so warm Lambda containers do not call Secrets Manager on every
// invocation.
//
// Required IAM permissions:
//   - secretsmanager:GetSecretValue
//   - kms:Decrypt if the secret is encrypted with a customer-managed key
//
// All Client methods are safe for concurrent use.
package secrets

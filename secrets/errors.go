package secrets

import (
	"errors"

	ferrors "github.com/magnifact/pdf-table-extractor/errors"
)

var (
	// ErrSecretNotFound is returned when a requested secret does not exist.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrSecretEmpty is returned when a secret exists but contains no value.
	ErrSecretEmpty = errors.New("secret value is empty")

	// ErrAccessDenied is returned when the credentials lack
	// secretsmanager:GetSecretValue on the secret.
	ErrAccessDenied = errors.New("access denied to secret")

	// ErrInvalidCredentials is returned when a secret does not hold a
	// usable credential document.
	ErrInvalidCredentials = errors.New("secret does not contain valid credentials")
)

// Code classifies a secrets error. Missing, empty or malformed secrets are
// configuration problems; anything else is treated as transient.
func Code(err error) ferrors.ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSecretNotFound),
		errors.Is(err, ErrSecretEmpty),
		errors.Is(err, ErrInvalidCredentials):
		return ferrors.CodeInvalidConfig
	case errors.Is(err, ErrAccessDenied):
		return ferrors.CodeForbidden
	}
	return ferrors.CodeOf(err)
}

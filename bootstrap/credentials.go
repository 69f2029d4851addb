package bootstrap

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/magnifact/pdf-table-extractor/secrets"
)

// secretCredentials provides MinIO credentials stored in a Secrets Manager
// secret. They expire ttl after each read so rotated keys reach warm
// containers.
type secretCredentials struct {
	client *secrets.Client
	secret string
	ttl    time.Duration
	now    func() time.Time

	fetched time.Time
}

var _ credentials.Provider = (*secretCredentials)(nil)

func newSecretCredentials(client *secrets.Client, secret string, ttl time.Duration) *secretCredentials {
	return &secretCredentials{
		client: client,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// load reads the secret through the client cache.
func (p *secretCredentials) load(ctx context.Context) (credentials.Value, error) {
	creds, err := p.client.GetCredentials(ctx, p.secret)
	if err != nil {
		return credentials.Value{}, err
	}
	p.fetched = p.now()
	return credentials.Value{
		AccessKeyID:     creds.AccessKey,
		SecretAccessKey: creds.SecretKey,
		SessionToken:    creds.SessionToken,
		SignerType:      credentials.SignatureV4,
	}, nil
}

// RetrieveWithCredContext implements credentials.Provider.
func (p *secretCredentials) RetrieveWithCredContext(_ *credentials.CredContext) (credentials.Value, error) {
	return p.load(context.Background())
}

// Retrieve implements credentials.Provider.
func (p *secretCredentials) Retrieve() (credentials.Value, error) {
	return p.load(context.Background())
}

// IsExpired implements credentials.Provider.
func (p *secretCredentials) IsExpired() bool {
	return p.fetched.IsZero() || p.now().Sub(p.fetched) >= p.ttl
}

//go:build integration

package bootstrap_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnifact/pdf-table-extractor/bootstrap"
	"github.com/magnifact/pdf-table-extractor/config"
	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
	"github.com/magnifact/pdf-table-extractor/internal/testutil"
	"github.com/magnifact/pdf-table-extractor/storage"
)

func TestIntegration_MinioCredentialsFromSecret(t *testing.T) {
	ls := testutil.SetupLocalStack(t)
	server := testutil.SetupMinio(t)
	ctx := context.Background()

	awsCfg, err := ls.AWSConfig(ctx)
	require.NoError(t, err)
	awsCfg.BaseEndpoint = aws.String(ls.Endpoint())

	_, err = secretsmanager.NewFromConfig(awsCfg).CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String("minio/credentials"),
		SecretString: aws.String(`{"access_key":"minioadmin","secret_key":"minioadmin"}`),
	})
	require.NoError(t, err)

	admin, err := miniogo.New(server.Endpoint(), &miniogo.Options{
		Creds: credentials.NewStaticV4(testutil.MinioAccessKey, testutil.MinioSecretKey, ""),
	})
	require.NoError(t, err)
	require.NoError(t, admin.MakeBucket(ctx, "magnifact-pdf", miniogo.MakeBucketOptions{}))

	cfg := config.Default()
	cfg.Backend = domain.StorageBackendMinio
	cfg.Minio.Endpoint = server.Endpoint()
	cfg.Minio.CredentialsSecret = "minio/credentials"

	app, err := bootstrap.New(ctx, cfg,
		bootstrap.WithAWSConfig(awsCfg),
		bootstrap.WithLogOutput(&bytes.Buffer{}),
	)
	require.NoError(t, err)

	pdf := testutil.RuledTablePDF(t, [][]string{{"a", "b"}, {"1", "2"}})
	require.NoError(t, app.Store.Put(ctx, "magnifact-pdf", "input-pdf-files/doc.pdf", pdf, storage.PutOptions{}))

	result, err := app.Converter.Convert(ctx, domain.ObjectRef{Bucket: "magnifact-pdf", Key: "input-pdf-files/doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Tables)

	info, err := app.Store.Stat(ctx, "magnifact-pdf", "output-files/doc.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "1", info.Metadata["table-count"])
}

func TestIntegration_MissingSecret(t *testing.T) {
	ls := testutil.SetupLocalStack(t)
	ctx := context.Background()

	awsCfg, err := ls.AWSConfig(ctx)
	require.NoError(t, err)
	awsCfg.BaseEndpoint = aws.String(ls.Endpoint())

	cfg := config.Default()
	cfg.Backend = domain.StorageBackendMinio
	cfg.Minio.Endpoint = "localhost:9000"
	cfg.Minio.CredentialsSecret = "does-not-exist"

	_, err = bootstrap.New(ctx, cfg, bootstrap.WithAWSConfig(awsCfg), bootstrap.WithLogOutput(&bytes.Buffer{}))
	require.Error(t, err)
	assert.Equal(t, ferrors.CodeInvalidConfig, ferrors.CodeOf(err))
}

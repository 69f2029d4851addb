//go:build integration

package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"

	"github.com/magnifact/pdf-table-extractor/internal/testutil"
	"github.com/magnifact/pdf-table-extractor/storage"
	"github.com/magnifact/pdf-table-extractor/storage/storetest"
)

func TestIntegration_Suite(t *testing.T) {
	server := testutil.SetupMinio(t)
	ctx := context.Background()

	admin, err := minio.New(server.Endpoint(), &minio.Options{
		Creds: credentials.NewStaticV4(testutil.MinioAccessKey, testutil.MinioSecretKey, ""),
	})
	require.NoError(t, err)
	require.NoError(t, admin.MakeBucket(ctx, "storetest", minio.MakeBucketOptions{}))

	store, err := New(Config{
		Endpoint:  server.Endpoint(),
		AccessKey: testutil.MinioAccessKey,
		SecretKey: testutil.MinioSecretKey,
	})
	require.NoError(t, err)

	storetest.TestSuite(t, func() storage.Store { return store }, "storetest")
}

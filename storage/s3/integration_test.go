//go:build integration

package s3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/magnifact/pdf-table-extractor/internal/testutil"
	"github.com/magnifact/pdf-table-extractor/storage"
	"github.com/magnifact/pdf-table-extractor/storage/storetest"
)

func TestIntegration_Suite(t *testing.T) {
	ls := testutil.SetupLocalStack(t)
	ctx := context.Background()

	raw, err := ls.S3Client(ctx)
	require.NoError(t, err)
	require.NoError(t, testutil.CreateBucket(ctx, raw, "storetest"))

	cfg, err := ls.AWSConfig(ctx)
	require.NoError(t, err)

	client, err := New(ctx,
		WithAWSConfig(&cfg),
		WithEndpoint(ls.Endpoint()),
		WithForcePathStyle(true),
	)
	require.NoError(t, err)

	storetest.TestSuite(t, func() storage.Store { return client }, "storetest")
}

func TestIntegration_MissingBucket(t *testing.T) {
	ls := testutil.SetupLocalStack(t)
	ctx := context.Background()

	client, err := New(ctx,
		WithRegion(ls.Region()),
		WithStaticCredentials("test", "test"),
		WithEndpoint(ls.Endpoint()),
		WithForcePathStyle(true),
	)
	require.NoError(t, err)

	_, err = client.Get(ctx, "does-not-exist", "a.pdf")
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrBucketNotFound)
}

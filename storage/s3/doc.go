// Package s3 implements storage.Store on Amazon S3 using the AWS SDK for Go v2.
//
// The client is built from the default AWS credential chain unless a custom
// aws.Config or static credentials are supplied. A custom endpoint together
// with path-style addressing lets the same client talk to LocalStack.
//
// Basic usage:
//
//	client, err := s3.New(ctx,
//	    s3.WithRegion("eu-west-1"),
//	    s3.WithMaxRetries(3),
//	    s3.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    return err
//	}
//	data, err := client.Get(ctx, "magnifact-pdf", "input-pdf-files/report.pdf")
//
// Errors returned by the client wrap the sentinels of the storage package,
// so storage.IsObjectNotFound and friends work on them.
package s3

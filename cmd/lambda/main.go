// Command lambda is the AWS Lambda entry point converting PDFs uploaded to
// S3 into XLSX workbooks.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/magnifact/pdf-table-extractor/bootstrap"
	"github.com/magnifact/pdf-table-extractor/config"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.New(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(app.Handler.Handle)
}

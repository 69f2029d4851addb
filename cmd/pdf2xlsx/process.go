package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/magnifact/pdf-table-extractor/bootstrap"
	"github.com/magnifact/pdf-table-extractor/domain"
)

func (c *cli) processCmd() *cobra.Command {
	var bucket, key string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Convert a PDF held in the configured object store",
		Long: `process runs the converter against STORAGE_BACKEND exactly as the Lambda
function would for a notification about the given object, and prints the
conversion result as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bucket == "" {
				bucket = c.cfg.BucketName
			}

			app, err := bootstrap.New(cmd.Context(), c.cfg, bootstrap.WithLogOutput(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			result, convErr := app.Converter.Convert(cmd.Context(), domain.ObjectRef{Bucket: bucket, Key: key})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
			return convErr
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "source bucket (default: BUCKET_NAME)")
	cmd.Flags().StringVar(&key, "key", "", "source object key")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

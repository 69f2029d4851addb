package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/magnifact/pdf-table-extractor/converter"
	"github.com/magnifact/pdf-table-extractor/extract"
	"github.com/magnifact/pdf-table-extractor/workbook"
)

func (c *cli) convertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <in.pdf>",
		Short: "Convert a local PDF file into an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out := output
			if out == "" {
				out = strings.TrimSuffix(in, filepath.Ext(in)) + ".xlsx"
			}

			doc, err := c.extractFile(cmd.Context(), in)
			if err != nil {
				return err
			}

			writer := workbook.NewWriter(
				workbook.WithColumnPadding(c.cfg.ColumnPadding),
				workbook.WithMaxColumnWidth(c.cfg.MaxColumnWidth),
				workbook.WithLogger(c.logger),
			)
			data, err := writer.Write(converter.WorkbookTables(doc.Tables))
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d table(s) from %d page(s) to %s\n", len(doc.Tables), doc.Pages, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output workbook path (default: input path with an .xlsx extension)")
	return cmd
}

func (c *cli) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <in.pdf>",
		Short: "Print the tables of a local PDF file as tab-separated values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.extractFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(doc.Tables) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), converter.NoTablesMessage)
				return nil
			}
			for i, table := range doc.Tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "# %s (page %d)\n", workbook.SheetName(i), table.Page)

				w := csv.NewWriter(out)
				w.Comma = '\t'
				if err := w.WriteAll(table.Rows); err != nil {
					return fmt.Errorf("failed to print table %d: %w", i+1, err)
				}
			}
			return nil
		},
	}
}

func (c *cli) extractFile(ctx context.Context, path string) (*extract.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	extractor := extract.New(
		extract.WithStrategy(c.cfg.Strategy),
		extract.WithLogger(c.logger),
	)
	return extractor.Extract(ctx, data)
}

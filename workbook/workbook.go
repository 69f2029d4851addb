// Package workbook renders extracted tables as an XLSX spreadsheet.
package workbook

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
)

const (
	// ContentType is the media type of the workbooks produced by Writer.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	DefaultColumnPadding  = 2.0
	DefaultMaxColumnWidth = 50.0

	// SheetPrefix names the sheets Table_1, Table_2, ...
	SheetPrefix = "Table_"

	defaultSheet = "Sheet1"
)

// Writer builds workbooks with one sheet per table.
type Writer struct {
	padding  float64
	maxWidth float64
	logger   *slog.Logger
}

// Option is a functional option for configuring the Writer.
type Option func(*Writer)

// WithColumnPadding sets the width added to the longest value of a column.
func WithColumnPadding(padding float64) Option {
	return func(w *Writer) {
		if padding >= 0 {
			w.padding = padding
		}
	}
}

// WithMaxColumnWidth caps column widths.
func WithMaxColumnWidth(width float64) Option {
	return func(w *Writer) {
		if width > 0 {
			w.maxWidth = width
		}
	}
}

// WithLogger configures the writer with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a Writer with the default padding and width cap.
func NewWriter(options ...Option) *Writer {
	w := &Writer{
		padding:  DefaultColumnPadding,
		maxWidth: DefaultMaxColumnWidth,
	}
	for _, option := range options {
		option(w)
	}
	return w
}

// SheetName returns the sheet name of the table at 0-based index i.
func SheetName(i int) string {
	return fmt.Sprintf("%s%d", SheetPrefix, i+1)
}

// Write renders tables and returns the XLSX bytes. With no tables the
// workbook holds only the default empty sheet.
func (w *Writer) Write(tables []domain.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil && w.logger != nil {
			w.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	for i, table := range tables {
		sheet := SheetName(i)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, ferrors.Wrap(err, ferrors.CodeWorkbookFailed, "failed to rename default sheet")
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, ferrors.Wrap(err, ferrors.CodeWorkbookFailed, fmt.Sprintf("failed to create sheet %s", sheet))
		}

		if err := w.writeSheet(f, sheet, table); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, ferrors.Wrap(err, ferrors.CodeWorkbookFailed, "failed to serialize workbook")
	}

	if w.logger != nil {
		w.logger.Debug("built workbook", "sheets", len(tables), "bytes", buf.Len())
	}
	return buf.Bytes(), nil
}

func (w *Writer) writeSheet(f *excelize.File, sheet string, table domain.Table) error {
	widths := make([]int, table.ColumnCount())

	for r, row := range table.Rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			if utf8.RuneCountInString(value) > excelize.TotalCellChars {
				value = truncate(value, excelize.TotalCellChars)
				if w.logger != nil {
					w.logger.Warn("truncated oversized cell", "sheet", sheet, "row", r+1, "column", c+1)
				}
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return ferrors.Wrap(err, ferrors.CodeWorkbookFailed, fmt.Sprintf("table on %s is too large", sheet))
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return ferrors.Wrap(err, ferrors.CodeWorkbookFailed, fmt.Sprintf("failed to write %s!%s", sheet, cell))
			}
			widths[c] = max(widths[c], utf8.RuneCountInString(value))
		}
	}

	for c, longest := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return ferrors.Wrap(err, ferrors.CodeWorkbookFailed, fmt.Sprintf("table on %s has too many columns", sheet))
		}
		if err := f.SetColWidth(sheet, col, col, w.columnWidth(longest)); err != nil {
			return ferrors.Wrap(err, ferrors.CodeWorkbookFailed, fmt.Sprintf("failed to size column %s on %s", col, sheet))
		}
	}
	return nil
}

func (w *Writer) columnWidth(longest int) float64 {
	return min(float64(longest)+w.padding, w.maxWidth)
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

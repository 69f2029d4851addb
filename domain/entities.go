// Package domain provides canonical type definitions for the PDF table extractor.
package domain

import "time"

// Table is a rectangular block of cells extracted from a single PDF page.
// Rows are ordered top to bottom and cells left to right. Missing cells are
// represented by empty strings, never omitted from the middle of a row.
type Table struct {
	// Page is the 1-based page number the table was found on. Zero marks a
	// synthesized table that does not come from the document.
	Page int `json:"page"`

	// Rows holds the cell text of the table.
	Rows [][]string `json:"rows"`
}

// ColumnCount returns the length of the widest row.
func (t Table) ColumnCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// ObjectRef identifies an object in a storage bucket.
type ObjectRef struct {
	// Bucket is the storage bucket (or top-level directory for local storage).
	Bucket string `json:"bucket"`

	// Key is the full object key including any folder prefix.
	Key string `json:"key"`
}

// String renders the reference as bucket/key.
func (r ObjectRef) String() string {
	return r.Bucket + "/" + r.Key
}

// ConversionResult describes the outcome of processing one object.
type ConversionResult struct {
	// Source is the object that triggered the conversion.
	Source ObjectRef `json:"source"`

	// Output is the workbook that was written. Empty unless Status is CONVERTED.
	Output *ObjectRef `json:"output,omitempty"`

	// Status is the outcome of processing.
	Status ConversionStatus `json:"status"`

	// Reason explains a skip or failure.
	Reason string `json:"reason,omitempty"`

	// Code classifies a failure.
	Code string `json:"code,omitempty"`

	// StatusCode is the HTTP status matching Code. Zero unless Status is FAILED.
	StatusCode int `json:"status_code,omitempty"`

	// Pages is the number of pages in the source document.
	Pages int `json:"pages,omitempty"`

	// Tables is the number of tables written to the workbook, excluding the
	// placeholder sheet written when none were found.
	Tables int `json:"tables"`

	// OutputBytes is the size of the written workbook.
	OutputBytes int64 `json:"output_bytes,omitempty"`

	// Duration is the wall time spent on the object.
	Duration time.Duration `json:"duration_ns,omitempty"`
}

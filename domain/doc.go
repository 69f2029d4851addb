// Package domain provides canonical type definitions for the PDF table extractor.
//
// The package is a zero-dependency layer of plain data structures shared by the
// extraction, workbook, storage and handler packages:
//
//   - Table: the rows of cells found on one PDF page
//   - ObjectRef: a bucket/key pair
//   - ObjectEvent: a normalized storage notification
//   - ConversionResult: the outcome of processing one object
//
// Enumerations provide compile-time safety for configuration values:
//
//   - ConversionStatus: CONVERTED, SKIPPED, FAILED
//   - TableStrategy: lattice, stream, auto
//   - StorageBackend: s3, minio, local
//
// All entities carry json tags; ConversionResult values are returned in the
// function response body.
package domain

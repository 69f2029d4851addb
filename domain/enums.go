// Package domain provides canonical type definitions for the PDF table extractor.
package domain

// ConversionStatus represents the outcome of processing a single object.
type ConversionStatus string

const (
	// ConversionStatusConverted indicates a workbook was written for the object.
	ConversionStatusConverted ConversionStatus = "CONVERTED"

	// ConversionStatusSkipped indicates the object was ignored (wrong folder or not a PDF).
	ConversionStatusSkipped ConversionStatus = "SKIPPED"

	// ConversionStatusFailed indicates processing the object returned an error.
	ConversionStatusFailed ConversionStatus = "FAILED"
)

// String returns the string representation of the ConversionStatus.
func (s ConversionStatus) String() string {
	return string(s)
}

// TableStrategy selects how tables are detected on a page.
type TableStrategy string

const (
	// TableStrategyLattice detects tables from ruling lines and rectangles.
	TableStrategyLattice TableStrategy = "lattice"

	// TableStrategyStream detects tables from the alignment of text alone.
	TableStrategyStream TableStrategy = "stream"

	// TableStrategyAuto uses lattice detection and falls back to stream
	// detection for pages without ruled tables.
	TableStrategyAuto TableStrategy = "auto"
)

// String returns the string representation of the TableStrategy.
func (s TableStrategy) String() string {
	return string(s)
}

// Valid reports whether s is a known strategy.
func (s TableStrategy) Valid() bool {
	switch s {
	case TableStrategyLattice, TableStrategyStream, TableStrategyAuto:
		return true
	default:
		return false
	}
}

// StorageBackend names an object storage implementation.
type StorageBackend string

const (
	// StorageBackendS3 stores objects in Amazon S3 (or a compatible endpoint via the AWS SDK).
	StorageBackendS3 StorageBackend = "s3"

	// StorageBackendMinio stores objects in a MinIO deployment.
	StorageBackendMinio StorageBackend = "minio"

	// StorageBackendLocal stores objects on the local filesystem.
	StorageBackendLocal StorageBackend = "local"
)

// String returns the string representation of the StorageBackend.
func (b StorageBackend) String() string {
	return string(b)
}

// Valid reports whether b is a known backend.
func (b StorageBackend) Valid() bool {
	switch b {
	case StorageBackendS3, StorageBackendMinio, StorageBackendLocal:
		return true
	default:
		return false
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/magnifact/pdf-table-extractor/domain"
	"github.com/magnifact/pdf-table-extractor/errors"
)

// Validate checks the configuration for values that would make the function
// misbehave. All problems are reported together.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New(errors.CodeInvalidConfig, "configuration is nil")
	}

	var problems []string

	if err := validateFolders(c); err != nil {
		problems = append(problems, err.Error())
	}

	if !c.Backend.Valid() {
		problems = append(problems, fmt.Sprintf("unknown storage backend %q (available: s3, minio, local)", c.Backend))
	}

	if c.Backend == domain.StorageBackendMinio && c.Minio.Endpoint == "" {
		problems = append(problems, "minio backend requires MINIO_ENDPOINT")
	}

	if c.Backend == domain.StorageBackendLocal && strings.TrimSpace(c.LocalRoot) == "" {
		problems = append(problems, "local backend requires LOCAL_ROOT")
	}

	if !c.Strategy.Valid() {
		problems = append(problems, fmt.Sprintf("unknown table strategy %q (available: lattice, stream, auto)", c.Strategy))
	}

	if c.S3.MaxRetries < 0 {
		problems = append(problems, "S3_MAX_RETRIES cannot be negative")
	}

	if c.MaxColumnWidth <= 0 {
		problems = append(problems, "MAX_COLUMN_WIDTH must be positive")
	}

	if c.ColumnPadding < 0 {
		problems = append(problems, "COLUMN_PADDING cannot be negative")
	}

	if c.MaxPDFBytes < 0 {
		problems = append(problems, "MAX_PDF_BYTES cannot be negative")
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		problems = append(problems, fmt.Sprintf("unknown log format %q (available: json, text)", c.LogFormat))
	}

	if len(problems) > 0 {
		return errors.New(
			errors.CodeInvalidConfig,
			fmt.Sprintf("configuration validation failed: %s", strings.Join(problems, "; ")),
		)
	}

	return nil
}

// validateFolders ensures the input and output prefixes are usable and do
// not collide within the same bucket.
func validateFolders(c *Config) error {
	var invalid []string

	folders := []struct {
		name  string
		value string
	}{
		{name: EnvInputFolder, value: c.InputFolder},
		{name: EnvOutputFolder, value: c.OutputFolder},
	}
	for _, f := range folders {
		switch {
		case f.value == "":
			invalid = append(invalid, f.name+" cannot be empty")
		case strings.Contains(f.value, ".."):
			invalid = append(invalid, f.name+" cannot contain '..'")
		}
	}

	if len(invalid) == 0 && c.OutputBucket == "" && c.InputFolder == c.OutputFolder {
		invalid = append(invalid, EnvInputFolder+" and "+EnvOutputFolder+" must differ")
	}

	if len(invalid) > 0 {
		return fmt.Errorf("%s", strings.Join(invalid, "; "))
	}
	return nil
}

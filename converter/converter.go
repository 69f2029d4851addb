// Package converter turns a PDF object in storage into an XLSX workbook of
// its tables, written back to the same storage.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"

	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
	"github.com/magnifact/pdf-table-extractor/extract"
	"github.com/magnifact/pdf-table-extractor/storage"
	"github.com/magnifact/pdf-table-extractor/workbook"
)

// NoTablesMessage fills the single cell of the workbook written for a PDF
// without tables.
const NoTablesMessage = "No tables found in the PDF file"

// Metadata keys attached to written workbooks.
const (
	MetadataSourceBucket = "source-bucket"
	MetadataSourceKey    = "source-key"
	MetadataTableCount   = "table-count"
)

const pdfMIME = "application/pdf"

// Extractor finds tables in PDF bytes.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (*extract.Document, error)
}

// WorkbookWriter renders tables as spreadsheet bytes.
type WorkbookWriter interface {
	Write(tables []domain.Table) ([]byte, error)
}

// Converter runs the download, extract, render and upload pipeline for one
// object at a time. It is safe for concurrent use when its collaborators are.
type Converter struct {
	store     storage.Store
	extractor Extractor
	writer    WorkbookWriter

	outputFolder string
	outputBucket string
	maxBytes     int64
	logger       *slog.Logger
	now          func() time.Time
}

// Option is a functional option for configuring the Converter.
type Option func(*Converter)

// WithOutputFolder sets the key prefix workbooks are written under.
func WithOutputFolder(folder string) Option {
	return func(c *Converter) {
		c.outputFolder = strings.Trim(folder, "/")
	}
}

// WithOutputBucket writes workbooks to bucket instead of the source bucket.
func WithOutputBucket(bucket string) Option {
	return func(c *Converter) {
		c.outputBucket = bucket
	}
}

// WithMaxBytes refuses sources larger than n bytes. Zero disables the limit.
func WithMaxBytes(n int64) Option {
	return func(c *Converter) {
		if n >= 0 {
			c.maxBytes = n
		}
	}
}

// WithLogger configures the converter with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New creates a Converter.
func New(store storage.Store, extractor Extractor, writer WorkbookWriter, options ...Option) *Converter {
	c := &Converter{
		store:        store,
		extractor:    extractor,
		writer:       writer,
		outputFolder: "output-files",
		now:          time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// OutputKey returns the key of the workbook written for key: the base name
// with its last extension replaced by .xlsx, under folder.
func OutputKey(folder, key string) string {
	base := path.Base(key)
	name := strings.TrimSuffix(base, path.Ext(base))
	if strings.TrimLeft(name, ".") == "" {
		name = base
	}
	return path.Join(strings.Trim(folder, "/"), name+".xlsx")
}

// WorkbookTables returns the tables to render: tables itself, or a single
// placeholder table holding NoTablesMessage when there are none.
func WorkbookTables(tables []domain.Table) []domain.Table {
	if len(tables) == 0 {
		return []domain.Table{{Rows: [][]string{{NoTablesMessage}}}}
	}
	return tables
}

// Convert processes src. On failure the returned result has status FAILED
// and the error carries a code deciding whether a retry can help.
func (c *Converter) Convert(ctx context.Context, src domain.ObjectRef) (*domain.ConversionResult, error) {
	start := c.now()
	result := &domain.ConversionResult{Source: src}

	fail := func(err error) (*domain.ConversionResult, error) {
		result.Status = domain.ConversionStatusFailed
		result.Reason = err.Error()
		result.Duration = c.now().Sub(start)
		c.log(ctx, slog.LevelError, "conversion failed",
			"bucket", src.Bucket,
			"key", src.Key,
			"code", ferrors.CodeOf(err),
			"error", err)
		return result, err
	}

	data, err := c.download(ctx, src)
	if err != nil {
		return fail(err)
	}

	c.log(ctx, slog.LevelInfo, "extracting tables from PDF", "key", src.Key)
	doc, err := c.extractor.Extract(ctx, data)
	if err != nil {
		return fail(fmt.Errorf("failed to extract tables from %s: %w", src, err))
	}
	result.Pages = doc.Pages
	result.Tables = len(doc.Tables)

	if len(doc.Tables) == 0 {
		c.log(ctx, slog.LevelWarn, "no tables found in PDF", "key", src.Key)
	}
	tables := WorkbookTables(doc.Tables)

	c.log(ctx, slog.LevelInfo, "creating workbook", "sheets", len(tables))
	book, err := c.writer.Write(tables)
	if err != nil {
		return fail(fmt.Errorf("failed to build workbook for %s: %w", src, err))
	}

	out := domain.ObjectRef{Bucket: c.outputBucketFor(src.Bucket), Key: OutputKey(c.outputFolder, src.Key)}
	c.log(ctx, slog.LevelInfo, "uploading workbook", "bucket", out.Bucket, "key", out.Key)
	err = c.store.Put(ctx, out.Bucket, out.Key, book, storage.PutOptions{
		ContentType: workbook.ContentType,
		Metadata: map[string]string{
			MetadataSourceBucket: metadataValue(src.Bucket),
			MetadataSourceKey:    metadataValue(src.Key),
			MetadataTableCount:   strconv.Itoa(result.Tables),
		},
	})
	if err != nil {
		return fail(fmt.Errorf("failed to upload %s: %w", out, err))
	}

	result.Status = domain.ConversionStatusConverted
	result.Output = &out
	result.OutputBytes = int64(len(book))
	result.Duration = c.now().Sub(start)

	c.log(ctx, slog.LevelInfo, "converted PDF",
		"source", src.String(),
		"output", out.String(),
		"pages", result.Pages,
		"tables", result.Tables,
		"duration", result.Duration)
	return result, nil
}

// download checks the size and content type of src before returning its bytes.
func (c *Converter) download(ctx context.Context, src domain.ObjectRef) ([]byte, error) {
	info, err := c.store.Stat(ctx, src.Bucket, src.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if c.maxBytes > 0 && info.Size > c.maxBytes {
		return nil, ferrors.Newf(ferrors.CodeTooLarge,
			"%s is %d bytes, larger than the %d byte limit", src, info.Size, c.maxBytes)
	}

	c.log(ctx, slog.LevelInfo, "downloading PDF", "bucket", src.Bucket, "key", src.Key, "bytes", info.Size)
	data, err := c.store.Get(ctx, src.Bucket, src.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", src, err)
	}

	if mtype := mimetype.Detect(data); !mtype.Is(pdfMIME) {
		return nil, ferrors.Newf(ferrors.CodeInvalidInput, "%s is %s, not a PDF", src, mtype.String())
	}
	return data, nil
}

func (c *Converter) outputBucketFor(source string) string {
	if c.outputBucket != "" {
		return c.outputBucket
	}
	return source
}

func (c *Converter) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if c.logger != nil {
		c.logger.Log(ctx, level, msg, args...)
	}
}

// metadataValue escapes values that cannot travel as US-ASCII HTTP headers.
func metadataValue(s string) string {
	for _, r := range s {
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			return url.QueryEscape(s)
		}
	}
	return s
}

package extract

import (
	"context"
	"log/slog"
	"sort"

	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
)

// Document is the result of extracting tables from a PDF.
type Document struct {
	// Pages is the number of pages read.
	Pages int

	// Tables are ordered page by page, then top to bottom, then left to right.
	Tables []domain.Table
}

// Extractor finds tables in PDF documents. It holds no per-document state
// and is safe for concurrent use.
type Extractor struct {
	opts Options
}

// New creates an extractor with the given options applied over DefaultOptions.
func New(options ...Option) *Extractor {
	opts := DefaultOptions()
	for _, option := range options {
		option(&opts)
	}
	return &Extractor{opts: opts}
}

// Options returns the effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract reads every page of the PDF in data and returns the tables found.
// Malformed or encrypted documents yield an INVALID_INPUT error.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ferrors.New(ferrors.CodeInvalidInput, "PDF content is empty")
	}

	doc := &Document{}
	pages, err := walkPages(ctx, data, func(pg page) error {
		tables := e.extractPage(pg)
		for _, t := range tables {
			doc.Tables = append(doc.Tables, domain.Table{Page: pg.number, Rows: t.rows})
		}
		e.log(ctx, slog.LevelDebug, "extracted page",
			"page", pg.number,
			"glyphs", len(pg.glyphs),
			"rects", len(pg.rects),
			"segments", len(pg.segments),
			"tables", len(tables))
		return nil
	})
	doc.Pages = pages
	if err != nil {
		return nil, err
	}

	e.log(ctx, slog.LevelInfo, "extracted tables",
		"strategy", e.opts.Strategy,
		"pages", doc.Pages,
		"tables", len(doc.Tables))
	return doc, nil
}

// extractPage runs the configured strategy on one page and orders the
// tables top to bottom, then left to right.
func (e *Extractor) extractPage(pg page) []pageTable {
	words := buildWords(pg.glyphs, e.opts.XTolerance, e.opts.YTolerance)

	var tables []pageTable
	switch e.opts.Strategy {
	case domain.TableStrategyStream:
		tables = streamTables(words, e.opts)
	case domain.TableStrategyAuto:
		tables = latticeTables(pg, words, e.opts)
		if len(tables) == 0 {
			tables = streamTables(words, e.opts)
		}
	default:
		tables = latticeTables(pg, words, e.opts)
	}

	sort.SliceStable(tables, func(i, j int) bool {
		a, b := tables[i].bounds, tables[j].bounds
		if a.top != b.top {
			return a.top < b.top
		}
		return a.x0 < b.x0
	})
	return tables
}

func (e *Extractor) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if e.opts.Logger != nil {
		e.opts.Logger.Log(ctx, level, msg, args...)
	}
}

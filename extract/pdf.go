package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ledongthuc/pdf"

	ferrors "github.com/magnifact/pdf-table-extractor/errors"
)

// pdfReader wraps the ledongthuc reader so that parser panics on malformed
// input surface as errors.
type pdfReader struct {
	r *pdf.Reader
}

func openPDF(data []byte) (reader *pdfReader, err error) {
	defer func() {
		if r := recover(); r != nil {
			reader = nil
			err = ferrors.Newf(ferrors.CodeInvalidInput, "malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, ferrors.Wrap(err, ferrors.CodeInvalidInput, "encrypted PDF is not supported")
		}
		return nil, ferrors.Wrap(err, ferrors.CodeInvalidInput, "failed to open PDF")
	}
	return &pdfReader{r: r}, nil
}

func (p *pdfReader) numPages() (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ferrors.Newf(ferrors.CodeInvalidInput, "malformed PDF page tree: %v", r)
		}
	}()
	return p.r.NumPage(), nil
}

// page reads the glyphs and painted path geometry of page num (1-based).
func (p *pdfReader) page(num int) (pg page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ferrors.Newf(ferrors.CodeInvalidInput, "malformed content on page %d: %v", num, r)
		}
	}()

	pg.number = num
	src := p.r.Page(num)
	if src.V.IsNull() {
		return pg, nil
	}

	pg.glyphs = glyphsFromText(src.Content().Text)
	if contents := src.V.Key("Contents"); contents.Kind() != pdf.Null {
		pg.rects, pg.segments = walkPaths(contents)
	}
	return pg, nil
}

// walkPages calls fn for every page, checking ctx between pages.
func walkPages(ctx context.Context, data []byte, fn func(page) error) (int, error) {
	reader, err := openPDF(data)
	if err != nil {
		return 0, err
	}

	n, err := reader.numPages()
	if err != nil {
		return 0, err
	}

	for num := 1; num <= n; num++ {
		if err := ctx.Err(); err != nil {
			return num - 1, ferrors.Wrap(err, ferrors.CodeTimeout, fmt.Sprintf("extraction interrupted at page %d", num))
		}
		pg, err := reader.page(num)
		if err != nil {
			return num - 1, err
		}
		if err := fn(pg); err != nil {
			return num, err
		}
	}
	return n, nil
}

// glyphsFromText converts PDF text space (origin bottom-left) to page
// coordinates with y growing downwards.
//
// Standard fonts embedded without a Widths array report zero width and leave
// every glyph of a shown string at the string origin. Those glyphs are laid
// out one after another using an estimated advance.
func glyphsFromText(texts []pdf.Text) []glyph {
	glyphs := make([]glyph, 0, len(texts))

	var prevX, prevBaseline, cursor float64
	havePrev := false
	for _, t := range texts {
		size := math.Abs(t.FontSize)
		if size == 0 {
			size = defaultFontSize
		}
		baseline := -t.Y
		x := t.X
		width := t.W

		if width <= 0 {
			width = size * estimatedGlyphWidth
			if havePrev && math.Abs(t.X-prevX) < 0.01 && math.Abs(baseline-prevBaseline) < 0.01 {
				x = cursor
			}
		}

		prevX, prevBaseline, havePrev = t.X, baseline, true
		cursor = x + width

		glyphs = append(glyphs, glyph{
			x0:       x,
			x1:       x + width,
			baseline: baseline,
			size:     size,
			text:     t.S,
		})
	}
	return glyphs
}

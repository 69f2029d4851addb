package extract

import (
	"strings"
)

// Glyph metrics used when the font does not report widths.
const (
	defaultFontSize     = 10.0
	estimatedGlyphWidth = 0.5
	ascentRatio         = 0.75
	descentRatio        = 0.25
)

// glyph is a single shown character.
type glyph struct {
	x0, x1   float64
	baseline float64
	size     float64
	text     string
}

func (g glyph) top() float64    { return g.baseline - g.size*ascentRatio }
func (g glyph) bottom() float64 { return g.baseline + g.size*descentRatio }

func (g glyph) isSpace() bool {
	return strings.TrimSpace(g.text) == ""
}

// word is a run of glyphs without whitespace on one baseline.
type word struct {
	x0, x1      float64
	top, bottom float64
	baseline    float64
	text        string
}

func (w word) centerX() float64 { return (w.x0 + w.x1) / 2 }
func (w word) centerY() float64 { return (w.top + w.bottom) / 2 }

// bbox is an axis-aligned box.
type bbox struct {
	x0, top, x1, bottom float64
}

func (b bbox) width() float64  { return b.x1 - b.x0 }
func (b bbox) height() float64 { return b.bottom - b.top }

func (b bbox) contains(x, y float64) bool {
	return x >= b.x0 && x <= b.x1 && y >= b.top && y <= b.bottom
}

func (b bbox) union(o bbox) bbox {
	return bbox{
		x0:     min(b.x0, o.x0),
		top:    min(b.top, o.top),
		x1:     max(b.x1, o.x1),
		bottom: max(b.bottom, o.bottom),
	}
}

// page is the geometry read from one PDF page.
type page struct {
	number int
	glyphs   []glyph
	rects    []bbox
	segments []segment
}

// pageTable is a table found on a page before it is numbered.
type pageTable struct {
	bounds bbox
	rows   [][]string
}

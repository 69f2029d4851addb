package extract

import (
	"math"
	"sort"
	"strings"
)

// line is a set of words sharing a vertical position, ordered left to right.
type line struct {
	top, bottom float64
	words       []word
}

// buildWords merges glyphs into words in content order. A glyph joins the
// current word when it sits on the same baseline and starts within xTol of
// the word's end. Whitespace always ends a word.
func buildWords(glyphs []glyph, xTol, yTol float64) []word {
	var words []word
	var cur word
	open := false

	flush := func() {
		if open {
			words = append(words, cur)
			open = false
		}
	}

	for _, g := range glyphs {
		if g.isSpace() {
			flush()
			continue
		}

		if open &&
			math.Abs(g.baseline-cur.baseline) <= yTol &&
			g.x0 >= cur.x1-xTol &&
			g.x0 <= cur.x1+xTol {
			cur.text += g.text
			cur.x1 = max(cur.x1, g.x1)
			cur.top = min(cur.top, g.top())
			cur.bottom = max(cur.bottom, g.bottom())
			continue
		}

		flush()
		cur = word{
			x0:       g.x0,
			x1:       g.x1,
			top:      g.top(),
			bottom:   g.bottom(),
			baseline: g.baseline,
			text:     g.text,
		}
		open = true
	}
	flush()

	return words
}

// groupLines clusters words whose tops are within yTol of the line's first
// word. Lines are ordered top to bottom and words left to right.
func groupLines(words []word, yTol float64) []line {
	sorted := make([]word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].top < sorted[j].top
	})

	var lines []line
	for _, w := range sorted {
		if n := len(lines); n > 0 && math.Abs(w.top-lines[n-1].top) <= yTol {
			lines[n-1].words = append(lines[n-1].words, w)
			lines[n-1].bottom = max(lines[n-1].bottom, w.bottom)
			continue
		}
		lines = append(lines, line{top: w.top, bottom: w.bottom, words: []word{w}})
	}

	for i := range lines {
		ws := lines[i].words
		sort.SliceStable(ws, func(a, b int) bool {
			return ws[a].x0 < ws[b].x0
		})
	}
	return lines
}

// joinText renders words as text: words on a line are separated by spaces
// and lines by newlines.
func joinText(words []word, yTol float64) string {
	if len(words) == 0 {
		return ""
	}

	lines := groupLines(words, yTol)
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts := make([]string, 0, len(l.words))
		for _, w := range l.words {
			texts = append(texts, w.text)
		}
		parts = append(parts, strings.Join(texts, " "))
	}
	return strings.Join(parts, "\n")
}

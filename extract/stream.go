package extract

import (
	"sort"
	"strings"
)

// chunk is a run of words on a line separated from its neighbours by at
// least the column gap.
type chunk struct {
	x0, x1 float64
	words  []word
}

func (c chunk) center() float64 { return (c.x0 + c.x1) / 2 }

func (c chunk) text() string {
	texts := make([]string, len(c.words))
	for i, w := range c.words {
		texts[i] = w.text
	}
	return strings.Join(texts, " ")
}

// band is a column span of a stream table.
type band struct {
	x0, x1 float64
}

// streamTables finds tables from text alignment alone.
func streamTables(words []word, o Options) []pageTable {
	lines := groupLines(words, o.YTolerance)

	chunked := make([][]chunk, len(lines))
	for i, l := range lines {
		chunked[i] = splitChunks(l.words, o.ColumnGap)
	}

	var tables []pageTable
	start := -1
	for i := 0; i <= len(lines); i++ {
		multi := i < len(lines) && len(chunked[i]) >= 2
		if multi {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= o.MinRows {
			tables = append(tables, buildStreamTable(lines[start:i], chunked[start:i]))
		}
		start = -1
	}
	return tables
}

// splitChunks splits a left-to-right ordered line at gaps wider than gap.
func splitChunks(words []word, gap float64) []chunk {
	var chunks []chunk
	for _, w := range words {
		if n := len(chunks); n > 0 && w.x0-chunks[n-1].x1 <= gap {
			chunks[n-1].words = append(chunks[n-1].words, w)
			chunks[n-1].x1 = max(chunks[n-1].x1, w.x1)
			continue
		}
		chunks = append(chunks, chunk{x0: w.x0, x1: w.x1, words: []word{w}})
	}
	return chunks
}

// buildStreamTable merges chunk spans into column bands and places each
// chunk in the band containing its center.
func buildStreamTable(lines []line, chunked [][]chunk) pageTable {
	var spans []band
	for _, chunks := range chunked {
		for _, c := range chunks {
			spans = append(spans, band{x0: c.x0, x1: c.x1})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].x0 < spans[j].x0 })

	var bands []band
	for _, s := range spans {
		if n := len(bands); n > 0 && s.x0 <= bands[n-1].x1 {
			bands[n-1].x1 = max(bands[n-1].x1, s.x1)
			continue
		}
		bands = append(bands, s)
	}

	bounds := bbox{x0: bands[0].x0, x1: bands[len(bands)-1].x1, top: lines[0].top, bottom: lines[len(lines)-1].bottom}
	rows := make([][]string, len(chunked))
	for r, chunks := range chunked {
		row := make([]string, len(bands))
		for _, c := range chunks {
			col := bandFor(bands, c.center())
			if row[col] != "" {
				row[col] += " "
			}
			row[col] += c.text()
		}
		rows[r] = row
	}
	return pageTable{bounds: bounds, rows: rows}
}

func bandFor(bands []band, x float64) int {
	for i, b := range bands {
		if x <= b.x1 {
			return i
		}
	}
	return len(bands) - 1
}

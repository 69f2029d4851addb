package extract

// textGlyphs lays out s at x on baseline with a fixed 5pt advance.
func textGlyphs(x, baseline float64, s string) []glyph {
	glyphs := make([]glyph, 0, len(s))
	for _, r := range s {
		glyphs = append(glyphs, glyph{x0: x, x1: x + 5, baseline: baseline, size: 10, text: string(r)})
		x += 5
	}
	return glyphs
}

// cellRects returns one bordered rectangle per cell, the way table
// generators typically draw a grid.
func cellRects(x0, top float64, colWidths []float64, rowHeight float64, rows int) []bbox {
	var rects []bbox
	y := top
	for r := 0; r < rows; r++ {
		x := x0
		for _, w := range colWidths {
			rects = append(rects, bbox{x0: x, top: y, x1: x + w, bottom: y + rowHeight})
			x += w
		}
		y += rowHeight
	}
	return rects
}

// gridPage builds a page whose ruled grid holds rows of text.
func gridPage(x0, top float64, colWidths []float64, rowHeight float64, rows [][]string) page {
	pg := page{number: 1, rects: cellRects(x0, top, colWidths, rowHeight, len(rows))}
	y := top
	for _, row := range rows {
		x := x0
		for c, w := range colWidths {
			if c < len(row) {
				pg.glyphs = append(pg.glyphs, textGlyphs(x+3, y+rowHeight/2+3, row[c])...)
				pg.glyphs = append(pg.glyphs, glyph{x0: x + w, x1: x + w, baseline: y + rowHeight/2 + 3, size: 10, text: " "})
			}
			x += w
		}
		y += rowHeight
	}
	return pg
}

package testutil

import (
	"bytes"
	"testing"

	"github.com/go-pdf/fpdf"
)

// Table describes a grid drawn on a fixture page. Coordinates are in points
// from the top-left corner of the page.
type Table struct {
	X, Y      float64
	ColWidths []float64
	RowHeight float64
	Rows      [][]string
	// Ruled draws cell borders. Unruled tables only place text.
	Ruled bool
	// Lines draws the grid as stroked line segments instead of cell borders.
	Lines bool
	// ShiftX and ShiftY draw the table inside a translation transform.
	ShiftX, ShiftY float64
}

// Text is a free-standing line of text on a fixture page.
type Text struct {
	X, Y float64
	S    string
}

// Page is the content of one fixture page.
type Page struct {
	Tables []Table
	Texts  []Text
}

// BuildPDF renders pages to an A4 PDF with Helvetica 10pt text.
func BuildPDF(t testing.TB, pages ...Page) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont("Helvetica", "", 10)

	for _, page := range pages {
		doc.AddPage()
		for _, text := range page.Texts {
			doc.Text(text.X, text.Y, text.S)
		}
		for _, table := range page.Tables {
			drawTable(doc, table)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to render fixture PDF: %v", err)
	}
	return buf.Bytes()
}

func drawTable(doc *fpdf.Fpdf, table Table) {
	border := ""
	if table.Ruled && !table.Lines {
		border = "1"
	}
	height := table.RowHeight
	if height == 0 {
		height = 20
	}

	shifted := table.ShiftX != 0 || table.ShiftY != 0
	if shifted {
		doc.TransformBegin()
		doc.TransformTranslate(table.ShiftX, table.ShiftY)
		defer doc.TransformEnd()
	}
	if table.Lines {
		drawGrid(doc, table, height)
	}

	y := table.Y
	for _, row := range table.Rows {
		x := table.X
		for c, width := range table.ColWidths {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			doc.SetXY(x, y)
			doc.CellFormat(width, height, cell, border, 0, "L", false, 0, "")
			x += width
		}
		y += height
	}
}

func drawGrid(doc *fpdf.Fpdf, table Table, height float64) {
	width := 0.0
	for _, w := range table.ColWidths {
		width += w
	}
	bottom := table.Y + height*float64(len(table.Rows))

	for r := 0; r <= len(table.Rows); r++ {
		y := table.Y + height*float64(r)
		doc.Line(table.X, y, table.X+width, y)
	}
	x := table.X
	doc.Line(x, table.Y, x, bottom)
	for _, w := range table.ColWidths {
		x += w
		doc.Line(x, table.Y, x, bottom)
	}
}

// RuledTablePDF returns a single-page PDF holding one bordered table.
func RuledTablePDF(t testing.TB, rows [][]string) []byte {
	t.Helper()
	return BuildPDF(t, Page{Tables: []Table{{
		X:         50,
		Y:         80,
		ColWidths: uniformWidths(rows, 120),
		Rows:      rows,
		Ruled:     true,
	}}})
}

// TextOnlyPDF returns a single-page PDF with prose and no tables.
func TextOnlyPDF(t testing.TB, lines ...string) []byte {
	t.Helper()
	page := Page{}
	for i, line := range lines {
		page.Texts = append(page.Texts, Text{X: 50, Y: 80 + float64(i)*14, S: line})
	}
	return BuildPDF(t, page)
}

func uniformWidths(rows [][]string, width float64) []float64 {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = width
	}
	return widths
}

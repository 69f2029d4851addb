package extract

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordTexts(words []word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.text
	}
	return out
}

func TestBuildWords(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []glyph
		want   []string
	}{
		{
			name:   "space separates words",
			glyphs: textGlyphs(0, 10, "Hello world"),
			want:   []string{"Hello", "world"},
		},
		{
			name:   "gap beyond tolerance splits",
			glyphs: append(textGlyphs(0, 10, "ab"), textGlyphs(20, 10, "cd")...),
			want:   []string{"ab", "cd"},
		},
		{
			name:   "gap within tolerance joins",
			glyphs: append(textGlyphs(0, 10, "ab"), textGlyphs(12, 10, "cd")...),
			want:   []string{"abcd"},
		},
		{
			name:   "different baseline splits",
			glyphs: append(textGlyphs(0, 10, "ab"), textGlyphs(10, 30, "cd")...),
			want:   []string{"ab", "cd"},
		},
		{
			name:   "leading and trailing whitespace",
			glyphs: textGlyphs(0, 10, "  x  "),
			want:   []string{"x"},
		},
		{
			name:   "no glyphs",
			glyphs: nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildWords(tt.glyphs, DefaultXTolerance, DefaultYTolerance)
			assert.Equal(t, tt.want, wordTexts(got))
		})
	}
}

func TestBuildWords_Bounds(t *testing.T) {
	words := buildWords(textGlyphs(10, 100, "abc"), DefaultXTolerance, DefaultYTolerance)
	require.Len(t, words, 1)
	assert.Equal(t, 10.0, words[0].x0)
	assert.Equal(t, 25.0, words[0].x1)
	assert.Equal(t, 100.0, words[0].baseline)
	assert.Less(t, words[0].top, words[0].bottom)
}

func TestGroupLines(t *testing.T) {
	var glyphs []glyph
	glyphs = append(glyphs, textGlyphs(100, 50, "right")...)
	glyphs = append(glyphs, glyph{x0: 130, x1: 130, baseline: 50, size: 10, text: " "})
	glyphs = append(glyphs, textGlyphs(0, 51, "left")...)
	glyphs = append(glyphs, textGlyphs(0, 80, "below")...)

	lines := groupLines(buildWords(glyphs, DefaultXTolerance, DefaultYTolerance), DefaultYTolerance)
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"left", "right"}, wordTexts(lines[0].words))
	assert.Equal(t, []string{"below"}, wordTexts(lines[1].words))
}

func TestJoinText(t *testing.T) {
	var glyphs []glyph
	glyphs = append(glyphs, textGlyphs(0, 10, "Unit price")...)
	glyphs = append(glyphs, textGlyphs(0, 22, "(EUR)")...)

	words := buildWords(glyphs, DefaultXTolerance, DefaultYTolerance)
	assert.Equal(t, "Unit price\n(EUR)", joinText(words, DefaultYTolerance))
	assert.Equal(t, "", joinText(nil, DefaultYTolerance))
}

func TestGlyphsFromText_EstimatesMissingWidths(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 10, X: 50, Y: 700, W: 0, S: "a"},
		{FontSize: 10, X: 50, Y: 700, W: 0, S: "b"},
		{FontSize: 10, X: 50, Y: 700, W: 0, S: "c"},
		{FontSize: 10, X: 200, Y: 700, W: 0, S: "d"},
	}

	glyphs := glyphsFromText(texts)
	require.Len(t, glyphs, 4)
	assert.Equal(t, 50.0, glyphs[0].x0)
	assert.Equal(t, 55.0, glyphs[1].x0)
	assert.Equal(t, 60.0, glyphs[2].x0)
	assert.Equal(t, 200.0, glyphs[3].x0)
	assert.Equal(t, -700.0, glyphs[0].baseline)

	words := buildWords(glyphs, DefaultXTolerance, DefaultYTolerance)
	assert.Equal(t, []string{"abc", "d"}, wordTexts(words))
}

func TestGlyphsFromText_KeepsReportedWidths(t *testing.T) {
	texts := []pdf.Text{
		{FontSize: 12, X: 10, Y: 100, W: 6.6, S: "A"},
		{FontSize: 12, X: 16.6, Y: 100, W: 6.6, S: "B"},
	}

	glyphs := glyphsFromText(texts)
	assert.InDelta(t, 16.6, glyphs[0].x1, 1e-9)
	assert.InDelta(t, 16.6, glyphs[1].x0, 1e-9)
	assert.Equal(t, 12.0, glyphs[1].size)
}

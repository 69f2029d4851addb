package extract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
	"github.com/magnifact/pdf-table-extractor/extract"
	"github.com/magnifact/pdf-table-extractor/internal/testutil"
)

var invoice = [][]string{
	{"Item", "Qty", "Price"},
	{"Widget", "2", "9.99"},
	{"Gadget", "10", "120.00"},
}

func unruledPDF(t *testing.T) []byte {
	t.Helper()
	return testutil.BuildPDF(t, testutil.Page{
		Texts: []testutil.Text{{X: 50, Y: 50, S: "Quarterly report"}},
		Tables: []testutil.Table{{
			X:         50,
			Y:         80,
			ColWidths: []float64{120, 120, 120},
			Rows:      invoice,
		}},
	})
}

func TestExtract_RuledTable(t *testing.T) {
	doc, err := extract.New().Extract(context.Background(), testutil.RuledTablePDF(t, invoice))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Pages)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, 1, doc.Tables[0].Page)
	assert.Equal(t, invoice, doc.Tables[0].Rows)
}

func TestExtract_RulingStyles(t *testing.T) {
	tests := []struct {
		name  string
		table testutil.Table
	}{
		{
			name:  "boxes under a translation",
			table: testutil.Table{Ruled: true, ShiftX: 100, ShiftY: 100},
		},
		{
			name:  "stroked lines",
			table: testutil.Table{Ruled: true, Lines: true},
		},
		{
			name:  "stroked lines under a translation",
			table: testutil.Table{Ruled: true, Lines: true, ShiftX: 40, ShiftY: 250},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := tt.table
			table.X, table.Y = 50, 80
			table.ColWidths = []float64{120, 120, 120}
			table.Rows = invoice
			data := testutil.BuildPDF(t, testutil.Page{Tables: []testutil.Table{table}})

			doc, err := extract.New(extract.WithStrategy(domain.TableStrategyLattice)).Extract(context.Background(), data)
			require.NoError(t, err)
			require.Len(t, doc.Tables, 1)
			assert.Equal(t, invoice, doc.Tables[0].Rows)
		})
	}
}

func TestExtract_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy domain.TableStrategy
		pdf      func(*testing.T) []byte
		want     [][][]string
	}{
		{
			name:     "lattice ignores unruled text",
			strategy: domain.TableStrategyLattice,
			pdf:      unruledPDF,
			want:     nil,
		},
		{
			name:     "stream finds unruled table",
			strategy: domain.TableStrategyStream,
			pdf:      unruledPDF,
			want:     [][][]string{invoice},
		},
		{
			name:     "auto falls back to stream",
			strategy: domain.TableStrategyAuto,
			pdf:      unruledPDF,
			want:     [][][]string{invoice},
		},
		{
			name:     "auto prefers ruled tables",
			strategy: domain.TableStrategyAuto,
			pdf: func(t *testing.T) []byte {
				return testutil.RuledTablePDF(t, invoice)
			},
			want: [][][]string{invoice},
		},
		{
			name:     "prose has no tables",
			strategy: domain.TableStrategyAuto,
			pdf: func(t *testing.T) []byte {
				return testutil.TextOnlyPDF(t, "Dear customer,", "thank you for your order.")
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := extract.New(extract.WithStrategy(tt.strategy)).Extract(context.Background(), tt.pdf(t))
			require.NoError(t, err)

			var got [][][]string
			for _, table := range doc.Tables {
				got = append(got, table.Rows)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_MultiplePages(t *testing.T) {
	first := [][]string{{"a", "b"}, {"1", "2"}}
	lower := [][]string{{"c", "d"}, {"3", "4"}}
	upper := [][]string{{"e", "f"}, {"5", "6"}}

	data := testutil.BuildPDF(t,
		testutil.Page{Tables: []testutil.Table{
			{X: 50, Y: 80, ColWidths: []float64{100, 100}, Rows: first, Ruled: true},
		}},
		testutil.Page{Tables: []testutil.Table{
			{X: 50, Y: 400, ColWidths: []float64{100, 100}, Rows: lower, Ruled: true},
			{X: 50, Y: 100, ColWidths: []float64{100, 100}, Rows: upper, Ruled: true},
		}},
	)

	doc, err := extract.New().Extract(context.Background(), data)
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Pages)
	require.Len(t, doc.Tables, 3)
	assert.Equal(t, domain.Table{Page: 1, Rows: first}, doc.Tables[0])
	assert.Equal(t, domain.Table{Page: 2, Rows: upper}, doc.Tables[1])
	assert.Equal(t, domain.Table{Page: 2, Rows: lower}, doc.Tables[2])
}

func TestExtract_Errors(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		data []byte
		code ferrors.ErrorCode
	}{
		{name: "empty", ctx: context.Background(), data: nil, code: ferrors.CodeInvalidInput},
		{name: "not a pdf", ctx: context.Background(), data: []byte("hello, world"), code: ferrors.CodeInvalidInput},
		{name: "truncated", ctx: context.Background(), data: []byte("%PDF-1.4\n1 0 obj\n<<"), code: ferrors.CodeInvalidInput},
		{name: "canceled", ctx: canceled, data: testutil.RuledTablePDF(t, invoice), code: ferrors.CodeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := extract.New().Extract(tt.ctx, tt.data)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Equal(t, tt.code, ferrors.CodeOf(err))
		})
	}
}

func TestNew_Options(t *testing.T) {
	e := extract.New(
		extract.WithStrategy("bogus"),
		extract.WithColumnGap(-1),
		extract.WithMinRows(3),
		extract.WithXTolerance(1.5),
	)

	opts := e.Options()
	assert.Equal(t, domain.TableStrategyLattice, opts.Strategy)
	assert.Equal(t, extract.DefaultColumnGap, opts.ColumnGap)
	assert.Equal(t, 3, opts.MinRows)
	assert.Equal(t, 1.5, opts.XTolerance)
	assert.Nil(t, opts.Logger)
}

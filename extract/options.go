package extract

import (
	"log/slog"

	"github.com/magnifact/pdf-table-extractor/domain"
)

// Default tolerances, in points.
const (
	DefaultXTolerance            = 3.0
	DefaultYTolerance            = 3.0
	DefaultSnapTolerance         = 3.0
	DefaultJoinTolerance         = 3.0
	DefaultIntersectionTolerance = 3.0
	DefaultEdgeMinLength         = 3.0
	DefaultColumnGap             = 10.0
	DefaultMinRows               = 2

	// maxRuleThickness is the thickness below which a rectangle is treated
	// as a single ruled line rather than a box.
	maxRuleThickness = 2.0
)

// Options controls table detection.
type Options struct {
	// Strategy selects lattice, stream or auto detection.
	Strategy domain.TableStrategy

	// XTolerance is the largest horizontal gap between glyphs of one word.
	XTolerance float64

	// YTolerance is the largest vertical offset between glyphs of one line.
	YTolerance float64

	// SnapTolerance aligns nearly collinear edges.
	SnapTolerance float64

	// JoinTolerance merges collinear edges separated by small gaps.
	JoinTolerance float64

	// IntersectionTolerance lets edges that almost touch still intersect.
	IntersectionTolerance float64

	// EdgeMinLength drops edges shorter than this after joining.
	EdgeMinLength float64

	// ColumnGap is the smallest horizontal gap that separates stream columns.
	ColumnGap float64

	// MinRows is the fewest consecutive multi-column lines forming a stream table.
	MinRows int

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// Option is a functional option for configuring the Extractor.
type Option func(*Options)

// DefaultOptions returns the lattice strategy with default tolerances.
func DefaultOptions() Options {
	return Options{
		Strategy:              domain.TableStrategyLattice,
		XTolerance:            DefaultXTolerance,
		YTolerance:            DefaultYTolerance,
		SnapTolerance:         DefaultSnapTolerance,
		JoinTolerance:         DefaultJoinTolerance,
		IntersectionTolerance: DefaultIntersectionTolerance,
		EdgeMinLength:         DefaultEdgeMinLength,
		ColumnGap:             DefaultColumnGap,
		MinRows:               DefaultMinRows,
	}
}

// WithStrategy selects the detection strategy. Unknown strategies are ignored.
func WithStrategy(strategy domain.TableStrategy) Option {
	return func(o *Options) {
		if strategy.Valid() {
			o.Strategy = strategy
		}
	}
}

// WithXTolerance sets the horizontal glyph merge tolerance.
func WithXTolerance(tol float64) Option {
	return func(o *Options) {
		if tol >= 0 {
			o.XTolerance = tol
		}
	}
}

// WithYTolerance sets the vertical line grouping tolerance.
func WithYTolerance(tol float64) Option {
	return func(o *Options) {
		if tol >= 0 {
			o.YTolerance = tol
		}
	}
}

// WithSnapTolerance sets the edge snapping tolerance.
func WithSnapTolerance(tol float64) Option {
	return func(o *Options) {
		if tol >= 0 {
			o.SnapTolerance = tol
		}
	}
}

// WithJoinTolerance sets the collinear edge join tolerance.
func WithJoinTolerance(tol float64) Option {
	return func(o *Options) {
		if tol >= 0 {
			o.JoinTolerance = tol
		}
	}
}

// WithIntersectionTolerance sets how far apart edges may be and still intersect.
func WithIntersectionTolerance(tol float64) Option {
	return func(o *Options) {
		if tol >= 0 {
			o.IntersectionTolerance = tol
		}
	}
}

// WithColumnGap sets the stream column separation gap.
func WithColumnGap(gap float64) Option {
	return func(o *Options) {
		if gap > 0 {
			o.ColumnGap = gap
		}
	}
}

// WithMinRows sets the minimum number of rows of a stream table.
func WithMinRows(rows int) Option {
	return func(o *Options) {
		if rows > 0 {
			o.MinRows = rows
		}
	}
}

// WithLogger configures the extractor with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

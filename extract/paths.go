package extract

import (
	"github.com/ledongthuc/pdf"
)

// affine is a PDF transformation matrix [a b c d e f] applied to row
// vectors: x' = a*x + c*y + e, y' = b*x + d*y + f.
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

// then returns the transform that applies m followed by n.
func (m affine) then(n affine) affine {
	return affine{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// vec is a point in page coordinates (y grows downwards).
type vec struct {
	x, y float64
}

// segment is a straight painted line in page coordinates.
type segment struct {
	from, to vec
}

// pathWalker collects painted rectangles and line segments from a content
// stream, mapping them through the current transformation matrix.
type pathWalker struct {
	ctm   affine
	saved []affine

	current, start vec
	openSegments   []segment
	openRects      []bbox

	segments []segment
	rects    []bbox
}

func newPathWalker() *pathWalker {
	return &pathWalker{ctm: identity}
}

// walkPaths reads the path geometry of a page content stream.
func walkPaths(contents pdf.Value) (rects []bbox, segments []segment) {
	w := newPathWalker()
	pdf.Interpret(contents, func(stk *pdf.Stack, op string) {
		args := make([]pdf.Value, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		nums := make([]float64, len(args))
		for i, a := range args {
			nums[i] = a.Float64()
		}
		w.do(op, nums)
	})
	return w.rects, w.segments
}

func (w *pathWalker) point(x, y float64) vec {
	px, py := w.ctm.apply(x, y)
	return vec{x: px, y: -py}
}

func (w *pathWalker) do(op string, args []float64) {
	switch op {
	case "q":
		w.saved = append(w.saved, w.ctm)
	case "Q":
		if n := len(w.saved); n > 0 {
			w.ctm = w.saved[n-1]
			w.saved = w.saved[:n-1]
		}
	case "cm":
		if len(args) == 6 {
			var m affine
			copy(m[:], args)
			w.ctm = m.then(w.ctm)
		}

	case "m":
		if len(args) == 2 {
			w.current = w.point(args[0], args[1])
			w.start = w.current
		}
	case "l":
		if len(args) == 2 {
			p := w.point(args[0], args[1])
			w.openSegments = append(w.openSegments, segment{from: w.current, to: p})
			w.current = p
		}
	case "c":
		if len(args) == 6 {
			w.current = w.point(args[4], args[5])
		}
	case "v", "y":
		if len(args) == 4 {
			w.current = w.point(args[2], args[3])
		}
	case "h":
		w.closePath()
	case "re":
		if len(args) == 4 {
			w.rect(args[0], args[1], args[2], args[3])
		}

	case "S", "f", "F", "f*", "B", "B*":
		w.paint()
	case "s", "b", "b*":
		w.closePath()
		w.paint()
	case "n":
		w.openSegments = w.openSegments[:0]
		w.openRects = w.openRects[:0]
	}
}

func (w *pathWalker) closePath() {
	if w.current != w.start {
		w.openSegments = append(w.openSegments, segment{from: w.current, to: w.start})
	}
	w.current = w.start
}

func (w *pathWalker) rect(x, y, width, height float64) {
	corners := [4]vec{
		w.point(x, y),
		w.point(x+width, y),
		w.point(x+width, y+height),
		w.point(x, y+height),
	}
	b := bbox{x0: corners[0].x, x1: corners[0].x, top: corners[0].y, bottom: corners[0].y}
	for _, c := range corners[1:] {
		b = b.union(bbox{x0: c.x, x1: c.x, top: c.y, bottom: c.y})
	}
	w.openRects = append(w.openRects, b)
	w.current = corners[0]
	w.start = corners[0]
}

func (w *pathWalker) paint() {
	w.segments = append(w.segments, w.openSegments...)
	w.rects = append(w.rects, w.openRects...)
	w.openSegments = w.openSegments[:0]
	w.openRects = w.openRects[:0]
}

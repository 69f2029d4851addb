package extract

import (
	"math"
	"sort"
)

type orientation int

const (
	horizontal orientation = iota
	vertical
)

// edge is a ruled line segment. For horizontal edges pos is y and the span
// runs along x; for vertical edges pos is x and the span runs along y.
type edge struct {
	orient     orientation
	pos        float64
	start, end float64
}

// point is an edge intersection.
type point struct {
	x, y float64
}

// junction records the edges passing through an intersection.
type junction struct {
	h []int
	v []int
}

// latticeTables finds ruled tables on a page.
func latticeTables(pg page, words []word, o Options) []pageTable {
	hs, vs := edgesFromRects(pg.rects)
	lineHs, lineVs := edgesFromSegments(pg.segments)
	hs = append(hs, lineHs...)
	vs = append(vs, lineVs...)
	hs = joinEdges(snapEdges(hs, o.SnapTolerance), o.JoinTolerance, o.EdgeMinLength)
	vs = joinEdges(snapEdges(vs, o.SnapTolerance), o.JoinTolerance, o.EdgeMinLength)
	if len(hs) == 0 || len(vs) == 0 {
		return nil
	}

	junctions := intersect(hs, vs, o.IntersectionTolerance)
	cells := findCells(junctions)
	groups := groupCells(cells)

	tables := make([]pageTable, 0, len(groups))
	for _, group := range groups {
		tables = append(tables, layoutCells(group, words, o.YTolerance))
	}
	return tables
}

// edgesFromRects turns thin rectangles into a single edge and every other
// rectangle into its four sides.
func edgesFromRects(rects []bbox) (hs, vs []edge) {
	for _, r := range rects {
		w, h := r.width(), r.height()
		switch {
		case w <= maxRuleThickness && h <= maxRuleThickness:
			continue
		case h <= maxRuleThickness:
			hs = append(hs, edge{orient: horizontal, pos: (r.top + r.bottom) / 2, start: r.x0, end: r.x1})
		case w <= maxRuleThickness:
			vs = append(vs, edge{orient: vertical, pos: (r.x0 + r.x1) / 2, start: r.top, end: r.bottom})
		default:
			hs = append(hs,
				edge{orient: horizontal, pos: r.top, start: r.x0, end: r.x1},
				edge{orient: horizontal, pos: r.bottom, start: r.x0, end: r.x1},
			)
			vs = append(vs,
				edge{orient: vertical, pos: r.x0, start: r.top, end: r.bottom},
				edge{orient: vertical, pos: r.x1, start: r.top, end: r.bottom},
			)
		}
	}
	return hs, vs
}

// edgesFromSegments keeps the horizontal and vertical stroked lines.
// Diagonals and curves never form table rulings.
func edgesFromSegments(segments []segment) (hs, vs []edge) {
	for _, s := range segments {
		dx, dy := math.Abs(s.to.x-s.from.x), math.Abs(s.to.y-s.from.y)
		switch {
		case dy <= maxRuleThickness && dx > dy:
			hs = append(hs, edge{
				orient: horizontal,
				pos:    (s.from.y + s.to.y) / 2,
				start:  min(s.from.x, s.to.x),
				end:    max(s.from.x, s.to.x),
			})
		case dx <= maxRuleThickness && dy > dx:
			vs = append(vs, edge{
				orient: vertical,
				pos:    (s.from.x + s.to.x) / 2,
				start:  min(s.from.y, s.to.y),
				end:    max(s.from.y, s.to.y),
			})
		}
	}
	return hs, vs
}

// snapEdges moves edges whose positions chain within tol to the cluster mean.
func snapEdges(edges []edge, tol float64) []edge {
	if len(edges) == 0 {
		return nil
	}

	sorted := make([]edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].pos < sorted[j].pos
	})

	snapped := make([]edge, 0, len(sorted))
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i].pos-sorted[i-1].pos <= tol {
			continue
		}
		var sum float64
		for _, e := range sorted[start:i] {
			sum += e.pos
		}
		mean := sum / float64(i-start)
		for _, e := range sorted[start:i] {
			e.pos = mean
			snapped = append(snapped, e)
		}
		start = i
	}
	return snapped
}

// joinEdges merges overlapping collinear edges and those separated by at
// most tol, then drops edges shorter than minLen. Input must be snapped.
func joinEdges(edges []edge, tol, minLen float64) []edge {
	sorted := make([]edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].pos != sorted[j].pos {
			return sorted[i].pos < sorted[j].pos
		}
		return sorted[i].start < sorted[j].start
	})

	var joined []edge
	for _, e := range sorted {
		if n := len(joined); n > 0 {
			last := &joined[n-1]
			if last.pos == e.pos && e.start <= last.end+tol {
				last.end = max(last.end, e.end)
				continue
			}
		}
		joined = append(joined, e)
	}

	kept := joined[:0]
	for _, e := range joined {
		if e.end-e.start >= minLen {
			kept = append(kept, e)
		}
	}
	return kept
}

// intersect returns every point where a vertical edge crosses or touches a
// horizontal edge within tol.
func intersect(hs, vs []edge, tol float64) map[point]*junction {
	junctions := make(map[point]*junction)
	for vi, v := range vs {
		for hi, h := range hs {
			if v.pos < h.start-tol || v.pos > h.end+tol {
				continue
			}
			if h.pos < v.start-tol || h.pos > v.end+tol {
				continue
			}
			p := point{x: v.pos, y: h.pos}
			j, ok := junctions[p]
			if !ok {
				j = &junction{}
				junctions[p] = j
			}
			j.h = append(j.h, hi)
			j.v = append(j.v, vi)
		}
	}
	return junctions
}

func sharesEdge(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// findCells returns the smallest rectangles whose four corners are
// intersections connected by edges.
func findCells(junctions map[point]*junction) []bbox {
	points := make([]point, 0, len(junctions))
	byX := make(map[float64][]point)
	byY := make(map[float64][]point)
	for p := range junctions {
		points = append(points, p)
		byX[p.x] = append(byX[p.x], p)
		byY[p.y] = append(byY[p.y], p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].y != points[j].y {
			return points[i].y < points[j].y
		}
		return points[i].x < points[j].x
	})
	for _, col := range byX {
		sort.Slice(col, func(i, j int) bool { return col[i].y < col[j].y })
	}
	for _, row := range byY {
		sort.Slice(row, func(i, j int) bool { return row[i].x < row[j].x })
	}

	var cells []bbox
	for _, p := range points {
		jp := junctions[p]
	search:
		for _, below := range byX[p.x] {
			if below.y <= p.y || !sharesEdge(jp.v, junctions[below].v) {
				continue
			}
			for _, right := range byY[p.y] {
				if right.x <= p.x || !sharesEdge(jp.h, junctions[right].h) {
					continue
				}
				corner := point{x: right.x, y: below.y}
				jc, ok := junctions[corner]
				if !ok {
					continue
				}
				if sharesEdge(jc.v, junctions[right].v) && sharesEdge(jc.h, junctions[below].h) {
					cells = append(cells, bbox{x0: p.x, top: p.y, x1: right.x, bottom: below.y})
					break search
				}
			}
		}
	}
	return cells
}

// groupCells unions cells that share a corner. Groups of a single cell are
// boxes rather than tables and are dropped.
func groupCells(cells []bbox) [][]bbox {
	parent := make([]int, len(cells))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	owner := make(map[point]int)
	for i, c := range cells {
		for _, corner := range []point{{c.x0, c.top}, {c.x1, c.top}, {c.x0, c.bottom}, {c.x1, c.bottom}} {
			if j, ok := owner[corner]; ok {
				parent[find(i)] = find(j)
				continue
			}
			owner[corner] = i
		}
	}

	members := make(map[int][]bbox)
	var roots []int
	for i, c := range cells {
		root := find(i)
		if _, ok := members[root]; !ok {
			roots = append(roots, root)
		}
		members[root] = append(members[root], c)
	}

	var groups [][]bbox
	for _, root := range roots {
		if len(members[root]) > 1 {
			groups = append(groups, members[root])
		}
	}
	return groups
}

// layoutCells arranges cells on the grid of their distinct tops and lefts
// and fills each with the words whose centers it contains.
func layoutCells(cells []bbox, words []word, yTol float64) pageTable {
	bounds := cells[0]
	tops := make(map[float64]struct{})
	lefts := make(map[float64]struct{})
	for _, c := range cells {
		bounds = bounds.union(c)
		tops[c.top] = struct{}{}
		lefts[c.x0] = struct{}{}
	}

	rowIndex := indexOf(tops)
	colIndex := indexOf(lefts)

	cellWords := make([][]word, len(cells))
	for _, w := range words {
		cx, cy := w.centerX(), w.centerY()
		if !bounds.contains(cx, cy) {
			continue
		}
		for i, c := range cells {
			if c.contains(cx, cy) {
				cellWords[i] = append(cellWords[i], w)
				break
			}
		}
	}

	rows := make([][]string, len(rowIndex))
	for r := range rows {
		rows[r] = make([]string, len(colIndex))
	}
	for i, c := range cells {
		rows[rowIndex[c.top]][colIndex[c.x0]] = joinText(cellWords[i], yTol)
	}

	return pageTable{bounds: bounds, rows: rows}
}

// indexOf maps each value of set to its rank.
func indexOf(set map[float64]struct{}) map[float64]int {
	values := make([]float64, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Float64s(values)

	index := make(map[float64]int, len(values))
	for i, v := range values {
		index[v] = i
	}
	return index
}

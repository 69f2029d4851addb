// Package extract finds tables in PDF documents.
//
// Page content is read with github.com/ledongthuc/pdf, which exposes every
// shown glyph with its position and every rectangle painted with the "re"
// operator. Two detection strategies are built on top of that:
//
//   - Lattice uses ruled lines. Rectangles become horizontal and vertical
//     edges, edges are snapped and joined, their intersections define cells,
//     and cells that share corners form a table.
//   - Stream uses whitespace. Words are grouped into lines, lines are split
//     into chunks at wide gaps, and runs of lines with several chunks form a
//     table whose columns are the merged chunk spans.
//
// StrategyAuto runs lattice on every page and falls back to stream on pages
// without ruled tables.
//
// All coordinates inside the package are in points with the origin at the
// top-left of the page and y growing downwards.
package extract

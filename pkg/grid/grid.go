package grid

import (
	"fmt"
	"io"

	"github.com/arlogray/coverage-router/pkg/coreerr"
)

// Grid is a row-major R x C container of Cells. C is supplied by the
// caller (the declared width); R is derived from the source that built
// the grid. Grid is constructed once per session and mutated only
// through MarkScanned, MarkReachable, and DemoteUntraversable.
type Grid struct {
	rows, cols       int
	cells            []Cell
	traversableCount int
}

// New allocates an R x C grid of all-false cells. It is mainly useful
// for tests and for callers that build a grid without going through
// GridLoader.
func New(rows, cols int) *Grid {
	if rows < 0 || cols < 0 {
		panic("grid: negative dimension")
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// FromCells builds a Grid from a pre-populated row-major cell slice
// (len(cells) must equal rows*cols) and derives traversableCount. This
// is the constructor GridLoader uses once it has assembled every row.
func FromCells(rows, cols int, cells []Cell) *Grid {
	if len(cells) != rows*cols {
		panic("grid: cell slice length does not match rows*cols")
	}
	g := &Grid{rows: rows, cols: cols, cells: cells}
	for _, c := range cells {
		if c.Traversable {
			g.traversableCount++
		}
	}
	return g
}

func (g *Grid) index(r, c int) int { return r*g.cols + c }

// IsWithinBounds reports whether (r, c) is a valid coordinate.
func (g *Grid) IsWithinBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

func (g *Grid) checkBounds(r, c int) {
	if !g.IsWithinBounds(r, c) {
		coreerr.OutOfBoundsAccess(r, c, g.rows, g.cols)
	}
}

// RowCount returns R.
func (g *Grid) RowCount() int { return g.rows }

// ColCount returns C.
func (g *Grid) ColCount() int { return g.cols }

// TraversableCount returns the running count of currently traversable
// cells, updated on every flag transition that changes traversability.
func (g *Grid) TraversableCount() int { return g.traversableCount }

// Cell returns a copy of the cell at (r, c). Out-of-bounds access is a
// programmer error and aborts.
func (g *Grid) Cell(r, c int) Cell {
	g.checkBounds(r, c)
	return g.cells[g.index(r, c)]
}

// IsTraversable reports whether the agent may occupy (r, c).
func (g *Grid) IsTraversable(r, c int) bool {
	g.checkBounds(r, c)
	return g.cells[g.index(r, c)].Traversable
}

// IsScanned reports whether the sensor has observed (r, c) at least once.
func (g *Grid) IsScanned(r, c int) bool {
	g.checkBounds(r, c)
	return g.cells[g.index(r, c)].Scanned
}

// IsReachable reports whether (r, c) was marked reachable during
// normalization.
func (g *Grid) IsReachable(r, c int) bool {
	g.checkBounds(r, c)
	return g.cells[g.index(r, c)].Reachable
}

// MarkScanned marks (r, c) scanned. Scanned-flag mutation is monotonic:
// once true it is never cleared. The scanner marks cells regardless of
// traversability (see Agent.Scan); callers interpret scanned-but-
// untraversable as observed blocked space.
func (g *Grid) MarkScanned(r, c int) {
	g.checkBounds(r, c)
	g.cells[g.index(r, c)].Scanned = true
}

// MarkReachable marks (r, c) reachable. Set-once: calling it again on an
// already-reachable cell is a no-op.
func (g *Grid) MarkReachable(r, c int) {
	g.checkBounds(r, c)
	g.cells[g.index(r, c)].Reachable = true
}

// DemoteUntraversable clears the traversable flag at (r, c) and
// decrements traversableCount. Used by the reachability normalizer's
// demotion sweep on cells that are traversable but not reachable;
// traversable-flag mutation during normalization is monotonic
// (true -> false, never reversed, and never touched again once
// normalization completes).
func (g *Grid) DemoteUntraversable(r, c int) {
	g.checkBounds(r, c)
	idx := g.index(r, c)
	if g.cells[idx].Traversable {
		g.cells[idx].Traversable = false
		g.traversableCount--
	}
}

// Stats is the aggregate snapshot returned by Grid.Stats: a queryable
// diagnostic value rather than only a print side effect.
type Stats struct {
	Rows, Cols       int
	Traversable      int
	Scanned          int
	Reachable        int
	CoverageFraction float64
}

// Stats computes a diagnostic snapshot of the grid's current flag
// counts.
func (g *Grid) Stats() Stats {
	s := Stats{Rows: g.rows, Cols: g.cols, Traversable: g.traversableCount}
	for _, c := range g.cells {
		if c.Scanned {
			s.Scanned++
		}
		if c.Reachable {
			s.Reachable++
		}
	}
	if s.Traversable > 0 {
		s.CoverageFraction = float64(s.Scanned) / float64(s.Traversable)
	}
	return s
}

// Print writes a human-readable rendering of the grid to w: one
// character per cell, '#' for non-traversable, '.' for traversable
// unscanned, '*' for scanned.
func (g *Grid) Print(w io.Writer) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := g.cells[g.index(r, c)]
			switch {
			case !cell.Traversable:
				fmt.Fprint(w, "#")
			case cell.Scanned:
				fmt.Fprint(w, "*")
			default:
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w)
	}
}

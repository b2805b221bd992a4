// Package agent implements the discrete pose state machine: three
// primitive actions (forward, turn left, turn right) and a
// forward-cone sensor scan, all mediated through a single Grid borrow
// held for the lifetime of a plan.
package agent

import (
	"github.com/pkg/errors"

	"github.com/arlogray/coverage-router/pkg/coreerr"
	"github.com/arlogray/coverage-router/pkg/grid"
)

// Agent is constructed around a Grid reference and lives for the
// duration of a plan. It holds a borrow, not a copy, so the agent's
// and planner's views of scanned/traversable state can never silently
// diverge. Grid() returns the same borrow, never a copy, so every
// consumer shares one source of truth.
type Agent struct {
	pose Pose
	g    *grid.Grid
}

// New constructs an Agent at start, failing if start's position is out
// of bounds or non-traversable.
func New(g *grid.Grid, start Pose) (*Agent, error) {
	if !g.IsWithinBounds(start.Row, start.Col) {
		return nil, errors.Wrapf(coreerr.ErrInvalidMove, "start pose (%d,%d) out of bounds", start.Row, start.Col)
	}
	if !g.IsTraversable(start.Row, start.Col) {
		return nil, errors.Wrapf(coreerr.ErrInvalidMove, "start pose (%d,%d) not traversable", start.Row, start.Col)
	}
	return &Agent{pose: start, g: g}, nil
}

// Row returns the agent's current row.
func (a *Agent) Row() int { return a.pose.Row }

// Col returns the agent's current column.
func (a *Agent) Col() int { return a.pose.Col }

// Heading returns the agent's current heading.
func (a *Agent) Heading() Heading { return a.pose.Heading }

// Pose returns the agent's current pose.
func (a *Agent) Pose() Pose { return a.pose }

// Grid returns the borrowed Grid, never a copy.
func (a *Agent) Grid() *grid.Grid { return a.g }

// TurnLeft rotates the heading 90 degrees counterclockwise. It always
// succeeds and never consults the Grid.
func (a *Agent) TurnLeft() {
	a.pose.Heading = a.pose.Heading.TurnLeft()
}

// TurnRight rotates the heading 90 degrees clockwise. It always
// succeeds and never consults the Grid.
func (a *Agent) TurnRight() {
	a.pose.Heading = a.pose.Heading.TurnRight()
}

// MoveForward advances one cell in the current heading. The
// destination must lie within grid bounds and be traversable; if
// either precondition fails the pose is left unchanged and
// coreerr.ErrInvalidMove is returned.
func (a *Agent) MoveForward() error {
	nr, nc, ok := ForwardPosition(a.g, a.pose)
	if !ok {
		return errors.Wrapf(coreerr.ErrInvalidMove, "forward move from (%d,%d) heading %s is blocked",
			a.pose.Row, a.pose.Col, a.pose.Heading)
	}
	a.pose.Row, a.pose.Col = nr, nc
	return nil
}

// ForwardPosition computes the cell one step ahead of pose in its
// current heading and reports whether moving there is valid: in
// bounds and traversable. It does not mutate anything, so the planner
// can use it both to gate a real MoveForward and to simulate one
// without committing.
//
func ForwardPosition(g *grid.Grid, pose Pose) (row, col int, ok bool) {
	dr, dc := pose.Heading.Delta()
	nr, nc := pose.Row+dr, pose.Col+dc
	if !g.IsWithinBounds(nr, nc) {
		return 0, 0, false
	}
	if !g.IsTraversable(nr, nc) {
		return 0, 0, false
	}
	return nr, nc, true
}

// scanOffsets is the forward-cone table: for each
// heading, the union of cells whose offset from the current pose lies
// in a heading-specific 2x3 rectangle.
func scanOffsets(h Heading) (rowRange, colRange [2]int) {
	switch h {
	case North:
		return [2]int{-2, -1}, [2]int{-1, 1}
	case South:
		return [2]int{1, 2}, [2]int{-1, 1}
	case East:
		return [2]int{-1, 1}, [2]int{1, 2}
	case West:
		return [2]int{-1, 1}, [2]int{-2, -1}
	default:
		panic("agent: invalid heading")
	}
}

// ScanCells returns the absolute (row, col) coordinates of the forward
// cone for pose, without filtering for bounds or prior scan state. It
// is the pure building block both Scan and the planner's
// would-produce-new-scans simulation use.
func ScanCells(pose Pose) [][2]int {
	rowRange, colRange := scanOffsets(pose.Heading)
	cells := make([][2]int, 0, (rowRange[1]-rowRange[0]+1)*(colRange[1]-colRange[0]+1))
	for dr := rowRange[0]; dr <= rowRange[1]; dr++ {
		for dc := colRange[0]; dc <= colRange[1]; dc++ {
			cells = append(cells, [2]int{pose.Row + dr, pose.Col + dc})
		}
	}
	return cells
}

// Scan marks every in-bounds, not-yet-scanned cell in the forward cone
// as scanned, regardless of traversability, and returns the count of
// cells newly marked.
func (a *Agent) Scan() int {
	newly := 0
	for _, rc := range ScanCells(a.pose) {
		r, c := rc[0], rc[1]
		if !a.g.IsWithinBounds(r, c) {
			continue
		}
		if a.g.IsScanned(r, c) {
			continue
		}
		a.g.MarkScanned(r, c)
		newly++
	}
	return newly
}

// CountNewScans reports how many cells a scan from pose would newly
// mark, without mutating the Grid. The planner's greedy policy uses
// this as a pure predicate to decide whether a candidate move is worth
// taking.
func CountNewScans(g *grid.Grid, pose Pose) int {
	count := 0
	for _, rc := range ScanCells(pose) {
		r, c := rc[0], rc[1]
		if !g.IsWithinBounds(r, c) {
			continue
		}
		if !g.IsScanned(r, c) {
			count++
		}
	}
	return count
}

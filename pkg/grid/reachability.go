package grid

import (
	"math"

	"github.com/arlogray/coverage-router/pkg/common"
	"github.com/arlogray/coverage-router/pkg/coreerr"
)

// minSeedReachFraction is the pocket-rejection heuristic: a candidate
// seed is only accepted if a 4-connected traversable BFS from it
// discovers at least this fraction of all traversable cells. It guards
// against seeding inside a small isolated pocket; it is not a hard
// lower bound on achievable coverage and is deliberately named so a
// future revision can override it.
const minSeedReachFraction = 0.21

var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Normalize runs immediately after loading: it marks exactly the cells
// in the main contiguous traversable region as reachable, then demotes
// every other traversable cell to non-traversable. It returns
// coreerr.ErrNoReachableRegion if no candidate seed reaches the minimum
// fraction guard.
//
// The fill uses an explicit FIFO queue rather than recursion so a
// 1000x1000 grid cannot blow a platform call stack.
func Normalize(g *Grid) error {
	seedR, seedC, ok := findSeed(g)
	if !ok {
		return coreerr.ErrNoReachableRegion
	}

	floodFill(g, seedR, seedC)
	demote(g)
	return nil
}

// findSeed implements the seed-selection procedure: start at the grid
// center, BFS to the first traversable cell if the center is blocked,
// validate that seed's reach, and otherwise scan every traversable
// cell in row-major order for the first one that passes the reach
// threshold.
func findSeed(g *Grid) (row, col int, ok bool) {
	if g.rows == 0 || g.cols == 0 || g.traversableCount == 0 {
		return 0, 0, false
	}

	centerR := ceilDiv(g.rows, 2) - 1
	centerC := ceilDiv(g.cols, 2) - 1

	cr, cc := centerR, centerC
	if !g.cells[g.index(cr, cc)].Traversable {
		if r, c, found := nearestTraversable(g, cr, cc); found {
			cr, cc = r, c
		} else {
			return 0, 0, false
		}
	}

	threshold := int(math.Ceil(minSeedReachFraction * float64(g.traversableCount)))
	if reach := bfsReach(g, cr, cc); reach >= threshold {
		return cr, cc, true
	}

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if !g.cells[g.index(r, c)].Traversable {
				continue
			}
			if reach := bfsReach(g, r, c); reach >= threshold {
				return r, c, true
			}
		}
	}

	return 0, 0, false
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

// nearestTraversable BFS's outward in 4-connected neighbors from (r, c)
// (which is itself non-traversable) until the first traversable cell is
// found.
func nearestTraversable(g *Grid, r, c int) (int, int, bool) {
	type point struct{ r, c int }
	visited := make(map[point]bool, g.rows*g.cols/4+1)
	queue := []point{{r, c}}
	visited[point{r, c}] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, off := range neighborOffsets {
			nr, nc := p.r+off[0], p.c+off[1]
			if !g.IsWithinBounds(nr, nc) {
				continue
			}
			np := point{nr, nc}
			if visited[np] {
				continue
			}
			visited[np] = true
			if g.cells[g.index(nr, nc)].Traversable {
				return nr, nc, true
			}
			queue = append(queue, np)
		}
	}

	return 0, 0, false
}

// bfsReach counts how many traversable cells are 4-connected to (r, c),
// without mutating the grid.
func bfsReach(g *Grid, r, c int) int {
	type point struct{ r, c int }
	visited := map[point]bool{{r, c}: true}
	queue := []point{{r, c}}
	count := 0

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		count++

		for _, off := range neighborOffsets {
			nr, nc := p.r+off[0], p.c+off[1]
			if !g.IsWithinBounds(nr, nc) || !g.cells[g.index(nr, nc)].Traversable {
				continue
			}
			np := point{nr, nc}
			if visited[np] {
				continue
			}
			visited[np] = true
			queue = append(queue, np)
		}
	}

	return count
}

// floodFill marks every traversable cell 4-connected to (seedR, seedC)
// as reachable, using an explicit queue.
func floodFill(g *Grid, seedR, seedC int) {
	type point struct{ r, c int }
	start := point{seedR, seedC}
	queue := []point{start}
	g.cells[g.index(seedR, seedC)].Reachable = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		for _, off := range neighborOffsets {
			nr, nc := p.r+off[0], p.c+off[1]
			if !g.IsWithinBounds(nr, nc) {
				continue
			}
			idx := g.index(nr, nc)
			if !g.cells[idx].Traversable || g.cells[idx].Reachable {
				continue
			}
			g.cells[idx].Reachable = true
			queue = append(queue, point{nr, nc})
		}
	}
}

// demote sweeps every cell and demotes any traversable-but-unreachable
// cell, logging one warning line per demotion.
func demote(g *Grid) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			idx := g.index(r, c)
			if g.cells[idx].Traversable && !g.cells[idx].Reachable {
				g.DemoteUntraversable(r, c)
				common.WarningFields(common.Fields{"row": r, "col": c},
					"demoting unreachable traversable cell (%d,%d)", r, c)
			}
		}
	}
}

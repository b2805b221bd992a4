package planner

import (
	"container/heap"

	"github.com/arlogray/coverage-router/pkg/agent"
	"github.com/arlogray/coverage-router/pkg/grid"
)

// astarNode is a single A* search node: the state it reached, the move
// sequence that reached it, and its g/f costs.
type astarNode struct {
	state agent.Pose
	moves []agent.Move
	g     int
	f     int
	index int
}

type nodeQueue []*astarNode

func (q nodeQueue) Len() int            { return len(q) }
func (q nodeQueue) Less(i, j int) bool  { return q[i].f < q[j].f }
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *nodeQueue) Push(x interface{}) {
	n := x.(*astarNode)
	n.index = len(*q)
	*q = append(*q, n)
}
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

func manhattan(row, col, targetRow, targetCol int) int {
	d := row - targetRow
	if d < 0 {
		d = -d
	}
	e := col - targetCol
	if e < 0 {
		e = -e
	}
	return d + e
}

// findPath runs A* from start to any pose whose position equals
// (targetRow, targetCol); heading at the goal is irrelevant. The
// heuristic is Manhattan distance to the target position, admissible
// because a forward move changes exactly one of |row-target|,
// |col-target| by at most one and turns cost 1 without moving (so the
// heuristic never overestimates). The visited set keys on the full
// state (row, col, heading), not position alone, because a turn
// changes cost-to-goal without changing position. The queue orders by
// f alone; among nodes with equal f the pop order is whatever
// container/heap's sift produces, which is deterministic but is not
// insertion order. Returns the move
// sequence reconstructed to the goal, or nil if the open set drains.
func findPath(g *grid.Grid, start agent.Pose, targetRow, targetCol int) []agent.Move {
	visited := make(map[agent.Pose]bool)

	open := &nodeQueue{}
	heap.Init(open)
	heap.Push(open, &astarNode{
		state: start,
		g:     0,
		f:     manhattan(start.Row, start.Col, targetRow, targetCol),
	})

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)

		if visited[current.state] {
			continue
		}
		visited[current.state] = true

		if current.state.Row == targetRow && current.state.Col == targetCol {
			return current.moves
		}

		for _, expansion := range expand(g, current.state) {
			if visited[expansion.state] {
				continue
			}
			moves := make([]agent.Move, len(current.moves)+1)
			copy(moves, current.moves)
			moves[len(current.moves)] = expansion.move
			gCost := current.g + 1
			heap.Push(open, &astarNode{
				state: expansion.state,
				moves: moves,
				g:     gCost,
				f:     gCost + manhattan(expansion.state.Row, expansion.state.Col, targetRow, targetCol),
			})
		}
	}

	return nil
}

type expansion struct {
	move  agent.Move
	state agent.Pose
}

// expand lists every valid successor state reachable by a single
// primitive action from pose: turns always succeed (only heading
// changes); forward succeeds iff the cell ahead is in bounds and
// traversable.
func expand(g *grid.Grid, pose agent.Pose) []expansion {
	out := make([]expansion, 0, 3)

	out = append(out, expansion{agent.TurnLeft, agent.Pose{Row: pose.Row, Col: pose.Col, Heading: pose.Heading.TurnLeft()}})
	out = append(out, expansion{agent.TurnRight, agent.Pose{Row: pose.Row, Col: pose.Col, Heading: pose.Heading.TurnRight()}})

	if nr, nc, ok := agent.ForwardPosition(g, pose); ok {
		out = append(out, expansion{agent.Forward, agent.Pose{Row: nr, Col: nc, Heading: pose.Heading}})
	}

	return out
}

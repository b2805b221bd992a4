// Package planner implements the greedy coverage sweep with an A*
// reroute fallback: the orchestration layer that drives an Agent
// across a Grid until a target fraction of traversable cells has been
// scanned or the move budget is exhausted.
package planner

import (
	"math"

	"github.com/arlogray/coverage-router/pkg/agent"
	"github.com/arlogray/coverage-router/pkg/common"
)

const (
	minSearchFraction = 0.01
	maxSearchFraction = 1.0
)

// Reason names why the planner stopped.
type Reason int

const (
	// CoverageMet means scanned_count reached target_scans.
	CoverageMet Reason = iota
	// MoveLimitReached means total_moves reached move_limit before
	// coverage was met.
	MoveLimitReached
	// PlanInfeasible means the reroute branch found no route to any
	// remaining unscanned cell and no other branch could fire.
	PlanInfeasible
)

// String renders the reason's name, used in CLI output and in the
// persisted move log.
func (r Reason) String() string {
	switch r {
	case CoverageMet:
		return "coverage_met"
	case MoveLimitReached:
		return "move_limit_reached"
	case PlanInfeasible:
		return "plan_infeasible"
	default:
		return "unknown"
	}
}

// PlanResult is the planner's terminal report: the move log plus the
// counts and the reason the loop stopped. The bare spec only returns
// the move sequence; this is a pure reporting addition used by the
// CLI and by replay verification, and changes no planning decision.
type PlanResult struct {
	MoveLog      []agent.Move
	ScannedCount int
	TargetScans  int
	TotalMoves   int
	Reason       Reason
}

// Planner orchestrates one coverage plan over a borrowed Agent. It is
// constructed per plan invocation.
type Planner struct {
	agent          *agent.Agent
	searchFraction float64
	moveLimit      int
	targetScans    int

	scannedCount int
	totalMoves   int
	moveLog      []agent.Move

	nearestRow, nearestCol int
}

// New constructs a Planner, clamping out-of-range arguments with a
// warning: searchFraction is clamped into [0.01, 1.0], moveLimit is
// clamped to at least 1.
func New(a *agent.Agent, searchFraction float64, moveLimit int) *Planner {
	if searchFraction < minSearchFraction {
		common.Warning("search fraction %v below minimum; clamping to %v", searchFraction, minSearchFraction)
		searchFraction = minSearchFraction
	} else if searchFraction > maxSearchFraction {
		common.Warning("search fraction %v above maximum; clamping to %v", searchFraction, maxSearchFraction)
		searchFraction = maxSearchFraction
	}
	if moveLimit < 1 {
		common.Warning("move limit %d below minimum; clamping to 1", moveLimit)
		moveLimit = 1
	}

	target := int(math.Ceil(searchFraction * float64(a.Grid().TraversableCount())))

	return &Planner{
		agent:          a,
		searchFraction: searchFraction,
		moveLimit:      moveLimit,
		targetScans:    target,
	}
}

// SearchFraction returns the (clamped) search fraction.
func (p *Planner) SearchFraction() float64 { return p.searchFraction }

// NearestUnscannedRow returns the row of the most recently identified
// reroute target.
func (p *Planner) NearestUnscannedRow() int { return p.nearestRow }

// NearestUnscannedCol returns the column of the most recently
// identified reroute target.
func (p *Planner) NearestUnscannedCol() int { return p.nearestCol }

func (p *Planner) terminated() bool {
	return p.scannedCount >= p.targetScans || p.totalMoves >= p.moveLimit
}

// FindRoute drives the planner to termination and returns the ordered
// move log. It performs one initial scan at the starting pose before
// entering the loop, which does not count as a move, then repeatedly
// applies the first applicable branch of the ordered policy: advance,
// turn-left-then-advance, turn-right-then-advance, or reroute via A*.
// If none fire, the plan terminates as infeasible.
func (p *Planner) FindRoute() []agent.Move {
	p.scannedCount += p.agent.Scan()

	for !p.terminated() {
		if p.tryAdvance() {
			continue
		}
		if p.tryTurnThenAdvance(turnLeftKind) {
			continue
		}
		if p.tryTurnThenAdvance(turnRightKind) {
			continue
		}
		if p.reroute() {
			continue
		}
		break
	}

	return p.moveLog
}

// Run drives FindRoute to completion and reports why it stopped.
func (p *Planner) Run() PlanResult {
	log := p.FindRoute()

	reason := MoveLimitReached
	switch {
	case p.scannedCount >= p.targetScans:
		reason = CoverageMet
	case p.totalMoves < p.moveLimit:
		reason = PlanInfeasible
	}

	return PlanResult{
		MoveLog:      log,
		ScannedCount: p.scannedCount,
		TargetScans:  p.targetScans,
		TotalMoves:   p.totalMoves,
		Reason:       reason,
	}
}

func (p *Planner) commit(mv agent.Move) {
	switch mv {
	case agent.Forward:
		if err := p.agent.MoveForward(); err != nil {
			// Every primitive committed here is pre-validated by its
			// caller; a failure at this point means the grid changed
			// out from under a single in-flight plan, which cannot
			// happen under this package's exclusive-write discipline.
			panic(err)
		}
	case agent.TurnLeft:
		p.agent.TurnLeft()
	case agent.TurnRight:
		p.agent.TurnRight()
	}

	p.totalMoves++
	p.moveLog = append(p.moveLog, mv)
	p.scannedCount += p.agent.Scan()
}

// tryAdvance is policy branch 1: commit a forward move if it is valid
// and would, by pure simulation, newly scan at least one cell.
func (p *Planner) tryAdvance() bool {
	pose := p.agent.Pose()
	nr, nc, ok := agent.ForwardPosition(p.agent.Grid(), pose)
	if !ok {
		return false
	}
	simulated := agent.Pose{Row: nr, Col: nc, Heading: pose.Heading}
	if agent.CountNewScans(p.agent.Grid(), simulated) == 0 {
		return false
	}
	p.commit(agent.Forward)
	return true
}

type turnKind int

const (
	turnLeftKind turnKind = iota
	turnRightKind
)

// tryTurnThenAdvance is policy branches 2 and 3: turn, then advance if
// the combination is valid and would newly scan at least one cell.
// Evaluated entirely by pure simulation before anything is committed.
func (p *Planner) tryTurnThenAdvance(kind turnKind) bool {
	pose := p.agent.Pose()
	var turnedHeading agent.Heading
	var turnMove agent.Move
	if kind == turnLeftKind {
		turnedHeading = pose.Heading.TurnLeft()
		turnMove = agent.TurnLeft
	} else {
		turnedHeading = pose.Heading.TurnRight()
		turnMove = agent.TurnRight
	}

	turnedPose := agent.Pose{Row: pose.Row, Col: pose.Col, Heading: turnedHeading}
	nr, nc, ok := agent.ForwardPosition(p.agent.Grid(), turnedPose)
	if !ok {
		return false
	}
	simulated := agent.Pose{Row: nr, Col: nc, Heading: turnedHeading}
	if agent.CountNewScans(p.agent.Grid(), simulated) == 0 {
		return false
	}

	p.commit(turnMove)
	if p.terminated() {
		return true
	}
	if _, _, ok := agent.ForwardPosition(p.agent.Grid(), p.agent.Pose()); ok {
		p.commit(agent.Forward)
	}
	return true
}

// reroute is policy branch 4: find the nearest unscanned traversable
// cell by Manhattan distance, run A* to it, and execute the returned
// move sequence one action at a time, scanning after every action and
// halting as soon as termination holds. It returns false (causing the
// planner to terminate as infeasible) if no unscanned cell remains or
// A* finds no route to it.
func (p *Planner) reroute() bool {
	row, col, found := p.nearestUnscanned()
	if !found {
		return false
	}
	p.nearestRow, p.nearestCol = row, col

	moves := findPath(p.agent.Grid(), p.agent.Pose(), row, col)
	if len(moves) == 0 {
		return false
	}

	for _, mv := range moves {
		p.commit(mv)
		if p.terminated() {
			break
		}
	}
	return true
}

// nearestUnscanned scans the grid for the traversable, not-yet-scanned
// cell with minimum Manhattan distance to the agent's current
// position; ties are broken in row-major order.
func (p *Planner) nearestUnscanned() (row, col int, found bool) {
	g := p.agent.Grid()
	pose := p.agent.Pose()
	best := -1

	for r := 0; r < g.RowCount(); r++ {
		for c := 0; c < g.ColCount(); c++ {
			if !g.IsTraversable(r, c) || g.IsScanned(r, c) {
				continue
			}
			d := manhattan(pose.Row, pose.Col, r, c)
			if best == -1 || d < best {
				best = d
				row, col = r, c
				found = true
			}
		}
	}

	return row, col, found
}

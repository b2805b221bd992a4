// Package replay verifies the move-log fidelity invariant: replaying a
// plan's move log from its initial pose against a fresh grid must
// reproduce the final pose and the exact scanned-cell set the original
// run produced.
package replay

import (
	"github.com/pkg/errors"

	"github.com/arlogray/coverage-router/pkg/agent"
	"github.com/arlogray/coverage-router/pkg/grid"
)

// Run replays moves against freshAgent, which must start at the same
// pose the original plan started from and wrap a grid with the same
// traversability layout (scanned/reachable flags are irrelevant to
// replay and are expected to start clear). It performs the same
// initial scan the planner performs before its loop, then applies
// each move followed by a scan, exactly mirroring planner.Planner's
// commit sequence. It returns the resulting pose.
func Run(freshAgent *agent.Agent, moves []agent.Move) (agent.Pose, error) {
	freshAgent.Scan()

	for i, mv := range moves {
		switch mv {
		case agent.Forward:
			if err := freshAgent.MoveForward(); err != nil {
				return agent.Pose{}, errors.Wrapf(err, "replay: move %d (%s) failed", i, mv)
			}
		case agent.TurnLeft:
			freshAgent.TurnLeft()
		case agent.TurnRight:
			freshAgent.TurnRight()
		}
		freshAgent.Scan()
	}

	return freshAgent.Pose(), nil
}

// Divergence describes one disagreement between the original run and
// its replay.
type Divergence struct {
	Row, Col int
	Field    string // "scanned" or "final_pose"
}

// Verify replays moves against freshAgent and compares the result to
// the original run's final pose and scanned grid. It returns an empty
// divergence slice when the replay reproduces the original exactly.
func Verify(freshAgent *agent.Agent, moves []agent.Move, wantFinal agent.Pose, original *grid.Grid) ([]Divergence, error) {
	gotFinal, err := Run(freshAgent, moves)
	if err != nil {
		return nil, err
	}

	var diffs []Divergence
	if gotFinal != wantFinal {
		diffs = append(diffs, Divergence{Row: gotFinal.Row, Col: gotFinal.Col, Field: "final_pose"})
	}

	g := freshAgent.Grid()
	for r := 0; r < g.RowCount(); r++ {
		for c := 0; c < g.ColCount(); c++ {
			if g.IsScanned(r, c) != original.IsScanned(r, c) {
				diffs = append(diffs, Divergence{Row: r, Col: c, Field: "scanned"})
			}
		}
	}

	return diffs, nil
}

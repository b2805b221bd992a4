package replay_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlogray/coverage-router/pkg/agent"
	"github.com/arlogray/coverage-router/pkg/grid"
	"github.com/arlogray/coverage-router/pkg/planner"
	"github.com/arlogray/coverage-router/pkg/replay"
)

func openGrid(rows, cols int) *grid.Grid {
	cells := make([]grid.Cell, rows*cols)
	for i := range cells {
		cells[i] = grid.Cell{Traversable: true}
	}
	return grid.FromCells(rows, cols, cells)
}

func TestReplayReproducesOriginalPlanExactly(t *testing.T) {
	start := agent.Pose{Row: 6, Col: 6, Heading: agent.North}

	originalGrid := openGrid(15, 15)
	a, err := agent.New(originalGrid, start)
	require.NoError(t, err)

	p := planner.New(a, 0.5, 2000)
	result := p.Run()
	require.NotEmpty(t, result.MoveLog)

	freshGrid := openGrid(15, 15)
	freshAgent, err := agent.New(freshGrid, start)
	require.NoError(t, err)

	diffs, err := replay.Verify(freshAgent, result.MoveLog, a.Pose(), originalGrid)
	require.NoError(t, err)
	assert.Empty(t, diffs, "replay must reproduce the original plan's final pose and scanned set")
}

func TestMoveLogRoundTrip(t *testing.T) {
	start := agent.Pose{Row: 1, Col: 2, Heading: agent.East}
	moves := []agent.Move{agent.Forward, agent.TurnLeft, agent.Forward, agent.TurnRight}

	log := replay.NewMoveLog(start, moves, 10, 8, 4, planner.CoverageMet.String())

	var buf bytes.Buffer
	require.NoError(t, log.Write(&buf))

	decoded, err := replay.ReadMoveLog(&buf)
	require.NoError(t, err)

	gotStart, err := decoded.StartPose()
	require.NoError(t, err)
	assert.Equal(t, start, gotStart)

	gotMoves, err := decoded.Decode()
	require.NoError(t, err)
	assert.Equal(t, moves, gotMoves)
	assert.Equal(t, 10, decoded.ScannedCount)
}

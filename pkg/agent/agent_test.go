package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlogray/coverage-router/pkg/agent"
	"github.com/arlogray/coverage-router/pkg/coreerr"
	"github.com/arlogray/coverage-router/pkg/grid"
)

func fullyTraversableGrid(rows, cols int) *grid.Grid {
	cells := make([]grid.Cell, rows*cols)
	for i := range cells {
		cells[i] = grid.Cell{Traversable: true}
	}
	return grid.FromCells(rows, cols, cells)
}

func TestNewRejectsOutOfBoundsStart(t *testing.T) {
	g := fullyTraversableGrid(3, 3)
	_, err := agent.New(g, agent.Pose{Row: 5, Col: 0, Heading: agent.North})
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerr.ErrInvalidMove)
}

func TestNewRejectsNonTraversableStart(t *testing.T) {
	cells := []grid.Cell{{}, {}, {}, {}}
	g := grid.FromCells(2, 2, cells)
	_, err := agent.New(g, agent.Pose{Row: 0, Col: 0, Heading: agent.North})
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerr.ErrInvalidMove)
}

func TestMoveForwardBlockedByBounds(t *testing.T) {
	g := fullyTraversableGrid(2, 2)
	a, err := agent.New(g, agent.Pose{Row: 0, Col: 0, Heading: agent.North})
	require.NoError(t, err)

	err = a.MoveForward()
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerr.ErrInvalidMove)
	assert.Equal(t, 0, a.Row())
	assert.Equal(t, 0, a.Col())
}

func TestMoveForwardBlockedByNonTraversable(t *testing.T) {
	cells := []grid.Cell{
		{Traversable: true}, {Traversable: false},
		{Traversable: true}, {Traversable: true},
	}
	g := grid.FromCells(2, 2, cells)
	a, err := agent.New(g, agent.Pose{Row: 0, Col: 0, Heading: agent.East})
	require.NoError(t, err)

	err = a.MoveForward()
	require.Error(t, err)
	assert.Equal(t, 0, a.Row())
	assert.Equal(t, 0, a.Col())
}

func TestMoveForwardAdvancesPosition(t *testing.T) {
	g := fullyTraversableGrid(3, 3)
	a, err := agent.New(g, agent.Pose{Row: 1, Col: 1, Heading: agent.South})
	require.NoError(t, err)

	require.NoError(t, a.MoveForward())
	assert.Equal(t, 2, a.Row())
	assert.Equal(t, 1, a.Col())
}

func TestTurnsDoNotConsultGrid(t *testing.T) {
	g := fullyTraversableGrid(1, 1)
	a, err := agent.New(g, agent.Pose{Row: 0, Col: 0, Heading: agent.North})
	require.NoError(t, err)

	a.TurnLeft()
	assert.Equal(t, agent.West, a.Heading())
	a.TurnRight()
	a.TurnRight()
	assert.Equal(t, agent.East, a.Heading())
}

func TestScanMarksForwardConeOnly(t *testing.T) {
	// Wide grid so the forward cone never clips bounds; agent faces
	// east at (3,3) of a 7x7 grid.
	g := fullyTraversableGrid(7, 7)
	a, err := agent.New(g, agent.Pose{Row: 3, Col: 3, Heading: agent.East})
	require.NoError(t, err)

	newly := a.Scan()
	// East cone: rowRange [-1,1], colRange [1,2] -> 3 rows x 2 cols = 6 cells.
	assert.Equal(t, 6, newly)
	assert.True(t, g.IsScanned(2, 4))
	assert.True(t, g.IsScanned(3, 5))
	assert.True(t, g.IsScanned(4, 4))
	assert.False(t, g.IsScanned(3, 3), "agent's own cell is not in the forward cone")

	// Scanning again from the same pose marks nothing new.
	assert.Equal(t, 0, a.Scan())
}

func TestScanClipsAtBounds(t *testing.T) {
	g := fullyTraversableGrid(3, 3)
	a, err := agent.New(g, agent.Pose{Row: 0, Col: 0, Heading: agent.North})
	require.NoError(t, err)

	// North cone from (0,0) is entirely out of bounds.
	assert.Equal(t, 0, a.Scan())
}

func TestCountNewScansDoesNotMutate(t *testing.T) {
	g := fullyTraversableGrid(5, 5)
	pose := agent.Pose{Row: 2, Col: 2, Heading: agent.North}

	count := agent.CountNewScans(g, pose)
	assert.Greater(t, count, 0)
	assert.False(t, g.IsScanned(0, 1), "CountNewScans must not mutate the grid")
}

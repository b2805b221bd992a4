package grid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlogray/coverage-router/pkg/grid"
	"github.com/arlogray/coverage-router/pkg/gridio"
)

func TestNormalizeDemotesIsolatedPocket(t *testing.T) {
	// An 8-cell ring in the top-left is the only region large enough
	// to clear the minimum reach fraction; a 2-cell strip on the right
	// and a single isolated cell on the bottom-left must be demoted.
	rows := "1,1,1,0,1\n" +
		"1,0,1,0,1\n" +
		"1,1,1,0,0\n" +
		"0,0,0,0,0\n" +
		"1,0,0,0,0\n"
	src := gridio.NewCSVSource(strings.NewReader(rows))
	g, err := grid.Load(src, 5)
	require.NoError(t, err)
	require.Equal(t, 11, g.TraversableCount())

	err = grid.Normalize(g)
	require.NoError(t, err)

	assert.True(t, g.IsTraversable(0, 0))
	assert.True(t, g.IsTraversable(0, 1))
	assert.True(t, g.IsTraversable(0, 2))
	assert.True(t, g.IsTraversable(1, 0))
	assert.True(t, g.IsTraversable(1, 2))
	assert.True(t, g.IsTraversable(2, 0))
	assert.True(t, g.IsTraversable(2, 1))
	assert.True(t, g.IsTraversable(2, 2))

	assert.False(t, g.IsTraversable(0, 4), "disconnected strip must be demoted")
	assert.False(t, g.IsTraversable(1, 4), "disconnected strip must be demoted")
	assert.False(t, g.IsTraversable(4, 0), "isolated single cell must be demoted")

	assert.Equal(t, 8, g.TraversableCount())
}

func TestNormalizeSurvivesCenterCellOn3x2Example(t *testing.T) {
	// [[1,0,1],[0,1,0]], width=3: three mutually isolated traversable
	// cells. Only (1,1) may survive normalization.
	src := gridio.NewCSVSource(strings.NewReader("1,0,1\n0,1,0\n"))
	g, err := grid.Load(src, 3)
	require.NoError(t, err)
	require.Equal(t, 3, g.TraversableCount())

	require.NoError(t, grid.Normalize(g))

	assert.Equal(t, 1, g.TraversableCount())
	assert.True(t, g.IsTraversable(1, 1))
	assert.False(t, g.IsTraversable(0, 0))
	assert.False(t, g.IsTraversable(0, 2))
}

func TestNormalizeKeepsSingleContiguousRegion(t *testing.T) {
	src := gridio.NewCSVSource(strings.NewReader("1,1,1\n1,0,1\n1,1,1\n"))
	g, err := grid.Load(src, 3)
	require.NoError(t, err)
	before := g.TraversableCount()

	require.NoError(t, grid.Normalize(g))

	assert.Equal(t, before, g.TraversableCount(), "fully connected ring must not lose any traversable cell")
	for r := 0; r < g.RowCount(); r++ {
		for c := 0; c < g.ColCount(); c++ {
			if g.IsTraversable(r, c) {
				assert.True(t, g.IsReachable(r, c))
			}
		}
	}
}

func TestNormalizeFailsWhenNoTraversableCells(t *testing.T) {
	g := grid.New(3, 3)
	err := grid.Normalize(g)
	require.Error(t, err)
}

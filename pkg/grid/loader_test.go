package grid_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlogray/coverage-router/pkg/coreerr"
	"github.com/arlogray/coverage-router/pkg/grid"
	"github.com/arlogray/coverage-router/pkg/gridio"
)

func TestLoadPadsShortRows(t *testing.T) {
	src := gridio.NewCSVSource(strings.NewReader("1,0\n1\n"))
	g, err := grid.Load(src, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, g.RowCount())
	assert.Equal(t, 3, g.ColCount())
	assert.True(t, g.IsTraversable(0, 0))
	assert.False(t, g.IsTraversable(0, 2), "padded cell must be non-traversable")
	assert.False(t, g.IsTraversable(1, 1), "padded cell must be non-traversable")
}

func TestLoadTreatsMalformedTokenAsNonTraversable(t *testing.T) {
	src := gridio.NewCSVSource(strings.NewReader("1,x,1\n0,1,0\n"))
	g, err := grid.Load(src, 3)
	require.NoError(t, err)

	assert.False(t, g.IsTraversable(0, 1), "non-{0,1} token must become non-traversable")
	assert.True(t, g.IsTraversable(0, 0))
	assert.True(t, g.IsTraversable(0, 2))
}

func TestLoadTruncatesLongRows(t *testing.T) {
	src := gridio.NewCSVSource(strings.NewReader("1,1,1,1\n"))
	g, err := grid.Load(src, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, g.RowCount())
	assert.Equal(t, 2, g.ColCount())
}

type failingSource struct{}

func (failingSource) NextRow() ([]string, bool) { return nil, false }
func (failingSource) Err() error                { return errors.New("disk error") }

func TestLoadWrapsSourceFailure(t *testing.T) {
	_, err := grid.Load(failingSource{}, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, coreerr.ErrInputOpenFailure)
}

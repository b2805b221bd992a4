package grid

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/arlogray/coverage-router/pkg/common"
	"github.com/arlogray/coverage-router/pkg/coreerr"
)

// RowSource is the minimal pull interface GridLoader drives. A source
// yields one row of text tokens at a time without requiring the whole
// input to be buffered in memory; Err distinguishes a clean end of
// input (nil) from a read failure that should surface as
// coreerr.ErrInputOpenFailure. The concrete tabular reader (e.g. a CSV
// file) is an external collaborator per the engine's scope and lives
// in pkg/gridio; GridLoader only depends on this interface.
type RowSource interface {
	NextRow() (row []string, ok bool)
	Err() error
}

// Load consumes source and builds a Grid of the declared width. Every
// row is sanitized independently: a non-integer or out-of-{0,1} token
// becomes a non-traversable cell with a warning; a short row is padded
// with non-traversable cells; a long row is truncated. R is the number
// of rows actually consumed. Load fails only if the source reports an
// error opening or reading the underlying stream; all content-level
// defects are recovered locally.
func Load(source RowSource, declaredWidth int) (*Grid, error) {
	if declaredWidth < 0 {
		declaredWidth = 0
	}

	var cells []Cell
	rows := 0

	for {
		row, ok := source.NextRow()
		if !ok {
			break
		}
		cells = append(cells, sanitizeRow(row, declaredWidth, rows)...)
		rows++
	}

	if err := source.Err(); err != nil {
		return nil, errors.Wrap(coreerr.ErrInputOpenFailure, err.Error())
	}

	return FromCells(rows, declaredWidth, cells), nil
}

// sanitizeRow converts one raw token row into exactly declaredWidth
// cells, padding or truncating as needed.
func sanitizeRow(row []string, declaredWidth, rowIndex int) []Cell {
	cells := make([]Cell, 0, declaredWidth)

	n := len(row)
	if n > declaredWidth {
		common.WarningFields(common.Fields{"row": rowIndex, "got": n, "want": declaredWidth},
			"row %d has %d tokens, want %d; truncating", rowIndex, n, declaredWidth)
		n = declaredWidth
	}

	for i := 0; i < n; i++ {
		cells = append(cells, tokenToCell(row[i], rowIndex, i))
	}

	if len(cells) < declaredWidth {
		missing := declaredWidth - len(cells)
		common.WarningFields(common.Fields{"row": rowIndex, "got": len(cells), "want": declaredWidth},
			"row %d has %d tokens, want %d; padding %d non-traversable cells", rowIndex, len(cells), declaredWidth, missing)
		for i := 0; i < missing; i++ {
			cells = append(cells, Cell{})
		}
	}

	return cells
}

// tokenToCell interprets a single token: "1" is traversable, "0" is
// non-traversable, and anything else (including a non-integer token)
// is non-traversable with a warning.
func tokenToCell(token string, rowIndex, colIndex int) Cell {
	trimmed := strings.TrimSpace(token)
	v, err := strconv.Atoi(trimmed)
	if err != nil || (v != 0 && v != 1) {
		common.WarningFields(common.Fields{"row": rowIndex, "col": colIndex, "token": token},
			"malformed token %q at (%d,%d); treating as non-traversable", token, rowIndex, colIndex)
		return Cell{}
	}
	return Cell{Traversable: v == 1}
}

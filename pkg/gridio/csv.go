// Package gridio is the tabular-file row-stream adapter feeding
// pkg/grid's loader: it makes no parsing or sanitization decisions of
// its own, only splits a CSV stream into rows of raw string tokens for
// GridLoader to interpret.
package gridio

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/pkg/errors"
)

// CSVSource implements grid.RowSource over an encoding/csv.Reader.
// FieldsPerRecord is left unconstrained (set to -1) so ragged rows
// reach GridLoader's own padding/truncation logic instead of being
// rejected by the csv package before the core ever sees them.
type CSVSource struct {
	reader *csv.Reader
	closer io.Closer
	err    error
}

// Open opens path as a comma-separated tabular source. The only
// failure this layer reports is that the source could not be opened
// at all; row-level defects are left to GridLoader to recover from.
func Open(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "gridio: opening %q", path)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	return &CSVSource{reader: r, closer: f}, nil
}

// NewCSVSource wraps an already-open reader, useful for tests and for
// in-memory sources (strings.Reader, bytes.Reader) that need no Close.
func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVSource{reader: cr}
}

// NextRow returns the next row of raw tokens, or ok=false at end of
// input or on a read error (check Err to distinguish the two).
func (s *CSVSource) NextRow() (row []string, ok bool) {
	if s.err != nil {
		return nil, false
	}
	record, err := s.reader.Read()
	if err == io.EOF {
		return nil, false
	}
	if err != nil {
		s.err = err
		return nil, false
	}
	return record, true
}

// Err reports a read failure, if any occurred before end of input.
func (s *CSVSource) Err() error { return s.err }

// Close releases the underlying file, if any.
func (s *CSVSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

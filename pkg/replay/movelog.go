package replay

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/arlogray/coverage-router/pkg/agent"
)

// MoveLog is the on-disk persistence format for a planner's move
// sequence, written by the plan command and consumed by the replay
// command. It is a flat, fixed-shape record with no nesting or schema
// evolution need, so it is encoded directly with encoding/json rather
// than a heavier serializer.
type MoveLog struct {
	StartRow     int      `json:"start_row"`
	StartCol     int      `json:"start_col"`
	StartHeading string   `json:"start_heading"`
	Moves        []string `json:"moves"`
	ScannedCount int      `json:"scanned_count"`
	TargetScans  int      `json:"target_scans"`
	TotalMoves   int      `json:"total_moves"`
	Reason       string   `json:"reason"`
}

func headingName(h agent.Heading) string { return h.String() }

func parseHeading(s string) (agent.Heading, error) {
	for _, h := range agent.AllHeadings {
		if h.String() == s {
			return h, nil
		}
	}
	return 0, errors.Errorf("replay: unknown heading %q", s)
}

func parseMove(s string) (agent.Move, error) {
	switch s {
	case agent.Forward.String():
		return agent.Forward, nil
	case agent.TurnLeft.String():
		return agent.TurnLeft, nil
	case agent.TurnRight.String():
		return agent.TurnRight, nil
	default:
		return 0, errors.Errorf("replay: unknown move %q", s)
	}
}

// NewMoveLog builds a MoveLog from a starting pose and a move
// sequence, ready for Write.
func NewMoveLog(start agent.Pose, moves []agent.Move, scannedCount, targetScans, totalMoves int, reason string) MoveLog {
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	return MoveLog{
		StartRow:     start.Row,
		StartCol:     start.Col,
		StartHeading: headingName(start.Heading),
		Moves:        names,
		ScannedCount: scannedCount,
		TargetScans:  targetScans,
		TotalMoves:   totalMoves,
		Reason:       reason,
	}
}

// Write serializes the move log as indented JSON.
func (m MoveLog) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(m), "replay: writing move log")
}

// ReadMoveLog deserializes a move log previously written by Write.
func ReadMoveLog(r io.Reader) (MoveLog, error) {
	var m MoveLog
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return MoveLog{}, errors.Wrap(err, "replay: reading move log")
	}
	return m, nil
}

// StartPose decodes the log's recorded starting pose.
func (m MoveLog) StartPose() (agent.Pose, error) {
	h, err := parseHeading(m.StartHeading)
	if err != nil {
		return agent.Pose{}, err
	}
	return agent.Pose{Row: m.StartRow, Col: m.StartCol, Heading: h}, nil
}

// Decode decodes the log's recorded move sequence.
func (m MoveLog) Decode() ([]agent.Move, error) {
	moves := make([]agent.Move, len(m.Moves))
	for i, s := range m.Moves {
		mv, err := parseMove(s)
		if err != nil {
			return nil, err
		}
		moves[i] = mv
	}
	return moves, nil
}

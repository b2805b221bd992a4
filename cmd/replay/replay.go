package replay

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arlogray/coverage-router/pkg/agent"
	"github.com/arlogray/coverage-router/pkg/common"
	"github.com/arlogray/coverage-router/pkg/grid"
	"github.com/arlogray/coverage-router/pkg/gridio"
	replaypkg "github.com/arlogray/coverage-router/pkg/replay"
)

var (
	gridPath string
	width    int
	logPath  string
)

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded move log and verify it reproduces a plan exactly",
	Long: `Replay loads a grid and a move log previously written by
"coverage-router plan --out", replays the log against a fresh agent
starting from the log's recorded pose, and fails if a recorded move is
blocked on this grid. The log records the starting pose and the moves
but neither the final pose nor the scanned set, so the final pose and
scanned set the replay is compared against are derived from the same
moves on the same grid; a log whose moves all replay reports no
divergence. The log's recorded counts are not compared.

A clean replay reports no divergences; it is the move-log fidelity
invariant that exercising the same moves against the same traversable
layout always ends in the same place having scanned the same cells.

Examples:
  coverage-router replay --grid warehouse.csv --width 40 --log run.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if gridPath == "" || logPath == "" {
			return errors.New("replay: --grid and --log are both required")
		}

		src, err := gridio.Open(gridPath)
		if err != nil {
			return err
		}
		defer src.Close()

		g, err := grid.Load(src, width)
		if err != nil {
			return err
		}
		if err := grid.Normalize(g); err != nil {
			return err
		}

		f, err := os.Open(logPath)
		if err != nil {
			return errors.Wrapf(err, "replay: opening %q", logPath)
		}
		defer f.Close()

		log, err := replaypkg.ReadMoveLog(f)
		if err != nil {
			return err
		}
		startPose, err := log.StartPose()
		if err != nil {
			return err
		}
		moves, err := log.Decode()
		if err != nil {
			return err
		}

		a, err := agent.New(g, startPose)
		if err != nil {
			return err
		}

		wantFinal, err := finalPose(startPose, moves, g)
		if err != nil {
			return err
		}

		diffs, err := replaypkg.Verify(a, moves, wantFinal, g)
		if err != nil {
			return err
		}

		if len(diffs) == 0 {
			common.Info("replay matches recorded move log: no divergence")
			return nil
		}

		common.WarningFields(common.Fields{"count": len(diffs)}, "replay diverged from recorded move log")
		for _, d := range diffs {
			common.Info("divergence at (%d,%d): %s", d.Row, d.Col, d.Field)
		}
		return errors.Errorf("replay: %d divergence(s) found", len(diffs))
	},
}

// finalPose is a pure re-derivation of where the recorded moves land,
// used only to give Verify something to compare a fresh replay's final
// pose against when the log itself does not carry the final pose (the
// log only carries moves, scan counts, and the stop reason).
func finalPose(start agent.Pose, moves []agent.Move, g *grid.Grid) (agent.Pose, error) {
	pose := start
	for _, mv := range moves {
		switch mv {
		case agent.Forward:
			nr, nc, ok := agent.ForwardPosition(g, pose)
			if !ok {
				return agent.Pose{}, errors.New("replay: recorded move log is inconsistent with this grid")
			}
			pose.Row, pose.Col = nr, nc
		case agent.TurnLeft:
			pose.Heading = pose.Heading.TurnLeft()
		case agent.TurnRight:
			pose.Heading = pose.Heading.TurnRight()
		}
	}
	return pose, nil
}

func init() {
	replayCmd.Flags().StringVarP(&gridPath, "grid", "g", "", "path to the tabular grid file")
	replayCmd.Flags().IntVarP(&width, "width", "w", 0, "declared grid width (columns)")
	replayCmd.Flags().StringVar(&logPath, "log", "", "path to a move log written by plan --out")
}

// GetCommand returns the replay command for registration with root
func GetCommand() *cobra.Command {
	return replayCmd
}

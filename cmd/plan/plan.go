package plan

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arlogray/coverage-router/pkg/agent"
	"github.com/arlogray/coverage-router/pkg/common"
	"github.com/arlogray/coverage-router/pkg/config"
	"github.com/arlogray/coverage-router/pkg/grid"
	"github.com/arlogray/coverage-router/pkg/gridio"
	"github.com/arlogray/coverage-router/pkg/planner"
	"github.com/arlogray/coverage-router/pkg/replay"
	"github.com/arlogray/coverage-router/pkg/ui"
)

var (
	gridPath   string
	width      int
	startRow   int
	startCol   int
	fraction   float64
	limit      int
	outPath    string
	configPath string
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan and execute a coverage run over a tabular grid",
	Long: `Plan loads an occupancy grid from a CSV-like tabular file,
normalizes it to its single contiguous reachable region, places an
agent at the starting pose, and drives the greedy coverage sweep with
A* reroute fallback until the target coverage fraction is scanned or
the move budget is exhausted.

The resulting move log is printed to stdout and, if --out is given,
persisted as JSON for later replay verification.

Examples:
  coverage-router plan --grid warehouse.csv --width 40
  coverage-router plan --grid warehouse.csv --width 40 --fraction 0.9 --limit 5000 --out run.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if gridPath != "" {
			sess.GridPath = gridPath
		}
		if width != 0 {
			sess.DeclaredWidth = width
		}
		if cmd.Flags().Changed("fraction") {
			sess.SearchFraction = fraction
		}
		if cmd.Flags().Changed("limit") {
			sess.MoveLimit = limit
		}
		if sess.GridPath == "" {
			return errors.New("plan: --grid (or config grid_path) is required")
		}

		spin := ui.NewSpinner("loading grid")
		spin.Start()

		src, err := gridio.Open(sess.GridPath)
		if err != nil {
			spin.Stop()
			return err
		}
		defer src.Close()

		g, err := grid.Load(src, sess.DeclaredWidth)
		if err != nil {
			spin.Stop()
			return err
		}

		spin.UpdateMessage("normalizing reachable region")
		if err := grid.Normalize(g); err != nil {
			spin.Stop()
			return err
		}

		a, err := agent.New(g, agent.Pose{Row: startRow, Col: startCol, Heading: agent.North})
		if err != nil {
			spin.Stop()
			return err
		}

		spin.UpdateMessage("planning coverage route")
		p := planner.New(a, sess.SearchFraction, sess.MoveLimit)
		result := p.Run()
		spin.Stop()

		common.InfoFields(common.Fields{
			"scanned":     result.ScannedCount,
			"target":      result.TargetScans,
			"total_moves": result.TotalMoves,
			"reason":      result.Reason.String(),
		}, "plan complete")

		for i, mv := range result.MoveLog {
			fmt.Printf("%4d  %s\n", i, mv)
		}

		if outPath != "" {
			log := replay.NewMoveLog(
				agent.Pose{Row: startRow, Col: startCol, Heading: agent.North},
				result.MoveLog, result.ScannedCount, result.TargetScans, result.TotalMoves, result.Reason.String(),
			)
			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrapf(err, "plan: creating %q", outPath)
			}
			defer f.Close()
			if err := log.Write(f); err != nil {
				return err
			}
			common.Info("move log written to %s", outPath)
		}

		return nil
	},
}

func init() {
	planCmd.Flags().StringVarP(&gridPath, "grid", "g", "", "path to the tabular grid file")
	planCmd.Flags().IntVarP(&width, "width", "w", 0, "declared grid width (columns)")
	planCmd.Flags().IntVar(&startRow, "start-row", 0, "agent starting row")
	planCmd.Flags().IntVar(&startCol, "start-col", 0, "agent starting column")
	planCmd.Flags().Float64VarP(&fraction, "fraction", "f", 1.0, "target coverage fraction, clamped to [0.01, 1.0]")
	planCmd.Flags().IntVarP(&limit, "limit", "l", 10000, "move budget")
	planCmd.Flags().StringVarP(&outPath, "out", "o", "", "path to write the move log as JSON")
	planCmd.Flags().StringVarP(&configPath, "config", "c", "", "optional YAML config file (see pkg/config.Session)")
}

// GetCommand returns the plan command for registration with root
func GetCommand() *cobra.Command {
	return planCmd
}

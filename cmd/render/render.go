package render

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arlogray/coverage-router/pkg/common"
	"github.com/arlogray/coverage-router/pkg/grid"
	"github.com/arlogray/coverage-router/pkg/gridio"
	"github.com/arlogray/coverage-router/pkg/ui"
)

var (
	gridPath string
	width    int
	skipNorm bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a grid's traversable/scanned state as ASCII art",
	Long: `Render loads a tabular grid file and prints it as a character
grid: '#' for non-traversable cells, '.' for traversable unscanned
cells, and '*' for scanned cells.

By default the grid is normalized to its single contiguous reachable
region before rendering, the same step plan performs; --skip-normalize
prints the grid exactly as loaded, pockets and all.

Examples:
  coverage-router render --grid warehouse.csv --width 40
  coverage-router render --grid warehouse.csv --width 40 --skip-normalize`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if gridPath == "" {
			return errors.New("render: --grid is required")
		}

		spin := ui.NewSpinner("loading grid")
		spin.Start()

		src, err := gridio.Open(gridPath)
		if err != nil {
			spin.Stop()
			return err
		}
		defer src.Close()

		g, err := grid.Load(src, width)
		if err != nil {
			spin.Stop()
			return err
		}

		if !skipNorm {
			spin.UpdateMessage("normalizing reachable region")
			if err := grid.Normalize(g); err != nil {
				spin.Stop()
				return err
			}
		}
		spin.Stop()

		stats := g.Stats()
		common.InfoFields(common.Fields{
			"rows": stats.Rows, "cols": stats.Cols,
			"traversable": stats.Traversable, "reachable": stats.Reachable,
		}, "rendering grid")

		g.Print(os.Stdout)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&gridPath, "grid", "g", "", "path to the tabular grid file")
	renderCmd.Flags().IntVarP(&width, "width", "w", 0, "declared grid width (columns)")
	renderCmd.Flags().BoolVar(&skipNorm, "skip-normalize", false, "print the grid as loaded, without reachability normalization")
}

// GetCommand returns the render command for registration with root
func GetCommand() *cobra.Command {
	return renderCmd
}

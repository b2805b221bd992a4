package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arlogray/coverage-router/cmd/plan"
	"github.com/arlogray/coverage-router/cmd/render"
	"github.com/arlogray/coverage-router/cmd/replay"
	"github.com/arlogray/coverage-router/pkg/common"
)

var (
	// Global flags
	verbose    bool
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "coverage-router",
	Short: "Grid coverage-routing engine for a mobile agent",
	Long: `coverage-router loads an occupancy grid, normalizes it to a single
contiguous reachable region, and plans a move sequence that scans at
least a configurable fraction of the traversable cells within a
bounded move budget.

It provides commands for:
  - Planning and executing a coverage run over a tabular grid
  - Rendering a grid's traversable/scanned state as ASCII art
  - Replaying a recorded move log to verify it reproduces a plan exactly`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		common.VerboseEnabled = verbose
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main() exactly once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional YAML config file (see pkg/config.Session)")

	rootCmd.AddCommand(plan.GetCommand())
	rootCmd.AddCommand(render.GetCommand())
	rootCmd.AddCommand(replay.GetCommand())
}

// ConfigFile returns the --config flag value for subcommands that need
// to resolve a pkg/config.Session.
func ConfigFile() string { return configFile }

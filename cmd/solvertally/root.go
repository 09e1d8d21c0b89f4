package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for solvertally.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solvertally",
		Short: "Tally puzzle solvers from a puzzle archive",
		Long: `solvertally crawls a puzzle archive, renders each puzzle's solution page in a
headless browser, and counts how many puzzles every credited solver has solved.

Results are written as two snapshot files and kept in a local run history,
from which leaderboards and run-to-run comparisons can be produced.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewDigitsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

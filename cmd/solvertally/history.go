package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/solvertally/internal/config"
	"github.com/nao1215/solvertally/internal/database"
)

// defaultHistoryLimit is how many runs history lists by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scrape runs",
		Long: `History lists the scrape runs stored in the history database, newest first.
The run IDs can be passed to 'report --run' and 'compare --with'.

Examples:
  solvertally history
  solvertally history -l 5 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output the run list as JSON")
	cmd.Flags().String("db-dir", "",
		"Directory of the run history database (default: XDG data directory)")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := openHistory(dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	return printHistory(cmd.OutOrStdout(), runs)
}

// errNoHistory is returned when no history database exists yet.
var errNoHistory = errors.New("no run history found (run 'solvertally scrape' first)")

// openHistory opens an existing history database without creating one.
func openHistory(dbDir string) (*database.TallyDB, error) {
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNoHistory
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func printHistory(w io.Writer, runs []database.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	fmt.Fprintf(w, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(w, "  %-6s  %-20s  %-8s  %-8s  %-8s  %s\n", "ID", "Finished", "Puzzles", "Solvers", "Solves", "Prefix")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-6d  %-20s  %-8d  %-8d  %-8d  %s\n",
			r.ID,
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			r.PuzzleCount,
			r.SolverCount,
			r.SolveCount,
			r.Prefix,
		)
	}

	return nil
}

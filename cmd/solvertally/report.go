package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/solvertally/internal/config"
	"github.com/nao1215/solvertally/internal/database"
	"github.com/nao1215/solvertally/internal/model"
	"github.com/nao1215/solvertally/internal/report"
	"github.com/nao1215/solvertally/internal/snapshot"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the solver leaderboard",
		Long: `Report ranks solvers by the number of puzzles they solved. Solvers with the
same count share a rank.

By default the latest run in the history database is used. Use --run to pick
an earlier run (see 'solvertally history'), or --from-snapshot to read the
snapshot files written by the last scrape instead.

Examples:
  # Top 20 of the latest run
  solvertally report --top 20

  # Markdown leaderboard of run 3
  solvertally report --run 3 --markdown > leaderboard.md

  # Leaderboard from the snapshot files in ./out
  solvertally report --from-snapshot -o out --json`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().Int64("run", 0,
		"Run ID to report on (default: latest run)")
	cmd.Flags().Bool("from-snapshot", false,
		"Read the snapshot files instead of the history database")
	cmd.Flags().Int("top", 0,
		"Show only the first N solvers (0 shows all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	addOutputFlags(cmd)

	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
	cmd.MarkFlagsMutuallyExclusive("run", "from-snapshot")

	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyOutputFlags(cmd, cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	fromSnapshot, err := flags.GetBool("from-snapshot")
	if err != nil {
		return err
	}
	runID, err := flags.GetInt64("run")
	if err != nil {
		return err
	}
	top, err := flags.GetInt("top")
	if err != nil {
		return err
	}

	var (
		tally  *model.Tally
		source string
	)
	if fromSnapshot {
		tally, err = snapshot.ReadTally(cfg.CountsPath(), cfg.PuzzlesPath())
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		source = cfg.CountsPath()
	} else {
		tally, source, err = loadRunTally(cmd.Context(), cfg, runID)
		if err != nil {
			return err
		}
	}

	lb := model.NewLeaderboard(source, tally, top)

	w, err := reportWriter(cmd, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, err = w.Write(lb)
	return err
}

// loadRunTally loads the tally of runID, or of the latest run when runID is
// zero, and describes where it came from.
func loadRunTally(ctx context.Context, cfg *config.Config, runID int64) (*model.Tally, string, error) {
	db, err := openHistory(cfg.DBDir)
	if err != nil {
		return nil, "", err
	}
	defer db.Close()

	var rec *database.RunRecord
	if runID > 0 {
		rec, err = db.GetRun(ctx, runID)
	} else {
		rec, err = db.LatestRun(ctx)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to find run: %w", err)
	}
	if rec == nil {
		return nil, "", errNoHistory
	}

	tally, err := db.LoadTally(ctx, rec.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load run %d: %w", rec.ID, err)
	}

	return tally, describeRun(rec), nil
}

func describeRun(rec *database.RunRecord) string {
	return fmt.Sprintf("run #%d (%s)", rec.ID, rec.FinishedAt.Local().Format("2006-01-02 15:04"))
}

// reportWriter picks the writer for the --json and --markdown flags.
func reportWriter(cmd *cobra.Command, out io.Writer) (report.Writer, error) {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	switch {
	case jsonOutput:
		return report.NewJSONWriter(out, report.WithPrettyPrint()), nil
	case markdownOutput:
		return report.NewMarkdownWriter(out), nil
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(getVerboseFlag(cmd))), nil
	}
}

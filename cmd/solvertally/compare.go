package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/solvertally/internal/config"
	"github.com/nao1215/solvertally/internal/database"
	"github.com/nao1215/solvertally/internal/model"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the latest run with an earlier one",
		Long: `Compare shows how the solver tally changed between two recorded runs:
solvers that appeared, solvers that dropped out, and solvers whose solve
count went up or down.

The latest run is compared with the run before it, or with the run given by
--with. At least two runs must be recorded unless --with is used.

Examples:
  solvertally compare
  solvertally compare --with 3 --markdown`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().Int64P("with", "w", 0,
		"Run ID to compare the latest run against (see 'solvertally history')")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().String("db-dir", "",
		"Directory of the run history database (default: XDG data directory)")

	cmd.MarkFlagsMutuallyExclusive("json", "markdown")

	return cmd
}

// ComparisonResult is the outcome of comparing two runs.
type ComparisonResult struct {
	Previous database.RunRecord `json:"previous"`
	Current  database.RunRecord `json:"current"`
	Diff     *model.TallyDiff   `json:"diff"`
}

func runCompareCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	withID, err := flags.GetInt64("with")
	if err != nil {
		return err
	}
	jsonOutput, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	dbDir, err := flags.GetString("db-dir")
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

	ctx := cmd.Context()

	runs, err := db.ListRuns(ctx, 2)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		return errNoHistory
	}
	current := runs[0]

	var previous database.RunRecord
	switch {
	case withID > 0:
		rec, err := db.GetRun(ctx, withID)
		if err != nil {
			return fmt.Errorf("failed to get run %d: %w", withID, err)
		}
		previous = *rec
	case len(runs) < 2:
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
	default:
		previous = runs[1]
	}

	before, err := db.LoadTally(ctx, previous.ID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", previous.ID, err)
	}
	after, err := db.LoadTally(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", current.ID, err)
	}

	result := &ComparisonResult{
		Previous: previous,
		Current:  current,
		Diff:     model.CompareTallies(before, after),
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return outputComparisonJSON(out, result)
	case markdownOutput:
		return outputComparisonMarkdown(out, result)
	default:
		return outputComparisonText(out, result)
	}
}

func outputComparisonJSON(w io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputComparisonMarkdown(w io.Writer, result *ComparisonResult) error {
	diff := result.Diff
	md := markdown.NewMarkdown(w)

	md.H1(fmt.Sprintf("Run Comparison: #%d vs #%d", result.Previous.ID, result.Current.ID))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"", "Previous", "Current", "Change"},
		Rows: [][]string{
			{"Run", "#" + strconv.FormatInt(result.Previous.ID, 10), "#" + strconv.FormatInt(result.Current.ID, 10), "-"},
			{"Finished", describeTime(result.Previous), describeTime(result.Current), "-"},
			{"Solves", strconv.Itoa(diff.SolvesBefore), strconv.Itoa(diff.SolvesAfter), formatDelta(diff.SolvesAfter - diff.SolvesBefore)},
		},
	})
	md.PlainText("")

	if !diff.HasChanges() {
		md.Tip("No solver changed between these runs.")
		return md.Build()
	}

	writeChangeTable(md, "New Solvers", diff.NewSolvers)
	writeChangeTable(md, "Changed Solvers", diff.Changed)
	writeChangeTable(md, "Dropped Solvers", diff.DroppedSolvers)

	md.PlainText(fmt.Sprintf("*%d solvers unchanged*", diff.UnchangedCount))

	return md.Build()
}

func writeChangeTable(md *markdown.Markdown, title string, changes []model.SolverChange) {
	if len(changes) == 0 {
		return
	}

	md.H2(fmt.Sprintf("%s (%d)", title, len(changes)))
	md.PlainText("")

	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{
			c.Solver,
			strconv.Itoa(c.Before),
			strconv.Itoa(c.After),
			formatDelta(c.Delta()),
			strings.Join(c.NewPuzzles, ", "),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Solver", "Before", "After", "Change", "New Puzzles"},
		Rows:   rows,
	})
	md.PlainText("")
}

func outputComparisonText(w io.Writer, result *ComparisonResult) error {
	diff := result.Diff

	fmt.Fprintf(w, "Run comparison: #%d -> #%d\n", result.Previous.ID, result.Current.ID)
	fmt.Fprintf(w, "\nPrevious run: %s\n", describeTime(result.Previous))
	fmt.Fprintf(w, "Current run:  %s\n", describeTime(result.Current))
	fmt.Fprintf(w, "Solves:       %d -> %d (%s)\n", diff.SolvesBefore, diff.SolvesAfter, formatDelta(diff.SolvesAfter-diff.SolvesBefore))

	if !diff.HasChanges() {
		_, err := fmt.Fprintln(w, "\nNo solver changed.")
		return err
	}

	writeChangeList(w, "New solvers", "+", diff.NewSolvers)
	writeChangeList(w, "Changed solvers", "~", diff.Changed)
	writeChangeList(w, "Dropped solvers", "-", diff.DroppedSolvers)

	_, err := fmt.Fprintf(w, "\nUnchanged: %d solvers\n", diff.UnchangedCount)
	return err
}

func writeChangeList(w io.Writer, title, marker string, changes []model.SolverChange) {
	if len(changes) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s (%d):\n", title, len(changes))
	for _, c := range changes {
		fmt.Fprintf(w, "  [%s] %-30s %d -> %d (%s)\n", marker, c.Solver, c.Before, c.After, formatDelta(c.Delta()))
	}
}

func describeTime(rec database.RunRecord) string {
	return rec.FinishedAt.Local().Format("2006-01-02 15:04:05")
}

// formatDelta formats a delta value with sign.
func formatDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return strconv.Itoa(delta)
}

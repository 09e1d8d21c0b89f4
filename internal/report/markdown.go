package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/solvertally/internal/model"
)

// pieSlices caps how many solvers get their own slice in the chart.
const pieSlices = 10

// MarkdownWriter outputs leaderboards as a Markdown document.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs lb in Markdown format.
func (w *MarkdownWriter) Write(lb *model.Leaderboard) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Solver Leaderboard")
	md.PlainText("")

	w.writeSummary(md, lb)
	w.writeEntries(md, lb)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, lb *model.Leaderboard) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + lb.Source + "`"},
			{"Solvers", strconv.Itoa(lb.TotalSolvers)},
			{"Solves", strconv.Itoa(lb.TotalSolves)},
		},
	})
	md.PlainText("")

	if len(lb.Entries) > 0 {
		w.writePieChart(md, lb)
	}
}

// writePieChart charts the solve share of the leading entries.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, lb *model.Leaderboard) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Solves by Solver"),
		piechart.WithShowData(true),
	)

	rest := lb.TotalSolves
	for i, e := range lb.Entries {
		if i >= pieSlices {
			break
		}
		chart.LabelAndIntValue(e.Solver, uint64(e.Solves)) //nolint:gosec // solve counts are never negative
		rest -= e.Solves
	}
	if rest > 0 {
		chart.LabelAndIntValue("Others", uint64(rest)) //nolint:gosec
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeEntries(md *markdown.Markdown, lb *model.Leaderboard) {
	md.H2("Leaderboard")
	md.PlainText("")

	if len(lb.Entries) == 0 {
		md.Note("No solvers recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(lb.Entries))
	for _, e := range lb.Entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Rank),
			escapeCell(e.Solver),
			strconv.Itoa(e.Solves),
			escapeCell(strings.Join(e.Puzzles, ", ")),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Solver", "Solves", "Puzzles"},
		Rows:   rows,
	})
	md.PlainText("")
}

// escapeCell keeps a pipe in a name from splitting the table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

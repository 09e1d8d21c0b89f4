package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/solvertally/internal/model"
)

// SimpleWriter outputs a fixed-width text table for terminals.
type SimpleWriter struct {
	baseWriter

	// verbose lists each solver's puzzles under its row.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose lists the solved puzzles for every entry.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs lb as text.
func (w *SimpleWriter) Write(lb *model.Leaderboard) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, lb)
	w.writeEntries(&sb, lb)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, lb *model.Leaderboard) {
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                    SOLVER LEADERBOARD\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Source:   %s\n", lb.Source)
	fmt.Fprintf(sb, "Solvers:  %d\n", lb.TotalSolvers)
	fmt.Fprintf(sb, "Solves:   %d\n", lb.TotalSolves)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeEntries(sb *strings.Builder, lb *model.Leaderboard) {
	if len(lb.Entries) == 0 {
		sb.WriteString("No solvers recorded.\n")
		return
	}

	fmt.Fprintf(sb, "%-6s %-36s %s\n", "RANK", "SOLVER", "SOLVES")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")

	for _, e := range lb.Entries {
		fmt.Fprintf(sb, "%-6d %-36s %d\n", e.Rank, e.Solver, e.Solves)
		if w.verbose {
			for _, p := range e.Puzzles {
				fmt.Fprintf(sb, "       - %s\n", p)
			}
		}
	}

	if shown := len(lb.Entries); shown < lb.TotalSolvers {
		fmt.Fprintf(sb, "\n(%d of %d solvers shown)\n", shown, lb.TotalSolvers)
	}
}

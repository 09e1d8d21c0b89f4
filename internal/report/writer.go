package report

import (
	"io"

	"github.com/nao1215/solvertally/internal/model"
)

// Writer defines the interface for leaderboard output.
type Writer interface {
	// Write renders lb to the configured destination and returns the
	// number of bytes written.
	Write(lb *model.Leaderboard) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

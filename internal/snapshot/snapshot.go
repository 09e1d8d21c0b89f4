package snapshot

import (
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/solvertally/internal/model"
)

// Writer writes tally snapshots to a fixed pair of paths.
type Writer struct {
	countsPath  string
	puzzlesPath string
	logger      *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter returns a Writer for the given counts and puzzles file paths.
func NewWriter(countsPath, puzzlesPath string, opts ...WriterOption) *Writer {
	w := &Writer{
		countsPath:  countsPath,
		puzzlesPath: puzzlesPath,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write stores tally.Counts and tally.Puzzles. The two files are written
// concurrently and are created or truncated, along with any missing parent
// directories. A nil tally is stored as empty.
func (w *Writer) Write(ctx context.Context, tally *model.Tally) error {
	if tally == nil {
		tally = model.NewTally()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.store(ctx, w.countsPath, tally.Counts)
	})
	g.Go(func() error {
		return w.store(ctx, w.puzzlesPath, tally.Puzzles)
	})

	return g.Wait()
}

func (w *Writer) store(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		_ = f.Close() //nolint:errcheck
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	w.logger.Info("stored snapshot", "path", path)

	return nil
}

// ReadCounts decodes a counts file written by Writer.
func ReadCounts(path string) (map[string]int, error) {
	counts := make(map[string]int)
	if err := load(path, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// ReadPuzzles decodes a puzzles file written by Writer.
func ReadPuzzles(path string) (map[string][]string, error) {
	puzzles := make(map[string][]string)
	if err := load(path, &puzzles); err != nil {
		return nil, err
	}
	return puzzles, nil
}

// ReadTally rebuilds a Tally from a counts and a puzzles file.
func ReadTally(countsPath, puzzlesPath string) (*model.Tally, error) {
	counts, err := ReadCounts(countsPath)
	if err != nil {
		return nil, err
	}
	puzzles, err := ReadPuzzles(puzzlesPath)
	if err != nil {
		return nil, err
	}
	return &model.Tally{Counts: counts, Puzzles: puzzles}, nil
}

func load(path string, v any) error {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/solvertally/internal/config"
	"github.com/nao1215/solvertally/internal/crawler"
	"github.com/nao1215/solvertally/internal/model"
)

// DocumentFetcher retrieves and parses a listing page.
// *crawler.Fetcher satisfies it.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// Renderer loads a page in a browser and returns its DOM.
// *browser.Session satisfies it.
type Renderer interface {
	Render(ctx context.Context, url string) (*model.RenderedPage, error)
}

// SnapshotWriter persists the tally mappings.
// *snapshot.Writer satisfies it.
type SnapshotWriter interface {
	Write(ctx context.Context, tally *model.Tally) error
}

// RunStore records finished runs.
// *database.TallyDB satisfies it.
type RunStore interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
}

// DiscoverStep reads the archive listing pages and fills run.Puzzles.
type DiscoverStep struct {
	fetcher  DocumentFetcher
	selector string
	logger   *slog.Logger
}

// DiscoverStepOption configures a DiscoverStep.
type DiscoverStepOption func(*DiscoverStep)

// WithNameSelector sets the CSS selector for puzzle names.
func WithNameSelector(selector string) DiscoverStepOption {
	return func(s *DiscoverStep) {
		if selector != "" {
			s.selector = selector
		}
	}
}

// WithDiscoverLogger sets a custom logger for the discover step.
func WithDiscoverLogger(logger *slog.Logger) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.logger = logger
	}
}

// NewDiscoverStep creates a discover step that reads listings with fetcher.
func NewDiscoverStep(fetcher DocumentFetcher, opts ...DiscoverStepOption) *DiscoverStep {
	s := &DiscoverStep{
		fetcher:  fetcher,
		selector: config.DefaultNameSelector,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do fetches listing pages 1..run.ListingPages, collects puzzle names in
// page order, drops the most recent one and stores the rest in run.Puzzles.
//
// A listing page that answers with a non-200 status contributes no names.
// Any other fetch failure aborts the step.
func (s *DiscoverStep) Do(ctx context.Context, run *model.Run) error {
	names := make([]string, 0)

	for n := 1; n <= run.ListingPages; n++ {
		pageURL := crawler.ListingURL(run.Prefix, n)

		doc, err := s.fetcher.FetchDocument(ctx, pageURL)
		if err != nil {
			var statusErr *crawler.StatusError
			if errors.As(err, &statusErr) {
				s.logger.Warn("failed to retrieve content",
					"url", pageURL,
					"status_code", statusErr.Code,
				)
				continue
			}
			return fmt.Errorf("failed to fetch listing page %d: %w", n, err)
		}

		found := crawler.ExtractNames(doc, s.selector)
		s.logger.Debug("listing page parsed", "url", pageURL, "puzzles", len(found))
		names = append(names, found...)
	}

	if len(names) == 0 {
		s.logger.Warn("no puzzles discovered", "prefix", run.Prefix)
	}

	run.Puzzles = model.NewPuzzles(model.DropMostRecent(names))
	s.logger.Info("puzzles discovered", "count", len(run.Puzzles))

	return nil
}

// SolveStep renders each puzzle's solution page and records its solvers.
type SolveStep struct {
	renderer Renderer
	selector string
	logger   *slog.Logger
}

// SolveStepOption configures a SolveStep.
type SolveStepOption func(*SolveStep)

// WithSolverSelector sets the CSS selector for the solvers element.
func WithSolverSelector(selector string) SolveStepOption {
	return func(s *SolveStep) {
		if selector != "" {
			s.selector = selector
		}
	}
}

// WithSolveLogger sets a custom logger for the solve step.
func WithSolveLogger(logger *slog.Logger) SolveStepOption {
	return func(s *SolveStep) {
		s.logger = logger
	}
}

// NewSolveStep creates a solve step that loads pages through renderer.
func NewSolveStep(renderer Renderer, opts ...SolveStepOption) *SolveStep {
	s := &SolveStep{
		renderer: renderer,
		selector: config.DefaultSolverSelector,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *SolveStep) Name() string {
	return "solve"
}

// Do visits every puzzle in run.Puzzles in order. Pages without a solvers
// element, and pages that are not solution pages, are logged and skipped.
// A renderer error aborts the step.
func (s *SolveStep) Do(ctx context.Context, run *model.Run) error {
	for _, puzzle := range run.Puzzles {
		if err := ctx.Err(); err != nil {
			return err
		}

		pageURL := puzzle.SolutionURL(run.Prefix)
		s.logger.Info("visiting solution page", "url", pageURL)

		page, err := s.renderer.Render(ctx, pageURL)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", pageURL, err)
		}

		result := crawler.ExtractSolvers(page, s.selector)
		switch result.Status {
		case model.StatusFound:
			run.Tally.Record(puzzle.Name, result.Solvers)
			s.logger.Debug("solvers recorded", "puzzle", puzzle.Name, "solvers", len(result.Solvers))
		case model.StatusNoSolvers:
			s.logger.Info("no solvers", "puzzle", puzzle.Name)
		case model.StatusInvalidPage:
			s.logger.Warn("invalid puzzle URL", "url", pageURL)
		}

		run.AddVisit(model.Visit{
			Puzzle:  puzzle.Name,
			URL:     pageURL,
			Status:  result.Status,
			Solvers: len(result.Solvers),
		})
	}

	return nil
}

// PersistStep writes the snapshot files and, when a store is set, the run
// history.
type PersistStep struct {
	snapshots SnapshotWriter
	store     RunStore
	logger    *slog.Logger
	now       func() time.Time
}

// PersistStepOption configures a PersistStep.
type PersistStepOption func(*PersistStep)

// WithRunStore saves each finished run to store after the snapshot is
// written.
func WithRunStore(store RunStore) PersistStepOption {
	return func(s *PersistStep) {
		s.store = store
	}
}

// WithPersistLogger sets a custom logger for the persist step.
func WithPersistLogger(logger *slog.Logger) PersistStepOption {
	return func(s *PersistStep) {
		s.logger = logger
	}
}

// NewPersistStep creates a persist step writing through snapshots.
func NewPersistStep(snapshots SnapshotWriter, opts ...PersistStepOption) *PersistStep {
	s := &PersistStep{
		snapshots: snapshots,
		logger:    slog.Default(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *PersistStep) Name() string {
	return "persist"
}

// Do stamps run.FinishedAt, writes the snapshot and then saves the run.
func (s *PersistStep) Do(ctx context.Context, run *model.Run) error {
	run.FinishedAt = s.now()

	if err := s.snapshots.Write(ctx, run.Tally); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if s.store == nil {
		return nil
	}

	id, err := s.store.SaveRun(ctx, run)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	s.logger.Info("run saved", "run_id", id, "solvers", run.Tally.Len())

	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/solvertally/internal/browser"
	"github.com/nao1215/solvertally/internal/config"
	"github.com/nao1215/solvertally/internal/crawler"
	"github.com/nao1215/solvertally/internal/database"
	"github.com/nao1215/solvertally/internal/log"
	"github.com/nao1215/solvertally/internal/model"
	"github.com/nao1215/solvertally/internal/pipeline"
	"github.com/nao1215/solvertally/internal/snapshot"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Crawl the puzzle archive and tally solvers",
		Long: `Scrape reads the archive listing pages, renders every puzzle's solution page in
a headless Chromium, and counts the credited solvers.

The most recent puzzle is skipped because its solution is not published yet.
Pages that cannot be retrieved, that redirect elsewhere, or that carry no
solver list are logged and skipped.

Two snapshot files are written to the output directory (solver to solve
count, and solver to solved puzzles) and the run is recorded in the history
database unless --no-db is given.

Examples:
  # Scrape the default ten listing pages
  solvertally scrape

  # Only the first two listing pages, with a visible browser window
  solvertally scrape -n 2 --headful

  # Use a system Chromium and install the playwright driver first
  solvertally scrape --install-driver --browser-path /usr/bin/chromium`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	cmd.Flags().StringP("prefix", "p", config.DefaultPrefix,
		"Root URL of the puzzle site")
	cmd.Flags().IntP("pages", "n", config.DefaultPages,
		"Number of archive listing pages to read")
	cmd.Flags().DurationP("settle-timeout", "s", config.DefaultSettleTimeout,
		"Maximum wait for the solver list after a page loads")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each listing request and page navigation")

	cmd.Flags().Bool("headful", false,
		"Show the browser window")
	cmd.Flags().String("browser-path", "",
		"Chromium executable to use instead of the playwright-managed browser")
	cmd.Flags().Bool("install-driver", false,
		"Install the playwright driver (and Chromium) before launching")

	cmd.Flags().Bool("no-db", false,
		"Do not record the run in the history database")
	addOutputFlags(cmd)

	return cmd
}

func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.OutOrStdout(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.Launch(ctx, browser.Options{
		Headless:          cfg.Headless,
		ExecutablePath:    cfg.BrowserPath,
		UserAgent:         cfg.UserAgent,
		SettleTimeout:     cfg.SettleTimeout,
		NavigationTimeout: cfg.Timeout,
		WaitSelector:      cfg.SolverSelector,
		InstallDriver:     cfg.InstallDriver,
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("failed to close browser", "error", err)
		}
	}()

	_, err = runScrape(ctx, cfg, session, logger)
	return err
}

// buildScrapeConfig layers explicitly set flags over the config file and
// the defaults.
func buildScrapeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("prefix") {
		if cfg.Prefix, err = flags.GetString("prefix"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("pages") {
		if cfg.Pages, err = flags.GetInt("pages"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("settle-timeout") {
		if cfg.SettleTimeout, err = flags.GetDuration("settle-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("headful") {
		headful, err := flags.GetBool("headful")
		if err != nil {
			return nil, err
		}
		cfg.Headless = !headful
	}
	if flags.Changed("browser-path") {
		if cfg.BrowserPath, err = flags.GetString("browser-path"); err != nil {
			return nil, err
		}
	}
	if cfg.InstallDriver, err = flags.GetBool("install-driver"); err != nil {
		return nil, err
	}
	if flags.Changed("no-db") {
		noDB, err := flags.GetBool("no-db")
		if err != nil {
			return nil, err
		}
		cfg.SaveToDB = !noDB
	}

	if err := applyOutputFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runScrape executes the discover, solve and persist steps with renderer as
// the browser.
func runScrape(ctx context.Context, cfg *config.Config, renderer pipeline.Renderer, logger *slog.Logger) (*model.Run, error) {
	logger.Info("starting scrape",
		"prefix", cfg.Prefix,
		"pages", cfg.Pages,
		"saveToDB", cfg.SaveToDB,
	)

	persistOpts := []pipeline.PersistStepOption{pipeline.WithPersistLogger(logger)}
	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Debug("database opened", "path", db.Path())
		persistOpts = append(persistOpts, pipeline.WithRunStore(db))
	}

	fetcher := crawler.NewFetcher(
		&http.Client{Timeout: cfg.Timeout},
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithHeaders(cfg.Headers),
		crawler.WithCookie(cfg.Cookie),
	)

	writer := snapshot.NewWriter(cfg.CountsPath(), cfg.PuzzlesPath(), snapshot.WithLogger(logger))

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewDiscoverStep(fetcher,
			pipeline.WithNameSelector(cfg.NameSelector),
			pipeline.WithDiscoverLogger(logger),
		),
		pipeline.NewSolveStep(renderer,
			pipeline.WithSolverSelector(cfg.SolverSelector),
			pipeline.WithSolveLogger(logger),
		),
		pipeline.NewPersistStep(writer, persistOpts...),
	)

	run := model.NewRun(cfg.Prefix, cfg.Pages)
	if err := p.Execute(ctx, run); err != nil {
		return run, err
	}

	logger.Info("scrape complete",
		"puzzles", len(run.Puzzles),
		"solvers", run.Tally.Len(),
		"solves", run.Tally.Total(),
		"noSolvers", run.CountVisits(model.StatusNoSolvers),
		"invalid", run.CountVisits(model.StatusInvalidPage),
	)

	return run, nil
}

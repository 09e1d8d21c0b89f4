package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/solvertally/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "solvertally.db"

// TallyDB stores scrape runs and the credits they recorded.
type TallyDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures TallyDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// RunRecord is a stored run with summary counts.
type RunRecord struct {
	ID          int64     `json:"id"`
	Prefix      string    `json:"prefix"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	PuzzleCount int       `json:"puzzleCount"`
	PageCount   int       `json:"pageCount"`

	// SolverCount is the number of distinct solvers credited.
	SolverCount int `json:"solverCount"`

	// SolveCount is the total number of credits.
	SolveCount int `json:"solveCount"`
}

// Open opens or creates a TallyDB in dbDir.
func Open(dbDir string, opts Options) (*TallyDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s: %w", dbPath, err)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	tdb := &TallyDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := tdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return tdb, nil
}

// Close closes the database connection.
func (tdb *TallyDB) Close() error {
	return tdb.db.Close()
}

// Path returns the database file path.
func (tdb *TallyDB) Path() string {
	return tdb.dbPath
}

func (tdb *TallyDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		prefix TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		puzzle_count INTEGER NOT NULL DEFAULT 0,
		page_count INTEGER NOT NULL DEFAULT 0
	);

	-- position is the index of puzzle within the solver's credit list
	CREATE TABLE IF NOT EXISTS solves (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		solver TEXT NOT NULL,
		puzzle TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (run_id, solver, position)
	);

	CREATE INDEX IF NOT EXISTS idx_solves_solver ON solves(solver);
	`

	_, err := tdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores run and every credit in its tally in one transaction and
// returns the new run ID.
func (tdb *TallyDB) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	tx, err := tdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (prefix, started_at, finished_at, puzzle_count, page_count) VALUES (?, ?, ?, ?, ?)`,
		run.Prefix,
		formatTimestamp(run.StartedAt),
		formatTimestamp(run.FinishedAt),
		len(run.Puzzles),
		run.ListingPages,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	if run.Tally != nil {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO solves (run_id, solver, puzzle, position) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, fmt.Errorf("failed to prepare solve insert: %w", err)
		}
		defer stmt.Close()

		solvers := make([]string, 0, len(run.Tally.Puzzles))
		for solver := range run.Tally.Puzzles {
			solvers = append(solvers, solver)
		}
		sort.Strings(solvers)

		for _, solver := range solvers {
			for pos, puzzle := range run.Tally.Puzzles[solver] {
				if _, err := stmt.ExecContext(ctx, id, solver, puzzle, pos); err != nil {
					return 0, fmt.Errorf("failed to insert solve for %s: %w", solver, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

const runColumns = `
	SELECT r.id, r.prefix, r.started_at, r.finished_at, r.puzzle_count, r.page_count,
		COUNT(DISTINCT s.solver), COUNT(s.run_id)
	FROM runs r
	LEFT JOIN solves s ON s.run_id = r.id`

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (tdb *TallyDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1 // no limit in SQLite
	}

	rows, err := tdb.db.QueryContext(ctx, runColumns+`
	GROUP BY r.id
	ORDER BY r.id DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0)
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// LatestRun returns the newest run, or nil and no error when none exist.
func (tdb *TallyDB) LatestRun(ctx context.Context) (*RunRecord, error) {
	records, err := tdb.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil //nolint:nilnil
	}
	return &records[0], nil
}

// GetRun returns the run with id, or ErrRunNotFound.
func (tdb *TallyDB) GetRun(ctx context.Context, id int64) (*RunRecord, error) {
	row := tdb.db.QueryRowContext(ctx, runColumns+`
	WHERE r.id = ?
	GROUP BY r.id`, id)

	rec, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadTally rebuilds the tally saved with run runID. Each solver's puzzles
// come back in the order they were recorded.
func (tdb *TallyDB) LoadTally(ctx context.Context, runID int64) (*model.Tally, error) {
	if _, err := tdb.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := tdb.db.QueryContext(ctx,
		`SELECT solver, puzzle FROM solves WHERE run_id = ? ORDER BY solver, position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query solves: %w", err)
	}
	defer rows.Close()

	tally := model.NewTally()
	for rows.Next() {
		var solver, puzzle string
		if err := rows.Scan(&solver, &puzzle); err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		tally.Record(puzzle, []string{solver})
	}

	return tally, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*RunRecord, error) {
	var (
		rec               RunRecord
		started, finished string
	)
	if err := row.Scan(
		&rec.ID, &rec.Prefix, &started, &finished,
		&rec.PuzzleCount, &rec.PageCount,
		&rec.SolverCount, &rec.SolveCount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	rec.StartedAt = parseTimestamp(started)
	rec.FinishedAt = parseTimestamp(finished)
	return &rec, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// timestampFormats lists the layouts accepted when reading timestamps back.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp returns the zero time if s matches no known layout.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

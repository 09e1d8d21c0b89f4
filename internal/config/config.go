package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultPrefix is the root of the puzzle site. Listing pages live under
	// {prefix}/archive and solution pages directly under {prefix}.
	DefaultPrefix = "https://www.janestreet.com/puzzles"

	// DefaultPages is the number of archive listing pages to read.
	DefaultPages = 10

	// DefaultNameSelector matches puzzle names on listing pages.
	DefaultNameSelector = "span.name"

	// DefaultSolverSelector matches the element holding the credited
	// solvers on a solution page.
	DefaultSolverSelector = "p.correct-submissions.margin-top-20"

	// DefaultSettleTimeout bounds how long the browser waits for the
	// solvers element to appear after navigation.
	DefaultSettleTimeout = 5 * time.Second

	// DefaultTimeout is the per-request timeout for listing pages and
	// browser navigation.
	DefaultTimeout = 30 * time.Second

	// DefaultCountsFile is the snapshot file for solver -> solve count.
	DefaultCountsFile = "solvers_counts.gob"

	// DefaultPuzzlesFile is the snapshot file for solver -> puzzle names.
	DefaultPuzzlesFile = "solvers_puzzles.gob"

	// DefaultUserAgent identifies solvertally in HTTP requests.
	DefaultUserAgent = "solvertally/1.0 (+https://github.com/nao1215/solvertally)"

	// DefaultMaxBodySize caps listing page bodies.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "solvertally"
)

// Config holds all configuration options for solvertally.
// It is populated from defaults, then the config file, then CLI flags, and
// passed down explicitly rather than kept in global state.
type Config struct {
	// Prefix is the site root, without a trailing slash.
	Prefix string

	// Pages is the number of archive listing pages to read. Page 1 is
	// {prefix}/archive/index.html, page N is {prefix}/archive/pageN/index.html.
	Pages int

	// NameSelector is the CSS selector for puzzle names on listing pages.
	NameSelector string

	// SolverSelector is the CSS selector for the solvers element.
	SolverSelector string

	// SettleTimeout bounds the wait for the solvers element after
	// navigation. When it expires the page is parsed as-is.
	SettleTimeout time.Duration

	// Timeout applies to each listing request and each browser navigation.
	Timeout time.Duration

	// Headless runs the browser without a window.
	Headless bool

	// BrowserPath is an optional Chromium executable. Empty uses the
	// browser bundled with the playwright driver.
	BrowserPath string

	// InstallDriver installs the playwright driver and Chromium before launch.
	InstallDriver bool

	// UserAgent is sent with listing requests.
	UserAgent string

	// MaxBodySize caps the listing response body in bytes.
	MaxBodySize int64

	// Headers are extra HTTP headers sent with listing requests.
	Headers map[string]string

	// Cookie is sent with listing requests when set.
	Cookie string

	// OutputDir is where the snapshot files are written.
	OutputDir string

	// CountsFile and PuzzlesFile are the snapshot file names inside OutputDir.
	CountsFile  string
	PuzzlesFile string

	// SaveToDB stores each run in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	DBDir string

	// ConfigFilePath is the config file given on the command line, if any.
	ConfigFilePath string

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Prefix:         DefaultPrefix,
		Pages:          DefaultPages,
		NameSelector:   DefaultNameSelector,
		SolverSelector: DefaultSolverSelector,
		SettleTimeout:  DefaultSettleTimeout,
		Timeout:        DefaultTimeout,
		Headless:       true,
		UserAgent:      DefaultUserAgent,
		MaxBodySize:    DefaultMaxBodySize,
		Headers:        make(map[string]string),
		OutputDir:      ".",
		CountsFile:     DefaultCountsFile,
		PuzzlesFile:    DefaultPuzzlesFile,
		SaveToDB:       true,
		DBDir:          XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for solvertally.
// On Linux: ~/.local/share/solvertally
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// CountsPath returns the full path of the counts snapshot.
func (c *Config) CountsPath() string {
	return filepath.Join(c.OutputDir, c.CountsFile)
}

// PuzzlesPath returns the full path of the puzzles snapshot.
func (c *Config) PuzzlesPath() string {
	return filepath.Join(c.OutputDir, c.PuzzlesFile)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as a sentinel error.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return ErrNoPrefix
	}
	if c.Pages <= 0 {
		return ErrInvalidPages
	}
	if c.NameSelector == "" || c.SolverSelector == "" {
		return ErrEmptySelector
	}
	if c.SettleTimeout < 0 {
		return ErrInvalidSettleTimeout
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.CountsFile == "" || c.PuzzlesFile == "" {
		return ErrEmptyOutputFile
	}
	if c.CountsPath() == c.PuzzlesPath() {
		return ErrSameOutputFile
	}
	if c.SaveToDB && c.DBDir == "" {
		return ErrNoDBDir
	}
	return nil
}

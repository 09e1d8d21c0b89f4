package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoPrefix is returned when the site prefix is empty.
	ErrNoPrefix = errors.New("no site prefix specified")

	// ErrInvalidPages is returned when the listing page count is not positive.
	ErrInvalidPages = errors.New("invalid page count: must be positive")

	// ErrEmptySelector is returned when a CSS selector is empty.
	ErrEmptySelector = errors.New("invalid selector: name and solver selectors must not be empty")

	// ErrInvalidSettleTimeout is returned when the settle timeout is negative.
	ErrInvalidSettleTimeout = errors.New("invalid settle timeout: must be non-negative")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrEmptyOutputFile is returned when a snapshot file name is empty.
	ErrEmptyOutputFile = errors.New("invalid output: snapshot file names must not be empty")

	// ErrSameOutputFile is returned when both snapshots would be written to one file.
	ErrSameOutputFile = errors.New("invalid output: counts and puzzles snapshots must be different files")

	// ErrNoDBDir is returned when database saving is enabled without a directory.
	ErrNoDBDir = errors.New("database directory not set")
)

package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SolutionSuffix is appended to a puzzle slug to form its solution page path.
const SolutionSuffix = "-solution"

// Puzzle is one puzzle discovered on the archive.
// Name has already been passed through sanitize.Name.
type Puzzle struct {
	Name string `json:"name"`
}

// NewPuzzles wraps sanitized names into Puzzles, preserving order.
func NewPuzzles(names []string) []Puzzle {
	puzzles := make([]Puzzle, 0, len(names))
	for _, name := range names {
		puzzles = append(puzzles, Puzzle{Name: name})
	}
	return puzzles
}

// Slug returns the URL-safe form of the puzzle name: whitespace-separated
// fields joined by hyphens, lower-cased. "Puzzle One" becomes "puzzle-one".
func (p Puzzle) Slug() string {
	return Slug(p.Name)
}

// SolutionURL returns the solution page URL for the puzzle under prefix,
// e.g. "{prefix}/puzzle-one-solution".
func (p Puzzle) SolutionURL(prefix string) string {
	return strings.TrimRight(prefix, "/") + "/" + p.Slug() + SolutionSuffix
}

// Slug converts a sanitized name into a URL slug. Lower-casing uses the full
// Unicode mapping, so a word-final capital sigma becomes 'ς'.
func Slug(name string) string {
	return cases.Lower(language.Und).String(strings.Join(strings.Fields(name), "-"))
}

// DropMostRecent removes the first (most recent) name from an archive listing.
// The newest puzzle has no solution page yet. An empty slice is returned
// unchanged.
func DropMostRecent(names []string) []string {
	if len(names) == 0 {
		return names
	}
	return names[1:]
}

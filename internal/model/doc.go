// Package model defines the core data structures used throughout solvertally.
//
// This package contains the following main types:
//   - Puzzle: a sanitized puzzle name discovered on an archive listing page
//   - Tally: the two parallel solver mappings (solve counts and solved puzzles)
//   - Run: the state of one scrape, from discovery to persistence
//   - Leaderboard: a ranked, presentation-ready view of a Tally
//
// The models carry no I/O. The crawler, pipeline, snapshot, database and
// report packages all share them.
package model

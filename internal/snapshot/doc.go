// Package snapshot stores a tally as two gob files: solver to solve count,
// and solver to the puzzles solved. Each Write overwrites both files.
package snapshot

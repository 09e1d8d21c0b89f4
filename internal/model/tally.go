package model

import "sort"

// Tally accumulates solver statistics across processed puzzles.
//
// Counts and Puzzles are kept in lockstep: for every solver s,
// len(Puzzles[s]) == Counts[s]. Both only ever grow.
type Tally struct {
	// Counts maps a solver name to the number of times it was credited.
	Counts map[string]int `json:"counts"`

	// Puzzles maps a solver name to the puzzles it was credited for,
	// in the order they were processed.
	Puzzles map[string][]string `json:"puzzles"`
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{
		Counts:  make(map[string]int),
		Puzzles: make(map[string][]string),
	}
}

// Record credits every solver in solvers with puzzle.
// A name that appears twice in solvers is credited twice.
func (t *Tally) Record(puzzle string, solvers []string) {
	for _, solver := range solvers {
		t.Counts[solver]++
		t.Puzzles[solver] = append(t.Puzzles[solver], puzzle)
	}
}

// Len returns the number of distinct solvers.
func (t *Tally) Len() int {
	return len(t.Counts)
}

// Total returns the total number of credits recorded.
func (t *Tally) Total() int {
	total := 0
	for _, c := range t.Counts {
		total += c
	}
	return total
}

// Solvers returns solver names ordered by count descending, then by name.
func (t *Tally) Solvers() []string {
	names := make([]string, 0, len(t.Counts))
	for name := range t.Counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := t.Counts[names[i]], t.Counts[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

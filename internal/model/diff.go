package model

import "sort"

// SolverChange is the difference in one solver's solve count between two
// tallies.
type SolverChange struct {
	Solver string `json:"solver"`
	Before int    `json:"before"`
	After  int    `json:"after"`

	// NewPuzzles are the puzzles credited in the current tally but not in
	// the previous one.
	NewPuzzles []string `json:"newPuzzles,omitempty"`
}

// Delta returns After - Before.
func (c SolverChange) Delta() int {
	return c.After - c.Before
}

// TallyDiff describes how a tally changed between two runs.
type TallyDiff struct {
	// NewSolvers appear only in the current tally.
	NewSolvers []SolverChange `json:"newSolvers"`

	// DroppedSolvers appear only in the previous tally. This usually means
	// an older puzzle fell off the listing pages that were read.
	DroppedSolvers []SolverChange `json:"droppedSolvers"`

	// Changed are solvers present in both with a different count.
	Changed []SolverChange `json:"changed"`

	// UnchangedCount is the number of solvers with the same count.
	UnchangedCount int `json:"unchangedCount"`

	// SolvesBefore and SolvesAfter are the total credits of each tally.
	SolvesBefore int `json:"solvesBefore"`
	SolvesAfter  int `json:"solvesAfter"`
}

// HasChanges reports whether any solver changed.
func (d *TallyDiff) HasChanges() bool {
	return len(d.NewSolvers)+len(d.DroppedSolvers)+len(d.Changed) > 0
}

// CompareTallies diffs current against previous. Every list is sorted by the
// size of the change, largest first, then by solver name.
func CompareTallies(previous, current *Tally) *TallyDiff {
	if previous == nil {
		previous = NewTally()
	}
	if current == nil {
		current = NewTally()
	}

	diff := &TallyDiff{
		NewSolvers:     make([]SolverChange, 0),
		DroppedSolvers: make([]SolverChange, 0),
		Changed:        make([]SolverChange, 0),
		SolvesBefore:   previous.Total(),
		SolvesAfter:    current.Total(),
	}

	for solver, after := range current.Counts {
		before, seen := previous.Counts[solver]
		change := SolverChange{
			Solver:     solver,
			Before:     before,
			After:      after,
			NewPuzzles: newPuzzles(previous.Puzzles[solver], current.Puzzles[solver]),
		}
		switch {
		case !seen:
			diff.NewSolvers = append(diff.NewSolvers, change)
		case before != after:
			diff.Changed = append(diff.Changed, change)
		default:
			diff.UnchangedCount++
		}
	}

	for solver, before := range previous.Counts {
		if _, ok := current.Counts[solver]; !ok {
			diff.DroppedSolvers = append(diff.DroppedSolvers, SolverChange{Solver: solver, Before: before})
		}
	}

	sortChanges(diff.NewSolvers)
	sortChanges(diff.DroppedSolvers)
	sortChanges(diff.Changed)

	return diff
}

// newPuzzles returns the entries of after not present in before, in order.
func newPuzzles(before, after []string) []string {
	if len(after) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(before))
	for _, p := range before {
		seen[p] = struct{}{}
	}
	var out []string
	for _, p := range after {
		if _, ok := seen[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func sortChanges(changes []SolverChange) {
	sort.Slice(changes, func(i, j int) bool {
		di, dj := abs(changes[i].Delta()), abs(changes[j].Delta())
		if di != dj {
			return di > dj
		}
		return changes[i].Solver < changes[j].Solver
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package model

// Entry is one row of a Leaderboard.
type Entry struct {
	Rank    int      `json:"rank"`
	Solver  string   `json:"solver"`
	Solves  int      `json:"solves"`
	Puzzles []string `json:"puzzles"`
}

// Leaderboard is a ranked view of a Tally, ready for report writers.
type Leaderboard struct {
	// Source describes where the data came from (a run ID or a file path).
	Source string `json:"source"`

	// TotalSolvers is the number of distinct solvers in the tally,
	// regardless of how many entries were kept.
	TotalSolvers int `json:"totalSolvers"`

	// TotalSolves is the number of credits in the tally.
	TotalSolves int `json:"totalSolves"`

	// Entries are ordered by rank.
	Entries []Entry `json:"entries"`
}

// NewLeaderboard ranks the solvers of t. Ties share a rank and the next rank
// skips accordingly (1, 2, 2, 4). When top is positive only the first top
// entries are kept.
func NewLeaderboard(source string, t *Tally, top int) *Leaderboard {
	lb := &Leaderboard{
		Source:       source,
		TotalSolvers: t.Len(),
		TotalSolves:  t.Total(),
		Entries:      make([]Entry, 0, t.Len()),
	}

	rank := 0
	prev := -1
	for i, solver := range t.Solvers() {
		if top > 0 && i >= top {
			break
		}
		count := t.Counts[solver]
		if count != prev {
			rank = i + 1
			prev = count
		}
		lb.Entries = append(lb.Entries, Entry{
			Rank:    rank,
			Solver:  solver,
			Solves:  count,
			Puzzles: t.Puzzles[solver],
		})
	}

	return lb
}

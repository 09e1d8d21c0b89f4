package model

import "time"

// ExtractStatus describes what happened when solvers were extracted from a
// solution page.
type ExtractStatus int

const (
	// StatusFound means the solvers element was present. The solver list may
	// still be empty if the element had no text.
	StatusFound ExtractStatus = iota

	// StatusNoSolvers means the page rendered but had no solvers element.
	StatusNoSolvers

	// StatusInvalidPage means the page was not a solution page at all,
	// e.g. it returned an error status or redirected elsewhere.
	StatusInvalidPage
)

// String returns a short label for the status.
func (s ExtractStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNoSolvers:
		return "no solvers"
	case StatusInvalidPage:
		return "invalid puzzle URL"
	default:
		return "unknown"
	}
}

// Visit records one solution page visited during a run.
type Visit struct {
	Puzzle  string        `json:"puzzle"`
	URL     string        `json:"url"`
	Status  ExtractStatus `json:"status"`
	Solvers int           `json:"solvers"`
}

// Run is the state of a single scrape. It starts empty, is filled in by the
// pipeline steps and is persisted once at the end.
type Run struct {
	// Prefix is the site prefix the run crawled.
	Prefix string `json:"prefix"`

	// ListingPages is the number of archive listing pages requested.
	ListingPages int `json:"listingPages"`

	// StartedAt and FinishedAt bracket the run.
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// Puzzles are the puzzles whose solution pages are visited, most recent
	// puzzle already removed.
	Puzzles []Puzzle `json:"puzzles"`

	// Visits has one entry per solution page, in processing order.
	Visits []Visit `json:"visits"`

	// Tally holds the aggregated solver statistics.
	Tally *Tally `json:"tally"`

	// PerformedSteps lists completed pipeline steps by name.
	PerformedSteps []string `json:"performedSteps"`
}

// NewRun creates an empty Run for prefix.
func NewRun(prefix string, listingPages int) *Run {
	return &Run{
		Prefix:         prefix,
		ListingPages:   listingPages,
		StartedAt:      time.Now(),
		Puzzles:        make([]Puzzle, 0),
		Visits:         make([]Visit, 0),
		Tally:          NewTally(),
		PerformedSteps: make([]string, 0),
	}
}

// AddVisit appends a visit record.
func (r *Run) AddVisit(v Visit) {
	r.Visits = append(r.Visits, v)
}

// CountVisits returns how many visits ended with status.
func (r *Run) CountVisits(status ExtractStatus) int {
	n := 0
	for _, v := range r.Visits {
		if v.Status == status {
			n++
		}
	}
	return n
}

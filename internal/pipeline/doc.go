// Package pipeline runs a scrape as an ordered list of steps over a shared
// model.Run.
//
// A scrape is DiscoverStep (read the archive listings), SolveStep (render
// each solution page and tally its solvers) and PersistStep (write the
// snapshot files and the run history). Steps run strictly in sequence;
// the pipeline checks for cancellation between them and stops at the first
// step that returns an error.
package pipeline

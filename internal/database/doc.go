// Package database keeps the history of scrape runs in SQLite.
//
// TallyDB stores one row per run plus one row per (solver, puzzle) credit,
// so any past leaderboard can be rebuilt. The database is a single file
// driven by the pure-Go modernc.org/sqlite driver.
package database

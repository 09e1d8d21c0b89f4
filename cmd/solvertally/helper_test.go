package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/solvertally/internal/database"
	"github.com/nao1215/solvertally/internal/model"
)

// seedHistory creates a history database with two runs and returns its
// directory. Between the runs Alice solves another puzzle and Carol appears.
func seedHistory(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	started := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	first := model.NewRun("https://example.com/puzzles", 1)
	first.StartedAt = started
	first.FinishedAt = started.Add(time.Minute)
	first.Puzzles = model.NewPuzzles([]string{"Knight Moves", "Block Party"})
	first.Tally.Record("Knight Moves", []string{"Alice", "Bob"})
	first.Tally.Record("Block Party", []string{"Bob"})

	second := model.NewRun("https://example.com/puzzles", 1)
	second.StartedAt = started.Add(24 * time.Hour)
	second.FinishedAt = second.StartedAt.Add(time.Minute)
	second.Puzzles = model.NewPuzzles([]string{"Robot Tug of War", "Knight Moves", "Block Party"})
	second.Tally.Record("Robot Tug of War", []string{"Alice", "Carol"})
	second.Tally.Record("Knight Moves", []string{"Alice", "Bob"})
	second.Tally.Record("Block Party", []string{"Bob"})

	for _, run := range []*model.Run{first, second} {
		if _, err := db.SaveRun(context.Background(), run); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}

	return dir
}

// emptyConfig writes an empty configuration file so that tests do not pick
// up a .solvertally from the working or home directory.
func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".solvertally")
	if err := os.WriteFile(path, []byte("# empty\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/solvertally/internal/config"
	"github.com/nao1215/solvertally/internal/model"
	"github.com/nao1215/solvertally/internal/snapshot"
)

func TestNewReportCmd(t *testing.T) {
	t.Parallel()

	cmd := NewReportCmd()

	if cmd.Use != "report" {
		t.Errorf("expected use 'report', got %q", cmd.Use)
	}

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "run", defValue: "0"},
		{name: "from-snapshot", defValue: "false"},
		{name: "top", defValue: "0"},
		{name: "json", shorthand: "j", defValue: "false"},
		{name: "markdown", shorthand: "m", defValue: "false"},
		{name: "output-dir", shorthand: "o", defValue: "."},
		{name: "db-dir", defValue: ""},
		{name: "config", shorthand: "c", defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

func TestRunReportCmd(t *testing.T) {
	t.Parallel()

	dbDir := seedHistory(t)
	cfgPath := emptyConfig(t)

	execute := func(t *testing.T, args ...string) (string, error) {
		t.Helper()

		var out bytes.Buffer
		cmd := NewReportCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"-c", cfgPath}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	t.Run("latest run as text", func(t *testing.T) {
		t.Parallel()

		got, err := execute(t, "--db-dir", dbDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"SOLVER LEADERBOARD", "run #2", "Alice", "Bob", "Carol"} {
			if !strings.Contains(got, want) {
				t.Errorf("expected %q in output:\n%s", want, got)
			}
		}
	})

	t.Run("earlier run as json", func(t *testing.T) {
		t.Parallel()

		got, err := execute(t, "--db-dir", dbDir, "--run", "1", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var lb model.Leaderboard
		if err := json.Unmarshal([]byte(got), &lb); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, got)
		}
		if !strings.HasPrefix(lb.Source, "run #1") {
			t.Errorf("unexpected source %q", lb.Source)
		}
		if lb.TotalSolvers != 2 || lb.TotalSolves != 3 {
			t.Errorf("unexpected totals %d solvers, %d solves", lb.TotalSolvers, lb.TotalSolves)
		}
		if len(lb.Entries) != 2 || lb.Entries[0].Solver != "Bob" || lb.Entries[0].Solves != 2 {
			t.Errorf("unexpected entries %+v", lb.Entries)
		}
	})

	t.Run("top limits markdown rows", func(t *testing.T) {
		t.Parallel()

		got, err := execute(t, "--db-dir", dbDir, "--top", "1", "--markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "# Solver Leaderboard") {
			t.Errorf("expected markdown heading:\n%s", got)
		}
		if strings.Contains(got, "Carol") {
			t.Errorf("expected Carol to be cut by --top:\n%s", got)
		}
	})

	t.Run("unknown run", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "--db-dir", dbDir, "--run", "99")
		if err == nil {
			t.Fatal("expected error for unknown run")
		}
	})

	t.Run("json and markdown are exclusive", func(t *testing.T) {
		t.Parallel()

		if _, err := execute(t, "--db-dir", dbDir, "--json", "--markdown"); err == nil {
			t.Error("expected error for --json with --markdown")
		}
	})

	t.Run("run and from-snapshot are exclusive", func(t *testing.T) {
		t.Parallel()

		if _, err := execute(t, "--db-dir", dbDir, "--run", "1", "--from-snapshot"); err == nil {
			t.Error("expected error for --run with --from-snapshot")
		}
	})

	t.Run("no history", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "--db-dir", filepath.Join(t.TempDir(), "none"))
		if !errors.Is(err, errNoHistory) {
			t.Errorf("expected errNoHistory, got %v", err)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		cmd := NewReportCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml"), "--db-dir", dbDir})
		if err := cmd.Execute(); !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestRunReportCmdFromSnapshot(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	tally := model.NewTally()
	tally.Record("Knight Moves", []string{"Alice"})
	tally.Record("Block Party", []string{"Alice", "Bob"})

	writer := snapshot.NewWriter(
		filepath.Join(outDir, config.DefaultCountsFile),
		filepath.Join(outDir, config.DefaultPuzzlesFile),
	)
	if err := writer.Write(context.Background(), tally); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}

	var out bytes.Buffer
	cmd := NewReportCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", emptyConfig(t), "--from-snapshot", "-o", outDir, "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var lb model.Leaderboard
	if err := json.Unmarshal(out.Bytes(), &lb); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if lb.Source != filepath.Join(outDir, config.DefaultCountsFile) {
		t.Errorf("unexpected source %q", lb.Source)
	}
	if len(lb.Entries) != 2 || lb.Entries[0].Solver != "Alice" || lb.Entries[0].Solves != 2 {
		t.Errorf("unexpected entries %+v", lb.Entries)
	}
}

func TestRunReportCmdMissingSnapshot(t *testing.T) {
	t.Parallel()

	cmd := NewReportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", emptyConfig(t), "--from-snapshot", "-o", t.TempDir()})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "failed to read snapshot") {
		t.Errorf("expected snapshot read error, got %v", err)
	}
}

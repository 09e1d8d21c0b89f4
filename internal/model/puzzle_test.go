package model

import (
	"reflect"
	"testing"
)

func TestPuzzleSolutionURL(t *testing.T) {
	t.Parallel()

	const prefix = "https://example.com/puzzles"

	tests := []struct {
		name   string
		puzzle Puzzle
		prefix string
		want   string
	}{
		{
			name:   "two words",
			puzzle: Puzzle{Name: "Puzzle One"},
			prefix: prefix,
			want:   prefix + "/puzzle-one-solution",
		},
		{
			name:   "collapses repeated whitespace",
			puzzle: Puzzle{Name: "  Robot   Tug of War "},
			prefix: prefix,
			want:   prefix + "/robot-tug-of-war-solution",
		},
		{
			name:   "keeps existing hyphens",
			puzzle: Puzzle{Name: "Knight-Moves"},
			prefix: prefix,
			want:   prefix + "/knight-moves-solution",
		},
		{
			name:   "trims trailing slash on prefix",
			puzzle: Puzzle{Name: "Altered States 2"},
			prefix: prefix + "/",
			want:   prefix + "/altered-states-2-solution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.puzzle.SolutionURL(tt.prefix); got != tt.want {
				t.Errorf("SolutionURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	if got := Slug("Block Party 4"); got != "block-party-4" {
		t.Errorf("Slug() = %q, want %q", got, "block-party-4")
	}
	if got := Slug("\u039f\u0394\u039f\u03a3 \u03a3\u039f\u03a6\u0399\u0391\u03a3"); got != "\u03bf\u03b4\u03bf\u03c2-\u03c3\u03bf\u03c6\u03b9\u03b1\u03c2" {
		t.Errorf("Slug() = %q, want final sigma lower-cased to U+03C2", got)
	}
	if got := Slug("Caf\u00e9 Ol\u00e9"); got != "caf\u00e9-ol\u00e9" {
		t.Errorf("Slug() = %q, want %q", got, "caf\u00e9-ol\u00e9")
	}
	if got := Slug(""); got != "" {
		t.Errorf("Slug(\"\") = %q, want empty", got)
	}
}

func TestDropMostRecent(t *testing.T) {
	t.Parallel()

	t.Run("removes the first name", func(t *testing.T) {
		t.Parallel()
		got := DropMostRecent([]string{"Newest", "Older", "Oldest"})
		want := []string{"Older", "Oldest"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("single name leaves nothing", func(t *testing.T) {
		t.Parallel()
		if got := DropMostRecent([]string{"Only"}); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		t.Parallel()
		if got := DropMostRecent(nil); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}

func TestNewPuzzles(t *testing.T) {
	t.Parallel()

	got := NewPuzzles([]string{"A", "B"})
	want := []Puzzle{{Name: "A"}, {Name: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

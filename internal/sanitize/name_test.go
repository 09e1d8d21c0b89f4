package sanitize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "plain words untouched", input: "Puzzle One", want: "Puzzle One"},
		{name: "strips exclamation", input: "Puzzle One!", want: "Puzzle One"},
		{name: "strips comma", input: "Puzzle, Two", want: "Puzzle Two"},
		{name: "keeps hyphen and underscore", input: "Knight-Moves_2", want: "Knight-Moves_2"},
		{name: "keeps digits", input: "Block Party 4", want: "Block Party 4"},
		{name: "removes apostrophe and quotes", input: `Robot's "Tug" of War`, want: "Robots Tug of War"},
		{name: "removes symbols entirely", input: "$#@&*()", want: ""},
		{name: "keeps tabs and newlines", input: "a\tb\nc", want: "a\tb\nc"},
		{name: "keeps non-ascii letters", input: "Café Olé", want: "Café Olé"},
		{name: "drops combining accent", input: "Cafe\u0301", want: "Cafe"},
		{name: "keeps precomposed letters as they are", input: "\u212bngstrom \u2126", want: "\u212bngstrom \u2126"},
		{name: "keeps number forms", input: "Puzzle \u00bd \u2167", want: "Puzzle \u00bd \u2167"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNameKeepsOrderAndAddsNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "A-1, b_2; (c 3)!", want: "A-1 b_2 c 3"},
		{input: "Cafe\u0301!", want: "Cafe"},
		{input: "\u212bngstrom", want: "\u212bngstrom"},
		{input: "A\u030angstrom", want: "Angstrom"},
		{input: "Ohm\u2126?", want: "Ohm\u2126"},
		{input: "Caf\u00e9 \u2014 Ol\u00e9", want: "Caf\u00e9  Ol\u00e9"},
		{input: "\uff21\uff22\uff23", want: "\uff21\uff22\uff23"},
	}

	for _, tt := range tests {
		got := Name(tt.input)

		// Every output rune must appear in the input, in order.
		rest := tt.input
		for _, r := range got {
			idx := strings.IndexRune(rest, r)
			if idx < 0 {
				t.Fatalf("Name(%q): output rune %U not found in order in input", tt.input, r)
			}
			rest = rest[idx+utf8.RuneLen(r):]
		}

		if got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

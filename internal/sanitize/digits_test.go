package sanitize

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMaskNonDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "digits only", input: "0123456789", want: "0123456789"},
		{name: "letters become spaces", input: "ab1c2", want: "  1 2"},
		{name: "newlines preserved", input: "a1\nb2\n", want: " 1\n 2\n"},
		{name: "carriage return masked", input: "1\r\n2", want: "1 \n2"},
		{name: "tab masked", input: "\t7", want: " 7"},
		{name: "multibyte rune is one space", input: "é5", want: " 5"},
		{name: "superscript digit kept", input: "x²", want: " ²"},
		{name: "circled digit kept", input: "①a", want: "① "},
		{name: "non-latin decimal digits kept", input: "٣-१", want: "٣ १"},
		{name: "fraction masked", input: "½1", want: " 1"},
		{name: "roman numeral masked", input: "Ⅵ1", want: " 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MaskNonDigits(tt.input); got != tt.want {
				t.Errorf("MaskNonDigits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsDigit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		r    rune
		want bool
	}{
		{r: '0', want: true},
		{r: '9', want: true},
		{r: '\u00b9', want: true},
		{r: '\u2089', want: true},
		{r: '\u24ea', want: true},
		{r: '\U0001f10a', want: true},
		{r: '\uff15', want: true},
		{r: 'a', want: false},
		{r: '\u00bc', want: false},
		{r: '\u2160', want: false},
		{r: '\u2469', want: false},
	}

	for _, tt := range tests {
		if got := IsDigit(tt.r); got != tt.want {
			t.Errorf("IsDigit(%U) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestMaskNonDigitsPreservesLineShape(t *testing.T) {
	t.Parallel()

	input := "x = 12;\ny := 345 // comment\n\nend"
	got := MaskNonDigits(input)

	inLines := strings.Split(input, "\n")
	outLines := strings.Split(got, "\n")
	if len(inLines) != len(outLines) {
		t.Fatalf("line count changed: %d -> %d", len(inLines), len(outLines))
	}
	for i := range inLines {
		if utf8.RuneCountInString(inLines[i]) != utf8.RuneCountInString(outLines[i]) {
			t.Errorf("line %d length changed: %q -> %q", i, inLines[i], outLines[i])
		}
	}
}

func TestMaskNonDigitsIdempotentOnMaskedInput(t *testing.T) {
	t.Parallel()

	input := " 12 \n3  4\n"
	if got := MaskNonDigits(input); got != input {
		t.Errorf("expected masked input to be unchanged, got %q", got)
	}
}

func TestMaskReader(t *testing.T) {
	t.Parallel()

	t.Run("matches MaskNonDigits", func(t *testing.T) {
		t.Parallel()

		input := "Order #42 shipped\non 2024-01-05\n"
		var buf bytes.Buffer
		n, err := MaskReader(&buf, strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != MaskNonDigits(input) {
			t.Errorf("got %q, want %q", buf.String(), MaskNonDigits(input))
		}
		if n != int64(utf8.RuneCountInString(input)) {
			t.Errorf("expected %d runes written, got %d", utf8.RuneCountInString(input), n)
		}
	})

	t.Run("invalid utf8 byte becomes one space", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := MaskReader(&buf, bytes.NewReader([]byte{'1', 0xff, '2'})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "1 2" {
			t.Errorf("got %q, want %q", buf.String(), "1 2")
		}
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := MaskReader(&buf, strings.NewReader(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 || buf.Len() != 0 {
			t.Errorf("expected no output, got %q (%d runes)", buf.String(), n)
		}
	})
}

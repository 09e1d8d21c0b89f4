package sanitize

import (
	"strings"
	"unicode"
)

// Name strips s down to letters, numbers, underscore, whitespace and hyphen.
// Every other rune is removed, not replaced, so "Puzzle, Two!" becomes
// "Puzzle Two". The result only ever contains runes of s, in their original
// order. Combining marks are not letters, so "Cafe\u0301" becomes "Cafe".
func Name(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if isNameRune(r) {
			return r
		}
		return -1
	}, s)
}

// isNameRune reports whether r survives Name.
func isNameRune(r rune) bool {
	switch {
	case r == '_' || r == '-':
		return true
	case unicode.IsLetter(r), unicode.IsNumber(r):
		return true
	case unicode.IsSpace(r):
		return true
	default:
		return false
	}
}

package sanitize

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
)

// mask is the replacement for every rune that is not a digit or newline.
const mask = ' '

// digitForms holds the runes with a digit value that are not decimal digits:
// superscripts, subscripts, circled and parenthesized digits and a few
// historic scripts. Together with unicode.Nd they form the set of digits
// kept by MaskNonDigits.
var digitForms = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00b2, Hi: 0x00b3, Stride: 1},
		{Lo: 0x00b9, Hi: 0x00b9, Stride: 1},
		{Lo: 0x1369, Hi: 0x1371, Stride: 1},
		{Lo: 0x19da, Hi: 0x19da, Stride: 1},
		{Lo: 0x2070, Hi: 0x2070, Stride: 1},
		{Lo: 0x2074, Hi: 0x2079, Stride: 1},
		{Lo: 0x2080, Hi: 0x2089, Stride: 1},
		{Lo: 0x2460, Hi: 0x2468, Stride: 1},
		{Lo: 0x2474, Hi: 0x247c, Stride: 1},
		{Lo: 0x2488, Hi: 0x2490, Stride: 1},
		{Lo: 0x24ea, Hi: 0x24ea, Stride: 1},
		{Lo: 0x24f5, Hi: 0x24fd, Stride: 1},
		{Lo: 0x24ff, Hi: 0x24ff, Stride: 1},
		{Lo: 0x2776, Hi: 0x277e, Stride: 1},
		{Lo: 0x2780, Hi: 0x2788, Stride: 1},
		{Lo: 0x278a, Hi: 0x2792, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10a40, Hi: 0x10a43, Stride: 1},
		{Lo: 0x10e60, Hi: 0x10e68, Stride: 1},
		{Lo: 0x11052, Hi: 0x1105a, Stride: 1},
		{Lo: 0x1f100, Hi: 0x1f10a, Stride: 1},
	},
	LatinOffset: 2,
}

// IsDigit reports whether r is a digit kept by MaskNonDigits: a decimal
// digit (unicode.Nd) or a digit form such as '²' or '①'. Fractions and
// other numeric symbols like '½' are not digits.
func IsDigit(r rune) bool {
	return unicode.IsDigit(r) || unicode.Is(digitForms, r)
}

// MaskNonDigits returns s with every rune that is not a digit (see IsDigit)
// or a newline replaced by exactly one space. The output has the same number of
// runes as the input and the same line structure.
func MaskNonDigits(s string) string {
	return strings.Map(maskRune, s)
}

// maskRune maps a single rune for MaskNonDigits.
func maskRune(r rune) rune {
	if r == '\n' || IsDigit(r) {
		return r
	}
	return mask
}

// MaskReader copies r to w applying MaskNonDigits rune by rune.
// Invalid UTF-8 bytes are each replaced by one space.
// It returns the number of runes written.
func MaskReader(w io.Writer, r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	var n int64
	for {
		ch, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return n, err
		}
		if _, err := bw.WriteRune(maskRune(ch)); err != nil {
			return n, err
		}
		n++
	}

	return n, bw.Flush()
}

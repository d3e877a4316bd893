package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Bidirectional and formatting marks that survey tools inject into polygon
// names when they round-trip through spreadsheets: LRM, RLM, LRE, RLE, PDF,
// LRO, RLO.
var bidiMarks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200e, Hi: 0x200f, Stride: 1},
		{Lo: 0x202a, Hi: 0x202e, Stride: 1},
	},
}

var cleaner = transform.Chain(norm.NFKC, runes.Remove(runes.In(bidiMarks)))

// Normalize canonicalizes a display name: NFKC, bidi/formatting marks
// removed, whitespace runs collapsed to a single space, ends trimmed.
// Idempotent; empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(cleaner, s)
	if err != nil {
		out = s
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}

// Fold returns the case-folded normalized form, used for the second
// matching tier and for nan/blank cell checks.
func Fold(s string) string {
	return strings.ToLower(Normalize(s))
}

package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldReplacer maps typographic quotes and Latin ligatures to their ASCII
// forms. Other compatibility characters, superscript digits included, are
// kept as written.
var foldReplacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u201b", "'",
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`, "\u201f", `"`,
	"\ufb00", "ff", "\ufb01", "fi", "\ufb02", "fl", "\ufb03", "ffi", "\ufb04", "ffl",
)

// Normalize returns the comparison form of s.
//
// The steps run in a fixed order: lower-casing, quote and ligature folding,
// whitespace collapse. Applying Normalize twice yields the same result as
// applying it once.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	// cases.Caser keeps state between calls and is not safe for concurrent use.
	s = cases.Lower(language.Und).String(s)
	s = foldReplacer.Replace(s)
	return Collapse(s)
}

// Collapse replaces every run of whitespace in s with a single ASCII space
// and trims both ends.
func Collapse(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Length returns the number of characters in s, counted in runes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Package diff computes token-level differences between two texts and renders
// them as two parallel marked-up strings.
//
// Tokens are whitespace-delimited words, not characters. The edit script comes
// from the longest-matching-block SequenceMatcher of github.com/pmezard/go-difflib,
// so ties resolve to the earliest and longest match and the output is
// deterministic for a given pair of inputs.
//
// The master side marks deleted and replaced spans, the test side marks
// inserted and replaced spans, and equal spans pass through unmarked. Every
// token is HTML-escaped before it is written, so the only markup in the output
// is the marker spans produced here.
package diff

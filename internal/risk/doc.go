// Package risk assigns a heuristic severity to a single sentence-level change.
//
// The rules are additive and independent, so several can fire on one pair:
//   - the set of numeric, currency and percentage tokens differs
//   - a watched clause keyword disappears from, or appears in, the sentence
//
// Sentences without any counterpart bypass the rules and receive a fixed
// assessment from Removed or Added.
//
// Design decision: Inputs are expected in normalized form (see textnorm).
// Keyword matching is a plain substring test on that form, without stemming,
// so "liabilities" does not count as "liability".
package risk

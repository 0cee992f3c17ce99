// Package textnorm canonicalizes document text before it is segmented,
// aligned and diffed.
//
// Two forms exist. Collapse keeps the reader-facing text and only squeezes
// whitespace; it is what extraction stores per page. Normalize is the
// comparison form: Unicode compatibility composition, lower case, straight
// quotes and single spaces. Every function here is total and deterministic.
package textnorm

// Package model defines the core data structures used throughout clausediff.
//
// This package contains the following main types:
//   - Document and Page: the ordered result of extracting one input file
//   - Sentence: one segmented, normalized sentence of a document
//   - Alignment: the pairing (or non-pairing) of a master sentence with a test sentence
//   - Change and Report: the risk-ranked comparison result
//   - Comparison: the state carried through the comparison pipeline
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The extraction, alignment, comparison and report packages all
// need these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// cache storage.
package model

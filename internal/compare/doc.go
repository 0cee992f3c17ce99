// Package compare turns two documents into a risk-ranked change report.
//
// The package owns the last two stages of a comparison. Classify turns the
// sentence alignments into changes and scores each one, and Aggregate sorts
// the changes, sums the risk and computes the whole-document highlight.
//
// Comparator wires every stage together as a pipeline:
//
//	extract master -> extract test -> segment -> align -> classify -> aggregate
//
// Each stage is a pipeline.Step operating on a model.Comparison, so the
// stages are logged and timed the same way. An error in either extraction
// aborts the whole comparison; no partial report is produced.
package compare

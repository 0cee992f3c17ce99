// Package main provides the entry point for the clausediff CLI.
//
// clausediff compares two versions of a legal document (PDF, DOCX or plain
// text), aligns their sentences and reports every change together with a
// risk score.
//
// Usage:
//
//	clausediff compare master.pdf counterparty.pdf
//	clausediff extract scanned.pdf
//	clausediff serve
//
// See --help for all available options.
package main

// main is the entry point for clausediff.
func main() {
	Execute()
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/clausediff/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with risk-level indicators
// and clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether change kinds with no entries are counted.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with similarity scores and extraction details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeChanges(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with document information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         CLAUSEDIFF REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Master:    %s\n", documentName(report.MasterFile, "(master)"))
	fmt.Fprintf(sb, "Test:      %s\n", documentName(report.TestFile, "(test)"))
	if w.verbose {
		fmt.Fprintf(sb, "Pages:     %d / %d (OCR: %d / %d)\n",
			report.MasterPages, report.TestPages, report.MasterOCR, report.TestOCR)
	}
	fmt.Fprintf(sb, "Risk:      %d\n", report.Risk)
	fmt.Fprintf(sb, "Status:    %s\n", report.Level.Label())
	sb.WriteString("\n")
}

// writeSummary writes the change count and reason summary.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CHANGE SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	counts := report.CountByKind()
	for _, kind := range changeKinds {
		if counts[kind] == 0 && !w.showEmpty {
			continue
		}
		fmt.Fprintf(sb, "  %-13s %d\n", kind.String()+":", counts[kind])
	}
	fmt.Fprintf(sb, "  %-13s %d changes\n", "TOTAL:", len(report.Changes))
	sb.WriteString("\n")

	if len(report.Reasons) > 0 {
		sb.WriteString("  Reasons:\n")
		for _, reason := range report.Reasons {
			fmt.Fprintf(sb, "    - %s\n", reason)
		}
		sb.WriteString("\n")
	}
}

// writeChanges writes every change in report order.
func (w *SimpleWriter) writeChanges(sb *strings.Builder, report *model.Report) {
	if !report.HasChanges() && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CHANGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if !report.HasChanges() {
		sb.WriteString("  No changes detected\n\n")
		return
	}

	for i, c := range report.Changes {
		fmt.Fprintf(sb, "[%s] #%d %s (risk %d)\n", w.getLevelIndicator(c.Level()), i+1, c.Kind, c.Risk)
		if w.verbose && c.Similarity > 0 {
			fmt.Fprintf(sb, "    Similarity: %.1f\n", c.Similarity)
		}
		fmt.Fprintf(sb, "    Reasons: %s\n", joinReasons(c.Reasons))
		if c.Master != "" {
			fmt.Fprintf(sb, "    - %s\n", c.Master)
		}
		if c.Test != "" {
			fmt.Fprintf(sb, "    + %s\n", c.Test)
		}
		sb.WriteString("\n")
	}
}

// getLevelIndicator returns a visual indicator for the change level.
func (w *SimpleWriter) getLevelIndicator(level model.Level) string {
	switch level {
	case model.LevelHigh:
		return "!!"
	case model.LevelModerate:
		return "!"
	case model.LevelLow:
		return "-"
	case model.LevelInfo:
		return "i"
	default:
		return "?"
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by clausediff\n")
	sb.WriteString("https://github.com/nao1215/clausediff\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}

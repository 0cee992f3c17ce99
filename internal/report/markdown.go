package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/clausediff/internal/model"
)

// excerptLength is the number of runes of a sentence shown in the overview table.
const excerptLength = 60

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for review threads and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and collapsible details
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeReasons(md, report)
	w.writeChanges(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with document information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Clause Diff Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Master", "`" + documentName(report.MasterFile, "master") + "`"},
			{"Test", "`" + documentName(report.TestFile, "test") + "`"},
			{"Pages", strconv.Itoa(report.MasterPages) + " / " + strconv.Itoa(report.TestPages)},
			{"OCR Pages", strconv.Itoa(report.MasterOCR) + " / " + strconv.Itoa(report.TestOCR)},
			{"Risk Score", strconv.Itoa(report.Risk)},
			{"Status", w.getStatusText(report.Level)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text for a document level.
func (w *MarkdownWriter) getStatusText(level model.Level) string {
	switch level {
	case model.LevelHigh:
		return "🔴 " + level.Label()
	case model.LevelModerate:
		return "🟡 " + level.Label()
	default:
		return "🟢 " + level.Label()
	}
}

// writeSummary writes the change summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Change Summary")
	md.PlainText("")

	counts := report.CountByKind()
	rows := make([][]string, 0, len(changeKinds)+1)
	for _, kind := range changeKinds {
		rows = append(rows, []string{kind.String(), strconv.Itoa(counts[kind])})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(len(report.Changes)) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.HasChanges() {
		w.writePieChart(md, counts)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the change kind distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.ChangeKind]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Change Distribution"),
		piechart.WithShowData(true),
	)

	for _, kind := range changeKinds {
		if counts[kind] > 0 {
			chart.LabelAndIntValue(kind.String(), uint64(counts[kind])) //nolint:gosec // counts are never negative
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the document level.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.Level == model.LevelHigh:
		md.Cautionf(
			"High risk changes detected! Total risk %d across %d change(s) requires legal review.",
			report.Risk, len(report.Changes),
		)
	case report.Level == model.LevelModerate:
		md.Warningf(
			"Moderate risk changes detected. Total risk %d across %d change(s) should be reviewed.",
			report.Risk, len(report.Changes),
		)
	case report.HasChanges():
		md.Note("Only low risk changes detected.")
	default:
		md.Tip("The documents are equivalent after normalization.")
	}
	md.PlainText("")
}

// writeReasons writes the de-duplicated reasons.
func (w *MarkdownWriter) writeReasons(md *markdown.Markdown, report *model.Report) {
	if len(report.Reasons) == 0 {
		return
	}
	md.H2("Reasons")
	md.PlainText("")
	md.BulletList(report.Reasons...)
	md.PlainText("")
}

// writeChanges writes the overview table and the details of each change.
func (w *MarkdownWriter) writeChanges(md *markdown.Markdown, report *model.Report) {
	md.H2("Changes")
	md.PlainText("")

	if !report.HasChanges() {
		md.PlainText("No changes detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Changes))
	for i, c := range report.Changes {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			c.Kind.String(),
			strconv.Itoa(c.Risk),
			c.Level().String(),
			joinReasons(c.Reasons),
			escapeCell(truncateString(excerpt(c), excerptLength)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Kind", "Risk", "Level", "Reasons", "Excerpt"},
		Rows:   rows,
	})
	md.PlainText("")

	for i, c := range report.Changes {
		title := "#" + strconv.Itoa(i+1) + " " + c.Kind.String()
		md.Details(title, changeDetails(c))
	}
	md.PlainText("")
}

// changeDetails renders the full sentences of a change.
func changeDetails(c model.Change) string {
	var sb strings.Builder
	if c.Master != "" {
		sb.WriteString("Master: ")
		sb.WriteString(c.Master)
	}
	if c.Test != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("Test: ")
		sb.WriteString(c.Test)
	}
	return sb.String()
}

// escapeCell keeps pipes in document text from splitting a table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [clausediff](https://github.com/nao1215/clausediff)*")
}

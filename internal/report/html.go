package report

import (
	"bytes"
	"html/template"
	"io"
	"regexp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/nao1215/clausediff/internal/diff"
	"github.com/nao1215/clausediff/internal/model"
)

// HighlightPolicy returns the sanitizer applied to highlight markup before it
// is embedded in a page. Only the three diff marker spans survive, with a
// hexadecimal background color as their sole style.
//
// Design decision: The highlight markup is produced by our own diff package
// and already escapes document text. We still sanitize it because reports
// are often written for documents received from the other party, and a
// rendering bug must not turn a crafted contract into script on a
// reviewer's machine.
func HighlightPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("class").
		Matching(regexp.MustCompile(`^(` + diff.ClassDelete + `|` + diff.ClassInsert + `|` + diff.ClassReplace + `)$`)).
		OnElements("span")
	p.AllowStyles("background").
		Matching(regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)).
		OnElements("span")
	return p
}

// HTMLWriter outputs a self-contained HTML page with the whole-document
// highlight side by side and a table of changes.
type HTMLWriter struct {
	baseWriter

	policy *bluemonday.Policy
	title  string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithTitle sets the page title.
func WithTitle(title string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.title = title
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
		policy:     HighlightPolicy(),
		title:      "Clause Diff Report",
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type htmlChange struct {
	Number     int
	Kind       string
	Risk       int
	Level      string
	Reasons    []string
	MasterHTML template.HTML
	TestHTML   template.HTML
}

type htmlPage struct {
	Title      string
	MasterFile string
	TestFile   string
	Risk       int
	Status     string
	LevelClass string
	Reasons    []string
	MasterHTML template.HTML
	TestHTML   template.HTML
	Changes    []htmlChange
}

// Write renders the report as an HTML page.
func (w *HTMLWriter) Write(report *model.Report) (int, error) {
	page := htmlPage{
		Title:      w.title,
		MasterFile: documentName(report.MasterFile, "Master"),
		TestFile:   documentName(report.TestFile, "Test"),
		Risk:       report.Risk,
		Status:     report.Level.Label(),
		LevelClass: levelClass(report.Level),
		Reasons:    report.Reasons,
		MasterHTML: w.sanitize(report.MasterHTML),
		TestHTML:   w.sanitize(report.TestHTML),
		Changes:    make([]htmlChange, len(report.Changes)),
	}
	for i, c := range report.Changes {
		page.Changes[i] = htmlChange{
			Number:     i + 1,
			Kind:       c.Kind.String(),
			Risk:       c.Risk,
			Level:      levelClass(c.Level()),
			Reasons:    c.Reasons,
			MasterHTML: w.sanitize(c.MasterHTML),
			TestHTML:   w.sanitize(c.TestHTML),
		}
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, page); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// sanitize filters markup through the highlight policy and marks the result
// as safe for the template.
func (w *HTMLWriter) sanitize(markup string) template.HTML {
	return template.HTML(w.policy.Sanitize(markup)) //nolint:gosec // sanitized by the highlight policy
}

func levelClass(level model.Level) string {
	switch level {
	case model.LevelHigh:
		return "high"
	case model.LevelModerate:
		return "moderate"
	case model.LevelInfo:
		return "info"
	default:
		return "low"
	}
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;max-width:1200px;margin:2rem auto;padding:0 1rem;color:#222;background:#fafafa}
h1{font-size:1.4rem;border-bottom:2px solid #e0e0e0;padding-bottom:.5rem}
.status{display:inline-block;padding:.25rem .75rem;border-radius:4px;font-weight:bold}
.high{background:#f8d7da}.moderate{background:#fff3cd}.low{background:#d4edda}.info{background:#e2e3e5}
.docs{display:grid;grid-template-columns:1fr 1fr;gap:1rem}
.doc{background:#fff;border:1px solid #e0e0e0;border-radius:6px;padding:1rem;line-height:1.6}
table{border-collapse:collapse;width:100%;background:#fff}
td,th{border:1px solid #e0e0e0;padding:.5rem;vertical-align:top;text-align:left}
.empty{color:#999;font-style:italic}
</style></head><body>
<h1>{{.Title}}</h1>
<p><span class="status {{.LevelClass}}">{{.Status}}</span> Risk score: {{.Risk}}</p>
{{- if .Reasons}}
<ul>{{range .Reasons}}<li>{{.}}</li>{{end}}</ul>
{{- end}}
<h2>Document</h2>
<div class="docs">
<div class="doc"><h3>{{.MasterFile}}</h3>{{.MasterHTML}}</div>
<div class="doc"><h3>{{.TestFile}}</h3>{{.TestHTML}}</div>
</div>
<h2>Changes</h2>
{{- if not .Changes}}
<p class="empty">No changes detected.</p>
{{- else}}
<table>
<tr><th>#</th><th>Kind</th><th>Risk</th><th>Reasons</th><th>{{.MasterFile}}</th><th>{{.TestFile}}</th></tr>
{{- range .Changes}}
<tr class="{{.Level}}"><td>{{.Number}}</td><td>{{.Kind}}</td><td>{{.Risk}}</td><td>{{range $i, $r := .Reasons}}{{if $i}}<br>{{end}}{{$r}}{{end}}</td><td>{{.MasterHTML}}</td><td>{{.TestHTML}}</td></tr>
{{- end}}
</table>
{{- end}}
</body></html>`))

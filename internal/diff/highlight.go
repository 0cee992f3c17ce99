package diff

import (
	"strings"

	"golang.org/x/net/html"
)

// Marker classes. Presentation layers may restyle them; the inline background
// keeps the markup readable without a stylesheet.
const (
	ClassDelete  = "diff-del"
	ClassInsert  = "diff-ins"
	ClassReplace = "diff-rep"
)

// Background colors used for the inline style of each marker class.
const (
	colorDelete  = "#ffb3b3"
	colorInsert  = "#b3ffb3"
	colorReplace = "#ffd699"
)

// Highlight diffs master against test token by token and returns the marked
// master text and the marked test text.
func Highlight(master, test string) (string, string) {
	a := Tokens(master)
	b := Tokens(test)

	var masterOut, testOut []string
	for _, op := range OpCodes(a, b) {
		m := escapeJoin(a[op.I1:op.I2])
		t := escapeJoin(b[op.J1:op.J2])

		switch op.Tag {
		case Equal:
			masterOut = append(masterOut, m)
			testOut = append(testOut, t)
		case Delete:
			masterOut = append(masterOut, span(ClassDelete, colorDelete, m))
		case Insert:
			testOut = append(testOut, span(ClassInsert, colorInsert, t))
		case Replace:
			masterOut = append(masterOut, span(ClassReplace, colorReplace, m))
			testOut = append(testOut, span(ClassReplace, colorReplace, t))
		}
	}
	return strings.Join(masterOut, " "), strings.Join(testOut, " ")
}

// Mark wraps the whole of text in a single marker span of the given tag.
// Equal returns the escaped text unmarked, and empty text yields "".
func Mark(tag Tag, text string) string {
	escaped := escapeJoin(Tokens(text))
	if escaped == "" {
		return ""
	}
	switch tag {
	case Delete:
		return span(ClassDelete, colorDelete, escaped)
	case Insert:
		return span(ClassInsert, colorInsert, escaped)
	case Replace:
		return span(ClassReplace, colorReplace, escaped)
	default:
		return escaped
	}
}

func span(class, color, body string) string {
	var sb strings.Builder
	sb.Grow(len(body) + 64)
	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`" style="background:`)
	sb.WriteString(color)
	sb.WriteString(`">`)
	sb.WriteString(body)
	sb.WriteString(`</span>`)
	return sb.String()
}

func escapeJoin(tokens []string) string {
	escaped := make([]string, len(tokens))
	for i, tok := range tokens {
		escaped[i] = html.EscapeString(tok)
	}
	return strings.Join(escaped, " ")
}

package model

import "strings"

// PageSeparator joins page texts when a document is flattened into one text blob.
const PageSeparator = "\n\n"

// Format identifies the type of an input document.
type Format string

const (
	// FormatPDF is a Portable Document Format file.
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word processing document.
	FormatDOCX Format = "docx"
	// FormatText is a plain text file.
	FormatText Format = "text"
)

// ExtractionMethod records how the text of a page was obtained.
type ExtractionMethod string

const (
	// MethodNative means the text came from the document structure itself.
	MethodNative ExtractionMethod = "native"
	// MethodOCR means the page was rasterized and run through optical character recognition.
	MethodOCR ExtractionMethod = "ocr"
)

// Page is the extracted text of one page. Number is 1-based.
type Page struct {
	Number int              `json:"number"`
	Text   string           `json:"text"`
	Method ExtractionMethod `json:"method"`
}

// Document is the ordered list of pages extracted from one input file.
// Pages are always numbered 1..N without gaps; text may be empty.
type Document struct {
	// Path is the file the document was read from.
	Path string `json:"path"`

	// Format is the detected input format.
	Format Format `json:"format"`

	// Fingerprint is the hex SHA3-256 digest of the file contents.
	Fingerprint string `json:"fingerprint,omitempty"`

	// Pages holds the page texts in page order.
	Pages []Page `json:"pages"`
}

// Text concatenates all page texts in page order, separated by PageSeparator.
func (d *Document) Text() string {
	if d == nil || len(d.Pages) == 0 {
		return ""
	}
	texts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, PageSeparator)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// OCRPageCount returns how many pages were recovered with OCR.
func (d *Document) OCRPageCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		if p.Method == MethodOCR {
			n++
		}
	}
	return n
}

package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// docxBody is the archive member holding the main document part.
const docxBody = "word/document.xml"

// docxCellSeparator joins the cells of one table row.
const docxCellSeparator = " | "

// Element depths inside word/document.xml, counting w:document as 1.
const (
	depthBodyParagraph = 3 // document > body > p
	depthTable         = 3 // document > body > tbl
	depthRow           = 4 // ... tbl > tr
	depthCell          = 5 // ... tr > tc
	depthCellParagraph = 6 // ... tc > p
	depthCellProperty  = 7 // ... tc > tcPr > gridSpan|vMerge
)

// errMissingBody is returned when the archive has no main document part.
var errMissingBody = errors.New(docxBody + " not found in archive")

// readDOCX returns the text of a DOCX file: every non-empty top-level
// paragraph in order, followed by every row of every top-level table.
func readDOCX(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}
	defer r.Close() //nolint:errcheck // read-only archive

	var body *zip.File
	for _, f := range r.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return "", errMissingBody
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", docxBody, err)
	}
	defer rc.Close() //nolint:errcheck // read-only member

	w := newDOCXWalker()
	if err := w.walk(rc); err != nil {
		return "", fmt.Errorf("parse %s: %w", docxBody, err)
	}
	content := append(w.paragraphs, w.rows...)
	return strings.Join(content, " "), nil
}

// docxCell is one table cell as it is laid out on the grid.
type docxCell struct {
	text   string
	span   int
	vMerge string // "", "restart" or "continue"
	merged bool   // tcPr carried a vMerge element
}

// docxWalker streams the document XML and keeps an element stack so that
// only body-level paragraphs and body-level tables contribute text. Text
// boxes, nested tables and paragraph properties are ignored.
type docxWalker struct {
	stack []string

	paragraphs []string
	rows       []string

	para   strings.Builder
	inPara bool

	cellParas []string
	cell      docxCell
	row       []string

	// vMergeOrigin maps a grid column to the text of the cell that started
	// a vertical merge there.
	vMergeOrigin map[int]string
	column       int
}

func newDOCXWalker() *docxWalker {
	return &docxWalker{vMergeOrigin: make(map[int]string)}
}

func (w *docxWalker) walk(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			w.stack = append(w.stack, t.Name.Local)
			w.start(t)
		case xml.EndElement:
			w.end(t.Name.Local)
			if len(w.stack) > 0 {
				w.stack = w.stack[:len(w.stack)-1]
			}
		case xml.CharData:
			if w.inPara && w.top() == "t" && w.inRun() {
				w.para.Write(t)
			}
		}
	}
}

func (w *docxWalker) start(t xml.StartElement) {
	depth := len(w.stack)
	name := t.Name.Local

	switch {
	case name == "p" && (depth == depthBodyParagraph || (depth == depthCellParagraph && w.inTopLevelCell())):
		w.inPara = true
		w.para.Reset()
	case name == "tbl" && depth == depthTable:
		clear(w.vMergeOrigin)
	case name == "tr" && depth == depthRow && w.stack[depthTable-1] == "tbl":
		w.row = w.row[:0]
		w.column = 0
	case name == "tc" && depth == depthCell && w.inTopLevelTable():
		w.cell = docxCell{span: 1}
		w.cellParas = w.cellParas[:0]
	case depth == depthCellProperty && w.inTopLevelCell() && w.stack[depthCell] == "tcPr":
		switch name {
		case "gridSpan":
			if n, err := strconv.Atoi(attr(t, "val")); err == nil && n > 1 {
				w.cell.span = n
			}
		case "vMerge":
			w.cell.merged = true
			w.cell.vMerge = attr(t, "val")
		}
	case w.inPara && w.inRun():
		switch name {
		case "tab":
			w.para.WriteByte('\t')
		case "br", "cr":
			w.para.WriteByte('\n')
		}
	}
}

func (w *docxWalker) end(name string) {
	depth := len(w.stack)

	switch {
	case name == "p" && w.inPara && depth == depthBodyParagraph:
		w.inPara = false
		if text := w.para.String(); strings.TrimSpace(text) != "" {
			w.paragraphs = append(w.paragraphs, text)
		}
	case name == "p" && w.inPara && depth == depthCellParagraph:
		w.inPara = false
		w.cellParas = append(w.cellParas, w.para.String())
	case name == "tc" && depth == depthCell && w.inTopLevelTable():
		w.finishCell()
	case name == "tr" && depth == depthRow && w.stack[depthTable-1] == "tbl":
		w.rows = append(w.rows, strings.Join(w.row, docxCellSeparator))
	}
}

// finishCell appends the current cell to the row once per grid column it
// spans. A cell continuing a vertical merge repeats the text of the cell
// that started the merge.
func (w *docxWalker) finishCell() {
	text := strings.TrimSpace(strings.Join(w.cellParas, "\n"))

	if w.cell.merged && w.cell.vMerge != "restart" {
		text = w.vMergeOrigin[w.column]
	}
	for i := 0; i < w.cell.span; i++ {
		col := w.column + i
		switch {
		case w.cell.merged && w.cell.vMerge == "restart":
			w.vMergeOrigin[col] = text
		case !w.cell.merged:
			delete(w.vMergeOrigin, col)
		}
		w.row = append(w.row, text)
	}
	w.column += w.cell.span
}

func (w *docxWalker) top() string {
	if len(w.stack) == 0 {
		return ""
	}
	return w.stack[len(w.stack)-1]
}

// inRun reports whether the innermost element sits inside a run of the
// current paragraph and outside any text box.
func (w *docxWalker) inRun() bool {
	sawRun := false
	for i := len(w.stack) - 1; i >= 0; i-- {
		switch w.stack[i] {
		case "txbxContent", "pPr", "rPr":
			return false
		case "r":
			sawRun = true
		case "p":
			return sawRun
		}
	}
	return false
}

func (w *docxWalker) inTopLevelTable() bool {
	return len(w.stack) >= depthCell &&
		w.stack[depthTable-1] == "tbl" &&
		w.stack[depthRow-1] == "tr"
}

func (w *docxWalker) inTopLevelCell() bool {
	return w.inTopLevelTable() && len(w.stack) >= depthCell && w.stack[depthCell-1] == "tc"
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

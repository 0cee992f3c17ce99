package extract

import (
	"context"

	"github.com/gen2brain/go-fitz"
)

// MuPDF is the Engine backed by the MuPDF library.
// go-fitz guards each document with its own mutex, so concurrent page calls
// are safe and run one at a time per document.
type MuPDF struct{}

// Name returns "mupdf".
func (MuPDF) Name() string { return EngineMuPDF }

// Open parses the PDF at path with MuPDF.
func (MuPDF) Open(path string) (PDFDocument, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &mupdfDocument{doc: doc}, nil
}

type mupdfDocument struct {
	doc *fitz.Document
}

func (d *mupdfDocument) NumPage() int {
	return d.doc.NumPage()
}

func (d *mupdfDocument) PageText(index int) (string, error) {
	return d.doc.Text(index)
}

func (d *mupdfDocument) RenderPNG(_ context.Context, index, dpi int) ([]byte, error) {
	return d.doc.ImagePNG(index, float64(dpi))
}

func (d *mupdfDocument) Close() error {
	return d.doc.Close()
}

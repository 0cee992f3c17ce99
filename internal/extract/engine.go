package extract

import (
	"context"
	"fmt"
	"strings"
)

// Engine names accepted by NewEngine.
const (
	EngineMuPDF  = "mupdf"
	EnginePDFCPU = "pdfcpu"
)

// PDFDocument is an opened PDF. Page indexes are 0-based.
//
// Implementations must allow PageText and RenderPNG to be called from several
// goroutines at once; they serialize internally where the underlying library
// requires it.
type PDFDocument interface {
	// NumPage returns the number of pages.
	NumPage() int

	// PageText returns the natively embedded text of a page.
	PageText(index int) (string, error)

	// RenderPNG rasterizes a page at the given resolution.
	RenderPNG(ctx context.Context, index, dpi int) ([]byte, error)

	// Close releases the document.
	Close() error
}

// Engine opens PDF files.
type Engine interface {
	// Name identifies the engine in logs and cache keys.
	Name() string

	// Open parses the PDF at path.
	Open(path string) (PDFDocument, error)
}

// NewEngine returns the engine with the given name.
// pdftoppmPath is only used by the pdfcpu engine.
func NewEngine(name, pdftoppmPath string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineMuPDF:
		return MuPDF{}, nil
	case EnginePDFCPU:
		return &PDFCPU{PdftoppmPath: pdftoppmPath}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

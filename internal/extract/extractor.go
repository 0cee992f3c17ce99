package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/textnorm"
)

const (
	// DefaultWorkers is the number of pages extracted in parallel.
	DefaultWorkers = 4

	// DefaultOCRThreshold is the native text length, in characters, below
	// which a page is sent to OCR.
	DefaultOCRThreshold = 40

	// DefaultDPI is the rasterization resolution used for OCR.
	DefaultDPI = 300
)

// PageCache stores extracted pages by cache key.
// Cache failures never fail an extraction; they are logged and ignored.
type PageCache interface {
	Lookup(ctx context.Context, key string) ([]model.Page, bool, error)
	Store(ctx context.Context, key string, pages []model.Page) error
}

// Extractor reads documents into ordered page text.
// An Extractor is safe for concurrent use once built.
type Extractor struct {
	workers      int
	threshold    int
	dpi          int
	engine       Engine
	recognizer   Recognizer
	recognizerID string
	cache        PageCache
	logger       *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWorkers sets the page worker pool size. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithOCRThreshold sets the native text length below which OCR is used.
func WithOCRThreshold(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.threshold = n
		}
	}
}

// WithDPI sets the rasterization resolution for OCR.
func WithDPI(dpi int) Option {
	return func(e *Extractor) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// WithEngine sets the PDF engine. The default is MuPDF.
func WithEngine(engine Engine) Option {
	return func(e *Extractor) {
		if engine != nil {
			e.engine = engine
		}
	}
}

// WithRecognizer sets the OCR recognizer. Without one, any page that needs
// OCR fails with ErrOCRUnavailable.
func WithRecognizer(r Recognizer) Option {
	return func(e *Extractor) {
		e.recognizer = r
		if t, ok := r.(*Tesseract); ok && t != nil {
			e.recognizerID = "tesseract:" + t.Language
		}
	}
}

// WithCache enables the PDF page cache.
func WithCache(cache PageCache) Option {
	return func(e *Extractor) {
		e.cache = cache
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor with the given options.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		workers:   DefaultWorkers,
		threshold: DefaultOCRThreshold,
		dpi:       DefaultDPI,
		engine:    MuPDF{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DetectFormat infers the document format from the file extension.
func DetectFormat(path string) (model.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return model.FormatPDF, nil
	case ".docx":
		return model.FormatDOCX, nil
	case ".txt", ".text", ".md":
		return model.FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Extract reads the document at path.
//
// The returned document always has pages numbered 1..N. DOCX and plain text
// files produce a single page. Any failure to read the file is returned as an
// *ExtractionError; an unknown extension returns ErrUnsupportedFormat.
func (e *Extractor) Extract(ctx context.Context, path string) (*model.Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	fingerprint, err := Fingerprint(path)
	if err != nil {
		return nil, newExtractionError(path, 0, err)
	}

	doc := &model.Document{
		Path:        path,
		Format:      format,
		Fingerprint: fingerprint,
	}

	switch format {
	case model.FormatPDF:
		doc.Pages, err = e.extractPDFCached(ctx, path, fingerprint)
	case model.FormatDOCX:
		doc.Pages, err = e.singlePage(path, readDOCX)
	case model.FormatText:
		doc.Pages, err = e.singlePage(path, readText)
	}
	if err != nil {
		return nil, err
	}

	e.logger.Debug("document extracted",
		"path", path,
		"format", string(format),
		"pages", doc.PageCount(),
		"ocr_pages", doc.OCRPageCount(),
		"elapsed", time.Since(start))
	return doc, nil
}

// singlePage wraps a whole-file reader into a one-page result.
func (e *Extractor) singlePage(path string, read func(string) (string, error)) ([]model.Page, error) {
	text, err := read(path)
	if err != nil {
		return nil, newExtractionError(path, 0, err)
	}
	return []model.Page{{
		Number: 1,
		Text:   textnorm.Collapse(text),
		Method: model.MethodNative,
	}}, nil
}

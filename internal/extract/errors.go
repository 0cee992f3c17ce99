package extract

import (
	"errors"
	"fmt"
)

// Extraction errors.
// Callers distinguish them with errors.Is rather than by message.
var (
	// ErrUnsupportedFormat is returned when the file extension is not one of
	// the recognized document formats.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtraction is matched by every *ExtractionError. It covers corrupt or
	// unreadable documents and a missing OCR engine when fallback is required.
	ErrExtraction = errors.New("document extraction failed")

	// ErrOCRUnavailable is returned when a page needs OCR but no recognizer
	// is configured or the recognizer binary cannot be found.
	ErrOCRUnavailable = errors.New("ocr engine is not available")

	// ErrRasterizerUnavailable is returned when a page needs OCR but the
	// engine has no way to render it to an image.
	ErrRasterizerUnavailable = errors.New("page rasterizer is not available")

	// ErrUnknownEngine is returned by NewEngine for an unrecognized engine name.
	ErrUnknownEngine = errors.New("unknown pdf engine")
)

// ExtractionError describes a failure to read one document or one page.
type ExtractionError struct {
	// Path is the document being extracted.
	Path string

	// Page is the 1-based page number, or zero when the failure concerns
	// the document as a whole.
	Page int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("failed to extract %s (page %d): %v", e.Path, e.Page, e.Err)
	}
	return fmt.Sprintf("failed to extract %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrExtraction and the cause to errors.Is and errors.As.
func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtraction, e.Err}
}

func newExtractionError(path string, page int, err error) *ExtractionError {
	return &ExtractionError{Path: path, Page: page, Err: err}
}

// Package extract turns an input document into ordered page text.
//
// Supported inputs are PDF, DOCX and plain text, selected by file extension.
// PDF pages are extracted in parallel by a bounded worker pool. A page whose
// native text is shorter than the OCR threshold is treated as image-dominant:
// it is rasterized and run through optical character recognition instead.
// Pages always come back numbered 1..N in document order, whatever order the
// workers finish in, and a page whose recognition yields nothing is kept with
// empty text rather than dropped.
//
// Two PDF engines are available:
//   - mupdf uses MuPDF through github.com/gen2brain/go-fitz for both text and
//     rasterization.
//   - pdfcpu parses content streams with github.com/pdfcpu/pdfcpu and
//     rasterizes with the poppler pdftoppm tool.
//
// Design decision: The engine and the recognizer sit behind small interfaces
// so the page pool can be tested without native libraries or external tools.
// Every failure to read a document is reported as an *ExtractionError, which
// matches ErrExtraction under errors.Is; an unrecognized extension is reported
// as ErrUnsupportedFormat. Nothing is retried.
package extract

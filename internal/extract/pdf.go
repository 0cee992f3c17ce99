package extract

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/textnorm"
)

// extractPDFCached consults the page cache before running the page pool and
// stores a fresh result afterwards.
func (e *Extractor) extractPDFCached(ctx context.Context, path, fingerprint string) ([]model.Page, error) {
	if e.cache == nil {
		return e.extractPDF(ctx, path)
	}

	key := e.cacheKey(fingerprint)
	pages, ok, err := e.cache.Lookup(ctx, key)
	switch {
	case err != nil:
		e.logger.Warn("page cache lookup failed", "path", path, "error", err)
	case ok:
		e.logger.Debug("page cache hit", "path", path, "pages", len(pages))
		return pages, nil
	}

	pages, err = e.extractPDF(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Store(ctx, key, pages); err != nil {
		e.logger.Warn("page cache store failed", "path", path, "error", err)
	}
	return pages, nil
}

// extractPDF runs one task per page on a pool of e.workers goroutines.
//
// Each task writes only its own slot of the result slice, so the slice is
// in page order once the pool has drained regardless of completion order.
// The first failing page cancels the remaining tasks.
func (e *Extractor) extractPDF(ctx context.Context, path string) ([]model.Page, error) {
	doc, err := e.engine.Open(path)
	if err != nil {
		return nil, newExtractionError(path, 0, err)
	}
	defer func() {
		if err := doc.Close(); err != nil {
			e.logger.Debug("failed to close pdf", "path", path, "error", err)
		}
	}()

	total := doc.NumPage()
	e.logger.Debug("pdf opened",
		"path", path,
		"engine", e.engine.Name(),
		"pages", total,
		"workers", e.workers)

	pages := make([]model.Page, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range total {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			page, err := e.extractPage(gctx, doc, path, i)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// extractPage reads the native text of one page and falls back to OCR when
// the collapsed text is shorter than the threshold.
func (e *Extractor) extractPage(ctx context.Context, doc PDFDocument, path string, index int) (model.Page, error) {
	number := index + 1

	raw, err := doc.PageText(index)
	if err != nil {
		return model.Page{}, newExtractionError(path, number, err)
	}
	text := textnorm.Collapse(raw)
	if textnorm.Length(text) >= e.threshold {
		return model.Page{Number: number, Text: text, Method: model.MethodNative}, nil
	}

	e.logger.Info("ocr triggered", "path", path, "page", number, "native_chars", textnorm.Length(text))

	if e.recognizer == nil {
		return model.Page{}, newExtractionError(path, number, ErrOCRUnavailable)
	}
	png, err := doc.RenderPNG(ctx, index, e.dpi)
	if err != nil {
		return model.Page{}, newExtractionError(path, number, fmt.Errorf("rasterize: %w", err))
	}
	recognized, err := e.recognizer.Recognize(ctx, png)
	if err != nil {
		return model.Page{}, newExtractionError(path, number, err)
	}

	text = textnorm.Collapse(recognized)
	if text == "" {
		e.logger.Warn("ocr produced no text", "path", path, "page", number)
	}
	return model.Page{Number: number, Text: text, Method: model.MethodOCR}, nil
}

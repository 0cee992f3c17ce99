package compare

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nao1215/clausediff/internal/align"
	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/pipeline"
	"github.com/nao1215/clausediff/internal/segment"
)

// ErrNoExtractor is returned by CompareFiles on a Comparator built without
// an Extractor.
var ErrNoExtractor = errors.New("no document extractor configured")

// Comparator compares two documents.
// A Comparator keeps no per-comparison state and may be shared between
// goroutines as long as its Extractor may.
type Comparator struct {
	extractor Extractor
	segmenter *segment.Segmenter
	aligner   align.Aligner
	logger    *slog.Logger
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithExtractor sets the extractor used by CompareFiles.
func WithExtractor(e Extractor) Option {
	return func(c *Comparator) {
		c.extractor = e
	}
}

// WithAligner replaces the default greedy aligner.
func WithAligner(a align.Aligner) Option {
	return func(c *Comparator) {
		if a != nil {
			c.aligner = a
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparator) {
		c.logger = logger
	}
}

// New creates a Comparator. It fails only when the sentence model cannot be
// loaded.
func New(opts ...Option) (*Comparator, error) {
	segmenter, err := segment.New()
	if err != nil {
		return nil, err
	}
	c := &Comparator{
		segmenter: segmenter,
		aligner:   align.AlignerFunc(align.Greedy),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// CompareFiles extracts both files and compares them. The returned
// comparison carries the extracted documents and the report.
// An extraction failure on either side aborts the comparison.
func (c *Comparator) CompareFiles(ctx context.Context, masterPath, testPath string) (*model.Comparison, error) {
	if c.extractor == nil {
		return nil, ErrNoExtractor
	}

	cmp := model.NewComparison(masterPath, testPath)
	p := pipeline.New(pipeline.WithLogger(c.logger))
	p.AddSteps(
		NewExtractStep(c.extractor, true),
		NewExtractStep(c.extractor, false),
	)
	p.AddSteps(c.analysisSteps()...)

	c.logger.Debug("comparison started", "master_path", masterPath, "test_path", testPath)
	if err := p.Execute(ctx, cmp); err != nil {
		return nil, err
	}
	c.logger.Debug("comparison finished",
		"risk", cmp.Report.Risk,
		"changes", len(cmp.Report.Changes),
		"level", cmp.Report.Level.String())
	return cmp, nil
}

// CompareText compares two already-extracted texts. Each text is treated as
// a single-page document.
func (c *Comparator) CompareText(ctx context.Context, master, test string) (*model.Report, error) {
	cmp := model.NewComparison("", "")
	cmp.Master = textDocument(master)
	cmp.Test = textDocument(test)

	p := pipeline.New(pipeline.WithLogger(c.logger))
	p.AddSteps(c.analysisSteps()...)
	if err := p.Execute(ctx, cmp); err != nil {
		return nil, err
	}
	return cmp.Report, nil
}

func (c *Comparator) analysisSteps() []pipeline.Step {
	return []pipeline.Step{
		NewSegmentStep(c.segmenter),
		NewAlignStep(c.aligner),
		classifyStep(),
		aggregateStep(),
	}
}

func textDocument(text string) *model.Document {
	return &model.Document{
		Format: model.FormatText,
		Pages:  []model.Page{{Number: 1, Text: text, Method: model.MethodNative}},
	}
}

package compare

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/nao1215/clausediff/internal/align"
	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/pipeline"
	"github.com/nao1215/clausediff/internal/segment"
)

// Step names, as recorded in model.Comparison.PerformedSteps.
const (
	StepExtractMaster = "extract-master"
	StepExtractTest   = "extract-test"
	StepSegment       = "segment"
	StepAlign         = "align"
	StepClassify      = "classify"
	StepAggregate     = "aggregate"
)

// errMissingDocuments is returned when a step runs before extraction.
var errMissingDocuments = errors.New("documents have not been extracted")

// Extractor turns a file into a document. *extract.Extractor implements it.
type Extractor interface {
	Extract(ctx context.Context, path string) (*model.Document, error)
}

// ExtractStep extracts one side of the comparison.
type ExtractStep struct {
	extractor Extractor
	master    bool
}

// NewExtractStep creates the extraction step for the master side when master
// is true, for the test side otherwise.
func NewExtractStep(extractor Extractor, master bool) *ExtractStep {
	return &ExtractStep{extractor: extractor, master: master}
}

// Do extracts the document and stores it on the comparison.
func (s *ExtractStep) Do(ctx context.Context, cmp *model.Comparison) error {
	path := cmp.TestPath
	if s.master {
		path = cmp.MasterPath
	}
	doc, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return err
	}
	if s.master {
		cmp.Master = doc
	} else {
		cmp.Test = doc
	}
	return nil
}

// Name returns the step's name.
func (s *ExtractStep) Name() string {
	if s.master {
		return StepExtractMaster
	}
	return StepExtractTest
}

// SegmentStep splits both documents into sentences.
type SegmentStep struct {
	segmenter *segment.Segmenter
}

// NewSegmentStep creates a segmentation step.
func NewSegmentStep(segmenter *segment.Segmenter) *SegmentStep {
	return &SegmentStep{segmenter: segmenter}
}

// Do segments the master and test text.
func (s *SegmentStep) Do(_ context.Context, cmp *model.Comparison) error {
	if cmp.Master == nil || cmp.Test == nil {
		return errMissingDocuments
	}
	cmp.MasterSentences = s.segmenter.Segment(cmp.Master.Text())
	cmp.TestSentences = s.segmenter.Segment(cmp.Test.Text())
	return nil
}

// Name returns the step's name.
func (s *SegmentStep) Name() string {
	return StepSegment
}

// AlignStep pairs master sentences with test sentences.
type AlignStep struct {
	aligner align.Aligner
}

// NewAlignStep creates an alignment step.
func NewAlignStep(aligner align.Aligner) *AlignStep {
	return &AlignStep{aligner: aligner}
}

// Do aligns the segmented sentences.
func (s *AlignStep) Do(_ context.Context, cmp *model.Comparison) error {
	cmp.Alignments = s.aligner.Align(cmp.MasterSentences, cmp.TestSentences)
	return nil
}

// Name returns the step's name.
func (s *AlignStep) Name() string {
	return StepAlign
}

// classifyStep runs Classify over the alignments.
func classifyStep() pipeline.Step {
	return pipeline.StepFunc{
		StepName: StepClassify,
		Fn: func(_ context.Context, cmp *model.Comparison) error {
			cmp.Changes = Classify(cmp.Alignments, cmp.MasterSentences, cmp.TestSentences)
			return nil
		},
	}
}

// aggregateStep builds the report and copies the extraction summary into it.
func aggregateStep() pipeline.Step {
	return pipeline.StepFunc{
		StepName: StepAggregate,
		Fn: func(_ context.Context, cmp *model.Comparison) error {
			if cmp.Master == nil || cmp.Test == nil {
				return errMissingDocuments
			}
			report := Aggregate(cmp.Changes, cmp.Master.Text(), cmp.Test.Text())
			report.MasterFile = displayName(cmp.MasterPath)
			report.TestFile = displayName(cmp.TestPath)
			report.MasterPages = cmp.Master.PageCount()
			report.TestPages = cmp.Test.PageCount()
			report.MasterOCR = cmp.Master.OCRPageCount()
			report.TestOCR = cmp.Test.OCRPageCount()
			cmp.Report = report
			return nil
		},
	}
}

// displayName is the base name of path, or "" when there is no path.
func displayName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

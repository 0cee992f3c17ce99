package model

// Sentence is one segmented sentence of a document.
// Index is the position within its source document's sentence sequence.
type Sentence struct {
	Text       string `json:"text"`
	Normalized string `json:"normalized"`
	Index      int    `json:"index"`
}

// NoMatch is the TestIndex of an alignment whose master sentence found no partner.
const NoMatch = -1

// Alignment pairs a master sentence with a test sentence.
//
// A master-only alignment (removed sentence) has TestIndex == NoMatch.
// A test-only alignment (added sentence) has MasterIndex == NoMatch.
// Similarity is in the range 0..100 and is zero for unmatched entries.
type Alignment struct {
	MasterIndex int     `json:"master_index"`
	TestIndex   int     `json:"test_index"`
	Similarity  float64 `json:"similarity"`
}

// Matched reports whether both sides of the alignment are present.
func (a Alignment) Matched() bool {
	return a.MasterIndex != NoMatch && a.TestIndex != NoMatch
}

// Removed reports whether the alignment is a master sentence without partner.
func (a Alignment) Removed() bool {
	return a.MasterIndex != NoMatch && a.TestIndex == NoMatch
}

// Added reports whether the alignment is a test sentence without partner.
func (a Alignment) Added() bool {
	return a.MasterIndex == NoMatch && a.TestIndex != NoMatch
}

// Comparison is the state carried through the comparison pipeline.
// Each step reads what previous steps produced and fills in its own part.
type Comparison struct {
	MasterPath string `json:"master_path"`
	TestPath   string `json:"test_path"`

	Master *Document `json:"master,omitempty"`
	Test   *Document `json:"test,omitempty"`

	MasterSentences []Sentence `json:"-"`
	TestSentences   []Sentence `json:"-"`

	Alignments []Alignment `json:"-"`
	Changes    []Change    `json:"-"`

	Report *Report `json:"report,omitempty"`

	// PerformedSteps lists the pipeline steps that completed, in order.
	PerformedSteps []string `json:"performed_steps"`
}

// NewComparison creates the pipeline state for comparing two files.
func NewComparison(masterPath, testPath string) *Comparison {
	return &Comparison{
		MasterPath:     masterPath,
		TestPath:       testPath,
		PerformedSteps: make([]string, 0),
	}
}

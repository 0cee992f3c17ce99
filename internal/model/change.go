package model

// ChangeKind classifies a detected change.
type ChangeKind int

const (
	// ChangeRemoved is a master sentence with no counterpart in the test document.
	ChangeRemoved ChangeKind = iota
	// ChangeAdded is a test sentence with no counterpart in the master document.
	ChangeAdded
	// ChangeModified is a high-confidence pairing whose text differs.
	ChangeModified
	// ChangeMajor is a low-confidence pairing whose text differs.
	ChangeMajor
)

// String returns the display label of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeRemoved:
		return "REMOVED"
	case ChangeAdded:
		return "ADDED"
	case ChangeModified:
		return "MODIFIED"
	case ChangeMajor:
		return "MAJOR CHANGE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON carries the label.
func (k ChangeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Change is one entry of the comparison report.
type Change struct {
	Kind    ChangeKind `json:"kind"`
	Risk    int        `json:"risk"`
	Reasons []string   `json:"reasons"`

	// Master and Test carry the plain sentence text of each side.
	Master string `json:"master,omitempty"`
	Test   string `json:"test,omitempty"`

	// MasterHTML and TestHTML carry the token-level highlight of each side.
	MasterHTML string `json:"master_html"`
	TestHTML   string `json:"test_html"`

	// Similarity is the alignment score for matched pairs, zero otherwise.
	Similarity float64 `json:"similarity,omitempty"`
}

// Level returns the badge level of a single change.
func (c Change) Level() Level {
	return ChangeLevel(c.Risk)
}

// Report is the final result of comparing two documents.
type Report struct {
	// Changes is sorted by descending risk; equal risks keep detection order.
	Changes []Change `json:"changes"`

	// Risk is the sum of all change risks.
	Risk int `json:"risk"`

	// Reasons is the de-duplicated union of all change reasons.
	Reasons []string `json:"reasons"`

	// MasterHTML and TestHTML are the whole-document highlight.
	MasterHTML string `json:"master_html"`
	TestHTML   string `json:"test_html"`

	// Level is the document status derived from Risk.
	Level Level `json:"level"`

	// MasterFile and TestFile name the compared documents for display.
	MasterFile string `json:"master_file,omitempty"`
	TestFile   string `json:"test_file,omitempty"`

	// MasterPages and TestPages summarize extraction for display.
	MasterPages int `json:"master_pages,omitempty"`
	TestPages   int `json:"test_pages,omitempty"`
	MasterOCR   int `json:"master_ocr_pages,omitempty"`
	TestOCR     int `json:"test_ocr_pages,omitempty"`
}

// HasChanges reports whether at least one change was detected.
func (r *Report) HasChanges() bool {
	return r != nil && len(r.Changes) > 0
}

// CountByKind returns how many changes of each kind the report holds.
func (r *Report) CountByKind() map[ChangeKind]int {
	counts := make(map[ChangeKind]int, 4)
	if r == nil {
		return counts
	}
	for _, c := range r.Changes {
		counts[c.Kind]++
	}
	return counts
}

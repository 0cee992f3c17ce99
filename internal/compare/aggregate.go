package compare

import (
	"cmp"
	"slices"

	"github.com/nao1215/clausediff/internal/diff"
	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/textnorm"
)

// Aggregate assembles the final report.
//
// Changes are sorted by descending risk; changes with equal risk keep the
// order they were given in. The report risk is the sum of the change risks
// and its reasons are the sorted, de-duplicated union of the change reasons.
// The whole-document highlight is computed here from the two full texts
// after normalization; it is not built from the per-sentence highlights.
//
// The input slice is not modified.
func Aggregate(changes []model.Change, masterText, testText string) *model.Report {
	sorted := slices.Clone(changes)
	if sorted == nil {
		sorted = []model.Change{}
	}
	slices.SortStableFunc(sorted, func(a, b model.Change) int {
		return cmp.Compare(b.Risk, a.Risk)
	})

	total := 0
	reasons := make([]string, 0)
	for _, c := range sorted {
		total += c.Risk
		reasons = append(reasons, c.Reasons...)
	}
	slices.Sort(reasons)
	reasons = slices.Compact(reasons)

	masterHTML, testHTML := diff.Highlight(textnorm.Normalize(masterText), textnorm.Normalize(testText))

	return &model.Report{
		Changes:    sorted,
		Risk:       total,
		Reasons:    reasons,
		MasterHTML: masterHTML,
		TestHTML:   testHTML,
		Level:      model.DocumentLevel(total),
	}
}

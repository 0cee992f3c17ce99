package compare

import (
	"github.com/nao1215/clausediff/internal/diff"
	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/risk"
)

// ModifiedThreshold is the similarity a matched pair must exceed to count as
// a plain modification. Pairs at or below it are major changes.
const ModifiedThreshold = 90

// Classify converts alignments into changes.
//
// Matched pairs whose normalized text is identical produce nothing. Other
// matched pairs are scored by risk.Score and highlighted token by token;
// a pair at or below ModifiedThreshold is a major change and carries
// risk.LowConfidencePenalty on top of its score. Unmatched sentences get the
// fixed removed or added assessment and a single whole-sentence marker.
//
// The result follows alignment order. Alignments pointing outside the
// sentence slices are ignored.
func Classify(alignments []model.Alignment, master, test []model.Sentence) []model.Change {
	changes := make([]model.Change, 0, len(alignments))
	for _, a := range alignments {
		switch {
		case a.Matched():
			if !inRange(a.MasterIndex, master) || !inRange(a.TestIndex, test) {
				continue
			}
			m, t := master[a.MasterIndex], test[a.TestIndex]
			if m.Normalized == t.Normalized {
				continue
			}
			changes = append(changes, matchedChange(m, t, a.Similarity))
		case a.Removed():
			if !inRange(a.MasterIndex, master) {
				continue
			}
			m := master[a.MasterIndex]
			assessment := risk.Removed()
			changes = append(changes, model.Change{
				Kind:       model.ChangeRemoved,
				Risk:       assessment.Risk,
				Reasons:    assessment.Reasons,
				Master:     m.Text,
				MasterHTML: diff.Mark(diff.Delete, m.Text),
			})
		case a.Added():
			if !inRange(a.TestIndex, test) {
				continue
			}
			t := test[a.TestIndex]
			assessment := risk.Added()
			changes = append(changes, model.Change{
				Kind:     model.ChangeAdded,
				Risk:     assessment.Risk,
				Reasons:  assessment.Reasons,
				Test:     t.Text,
				TestHTML: diff.Mark(diff.Insert, t.Text),
			})
		}
	}
	return changes
}

func matchedChange(m, t model.Sentence, similarity float64) model.Change {
	assessment := risk.Score(m.Normalized, t.Normalized)
	masterHTML, testHTML := diff.Highlight(m.Text, t.Text)

	change := model.Change{
		Kind:       model.ChangeModified,
		Risk:       assessment.Risk,
		Reasons:    assessment.Reasons,
		Master:     m.Text,
		Test:       t.Text,
		MasterHTML: masterHTML,
		TestHTML:   testHTML,
		Similarity: similarity,
	}
	if similarity <= ModifiedThreshold {
		change.Kind = model.ChangeMajor
		change.Risk += risk.LowConfidencePenalty
	}
	if change.Reasons == nil {
		change.Reasons = []string{}
	}
	return change
}

func inRange(i int, s []model.Sentence) bool {
	return i >= 0 && i < len(s)
}

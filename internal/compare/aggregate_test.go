package compare

import (
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/clausediff/internal/model"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("sorts by descending risk and keeps ties stable", func(t *testing.T) {
		t.Parallel()

		changes := []model.Change{
			{Kind: model.ChangeAdded, Risk: 4, Test: "first four", Reasons: []string{"new sentence added"}},
			{Kind: model.ChangeModified, Risk: 5, Reasons: []string{"financial/numeric value changed"}},
			{Kind: model.ChangeRemoved, Risk: 4, Master: "second four", Reasons: []string{"sentence removed"}},
			{Kind: model.ChangeMajor, Risk: 10, Reasons: []string{"financial/numeric value changed", "clause removed: payment"}},
		}

		r := Aggregate(changes, "", "")

		gotRisks := make([]int, len(r.Changes))
		for i, c := range r.Changes {
			gotRisks[i] = c.Risk
		}
		if !slices.Equal(gotRisks, []int{10, 5, 4, 4}) {
			t.Fatalf("risks = %v", gotRisks)
		}
		if r.Changes[2].Test != "first four" || r.Changes[3].Master != "second four" {
			t.Error("equal-risk changes lost their order")
		}
		if r.Risk != 23 {
			t.Errorf("risk = %d, want 23", r.Risk)
		}
		if r.Level != model.LevelHigh {
			t.Errorf("level = %v, want HIGH", r.Level)
		}

		wantReasons := []string{
			"clause removed: payment",
			"financial/numeric value changed",
			"new sentence added",
			"sentence removed",
		}
		if !slices.Equal(r.Reasons, wantReasons) {
			t.Errorf("reasons = %v, want %v", r.Reasons, wantReasons)
		}
		if changes[0].Risk != 4 {
			t.Error("input slice was reordered")
		}
	})

	t.Run("no changes yields an empty low risk report", func(t *testing.T) {
		t.Parallel()

		r := Aggregate(nil, "Same text.", "Same text.")
		if r.Changes == nil || len(r.Changes) != 0 {
			t.Errorf("changes = %#v, want empty slice", r.Changes)
		}
		if r.Reasons == nil || len(r.Reasons) != 0 {
			t.Errorf("reasons = %#v, want empty slice", r.Reasons)
		}
		if r.Risk != 0 || r.Level != model.LevelLow {
			t.Errorf("risk = %d level = %v", r.Risk, r.Level)
		}
	})

	t.Run("whole document highlight uses normalized text", func(t *testing.T) {
		t.Parallel()

		r := Aggregate(nil, "The  FEE\nis due.", "the fee is overdue.")
		if r.MasterHTML != `the fee is <span class="diff-rep" style="background:#ffd699">due.</span>` {
			t.Errorf("master html = %q", r.MasterHTML)
		}
		if r.TestHTML != `the fee is <span class="diff-rep" style="background:#ffd699">overdue.</span>` {
			t.Errorf("test html = %q", r.TestHTML)
		}
	})

	t.Run("whole document highlight is independent of changes", func(t *testing.T) {
		t.Parallel()

		changes := []model.Change{{Kind: model.ChangeAdded, Risk: 4, TestHTML: "<span>ignored</span>"}}
		r := Aggregate(changes, "a b", "a b")
		if strings.Contains(r.MasterHTML, "span") || strings.Contains(r.TestHTML, "span") {
			t.Errorf("unexpected markup %q / %q", r.MasterHTML, r.TestHTML)
		}
	})
}

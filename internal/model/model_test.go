package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDocumentText(t *testing.T) {
	t.Parallel()

	t.Run("joins pages in order with a blank line", func(t *testing.T) {
		t.Parallel()
		doc := &Document{Pages: []Page{
			{Number: 1, Text: "first page"},
			{Number: 2, Text: ""},
			{Number: 3, Text: "third page"},
		}}
		want := "first page\n\n\n\nthird page"
		if got := doc.Text(); got != want {
			t.Errorf("Text() = %q, want %q", got, want)
		}
		if doc.PageCount() != 3 {
			t.Errorf("PageCount() = %d, want 3", doc.PageCount())
		}
	})

	t.Run("nil document is empty", func(t *testing.T) {
		t.Parallel()
		var doc *Document
		if doc.Text() != "" || doc.PageCount() != 0 || doc.OCRPageCount() != 0 {
			t.Error("nil document should report nothing")
		}
	})

	t.Run("counts ocr pages", func(t *testing.T) {
		t.Parallel()
		doc := &Document{Pages: []Page{
			{Number: 1, Method: MethodNative},
			{Number: 2, Method: MethodOCR},
			{Number: 3, Method: MethodOCR},
		}}
		if got := doc.OCRPageCount(); got != 2 {
			t.Errorf("OCRPageCount() = %d, want 2", got)
		}
	})
}

func TestAlignmentPredicates(t *testing.T) {
	t.Parallel()

	matched := Alignment{MasterIndex: 0, TestIndex: 2, Similarity: 95}
	removed := Alignment{MasterIndex: 1, TestIndex: NoMatch}
	added := Alignment{MasterIndex: NoMatch, TestIndex: 3}

	if !matched.Matched() || matched.Removed() || matched.Added() {
		t.Error("matched alignment misclassified")
	}
	if removed.Matched() || !removed.Removed() || removed.Added() {
		t.Error("removed alignment misclassified")
	}
	if added.Matched() || added.Removed() || !added.Added() {
		t.Error("added alignment misclassified")
	}
}

func TestChangeKindJSON(t *testing.T) {
	t.Parallel()

	report := &Report{
		Changes: []Change{{Kind: ChangeMajor, Risk: 6, Reasons: []string{"sentence removed"}}},
		Risk:    6,
		Level:   DocumentLevel(6),
	}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"kind":"MAJOR CHANGE"`) {
		t.Errorf("kind label missing from %s", got)
	}
	if !strings.Contains(got, `"level":"MODERATE"`) {
		t.Errorf("level label missing from %s", got)
	}
}

func TestReportCountByKind(t *testing.T) {
	t.Parallel()

	report := &Report{Changes: []Change{
		{Kind: ChangeAdded}, {Kind: ChangeAdded}, {Kind: ChangeRemoved},
	}}
	counts := report.CountByKind()
	if counts[ChangeAdded] != 2 || counts[ChangeRemoved] != 1 || counts[ChangeModified] != 0 {
		t.Errorf("CountByKind() = %v", counts)
	}
	if !report.HasChanges() {
		t.Error("HasChanges() = false, want true")
	}
	var empty *Report
	if empty.HasChanges() {
		t.Error("nil report should have no changes")
	}
}

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/clausediff/internal/model"
)

func TestRunExtractCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints pages", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		out, err := execute(t, "extract", "-c", env.config, env.master)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"1 pages, 0 via OCR", "--- page 1 [native] ---", masterDoc} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		out, err := execute(t, "extract", "-c", env.config, "--json", env.test)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var doc model.Document
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if doc.Format != model.FormatText {
			t.Errorf("format = %q, want %q", doc.Format, model.FormatText)
		}
		if doc.PageCount() != 1 || doc.Pages[0].Text != testDoc {
			t.Errorf("pages = %+v", doc.Pages)
		}
		if doc.Fingerprint == "" {
			t.Error("fingerprint is empty")
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		empty := filepath.Join(env.dir, "empty.txt")
		if err := os.WriteFile(empty, nil, 0600); err != nil {
			t.Fatal(err)
		}

		out, err := execute(t, "extract", "-c", env.config, empty)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "(no text)") {
			t.Errorf("expected '(no text)', got:\n%s", out)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := execute(t, "extract", "-c", env.config, filepath.Join(env.dir, "slides.pptx"))
		if err == nil || !strings.Contains(err.Error(), "unsupported document format") {
			t.Errorf("expected unsupported format error, got %v", err)
		}
	})
}

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/nao1215/clausediff/internal/database"
	"github.com/nao1215/clausediff/internal/model"
)

func TestCacheCmd(t *testing.T) {
	t.Parallel()

	t.Run("stats of an empty cache", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		dir := t.TempDir()

		out, err := execute(t, "cache", "stats", "-c", env.config, "--cache-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Documents: 0") || !strings.Contains(out, "Pages:     0") {
			t.Errorf("unexpected stats:\n%s", out)
		}
		if strings.Contains(out, "Oldest:") {
			t.Errorf("empty cache should not print an age range:\n%s", out)
		}
	})

	t.Run("stats and purge of a populated cache", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		dir := t.TempDir()

		db, err := database.Open(dir, database.DefaultOptions())
		if err != nil {
			t.Fatalf("database.Open() error = %v", err)
		}
		pages := []model.Page{
			{Number: 1, Text: "first page", Method: model.MethodNative},
			{Number: 2, Text: "second page", Method: model.MethodOCR},
		}
		if err := db.Store(context.Background(), "fingerprint", pages); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}

		out, err := execute(t, "cache", "stats", "-c", env.config, "--cache-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Documents: 1") || !strings.Contains(out, "Pages:     2") {
			t.Errorf("unexpected stats:\n%s", out)
		}

		out, err = execute(t, "cache", "purge", "-c", env.config, "--cache-dir", dir, "--older-than", "1h")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Removed 0 cached documents") {
			t.Errorf("fresh entry should survive a 1h purge:\n%s", out)
		}

		out, err = execute(t, "cache", "purge", "-c", env.config, "--cache-dir", dir, "--older-than", "0s")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Removed 1 cached documents") {
			t.Errorf("expected one purged entry:\n%s", out)
		}
	})

	t.Run("negative age", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := execute(t, "cache", "purge", "-c", env.config, "--cache-dir", t.TempDir(), "--older-than", "-1h")
		if err == nil {
			t.Error("expected error for negative age")
		}
	})
}

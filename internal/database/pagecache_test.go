package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/clausediff/internal/model"
)

// setupTestCache creates a temporary cache for testing.
func setupTestCache(t *testing.T) *PageCache {
	t.Helper()

	pc, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() {
		_ = pc.Close()
	})
	return pc
}

func samplePages() []model.Page {
	return []model.Page{
		{Number: 1, Text: "The Supplier shall deliver the goods.", Method: model.MethodNative},
		{Number: 2, Text: "", Method: model.MethodOCR},
		{Number: 3, Text: "Payment is due within 30 days.", Method: model.MethodOCR},
	}
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		pc, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}
		defer pc.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if pc.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("Path() = %q", pc.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("CreateIfNotExists=false opens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pc, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create cache: %v", err)
		}
		_ = pc.Close()

		pc, err = Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen cache: %v", err)
		}
		_ = pc.Close()
	})
}

func TestPageCacheStoreAndLookup(t *testing.T) {
	t.Parallel()

	t.Run("miss on empty cache", func(t *testing.T) {
		t.Parallel()
		pc := setupTestCache(t)

		pages, ok, err := pc.Lookup(context.Background(), "absent")
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if ok || pages != nil {
			t.Errorf("Lookup() = %v, %v; want miss", pages, ok)
		}
	})

	t.Run("round trip keeps order and methods", func(t *testing.T) {
		t.Parallel()
		pc := setupTestCache(t)
		ctx := context.Background()

		if err := pc.Store(ctx, "key-1", samplePages()); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		pages, ok, err := pc.Lookup(ctx, "key-1")
		if err != nil || !ok {
			t.Fatalf("Lookup() = %v, %v", ok, err)
		}
		want := samplePages()
		if len(pages) != len(want) {
			t.Fatalf("got %d pages, want %d", len(pages), len(want))
		}
		for i := range want {
			if pages[i] != want[i] {
				t.Errorf("page %d = %+v, want %+v", i+1, pages[i], want[i])
			}
		}
	})

	t.Run("store replaces an existing entry", func(t *testing.T) {
		t.Parallel()
		pc := setupTestCache(t)
		ctx := context.Background()

		if err := pc.Store(ctx, "key", samplePages()); err != nil {
			t.Fatal(err)
		}
		replacement := []model.Page{{Number: 1, Text: "only page", Method: model.MethodNative}}
		if err := pc.Store(ctx, "key", replacement); err != nil {
			t.Fatal(err)
		}
		pages, ok, err := pc.Lookup(ctx, "key")
		if err != nil || !ok {
			t.Fatalf("Lookup() = %v, %v", ok, err)
		}
		if len(pages) != 1 || pages[0].Text != "only page" {
			t.Errorf("pages = %+v, want the replacement", pages)
		}
	})

	t.Run("empty document is a hit", func(t *testing.T) {
		t.Parallel()
		pc := setupTestCache(t)
		ctx := context.Background()

		if err := pc.Store(ctx, "empty", nil); err != nil {
			t.Fatal(err)
		}
		pages, ok, err := pc.Lookup(ctx, "empty")
		if err != nil || !ok || len(pages) != 0 {
			t.Errorf("Lookup() = %v, %v, %v; want empty hit", pages, ok, err)
		}
	})
}

func TestPageCachePurgeAndStats(t *testing.T) {
	t.Parallel()

	pc := setupTestCache(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pc.now = func() time.Time { return base }
	if err := pc.Store(ctx, "old", samplePages()); err != nil {
		t.Fatal(err)
	}
	pc.now = func() time.Time { return base.Add(2 * time.Hour) }
	if err := pc.Store(ctx, "new", samplePages()[:1]); err != nil {
		t.Fatal(err)
	}

	stats, err := pc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Entries != 2 || stats.Pages != 4 {
		t.Errorf("Stats() = %+v, want 2 entries and 4 pages", stats)
	}
	if !stats.Oldest.Equal(base) || !stats.Newest.Equal(base.Add(2*time.Hour)) {
		t.Errorf("Stats() range = %v .. %v", stats.Oldest, stats.Newest)
	}

	removed, err := pc.Purge(ctx, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Purge() removed %d entries, want 1", removed)
	}
	if _, ok, _ := pc.Lookup(ctx, "old"); ok {
		t.Error("old entry survived the purge")
	}
	if _, ok, _ := pc.Lookup(ctx, "new"); !ok {
		t.Error("new entry was purged")
	}

	stats, err = pc.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 1 || stats.Pages != 1 {
		t.Errorf("Stats() after purge = %+v", stats)
	}
}

func TestStatsOnEmptyCache(t *testing.T) {
	t.Parallel()

	stats, err := setupTestCache(t).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Entries != 0 || !stats.Oldest.IsZero() {
		t.Errorf("Stats() = %+v, want zero", stats)
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, s := range []string{"2026-01-02 03:04:05", "2026-01-02T03:04:05Z"} {
		if got := parseTimestamp(s); !got.Equal(want) {
			t.Errorf("parseTimestamp(%q) = %v", s, got)
		}
	}
	if !parseTimestamp("yesterday").IsZero() {
		t.Error("unparsable timestamps should yield zero time")
	}
}

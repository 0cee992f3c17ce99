package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/clausediff/internal/model"
)

// FileName is the name of the cache database inside the cache directory.
const FileName = "clausediff.db"

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
// Timestamps are stored in UTC so that string comparison orders them.
const sqliteTime = "2006-01-02 15:04:05"

// PageCache provides SQLite-based storage for extracted pages.
//
// Design decision: Pages are stored as rows rather than one JSON blob so that
// a partially written entry can never be read back; every entry is written
// in a single transaction.
type PageCache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the current time. Tests replace it.
	now func() time.Time
}

// Options configures PageCache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a PageCache in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*PageCache, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("cache database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pc := &PageCache{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := pc.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return pc, nil
}

// Path returns the database file path.
func (pc *PageCache) Path() string {
	return pc.dbPath
}

// Close closes the database connection.
func (pc *PageCache) Close() error {
	return pc.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (pc *PageCache) createTables() error {
	schema := `
	-- One row per cached extraction
	CREATE TABLE IF NOT EXISTS documents (
		cache_key TEXT PRIMARY KEY,
		page_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at);

	-- Extracted pages, numbered from 1
	CREATE TABLE IF NOT EXISTS pages (
		cache_key TEXT NOT NULL,
		number INTEGER NOT NULL,
		text TEXT NOT NULL,
		method TEXT NOT NULL,
		PRIMARY KEY (cache_key, number)
	);
	`

	_, err := pc.db.ExecContext(context.Background(), schema)
	return err
}

// Lookup returns the cached pages for key in page order.
// The boolean is false when nothing is cached under key.
func (pc *PageCache) Lookup(ctx context.Context, key string) ([]model.Page, bool, error) {
	var pageCount int
	err := pc.db.QueryRowContext(ctx,
		`SELECT page_count FROM documents WHERE cache_key = ?`, key).Scan(&pageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up cache entry: %w", err)
	}

	rows, err := pc.db.QueryContext(ctx,
		`SELECT number, text, method FROM pages WHERE cache_key = ? ORDER BY number`, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached pages: %w", err)
	}
	defer rows.Close()

	pages := make([]model.Page, 0, pageCount)
	for rows.Next() {
		var p model.Page
		var method string
		if err := rows.Scan(&p.Number, &p.Text, &method); err != nil {
			return nil, false, fmt.Errorf("failed to scan cached page: %w", err)
		}
		p.Method = model.ExtractionMethod(method)
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("failed to iterate cached pages: %w", err)
	}

	// An entry whose page rows do not add up is treated as a miss.
	if len(pages) != pageCount {
		return nil, false, nil
	}
	return pages, true, nil
}

// Store replaces the cache entry for key with pages.
func (pc *PageCache) Store(ctx context.Context, key string, pages []model.Page) error {
	tx, err := pc.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := deleteEntry(ctx, tx, key); err != nil {
		return err
	}

	createdAt := pc.now().UTC().Format(sqliteTime)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (cache_key, page_count, created_at) VALUES (?, ?, ?)`,
		key, len(pages), createdAt); err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pages (cache_key, number, text, method) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range pages {
		if _, err := stmt.ExecContext(ctx, key, p.Number, p.Text, string(p.Method)); err != nil {
			return fmt.Errorf("failed to insert page %d: %w", p.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return nil
}

// Purge removes every entry stored at or before the cutoff and returns how many
// entries were removed.
func (pc *PageCache) Purge(ctx context.Context, before time.Time) (int, error) {
	tx, err := pc.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	cutoff := before.UTC().Format(sqliteTime)
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM pages WHERE cache_key IN (SELECT cache_key FROM documents WHERE created_at <= ?)`,
		cutoff); err != nil {
		return 0, fmt.Errorf("failed to purge cached pages: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE created_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache entries: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit purge: %w", err)
	}
	return int(removed), nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int
	Pages   int
	Oldest  time.Time
	Newest  time.Time
}

// Stats returns the number of entries and pages and the age range.
// Oldest and Newest are zero when the cache is empty.
func (pc *PageCache) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	var oldest, newest sql.NullString
	err := pc.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(created_at), MAX(created_at) FROM documents`).Scan(&s.Entries, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	if err := pc.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&s.Pages); err != nil {
		return Stats{}, fmt.Errorf("failed to count cached pages: %w", err)
	}
	if oldest.Valid {
		s.Oldest = parseTimestamp(oldest.String)
	}
	if newest.Valid {
		s.Newest = parseTimestamp(newest.String)
	}
	return s, nil
}

func deleteEntry(ctx context.Context, tx *sql.Tx, key string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM pages WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear cached pages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear cache entry: %w", err)
	}
	return nil
}

// timestampFormats lists the layouts a stored timestamp may use.
var timestampFormats = []string{
	sqliteTime,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

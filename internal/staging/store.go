package staging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrOversizedInput is returned by Save when the stream exceeds the size cap.
	ErrOversizedInput = errors.New("input exceeds the upload size limit")

	// ErrInvalidName is returned by Save for a name without a usable base name.
	ErrInvalidName = errors.New("invalid upload name")

	// ErrOutsideStaging is returned by Remove for paths not owned by the store.
	ErrOutsideStaging = errors.New("path is outside the staging directory")
)

// Store persists uploads in a single directory.
// A Store is safe for concurrent use; every upload gets its own file.
type Store struct {
	dir     string
	maxSize int64
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now, which Purge uses to compute file ages.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates the staging directory if needed and returns a Store that
// accepts uploads of at most maxSize bytes.
func New(dir string, maxSize int64, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	s := &Store{
		dir:     dir,
		maxSize: maxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// Dir returns the staging directory.
func (s *Store) Dir() string {
	return s.dir
}

// MaxSize returns the upload size cap in bytes.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// Save writes r to "<uuid>_<base name>" in the staging directory and returns
// the path. The extension of name is kept so the format can be detected.
// A stream larger than the cap is discarded and ErrOversizedInput returned.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" || base == "" {
		return "", ErrInvalidName
	}

	path := filepath.Join(s.dir, uuid.NewString()+"_"+base)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600) //nolint:gosec // name built from a fresh UUID
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	closeErr := f.Close()
	switch {
	case copyErr != nil:
		s.discard(path)
		return "", fmt.Errorf("failed to write staged file: %w", copyErr)
	case n > s.maxSize:
		s.discard(path)
		return "", fmt.Errorf("%w: %s is larger than %d bytes", ErrOversizedInput, base, s.maxSize)
	case closeErr != nil:
		s.discard(path)
		return "", fmt.Errorf("failed to write staged file: %w", closeErr)
	}

	s.logger.Debug("upload staged", "path", path, "bytes", n)
	return path, nil
}

// Remove deletes a staged file. Removing a file that no longer exists is
// not an error.
func (s *Store) Remove(path string) error {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		return fmt.Errorf("%w: %s", ErrOutsideStaging, path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Purge deletes regular files whose modification time is older than maxAge
// and returns how many were removed. Subdirectories are left alone.
func (s *Store) Purge(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read staging directory: %w", err)
	}

	cutoff := s.now().Add(-maxAge)
	removed := 0
	var errs []error
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("purged staged uploads", "removed", removed, "max_age", maxAge)
	}
	return removed, errors.Join(errs...)
}

// OriginalName returns the upload name a staged path was saved under.
// Paths not produced by Save are returned as their base name.
func OriginalName(path string) string {
	base := filepath.Base(path)
	prefix, rest, ok := strings.Cut(base, "_")
	if !ok {
		return base
	}
	if _, err := uuid.Parse(prefix); err != nil {
		return base
	}
	return rest
}

func (s *Store) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("failed to remove staged file", "path", path, "error", err)
	}
}

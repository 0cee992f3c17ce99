package extract

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// Fingerprint returns the hex SHA3-256 digest of the file at path.
func Fingerprint(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // read-only file

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// cacheKey derives the page cache key from the file fingerprint and every
// setting that changes what extraction produces.
func (e *Extractor) cacheKey(fingerprint string) string {
	h := sha3.New256()
	for _, part := range []string{
		fingerprint,
		e.engine.Name(),
		strconv.Itoa(e.threshold),
		strconv.Itoa(e.dpi),
		e.recognizerID,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

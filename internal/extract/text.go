package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readText returns the content of a plain text file as UTF-8.
// A UTF-8 or UTF-16 byte order mark selects the decoding and is stripped;
// without one the file is read as UTF-8.
func readText(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // read-only file

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(f, decoder))
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(data), nil
}

package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// DefaultOCRLanguage is the tesseract language used when none is configured.
const DefaultOCRLanguage = "eng"

// windowsTesseractPath is where the official Windows installer puts tesseract.
const windowsTesseractPath = `C:\Program Files\Tesseract-OCR\tesseract.exe`

// Recognizer turns a rendered page image into text.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, png []byte) (string, error)

// Recognize calls f(ctx, png).
func (f RecognizerFunc) Recognize(ctx context.Context, png []byte) (string, error) {
	return f(ctx, png)
}

// Tesseract runs the tesseract command line tool with uniform block
// segmentation (--psm 6) and the default LSTM engine mode (--oem 3).
type Tesseract struct {
	// Path is the tesseract binary.
	Path string

	// Language is the trained data to use, such as "eng" or "eng+deu".
	Language string
}

// NewTesseract returns a Tesseract recognizer.
// An empty language selects DefaultOCRLanguage.
func NewTesseract(path, language string) *Tesseract {
	if language == "" {
		language = DefaultOCRLanguage
	}
	return &Tesseract{Path: path, Language: language}
}

// Recognize pipes png through "tesseract stdin stdout" and returns its output.
func (t *Tesseract) Recognize(ctx context.Context, png []byte) (string, error) {
	if t == nil || t.Path == "" {
		return "", ErrOCRUnavailable
	}

	cmd := exec.CommandContext(ctx, t.Path, //nolint:gosec // binary path comes from configuration
		"stdin", "stdout",
		"-l", t.Language,
		"--oem", "3",
		"--psm", "6")
	cmd.Stdin = bytes.NewReader(png)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
		}
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// FindTesseract resolves the tesseract binary. A configured path wins;
// otherwise PATH is searched, then the default Windows install location.
// It returns "" when nothing is found.
func FindTesseract(configured string) string {
	if configured != "" {
		return configured
	}
	if p, err := exec.LookPath("tesseract"); err == nil {
		return p
	}
	if runtime.GOOS == "windows" {
		if _, err := os.Stat(windowsTesseractPath); err == nil {
			return windowsTesseractPath
		}
	}
	return ""
}

// FindPdftoppm resolves the pdftoppm binary the same way as FindTesseract,
// without a platform fallback.
func FindPdftoppm(configured string) string {
	if configured != "" {
		return configured
	}
	if p, err := exec.LookPath("pdftoppm"); err == nil {
		return p
	}
	return ""
}

package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFCPU is the pure-Go Engine. Text comes from the page content streams;
// rasterization is delegated to the pdftoppm tool found at PdftoppmPath.
type PDFCPU struct {
	// PdftoppmPath is the pdftoppm binary. Empty disables rasterization,
	// so pages that need OCR fail with ErrRasterizerUnavailable.
	PdftoppmPath string
}

// Name returns "pdfcpu".
func (*PDFCPU) Name() string { return EnginePDFCPU }

// Open reads, validates and optimizes the PDF at path.
func (e *PDFCPU) Open(path string) (PDFDocument, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &pdfcpuDocument{ctx: ctx, path: path, pdftoppm: e.PdftoppmPath}, nil
}

type pdfcpuDocument struct {
	// mu serializes content extraction; the pdfcpu context caches decoded
	// streams and is not safe for concurrent use.
	mu       sync.Mutex
	ctx      *model.Context
	path     string
	pdftoppm string
}

func (d *pdfcpuDocument) NumPage() int {
	return d.ctx.PageCount
}

func (d *pdfcpuDocument) PageText(index int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	r, err := pdfcpu.ExtractPageContent(d.ctx, index+1)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return contentStreamText(data), nil
}

// RenderPNG runs "pdftoppm -f N -l N -r DPI -png -singlefile" into a private
// temporary directory and returns the produced image.
func (d *pdfcpuDocument) RenderPNG(ctx context.Context, index, dpi int) ([]byte, error) {
	if d.pdftoppm == "" {
		return nil, ErrRasterizerUnavailable
	}

	dir, err := os.MkdirTemp("", "clausediff-raster-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create raster directory: %w", err)
	}
	defer os.RemoveAll(dir) //nolint:errcheck // best-effort cleanup

	page := strconv.Itoa(index + 1)
	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, d.pdftoppm, //nolint:gosec // binary path comes from configuration
		"-f", page,
		"-l", page,
		"-r", strconv.Itoa(dpi),
		"-png",
		"-singlefile",
		d.path,
		prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrRasterizerUnavailable, err)
		}
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return os.ReadFile(prefix + ".png") //nolint:gosec // path built from our own temp dir
}

func (d *pdfcpuDocument) Close() error {
	return nil
}

// contentStreamText pulls the shown strings out of a decoded page content
// stream. Literal strings operands of Tj, TJ, ' and " are kept; positioning
// operators and text-object boundaries become spaces. Hex strings are skipped
// because they usually encode glyph identifiers rather than characters.
func contentStreamText(data []byte) string {
	var out strings.Builder
	var pending []string

	flushSpace := func() {
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			s, next := readLiteral(data, i)
			pending = append(pending, s)
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			// Dictionary start.
			i += 2
		case c == '<':
			// Hex string: skip to the closing bracket.
			end := bytes.IndexByte(data[i:], '>')
			if end < 0 {
				i = len(data)
			} else {
				i += end + 1
			}
		case c == '/':
			// Name object such as /F1; never an operator.
			i++
			for i < len(data) && !isDelimiter(data[i]) {
				i++
			}
		case c == '%':
			// Comment runs to end of line.
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case isOperatorStart(c):
			start := i
			for i < len(data) && isOperatorByte(data[i]) {
				i++
			}
			switch op := string(data[start:i]); op {
			case "Tj", "TJ":
				for _, s := range pending {
					out.WriteString(s)
				}
			case "'", `"`:
				flushSpace()
				for _, s := range pending {
					out.WriteString(s)
				}
			case "Td", "TD", "T*", "Tm", "ET":
				flushSpace()
			}
			pending = pending[:0]
		default:
			i++
		}
	}
	return out.String()
}

// readLiteral decodes the literal string starting at data[start] == '('.
// It returns the decoded text and the index just past the closing ')'.
func readLiteral(data []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 0
	i := start
	for i < len(data) {
		c := data[i]
		switch {
		case c == '(':
			if depth > 0 {
				sb.WriteByte(c)
			}
			depth++
			i++
		case c == ')':
			depth--
			i++
			if depth == 0 {
				return sb.String(), i
			}
			sb.WriteByte(c)
		case c == '\\' && i+1 < len(data):
			i = readEscape(data, i+1, &sb)
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i
}

// readEscape decodes the escape sequence whose first byte is data[i] and
// returns the index after it.
func readEscape(data []byte, i int, sb *strings.Builder) int {
	switch c := data[i]; c {
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '\r':
		// Line continuation; swallow an optional following LF.
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2
		}
	case '\n':
		// Line continuation.
	default:
		if c >= '0' && c <= '7' {
			val := 0
			n := 0
			for n < 3 && i < len(data) && data[i] >= '0' && data[i] <= '7' {
				val = val*8 + int(data[i]-'0')
				i++
				n++
			}
			sb.WriteByte(byte(val))
			return i
		}
		sb.WriteByte(c)
	}
	return i + 1
}

func isOperatorStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '\'' || c == '"' || c == '*'
}

func isOperatorByte(c byte) bool {
	return isOperatorStart(c) || (c >= '0' && c <= '9')
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0, '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

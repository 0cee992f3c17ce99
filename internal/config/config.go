package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/clausediff/internal/align"
	"github.com/nao1215/clausediff/internal/extract"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "clausediff"

	// DefaultWorkers is the number of pages extracted in parallel.
	// OCR dominates the cost of a scanned page, and tesseract already uses
	// several threads per page, so a small pool keeps the machine responsive.
	DefaultWorkers = extract.DefaultWorkers

	// DefaultOCRThreshold is the number of characters below which a PDF page
	// is treated as an image and sent to OCR.
	DefaultOCRThreshold = extract.DefaultOCRThreshold

	// DefaultOCRDPI is the resolution used to rasterize pages for OCR.
	DefaultOCRDPI = extract.DefaultDPI

	// DefaultOCRLanguage is the tesseract language model.
	DefaultOCRLanguage = extract.DefaultOCRLanguage

	// DefaultPDFEngine is the PDF backend used for text and rasterization.
	DefaultPDFEngine = extract.EngineMuPDF

	// DefaultAssignmentMode is the sentence alignment strategy.
	DefaultAssignmentMode = align.ModeGreedy

	// DefaultListenAddr is the address the HTTP server binds to.
	// Loopback only: documents under review should not be exposed on the
	// network unless the operator asks for it.
	DefaultListenAddr = "127.0.0.1:8080"

	// DefaultMaxUploadSize caps each uploaded document at 50 MiB.
	DefaultMaxUploadSize = 50 * 1024 * 1024

	// DefaultStagingMaxAge is the age after which staged uploads are purged.
	DefaultStagingMaxAge = 60 * time.Minute

	// DefaultCacheMaxAge is the age after which cached extractions are purged
	// by "clausediff cache purge" when no age is given.
	DefaultCacheMaxAge = 30 * 24 * time.Hour
)

// Config holds all configuration options for clausediff.
// This struct is populated from defaults, the optional configuration file
// and CLI flags, in that order, and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Workers is the size of the page extraction worker pool.
	Workers int

	// OCRThreshold is the minimum number of characters of native page text.
	// Pages below it are rasterized and recognized with OCR.
	OCRThreshold int

	// OCRDPI is the rasterization resolution for OCR.
	OCRDPI int

	// OCRLanguage is the tesseract language, e.g. "eng" or "eng+deu".
	OCRLanguage string

	// TesseractPath is the tesseract binary. Empty means auto-detect.
	TesseractPath string

	// PDFEngine selects the PDF backend: "mupdf" or "pdfcpu".
	PDFEngine string

	// PdftoppmPath is the pdftoppm binary used by the pdfcpu engine to
	// rasterize pages. Empty means auto-detect.
	PdftoppmPath string

	// AssignmentMode selects the sentence alignment: "greedy" or "optimal".
	AssignmentMode string

	// CacheEnabled turns the extraction page cache on.
	CacheEnabled bool

	// CacheDir is the directory holding the cache database.
	// Defaults to the XDG cache directory (~/.cache/clausediff on Linux).
	CacheDir string

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport and HTMLReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output.
	// Mutually exclusive with JSONReport and HTMLReport.
	MarkdownReport bool

	// HTMLReport enables the self-contained HTML report.
	// Mutually exclusive with JSONReport and MarkdownReport.
	HTMLReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// FailOnRisk makes compare exit with an error when the document risk
	// reaches this value. Zero disables the check.
	FailOnRisk int

	// ListenAddr is the HTTP server address in "host:port" format.
	ListenAddr string

	// MaxUploadSize is the maximum size in bytes of each uploaded document.
	MaxUploadSize int64

	// StagingDir is where the server stores uploads during a comparison.
	StagingDir string

	// StagingMaxAge is the age after which staged uploads are purged.
	StagingMaxAge time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .clausediff in the current directory
	// and then in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., worker count, DPI).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Workers:        DefaultWorkers,
		OCRThreshold:   DefaultOCRThreshold,
		OCRDPI:         DefaultOCRDPI,
		OCRLanguage:    DefaultOCRLanguage,
		PDFEngine:      DefaultPDFEngine,
		AssignmentMode: DefaultAssignmentMode,
		CacheEnabled:   true,
		CacheDir:       XDGCacheDir(),
		ListenAddr:     DefaultListenAddr,
		MaxUploadSize:  DefaultMaxUploadSize,
		StagingDir:     DefaultStagingDir(),
		StagingMaxAge:  DefaultStagingMaxAge,
	}
}

// XDGCacheDir returns the XDG cache directory for clausediff.
// On Linux: ~/.cache/clausediff
// On macOS: ~/Library/Caches/clausediff
// On Windows: %LOCALAPPDATA%\clausediff\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// XDGConfigDir returns the XDG config directory for clausediff.
// On Linux: ~/.config/clausediff
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultStagingDir returns the directory used for staged uploads.
func DefaultStagingDir() string {
	return filepath.Join(os.TempDir(), AppName+"-uploads")
}

// DetectTools resolves the tesseract and pdftoppm binaries once.
// Explicitly configured paths win over the PATH search.
func (c *Config) DetectTools() {
	c.TesseractPath = extract.FindTesseract(c.TesseractPath)
	c.PdftoppmPath = extract.FindPdftoppm(c.PdftoppmPath)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.OCRThreshold < 0 {
		return ErrInvalidOCRThreshold
	}

	if c.OCRDPI <= 0 {
		return ErrInvalidDPI
	}

	switch strings.ToLower(c.PDFEngine) {
	case extract.EngineMuPDF, extract.EnginePDFCPU:
	default:
		return ErrUnknownEngine
	}

	if _, err := align.ForMode(c.AssignmentMode); err != nil {
		return ErrUnknownAssignmentMode
	}

	if c.reportFormatCount() > 1 {
		return ErrConflictingReportFormats
	}

	if c.FailOnRisk < 0 {
		return ErrInvalidFailOnRisk
	}

	if c.MaxUploadSize <= 0 {
		return ErrInvalidMaxUploadSize
	}

	if c.StagingMaxAge < 0 {
		return ErrInvalidStagingMaxAge
	}

	return nil
}

func (c *Config) reportFormatCount() int {
	n := 0
	for _, enabled := range []bool{c.JSONReport, c.MarkdownReport, c.HTMLReport} {
		if enabled {
			n++
		}
	}
	return n
}

package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidWorkers is returned when the worker pool size is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidOCRThreshold is returned when the OCR threshold is negative.
	// Use 0 to disable OCR for every page that yields any text.
	ErrInvalidOCRThreshold = errors.New("invalid OCR threshold: must be non-negative")

	// ErrInvalidDPI is returned when the rasterization resolution is not positive.
	ErrInvalidDPI = errors.New("invalid OCR DPI: must be positive")

	// ErrUnknownEngine is returned for a PDF engine other than mupdf or pdfcpu.
	ErrUnknownEngine = errors.New("unknown PDF engine: must be mupdf or pdfcpu")

	// ErrUnknownAssignmentMode is returned for an alignment mode other than
	// greedy or optimal.
	ErrUnknownAssignmentMode = errors.New("unknown assignment mode: must be greedy or optimal")

	// ErrConflictingReportFormats is returned when more than one of --json,
	// --markdown and --html is specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json, --markdown and --html cannot be used together")

	// ErrInvalidFailOnRisk is returned when the fail-on-risk threshold is negative.
	ErrInvalidFailOnRisk = errors.New("invalid fail-on-risk: must be non-negative")

	// ErrInvalidMaxUploadSize is returned when the upload cap is not positive.
	ErrInvalidMaxUploadSize = errors.New("invalid max upload size: must be positive")

	// ErrInvalidStagingMaxAge is returned when the staging purge age is negative.
	ErrInvalidStagingMaxAge = errors.New("invalid staging max age: must be non-negative")
)

package config

import "time"

// File represents the structure of the .clausediff configuration file.
// Every field is optional; only the values present in the file override
// the defaults.
type File struct {
	// Extraction configures how documents are turned into text.
	Extraction ExtractionSettings `yaml:"extraction,omitempty"`

	// Comparison configures alignment and the CI gate.
	Comparison ComparisonSettings `yaml:"comparison,omitempty"`

	// Cache configures the extraction page cache.
	Cache CacheSettings `yaml:"cache,omitempty"`

	// Server configures the HTTP server.
	Server ServerSettings `yaml:"server,omitempty"`
}

// ExtractionSettings holds the extraction section of the configuration file.
type ExtractionSettings struct {
	Workers      int    `yaml:"workers,omitempty"`
	OCRThreshold *int   `yaml:"ocrThreshold,omitempty"`
	DPI          int    `yaml:"dpi,omitempty"`
	Language     string `yaml:"language,omitempty"`
	Engine       string `yaml:"engine,omitempty"`
	Tesseract    string `yaml:"tesseract,omitempty"`
	Pdftoppm     string `yaml:"pdftoppm,omitempty"`
}

// ComparisonSettings holds the comparison section of the configuration file.
type ComparisonSettings struct {
	// Assignment is "greedy" or "optimal".
	Assignment string `yaml:"assignment,omitempty"`

	// FailOnRisk makes compare fail when the document risk reaches it.
	FailOnRisk int `yaml:"failOnRisk,omitempty"`
}

// CacheSettings holds the cache section of the configuration file.
type CacheSettings struct {
	// Enabled is a pointer so that "enabled: false" can be told apart from
	// an omitted key.
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ServerSettings holds the server section of the configuration file.
type ServerSettings struct {
	Listen        string        `yaml:"listen,omitempty"`
	MaxUploadSize int64         `yaml:"maxUploadSize,omitempty"`
	StagingDir    string        `yaml:"stagingDir,omitempty"`
	StagingMaxAge time.Duration `yaml:"stagingMaxAge,omitempty"`
}

// Apply overlays the values set in the file onto cfg.
// Zero values in the file leave cfg untouched.
func (f *File) Apply(cfg *Config) {
	if f == nil || cfg == nil {
		return
	}

	e := f.Extraction
	if e.Workers != 0 {
		cfg.Workers = e.Workers
	}
	if e.OCRThreshold != nil {
		cfg.OCRThreshold = *e.OCRThreshold
	}
	if e.DPI != 0 {
		cfg.OCRDPI = e.DPI
	}
	if e.Language != "" {
		cfg.OCRLanguage = e.Language
	}
	if e.Engine != "" {
		cfg.PDFEngine = e.Engine
	}
	if e.Tesseract != "" {
		cfg.TesseractPath = e.Tesseract
	}
	if e.Pdftoppm != "" {
		cfg.PdftoppmPath = e.Pdftoppm
	}

	if f.Comparison.Assignment != "" {
		cfg.AssignmentMode = f.Comparison.Assignment
	}
	if f.Comparison.FailOnRisk != 0 {
		cfg.FailOnRisk = f.Comparison.FailOnRisk
	}

	if f.Cache.Enabled != nil {
		cfg.CacheEnabled = *f.Cache.Enabled
	}
	if f.Cache.Dir != "" {
		cfg.CacheDir = f.Cache.Dir
	}

	s := f.Server
	if s.Listen != "" {
		cfg.ListenAddr = s.Listen
	}
	if s.MaxUploadSize != 0 {
		cfg.MaxUploadSize = s.MaxUploadSize
	}
	if s.StagingDir != "" {
		cfg.StagingDir = s.StagingDir
	}
	if s.StagingMaxAge != 0 {
		cfg.StagingMaxAge = s.StagingMaxAge
	}
}

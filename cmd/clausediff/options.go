package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/clausediff/internal/config"
	"github.com/nao1215/clausediff/internal/database"
	"github.com/nao1215/clausediff/internal/extract"
	clog "github.com/nao1215/clausediff/internal/log"
)

// addExtractionFlags registers the flags shared by compare and extract.
// Defaults shown in --help are the built-in defaults; the configuration
// file only loses to flags the user actually sets.
func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().String("engine", config.DefaultPDFEngine,
		"PDF engine: mupdf or pdfcpu")
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of PDF pages extracted in parallel")
	cmd.Flags().Int("ocr-threshold", config.DefaultOCRThreshold,
		"Pages with fewer native characters than this are sent to OCR")
	cmd.Flags().Int("dpi", config.DefaultOCRDPI,
		"Rasterization resolution for OCR")
	cmd.Flags().String("lang", config.DefaultOCRLanguage,
		"Tesseract language, e.g. eng or eng+deu")
	cmd.Flags().String("tesseract", "",
		"Path to the tesseract binary (default: search PATH)")
	cmd.Flags().String("pdftoppm", "",
		"Path to the pdftoppm binary used by the pdfcpu engine (default: search PATH)")
	cmd.Flags().Bool("no-cache", false,
		"Do not read or write the extraction page cache")
	cmd.Flags().String("cache-dir", "",
		"Directory of the extraction page cache (default: XDG cache directory)")
}

// loadConfig builds the effective configuration: defaults, then the
// configuration file, then explicitly set extraction flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(lookupString(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// applyExtractionFlags copies the extraction flags the user set onto cfg.
func applyExtractionFlags(cmd *cobra.Command, cfg *config.Config) error {
	var noCache bool
	err := errors.Join(
		changedString(cmd, "engine", &cfg.PDFEngine),
		changedInt(cmd, "workers", &cfg.Workers),
		changedInt(cmd, "ocr-threshold", &cfg.OCRThreshold),
		changedInt(cmd, "dpi", &cfg.OCRDPI),
		changedString(cmd, "lang", &cfg.OCRLanguage),
		changedString(cmd, "tesseract", &cfg.TesseractPath),
		changedString(cmd, "pdftoppm", &cfg.PdftoppmPath),
		changedString(cmd, "cache-dir", &cfg.CacheDir),
		changedBool(cmd, "no-cache", &noCache),
	)
	if err != nil {
		return err
	}
	if noCache {
		cfg.CacheEnabled = false
	}
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// lookupString returns the value of a flag that may be inherited from the
// root command, or "" when the command was built standalone.
func lookupString(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	if f := cmd.Root().PersistentFlags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func changedString(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedInt(cmd *cobra.Command, name string, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedInt64(cmd *cobra.Command, name string, dst *int64) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt64(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedBool(cmd *cobra.Command, name string, dst *bool) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedDuration(cmd *cobra.Command, name string, dst *time.Duration) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// setupLogger creates the redacting logger and installs it as the default.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	logger := clog.NewSecureLogger(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context canceled on interrupt or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// newExtractor builds the document extractor described by cfg.
// The returned function closes the page cache and must always be called.
// A cache that cannot be opened is logged and skipped; it only saves time.
func newExtractor(cfg *config.Config, logger *slog.Logger) (*extract.Extractor, func(), error) {
	engine, err := extract.NewEngine(cfg.PDFEngine, cfg.PdftoppmPath)
	if err != nil {
		return nil, nil, err
	}

	opts := []extract.Option{
		extract.WithWorkers(cfg.Workers),
		extract.WithOCRThreshold(cfg.OCRThreshold),
		extract.WithDPI(cfg.OCRDPI),
		extract.WithEngine(engine),
		extract.WithLogger(logger),
	}
	if cfg.TesseractPath != "" {
		opts = append(opts, extract.WithRecognizer(extract.NewTesseract(cfg.TesseractPath, cfg.OCRLanguage)))
	} else {
		logger.Debug("tesseract not found; scanned pages cannot be recognized")
	}

	closeCache := func() {}
	if cfg.CacheEnabled {
		cache, err := database.Open(cfg.CacheDir, database.DefaultOptions())
		if err != nil {
			logger.Warn("page cache disabled", "dir", cfg.CacheDir, "error", err)
		} else {
			opts = append(opts, extract.WithCache(cache))
			closeCache = func() {
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close page cache", "error", err)
				}
			}
		}
	}

	return extract.New(opts...), closeCache, nil
}

// openOutput returns the report destination: the file at path, or the
// command's stdout when path is empty. The returned function closes the
// file and must always be called.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports quote the compared documents, so only the owner may read them.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-chosen output path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

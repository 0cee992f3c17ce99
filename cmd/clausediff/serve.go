package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/clausediff/internal/align"
	"github.com/nao1215/clausediff/internal/compare"
	"github.com/nao1215/clausediff/internal/config"
	clog "github.com/nao1215/clausediff/internal/log"
	"github.com/nao1215/clausediff/internal/server"
	"github.com/nao1215/clausediff/internal/staging"
)

// shutdownTimeout bounds how long in-flight comparisons may run after the
// server is asked to stop.
const shutdownTimeout = 30 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve document comparison over HTTP",
		Long: `Serve starts an HTTP server that compares uploaded documents.

Endpoints:
  GET  /healthz          liveness probe
  POST /api/v1/compare   multipart form with "master" and "test" files and an
                         optional "format" field (json, markdown or html)

Uploads are staged on disk only for the duration of a request. Files left
behind by interrupted requests are purged once they are older than
--staging-max-age.

Examples:
  # Listen on the default loopback address
  clausediff serve

  # Accept uploads up to 20 MiB on all interfaces
  clausediff serve --listen :8080 --max-upload-size 20971520

  # Compare with curl
  curl -F master=@master.pdf -F test=@test.pdf -F format=markdown \
    http://127.0.0.1:8080/api/v1/compare`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	addExtractionFlags(cmd)
	cmd.Flags().StringP("assignment", "a", config.DefaultAssignmentMode,
		"Sentence assignment: greedy or optimal")
	cmd.Flags().StringP("listen", "l", config.DefaultListenAddr,
		"Address to listen on")
	cmd.Flags().Int64("max-upload-size", config.DefaultMaxUploadSize,
		"Maximum size in bytes of each uploaded document")
	cmd.Flags().String("staging-dir", "",
		"Directory for uploads in progress (default: system temp directory)")
	cmd.Flags().Duration("staging-max-age", config.DefaultStagingMaxAge,
		"Age after which abandoned uploads are removed")
	cmd.Flags().Bool("json-log", false, "Write logs as JSON")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyExtractionFlags(cmd, cfg); err != nil {
		return err
	}
	var jsonLog bool
	err = errors.Join(
		changedString(cmd, "assignment", &cfg.AssignmentMode),
		changedString(cmd, "listen", &cfg.ListenAddr),
		changedInt64(cmd, "max-upload-size", &cfg.MaxUploadSize),
		changedString(cmd, "staging-dir", &cfg.StagingDir),
		changedDuration(cmd, "staging-max-age", &cfg.StagingMaxAge),
		changedBool(cmd, "json-log", &jsonLog),
	)
	if err != nil {
		return err
	}
	cfg.DetectTools()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	if jsonLog {
		logger = clog.NewSecureJSONLogger(cmd.ErrOrStderr(), cfg.Verbose)
		slog.SetDefault(logger)
	}
	ctx, cancel := signalContext(logger)
	defer cancel()

	extractor, closeCache, err := newExtractor(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	aligner, err := align.ForMode(cfg.AssignmentMode)
	if err != nil {
		return err
	}
	comparator, err := compare.New(
		compare.WithExtractor(extractor),
		compare.WithAligner(aligner),
		compare.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create comparator: %w", err)
	}

	store, err := staging.New(cfg.StagingDir, cfg.MaxUploadSize, staging.WithLogger(logger))
	if err != nil {
		return err
	}

	srv := server.New(comparator, store,
		server.WithLogger(logger),
		server.WithStagingMaxAge(cfg.StagingMaxAge),
		server.WithVersion(getVersion()),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", cfg.ListenAddr)
	return srv.ListenAndServe(ctx, cfg.ListenAddr, shutdownTimeout)
}

package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/clausediff/internal/align"
	"github.com/nao1215/clausediff/internal/compare"
	"github.com/nao1215/clausediff/internal/config"
	"github.com/nao1215/clausediff/internal/model"
	"github.com/nao1215/clausediff/internal/report"
)

// errRiskThreshold is returned by compare when --fail-on-risk is reached.
var errRiskThreshold = errors.New("document risk reached the failure threshold")

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare MASTER TEST",
		Short: "Compare a master document with a counterparty version",
		Long: `Compare extracts both documents, aligns their sentences and reports
every removed, added or modified sentence with a risk score.

Risk rules:
- A changed number or amount adds 5
- A removed or added key clause (liability, termination, penalty, ...) adds 3
- A removed or added sentence scores 4
- A low-confidence pairing adds 2

Examples:
  # Compare two PDFs and print a readable report
  clausediff compare master.pdf counterparty.pdf

  # Write a self-contained HTML report with side-by-side highlights
  clausediff compare --html -o review/report.html master.docx returned.docx

  # Use the optimal sentence assignment instead of the greedy one
  clausediff compare --assignment optimal master.pdf counterparty.pdf

  # Fail a CI job when the total risk reaches 10
  clausediff compare --json --fail-on-risk 10 master.txt proposed.txt`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	addExtractionFlags(cmd)

	// Comparison flags
	cmd.Flags().StringP("assignment", "a", config.DefaultAssignmentMode,
		"Sentence assignment: greedy or optimal")
	cmd.Flags().Int("fail-on-risk", 0,
		"Exit with status 2 when the document risk reaches this value (0 disables)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --html)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --html)")
	cmd.Flags().Bool("html", false,
		"Output HTML report (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCompareConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)
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

	startTime := time.Now()
	cmp, err := comparator.CompareFiles(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	logger.Info("comparison completed",
		"elapsed", time.Since(startTime).Round(time.Millisecond),
		"changes", len(cmp.Report.Changes),
		"risk", cmp.Report.Risk)

	if err := outputReport(cmd, cfg, cmp.Report); err != nil {
		return err
	}

	if cfg.FailOnRisk > 0 && cmp.Report.Risk >= cfg.FailOnRisk {
		return fmt.Errorf("%w: risk %d >= %d", errRiskThreshold, cmp.Report.Risk, cfg.FailOnRisk)
	}
	return nil
}

// buildCompareConfig creates the compare configuration from the config
// file and flags, resolves external tools and validates the result.
func buildCompareConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := applyExtractionFlags(cmd, cfg); err != nil {
		return nil, err
	}
	err = errors.Join(
		changedString(cmd, "assignment", &cfg.AssignmentMode),
		changedInt(cmd, "fail-on-risk", &cfg.FailOnRisk),
		changedBool(cmd, "json", &cfg.JSONReport),
		changedBool(cmd, "markdown", &cfg.MarkdownReport),
		changedBool(cmd, "html", &cfg.HTMLReport),
		changedString(cmd, "output", &cfg.ReportFile),
	)
	if err != nil {
		return nil, err
	}

	cfg.DetectTools()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// outputReport writes the report in the requested format.
func outputReport(cmd *cobra.Command, cfg *config.Config, rep *model.Report) (err error) {
	output, closeOutput, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	_, err = newReportWriter(cfg, output).Write(rep)
	return err
}

// newReportWriter selects the report writer. The readable text report is
// the default.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.HTMLReport:
		return report.NewHTMLWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}

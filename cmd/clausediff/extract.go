package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/clausediff/internal/model"
)

// NewExtractCmd creates the extract command.
// It runs only the extraction stage, which is useful to check what text a
// scanned PDF yields before comparing it.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the text extracted from a document, page by page",
		Long: `Extract reads a PDF, DOCX or plain text document and prints the text of
each page together with how it was obtained (native text or OCR).

Examples:
  # Show the pages of a scanned contract
  clausediff extract scanned.pdf

  # Force OCR on every page and print JSON
  clausediff extract --ocr-threshold 100000 --json scanned.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: runExtractCmd,
	}

	addExtractionFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output the document as JSON")
	cmd.Flags().StringP("output", "o", "",
		"Write output to specified file path (creates directories if needed)")

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyExtractionFlags(cmd, cfg); err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	cfg.DetectTools()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	extractor, closeCache, err := newExtractor(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	doc, err := extractor.Extract(ctx, args[0])
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if jsonOutput {
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	}
	return writePages(output, doc)
}

// writePages prints a header line per page followed by its text.
func writePages(w io.Writer, doc *model.Document) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s, %d pages, %d via OCR)\n",
		doc.Path, doc.Format, doc.PageCount(), doc.OCRPageCount())
	for _, p := range doc.Pages {
		fmt.Fprintf(&sb, "\n--- page %d [%s] ---\n", p.Number, p.Method)
		if p.Text == "" {
			sb.WriteString("(no text)\n")
			continue
		}
		sb.WriteString(p.Text)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

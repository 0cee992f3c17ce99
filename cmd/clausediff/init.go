package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/clausediff/internal/config"
)

//go:embed templates/clausediff.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new clausediff configuration file",
		Long: `Initialize creates a new .clausediff configuration file in the current directory.

The generated file includes:
- Extraction settings (workers, OCR threshold and resolution, PDF engine)
- Comparison settings (sentence assignment, CI risk gate)
- Cache and HTTP server settings, each documented inline

Examples:
  # Create .clausediff in current directory
  clausediff init

  # Create config file at a specific path
  clausediff init -o ~/.config/clausediff/config.yaml

  # Force overwrite existing file
  clausediff init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/clausediff.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to tune:")
	fmt.Fprintln(out, "  - OCR threshold, resolution and language")
	fmt.Fprintln(out, "  - The PDF engine and sentence assignment")
	fmt.Fprintln(out, "  - The risk gate used by 'clausediff compare --fail-on-risk'")
	return nil
}

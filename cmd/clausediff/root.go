package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitRiskThreshold is the exit status of compare when --fail-on-risk trips.
// It differs from the generic failure status so CI jobs can tell a risky
// document apart from a broken run.
const exitRiskThreshold = 2

// NewRootCmd creates the root command for clausediff.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clausediff",
		Short: "Compare two versions of a legal document and score the risk of each change",
		Long: `clausediff compares a master document with a counterparty version.

Both documents are extracted (PDF, DOCX or plain text, with OCR for scanned
PDF pages), split into sentences and aligned. Every removed, added or
modified sentence is reported with a token-level highlight and a risk score
that flags changed amounts and removed or added key clauses.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .clausediff in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errRiskThreshold) {
			os.Exit(exitRiskThreshold)
		}
		os.Exit(1)
	}
}

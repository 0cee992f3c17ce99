package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/clausediff/internal/config"
	"github.com/nao1215/clausediff/internal/database"
)

// NewCacheCmd creates the cache command with its subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or purge the extraction page cache",
		Long: `The page cache stores the extracted pages of every PDF by content
fingerprint, so comparing the same scanned document again skips OCR.

Examples:
  # Show how much is cached
  clausediff cache stats

  # Remove entries older than a week
  clausediff cache purge --older-than 168h`,
	}

	cmd.PersistentFlags().String("cache-dir", "",
		"Directory of the extraction page cache (default: XDG cache directory)")

	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCachePurgeCmd())
	return cmd
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached documents and pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // read-only use

			stats, err := db.Stats(context.Background())
			if err != nil {
				return fmt.Errorf("failed to read cache: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache:     %s\n", db.Path())
			fmt.Fprintf(out, "Documents: %d\n", stats.Entries)
			fmt.Fprintf(out, "Pages:     %d\n", stats.Pages)
			if stats.Entries > 0 {
				fmt.Fprintf(out, "Oldest:    %s\n", stats.Oldest.Format(time.RFC3339))
				fmt.Fprintf(out, "Newest:    %s\n", stats.Newest.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newCachePurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove cached documents older than a given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			olderThan, err := cmd.Flags().GetDuration("older-than")
			if err != nil {
				return err
			}
			if olderThan < 0 {
				return fmt.Errorf("--older-than must not be negative: %s", olderThan)
			}

			db, err := openCache(cmd)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // closed after the purge transaction

			removed, err := db.Purge(context.Background(), time.Now().Add(-olderThan))
			if err != nil {
				return fmt.Errorf("failed to purge cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached documents\n", removed)
			return nil
		},
	}
	cmd.Flags().Duration("older-than", config.DefaultCacheMaxAge,
		"Remove entries cached longer ago than this (0 removes everything)")
	return cmd
}

// openCache opens the page cache named by --cache-dir, the configuration
// file or the XDG default, in that order.
func openCache(cmd *cobra.Command) (*database.PageCache, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if dir := lookupString(cmd, "cache-dir"); dir != "" {
		cfg.CacheDir = dir
	}
	db, err := database.Open(cfg.CacheDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return db, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"snapforge/internal/review"
)

var pendingCmd = &cobra.Command{
	Use:   "pending [path]",
	Short: "List pending snapshot artifacts awaiting review",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPending,
}

func init() {
	pendingCmd.Flags().Bool("no-cache", false, "re-parse every artifact instead of using the scan cache")
}

func runPending(cmd *cobra.Command, args []string) error {
	root, err := resolveScanRoot(args)
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	items, err := review.Enumerate(root)
	if err != nil {
		return fmt.Errorf("pending: %w", err)
	}
	if len(items) == 0 {
		if !quiet(cmd) {
			fmt.Fprintln(os.Stdout, "No pending snapshots.")
		}
		return nil
	}

	var cache *review.ScanCache
	if !noCache {
		// a broken cache only costs re-parsing, never a wrong listing
		cache, _ = review.OpenScanCache("snapforge")
	}

	colorize := useColor(cmd, os.Stdout)
	newLabel := color.New(color.FgMagenta)
	changedLabel := color.New(color.FgYellow)
	if !colorize {
		newLabel.DisableColor()
		changedLabel.DisableColor()
	}

	for _, item := range items {
		summary, err := cache.Summarize(item.Path)
		if err != nil {
			return fmt.Errorf("pending: %w", err)
		}
		if summary.IsNew {
			fmt.Fprintf(os.Stdout, "%s %s\n", newLabel.Sprint("new      "), summary.Source)
		} else {
			fmt.Fprintf(os.Stdout, "%s %s (-%d +%d)\n", changedLabel.Sprint("mismatch "), summary.Source, summary.Removed, summary.Added)
		}
	}
	if !quiet(cmd) {
		fmt.Fprintf(os.Stdout, "%d pending snapshot(s). Run 'snapforge review' to decide them.\n", len(items))
	}
	return nil
}

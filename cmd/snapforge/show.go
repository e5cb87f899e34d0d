package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"snapforge/internal/diffline"
	"snapforge/internal/snap"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a snapshot or pending artifact",
	Long:  "Print an accepted snapshot (header and body) or a pending artifact (identity and diff).",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	path := args[0]
	colorize := useColor(cmd, os.Stdout)

	if strings.HasSuffix(path, snap.AcceptedExt+snap.PendingSuffix) {
		return showPending(path, colorize)
	}
	return showAccepted(path, colorize)
}

func showAccepted(path string, colorize bool) error {
	store := &snap.Store{}
	acc, err := store.Read(path)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	if acc == nil {
		return fmt.Errorf("show: %s does not exist", path)
	}

	meta := color.New(color.FgCyan)
	if !colorize {
		meta.DisableColor()
	}
	meta.Fprintf(os.Stdout, "source:  %s\n", acc.Source)
	meta.Fprintf(os.Stdout, "format:  %s\n", acc.Format)
	if acc.Created != "" {
		meta.Fprintf(os.Stdout, "created: %s\n", acc.Created)
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, acc.Body)
	return nil
}

func showPending(path string, colorize bool) error {
	pending, err := snap.ReadPending(path)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}

	meta := color.New(color.FgCyan)
	if !colorize {
		meta.DisableColor()
	}
	meta.Fprintf(os.Stdout, "source: %s\n", pending.Identity.Source())
	if pending.IsNew() {
		meta.Fprintln(os.Stdout, "status: new snapshot")
		fmt.Fprintln(os.Stdout)
		fmt.Fprintln(os.Stdout, pending.New)
		return nil
	}
	meta.Fprintln(os.Stdout, "status: mismatch")
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, diffline.Render(pending.Diff, colorize))
	return nil
}

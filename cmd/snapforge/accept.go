package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"snapforge/internal/review"
	"snapforge/internal/snap"
)

var acceptCmd = &cobra.Command{
	Use:   "accept [path]",
	Short: "Accept pending snapshots without the interactive session",
	Long:  "Promote pending snapshots into the accepted set. A single artifact path accepts just that snapshot; a directory requires --all.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAccept,
}

func init() {
	acceptCmd.Flags().Bool("all", false, "accept every pending snapshot under the path")
}

func runAccept(cmd *cobra.Command, args []string) error {
	return runBulk(cmd, args, review.DecisionAccept)
}

// runBulk drives a non-interactive session applying one decision everywhere.
// It backs both accept and reject.
func runBulk(cmd *cobra.Command, args []string, decision review.Decision) error {
	verb := decision.String()

	if len(args) == 1 && strings.HasSuffix(args[0], snap.AcceptedExt+snap.PendingSuffix) {
		pending, err := snap.ReadPending(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", verb, err)
		}
		session := review.NewSession([]*review.Item{{Path: args[0], Pending: pending}})
		if err := session.Decide(decision); err != nil {
			return fmt.Errorf("%s: %w", verb, err)
		}
		if !quiet(cmd) {
			fmt.Fprintf(os.Stdout, "%sed %s\n", verb, pending.Identity.Source())
		}
		return nil
	}

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	if !all {
		return fmt.Errorf("%s: refusing to %s a whole directory without --all", verb, verb)
	}

	root, err := resolveScanRoot(args)
	if err != nil {
		return err
	}
	items, err := review.Enumerate(root)
	if err != nil {
		return fmt.Errorf("%s: %w", verb, err)
	}
	if len(items) == 0 {
		if !quiet(cmd) {
			fmt.Fprintln(os.Stdout, "No pending snapshots.")
		}
		return nil
	}

	session := review.NewSession(items)
	for !session.Done() {
		item := session.Next()
		if err := session.Decide(decision); err != nil {
			return fmt.Errorf("%s %s: %w", verb, item.Path, err)
		}
		if !quiet(cmd) {
			fmt.Fprintf(os.Stdout, "%sed %s\n", verb, item.Pending.Identity.Source())
		}
	}
	counts := session.Counts()
	if !quiet(cmd) {
		fmt.Fprintf(os.Stdout, "%d snapshot(s) %sed\n", counts.Accepted+counts.Rejected, verb)
	}
	return nil
}

package main

import (
	"github.com/spf13/cobra"

	"snapforge/internal/review"
)

var rejectCmd = &cobra.Command{
	Use:   "reject [path]",
	Short: "Reject pending snapshots without the interactive session",
	Long:  "Discard pending snapshots, keeping the accepted set as it is. A single artifact path rejects just that snapshot; a directory requires --all.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReject,
}

func init() {
	rejectCmd.Flags().Bool("all", false, "reject every pending snapshot under the path")
}

func runReject(cmd *cobra.Command, args []string) error {
	return runBulk(cmd, args, review.DecisionReject)
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"snapforge/internal/review"
	"snapforge/internal/ui"
)

var reviewCmd = &cobra.Command{
	Use:   "review [path]",
	Short: "Review pending snapshots interactively",
	Long:  "Walk every pending snapshot under the workspace (or the given path) and accept, reject, or skip each one.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	root, err := resolveScanRoot(args)
	if err != nil {
		return err
	}
	items, err := review.Enumerate(root)
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}
	if len(items) == 0 {
		if !quiet(cmd) {
			fmt.Fprintln(os.Stdout, "No pending snapshots.")
		}
		return nil
	}
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("review: stdout is not a terminal; use 'snapforge accept --all' or 'snapforge reject --all' for scripted runs")
	}

	session := review.NewSession(items)
	model := ui.NewReviewModel(session)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("review: %w", err)
	}
	if m, ok := finalModel.(interface{ Err() error }); ok {
		if err := m.Err(); err != nil {
			return fmt.Errorf("review: %w", err)
		}
	}

	counts := session.Counts()
	fmt.Fprintf(os.Stdout, "review finished: %d accepted, %d rejected, %d skipped, %d undecided\n",
		counts.Accepted, counts.Rejected, counts.Skipped, session.Remaining())
	return nil
}

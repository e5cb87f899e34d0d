package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"snapforge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "snapforge",
	Short: "Snapshot review and maintenance toolchain",
	Long:  `snapforge captures canonical snapshots of test output and reconciles pending changes through an accept/reject review workflow`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(pendingCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(rejectCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the persistent --color tri-state against the stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// quiet reports whether non-essential output is suppressed.
func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false
	}
	return q
}

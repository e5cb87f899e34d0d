package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snapforge/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show snapforge build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(os.Stdout, "snapforge %s\n", version.Version)
		if version.GitCommit != "" {
			fmt.Fprintf(os.Stdout, "commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(os.Stdout, "built:  %s\n", version.BuildDate)
		}
		return nil
	},
}

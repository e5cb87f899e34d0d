package main

import (
	"fmt"
	"os"

	"snapforge/internal/project"
)

// resolveScanRoot turns an optional positional path argument into the
// directory a command scans. With no argument the workspace root is
// discovered by walking up to snapforge.toml; an explicit argument is used
// as-is so a reviewer can narrow a session to one subtree.
func resolveScanRoot(args []string) (string, error) {
	if len(args) > 0 {
		info, err := os.Stat(args[0])
		if err != nil {
			return "", fmt.Errorf("resolve path: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("resolve path: %s is not a directory", args[0])
		}
		return args[0], nil
	}
	root, err := project.FindRoot("")
	if err != nil {
		return "", err
	}
	return root, nil
}

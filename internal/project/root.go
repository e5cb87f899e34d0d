// Package project discovers the workspace root for CLI commands. The engine
// itself never walks the filesystem; it receives the root the CLI resolved
// here.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"snapforge/internal/config"
)

// FindManifest walks up from startDir to locate snapforge.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, config.ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindRoot returns the directory containing snapforge.toml, falling back to
// startDir itself when no manifest exists anywhere above it.
func FindRoot(startDir string) (root string, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return "", err
	}
	if ok {
		return filepath.Dir(manifestPath), nil
	}
	if startDir == "" {
		startDir = "."
	}
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	return abs, nil
}

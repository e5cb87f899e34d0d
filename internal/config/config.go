// Package config loads workspace configuration for the CLI and test
// adapters. Resolution order is explicit values, then the SNAPFORGE_UPDATE
// environment switch, then snapforge.toml, then defaults; whatever wins is
// handed to the engine as a plain value, never read ambiently again.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"snapforge/internal/engine"
)

// ManifestName is the workspace marker file.
const ManifestName = "snapforge.toml"

// UpdateEnv overrides the staging/acceptance behavior for one run:
// "always" promotes every change immediately, "new" stages artifacts even
// for downgraded verdicts, "no" suppresses artifacts entirely.
const UpdateEnv = "SNAPFORGE_UPDATE"

// Config is the resolved workspace configuration.
type Config struct {
	// Root is the workspace root the locator treats as opaque.
	Root string
	// ManifestPath is the snapforge.toml that defined the root, empty when
	// the root was supplied explicitly.
	ManifestPath string
	Policy       engine.Policy
}

type fileConfig struct {
	Policy policyConfig `toml:"policy"`
}

type policyConfig struct {
	OnMismatch string `toml:"on_mismatch"`
	Pending    string `toml:"pending"`
	AutoAccept bool   `toml:"auto_accept"`
}

// Load resolves configuration for the workspace rooted at root. A missing
// manifest is fine: defaults apply.
func Load(root string) (Config, error) {
	cfg := Config{Root: root}

	manifest := filepath.Join(root, ManifestName)
	if _, err := os.Stat(manifest); err == nil {
		fc, err := loadManifest(manifest)
		if err != nil {
			return Config{}, err
		}
		policy, err := policyFromFile(fc.Policy)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", manifest, err)
		}
		cfg.ManifestPath = manifest
		cfg.Policy = policy
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat %s: %w", manifest, err)
	}

	applyUpdateEnv(&cfg.Policy, os.Getenv(UpdateEnv))
	return cfg, nil
}

func loadManifest(path string) (fileConfig, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return fc, nil
}

func policyFromFile(pc policyConfig) (engine.Policy, error) {
	onMismatch, err := engine.ParseMismatchMode(pc.OnMismatch)
	if err != nil {
		return engine.Policy{}, err
	}
	pending, err := engine.ParsePendingMode(pc.Pending)
	if err != nil {
		return engine.Policy{}, err
	}
	return engine.Policy{
		OnMismatch: onMismatch,
		Pending:    pending,
		AutoAccept: pc.AutoAccept,
	}, nil
}

func applyUpdateEnv(p *engine.Policy, mode string) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		p.AutoAccept = true
	case "new":
		p.Pending = engine.PendingAlways
	case "no":
		p.Pending = engine.PendingNever
	}
}

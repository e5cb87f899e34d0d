// Package snap owns the on-disk shape of snapshots: where they live, how
// accepted files are encoded, and how pending artifacts are staged next to
// them. All durable writes go through an atomic temp-file-then-rename so a
// crash never leaves a truncated snapshot behind.
package snap

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"snapforge/internal/canonical"
)

// SnapshotsDirName is the directory holding accepted snapshots, created
// beside the module that asserts them.
const SnapshotsDirName = "snapshots"

// AcceptedExt is the extension of accepted snapshot files.
const AcceptedExt = ".snap"

// PendingSuffix is appended to an accepted path to derive the pending
// artifact location.
const PendingSuffix = ".new"

// Identity pins a snapshot to a stable location. Two identities are equal
// iff all fields are equal.
type Identity struct {
	// WorkspaceRoot is the opaque base path supplied by the caller.
	WorkspaceRoot string `json:"workspace_root"`
	// ModuleRelPath is the module directory relative to the root; the
	// snapshots directory is created inside it.
	ModuleRelPath string `json:"module_rel_path"`
	// ModuleID and TestName name the asserting test.
	ModuleID string `json:"module_id"`
	TestName string `json:"test_name"`
	// ExplicitName overrides ordinal numbering when set.
	ExplicitName string `json:"explicit_name,omitempty"`
	// Ordinal counts unnamed assertions within one test invocation,
	// starting at 1. Only values from 2 on appear in file names, so a test
	// with a single assertion keeps the unsuffixed name.
	Ordinal int `json:"ordinal,omitempty"`
	// Format decides the canonical rendering and is hinted in the header.
	Format canonical.Format `json:"format"`
}

// CounterKey identifies the per-test assertion counter this identity
// increments.
func (id Identity) CounterKey() string {
	return id.ModuleID + "::" + id.TestName
}

// SnapshotName returns the file stem: moduleId__testName, with either the
// explicit name or the ordinal suffix applied.
func (id Identity) SnapshotName() string {
	var b strings.Builder
	b.WriteString(id.ModuleID)
	b.WriteString("__")
	b.WriteString(id.TestName)
	if id.ExplicitName != "" {
		b.WriteString("__")
		b.WriteString(id.ExplicitName)
		return b.String()
	}
	if id.Ordinal >= 2 {
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(id.Ordinal))
	}
	return b.String()
}

// Resolve computes the accepted snapshot path. It is pure: no filesystem
// access, identical inputs always produce identical paths.
func (id Identity) Resolve() string {
	return filepath.Join(id.WorkspaceRoot, filepath.FromSlash(id.ModuleRelPath), SnapshotsDirName, id.SnapshotName()+AcceptedExt)
}

// ResolvePending computes the pending artifact path for this identity.
func (id Identity) ResolvePending() string {
	return id.Resolve() + PendingSuffix
}

// Source renders the test identity for snapshot headers and messages.
func (id Identity) Source() string {
	if id.ModuleRelPath == "" {
		return id.ModuleID + "::" + id.TestName
	}
	return filepath.ToSlash(filepath.Join(id.ModuleRelPath, id.ModuleID)) + "::" + id.TestName
}

// Validate rejects identities that cannot resolve to a sane path.
func (id Identity) Validate() error {
	if id.WorkspaceRoot == "" {
		return fmt.Errorf("snapshot identity: empty workspace root")
	}
	if id.ModuleID == "" {
		return fmt.Errorf("snapshot identity: empty module id")
	}
	if id.TestName == "" {
		return fmt.Errorf("snapshot identity: empty test name")
	}
	for _, part := range []string{id.ModuleID, id.TestName, id.ExplicitName} {
		if strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("snapshot identity: %q must not contain path separators", part)
		}
	}
	return nil
}

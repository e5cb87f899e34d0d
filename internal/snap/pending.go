package snap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"snapforge/internal/diffline"
)

// ErrUnknownPending reports a pending artifact handle that no longer exists
// on disk, typically because it was reviewed or deleted out-of-band.
var ErrUnknownPending = errors.New("unknown pending artifact")

var pendingJSON = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
	SortMapKeys:   true,
}.Froze()

// Pending is a staged snapshot change awaiting review. It is written as a
// JSON envelope so the review engine can reconstruct the full comparison
// without touching the accepted file again.
type Pending struct {
	Identity Identity `json:"identity"`
	// Old is the accepted body at comparison time; nil when the verdict
	// was New.
	Old *string `json:"old"`
	New string  `json:"new"`
	// Diff is precomputed at write time; empty for New.
	Diff []diffline.Hunk `json:"diff,omitempty"`
}

// IsNew reports whether the artifact proposes a brand-new snapshot.
func (p *Pending) IsNew() bool { return p.Old == nil }

// WritePending stages p at the path derived from its identity, atomically
// replacing any previous artifact for the same identity. Re-running a failing
// assertion therefore never accumulates duplicates.
func WritePending(p *Pending) error {
	if p == nil {
		return fmt.Errorf("write pending: nil artifact")
	}
	if err := p.Identity.Validate(); err != nil {
		return fmt.Errorf("write pending: %w", err)
	}
	path := p.Identity.ResolvePending()
	data, err := pendingJSON.Marshal(p)
	if err != nil {
		return fmt.Errorf("write pending %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write pending: %w", err)
	}
	if err := writeFileAtomic(path, append(data, '\n')); err != nil {
		return fmt.Errorf("write pending %s: %w", path, err)
	}
	return nil
}

// ReadPending loads the pending artifact at path.
func ReadPending(path string) (*Pending, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPending, path)
		}
		return nil, fmt.Errorf("read pending: %w", err)
	}
	var p Pending
	if err := pendingJSON.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrCorruptSnapshot, err)
	}
	return &p, nil
}

// RemovePending deletes the pending artifact at path.
func RemovePending(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrUnknownPending, path)
		}
		return fmt.Errorf("remove pending: %w", err)
	}
	return nil
}

// Promote copies the pending artifact's new body into the accepted location
// with the usual atomic discipline and removes the artifact. Accepting a
// review item and auto-accept both funnel through here.
func Promote(store *Store, p *Pending) error {
	if p == nil {
		return fmt.Errorf("promote: nil artifact")
	}
	acc := &Accepted{
		Source: p.Identity.Source(),
		Format: p.Identity.Format,
		Body:   p.New,
	}
	if err := store.Write(p.Identity.Resolve(), acc); err != nil {
		return fmt.Errorf("promote: %w", err)
	}
	if err := RemovePending(p.Identity.ResolvePending()); err != nil {
		// the accepted file is already in place; a missing artifact here
		// means a concurrent reviewer got there first
		if errors.Is(err, ErrUnknownPending) {
			return nil
		}
		return err
	}
	return nil
}

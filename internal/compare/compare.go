// Package compare classifies a canonical text against the stored accepted
// snapshot. It is a pure function: no verdict ever mutates anything on disk.
package compare

import (
	"fmt"

	"snapforge/internal/diffline"
	"snapforge/internal/snap"
)

// VerdictKind classifies a comparison outcome.
type VerdictKind uint8

const (
	// Pass: the canonical text equals the accepted body byte for byte.
	Pass VerdictKind = iota
	// New: no accepted snapshot exists yet.
	New
	// Mismatch: the texts differ; the verdict carries a line diff.
	Mismatch
)

// String returns a stable lower-case name for the verdict kind.
func (k VerdictKind) String() string {
	switch k {
	case Pass:
		return "pass"
	case New:
		return "new"
	case Mismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("verdict(%d)", uint8(k))
	}
}

// Verdict is the outcome of one comparison.
type Verdict struct {
	Kind VerdictKind
	// Diff is populated for Mismatch only.
	Diff []diffline.Hunk
}

// Compare decides the verdict for canonicalText against stored. Equality is
// strict byte equality with no trimming: any fuzziness has to happen in the
// redaction layer before canonicalization, never here.
func Compare(canonicalText string, stored *snap.Accepted) Verdict {
	if stored == nil {
		return Verdict{Kind: New}
	}
	if stored.Body == canonicalText {
		return Verdict{Kind: Pass}
	}
	return Verdict{
		Kind: Mismatch,
		Diff: diffline.Diff(stored.Body, canonicalText),
	}
}

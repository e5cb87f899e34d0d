package engine

import "fmt"

// MismatchMode decides whether a Mismatch verdict is escalated to a caller
// failure.
type MismatchMode uint8

const (
	// MismatchFail escalates Mismatch to a failure signal.
	MismatchFail MismatchMode = iota
	// MismatchWarn reports Mismatch without failing the caller.
	MismatchWarn
)

// ParseMismatchMode resolves a configuration string.
func ParseMismatchMode(s string) (MismatchMode, error) {
	switch s {
	case "fail", "":
		return MismatchFail, nil
	case "warn":
		return MismatchWarn, nil
	default:
		return MismatchFail, fmt.Errorf("unknown on_mismatch mode %q", s)
	}
}

// PendingMode decides when non-Pass verdicts persist a pending artifact.
type PendingMode uint8

const (
	// PendingOnFailure writes an artifact only when the verdict escalates
	// to a failure.
	PendingOnFailure PendingMode = iota
	// PendingAlways writes an artifact for every non-Pass verdict, even
	// ones policy downgrades to warnings.
	PendingAlways
	// PendingNever suppresses artifact creation entirely.
	PendingNever
)

// ParsePendingMode resolves a configuration string.
func ParsePendingMode(s string) (PendingMode, error) {
	switch s {
	case "on-failure", "":
		return PendingOnFailure, nil
	case "always":
		return PendingAlways, nil
	case "never":
		return PendingNever, nil
	default:
		return PendingOnFailure, fmt.Errorf("unknown pending mode %q", s)
	}
}

// Policy is the single source of truth for run-mode behavior. The zero
// value is the safe default: fail on mismatch, stage pending artifacts on
// failure, never auto-accept.
type Policy struct {
	OnMismatch MismatchMode
	Pending    PendingMode
	// AutoAccept bypasses staging and promotes every non-Pass verdict
	// immediately. Meant for explicitly requested bulk-update runs only.
	AutoAccept bool
}

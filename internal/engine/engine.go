// Package engine orchestrates one snapshot assertion: redact, canonicalize,
// locate, compare, and apply the policy's side effects. It performs no
// internal locking beyond the assertion counters; callers running the same
// identity concurrently must serialize themselves.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"snapforge/internal/canonical"
	"snapforge/internal/compare"
	"snapforge/internal/redact"
	"snapforge/internal/snap"
	"snapforge/internal/value"
)

// ErrSnapshotFailed is the failure signal handed to callers when policy
// escalates a non-Pass verdict. The caller's test adapter turns it into a
// test failure.
var ErrSnapshotFailed = errors.New("snapshot assertion failed")

// Engine evaluates snapshot assertions against a workspace.
type Engine struct {
	store  *snap.Store
	policy Policy

	mu       sync.Mutex
	counters map[string]int
}

// New returns an engine with the given policy.
func New(policy Policy) *Engine {
	return &Engine{
		store:    &snap.Store{},
		policy:   policy,
		counters: make(map[string]int),
	}
}

// Policy returns the engine's run-mode policy.
func (e *Engine) Policy() Policy { return e.policy }

// BeginTest resets the unnamed-assertion counter for one test invocation.
// Test adapters call it when an invocation starts, so a retried test numbers
// its snapshots from the beginning again instead of continuing the previous
// attempt's sequence.
func (e *Engine) BeginTest(moduleID, testName string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.counters, moduleID+"::"+testName)
}

func (e *Engine) nextOrdinal(key string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.counters[key]++
	return e.counters[key]
}

// CheckRequest carries everything one assertion needs. The workspace root
// and policy travel explicitly; the engine keeps no ambient state.
type CheckRequest struct {
	Value value.Value
	// Rules run before canonicalization, in order.
	Rules  []redact.Rule
	Format canonical.Format
	// Columns is the optional delimited-record schema.
	Columns []string

	WorkspaceRoot string
	ModuleRelPath string
	ModuleID      string
	TestName      string
	// ExplicitName suppresses ordinal numbering when set.
	ExplicitName string
}

// CheckResult reports the verdict and what was done about it.
type CheckResult struct {
	Verdict  compare.Verdict
	Identity snap.Identity
	// Canonical is the rendered text that was compared.
	Canonical string
	// PendingPath is set when a pending artifact was staged.
	PendingPath string
	// Promoted is set when auto-accept promoted the new body directly.
	Promoted bool
}

// Check runs one assertion. The returned error is ErrSnapshotFailed (wrapped
// with identity context) when policy escalates the verdict; structural and
// storage errors surface as their own kinds.
func (e *Engine) Check(req CheckRequest) (CheckResult, error) {
	redacted := redact.Apply(req.Value, req.Rules)
	text, err := canonical.MarshalSchema(redacted, req.Format, req.Columns)
	if err != nil {
		return CheckResult{}, err
	}

	id := snap.Identity{
		WorkspaceRoot: req.WorkspaceRoot,
		ModuleRelPath: req.ModuleRelPath,
		ModuleID:      req.ModuleID,
		TestName:      req.TestName,
		ExplicitName:  req.ExplicitName,
		Format:        req.Format,
	}
	if req.ExplicitName == "" {
		id.Ordinal = e.nextOrdinal(id.CounterKey())
	}
	if err := id.Validate(); err != nil {
		return CheckResult{}, err
	}

	stored, err := e.store.Read(id.Resolve())
	if err != nil {
		return CheckResult{}, err
	}

	verdict := compare.Compare(text, stored)
	res := CheckResult{Verdict: verdict, Identity: id, Canonical: text}

	if verdict.Kind == compare.Pass {
		// a stale artifact from an earlier failing run is obsolete now
		if err := snap.RemovePending(id.ResolvePending()); err != nil && !errors.Is(err, snap.ErrUnknownPending) {
			return res, err
		}
		return res, nil
	}

	if e.policy.AutoAccept {
		acc := &snap.Accepted{Source: id.Source(), Format: id.Format, Body: text}
		if err := e.store.Write(id.Resolve(), acc); err != nil {
			return res, err
		}
		res.Promoted = true
		return res, nil
	}

	// New has nothing to compare against, so it always escalates.
	escalate := verdict.Kind == compare.New || e.policy.OnMismatch == MismatchFail

	if e.shouldStage(escalate) {
		pending := &snap.Pending{Identity: id, New: text, Diff: verdict.Diff}
		if stored != nil {
			old := stored.Body
			pending.Old = &old
		}
		if err := snap.WritePending(pending); err != nil {
			return res, err
		}
		res.PendingPath = id.ResolvePending()
	}

	if escalate {
		return res, fmt.Errorf("%w: %s is %s", ErrSnapshotFailed, id.Source(), verdict.Kind)
	}
	return res, nil
}

func (e *Engine) shouldStage(escalate bool) bool {
	switch e.policy.Pending {
	case PendingAlways:
		return true
	case PendingNever:
		return false
	default:
		return escalate
	}
}

// Package replay wraps a function so its results are recorded as snapshots
// on the first run and served back from the accepted snapshot afterwards,
// without invoking the function again. The call arguments are snapshotted
// too, so a replayed call with different inputs is caught instead of being
// silently answered with stale data.
package replay

import (
	"fmt"

	"snapforge/internal/canonical"
	"snapforge/internal/engine"
	"snapforge/internal/redact"
	"snapforge/internal/snap"
	"snapforge/internal/value"
)

// Func computes a result value from argument values.
type Func func(args []value.Value) (value.Value, error)

// Options locate the recorded snapshots and select the mode.
type Options struct {
	WorkspaceRoot string
	ModuleRelPath string
	ModuleID      string
	TestName      string
	// Name labels the wrapped call; the result snapshot is stored under it
	// and the arguments under "<Name>-request".
	Name string
	// Rules redact the recorded result (and are therefore also what a
	// replayed call returns).
	Rules []redact.Rule
	// Record forces calling through and re-recording even when an accepted
	// snapshot exists.
	Record bool
}

// Wrap returns a function with the same shape as fn that records or replays
// according to opts.
func Wrap(opts Options, fn Func) Func {
	// recording must not stop to ask for review; verification must.
	recorder := engine.New(engine.Policy{AutoAccept: true})
	verifier := engine.New(engine.Policy{})
	store := &snap.Store{}

	return func(args []value.Value) (value.Value, error) {
		resultID := snap.Identity{
			WorkspaceRoot: opts.WorkspaceRoot,
			ModuleRelPath: opts.ModuleRelPath,
			ModuleID:      opts.ModuleID,
			TestName:      opts.TestName,
			ExplicitName:  opts.Name,
			Format:        canonical.FormatJSON,
		}
		stored, err := store.Read(resultID.Resolve())
		if err != nil {
			return value.Value{}, err
		}
		recording := opts.Record || stored == nil

		argsEngine := verifier
		if recording {
			argsEngine = recorder
		}
		if _, err := argsEngine.Check(requestFor(opts, value.Seq(args...))); err != nil {
			return value.Value{}, fmt.Errorf("replay %s: arguments diverged: %w", opts.Name, err)
		}

		if recording {
			result, err := fn(args)
			if err != nil {
				return value.Value{}, err
			}
			if _, err := recorder.Check(resultFor(opts, result)); err != nil {
				return value.Value{}, fmt.Errorf("replay %s: record failed: %w", opts.Name, err)
			}
			return redact.Apply(result, opts.Rules), nil
		}

		replayed, err := value.FromJSON([]byte(stored.Body))
		if err != nil {
			return value.Value{}, fmt.Errorf("replay %s: %s: %w", opts.Name, resultID.Resolve(), err)
		}
		return replayed, nil
	}
}

func requestFor(opts Options, args value.Value) engine.CheckRequest {
	return engine.CheckRequest{
		Value:         args,
		Format:        canonical.FormatJSON,
		WorkspaceRoot: opts.WorkspaceRoot,
		ModuleRelPath: opts.ModuleRelPath,
		ModuleID:      opts.ModuleID,
		TestName:      opts.TestName,
		ExplicitName:  opts.Name + "-request",
	}
}

func resultFor(opts Options, result value.Value) engine.CheckRequest {
	return engine.CheckRequest{
		Value:         result,
		Rules:         opts.Rules,
		Format:        canonical.FormatJSON,
		WorkspaceRoot: opts.WorkspaceRoot,
		ModuleRelPath: opts.ModuleRelPath,
		ModuleID:      opts.ModuleID,
		TestName:      opts.TestName,
		ExplicitName:  opts.Name,
	}
}

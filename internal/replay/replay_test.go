package replay

import (
	"errors"
	"strings"
	"testing"

	"snapforge/internal/redact"
	"snapforge/internal/value"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		WorkspaceRoot: t.TempDir(),
		ModuleRelPath: "pkg/client",
		ModuleID:      "client",
		TestName:      "test_fetch",
		Name:          "fetch_user",
	}
}

func TestRecordThenReplay(t *testing.T) {
	opts := testOptions(t)
	calls := 0
	fn := func(args []value.Value) (value.Value, error) {
		calls++
		id, _ := args[0].AsInt()
		return value.Map("id", value.Int(id), "name", value.Text("ada")), nil
	}

	wrapped := Wrap(opts, fn)
	first, err := wrapped([]value.Value{value.Int(7)})
	if err != nil {
		t.Fatalf("record call: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	// second invocation must serve the snapshot without calling through
	wrapped = Wrap(opts, fn)
	second, err := wrapped([]value.Value{value.Int(7)})
	if err != nil {
		t.Fatalf("replay call: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d after replay, want 1", calls)
	}
	if !first.Equal(second) {
		t.Fatalf("replayed value differs:\n%v\nvs\n%v", first, second)
	}
}

func TestReplayDivergingArguments(t *testing.T) {
	opts := testOptions(t)
	fn := func(args []value.Value) (value.Value, error) {
		return value.Map("ok", value.Bool(true)), nil
	}

	wrapped := Wrap(opts, fn)
	if _, err := wrapped([]value.Value{value.Int(7)}); err != nil {
		t.Fatalf("record call: %v", err)
	}

	wrapped = Wrap(opts, fn)
	_, err := wrapped([]value.Value{value.Int(8)})
	if err == nil {
		t.Fatal("diverging arguments replayed silently")
	}
	if !strings.Contains(err.Error(), "arguments diverged") {
		t.Fatalf("err = %v", err)
	}
}

func TestRecordModeRefreshes(t *testing.T) {
	opts := testOptions(t)
	body := "first"
	fn := func(args []value.Value) (value.Value, error) {
		return value.Map("body", value.Text(body)), nil
	}

	wrapped := Wrap(opts, fn)
	if _, err := wrapped(nil); err != nil {
		t.Fatalf("record call: %v", err)
	}

	// force re-record with a changed result
	body = "second"
	opts.Record = true
	wrapped = Wrap(opts, fn)
	out, err := wrapped(nil)
	if err != nil {
		t.Fatalf("re-record call: %v", err)
	}
	got, _ := out.Get("body")
	if s, _ := got.AsText(); s != "second" {
		t.Fatalf("body = %q, want second", s)
	}

	// and the refreshed snapshot replays
	opts.Record = false
	wrapped = Wrap(opts, fn)
	out, err = wrapped(nil)
	if err != nil {
		t.Fatalf("replay call: %v", err)
	}
	got, _ = out.Get("body")
	if s, _ := got.AsText(); s != "second" {
		t.Fatalf("replayed body = %q, want second", s)
	}
}

func TestRecordAppliesRedactions(t *testing.T) {
	opts := testOptions(t)
	opts.Rules = []redact.Rule{
		redact.MustRule("token", redact.ReplaceWith(value.Text("[redacted]"))),
	}
	fn := func(args []value.Value) (value.Value, error) {
		return value.Map("token", value.Text("secret"), "n", value.Int(1)), nil
	}

	wrapped := Wrap(opts, fn)
	out, err := wrapped(nil)
	if err != nil {
		t.Fatalf("record call: %v", err)
	}
	tok, _ := out.Get("token")
	if s, _ := tok.AsText(); s != "[redacted]" {
		t.Fatalf("recorded token = %q", s)
	}

	wrapped = Wrap(opts, fn)
	out, err = wrapped(nil)
	if err != nil {
		t.Fatalf("replay call: %v", err)
	}
	tok, _ = out.Get("token")
	if s, _ := tok.AsText(); s != "[redacted]" {
		t.Fatalf("replayed token = %q", s)
	}
}

func TestRecordPropagatesFunctionError(t *testing.T) {
	opts := testOptions(t)
	boom := errors.New("backend down")
	wrapped := Wrap(opts, func(args []value.Value) (value.Value, error) {
		return value.Value{}, boom
	})
	if _, err := wrapped(nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the function's error", err)
	}
}

package review

import (
	"errors"
	"os"
	"testing"

	"snapforge/internal/canonical"
	"snapforge/internal/snap"
)

// stagePending writes n pending artifacts under root, one per test name, and
// returns their identities in path order.
func stagePending(t *testing.T, root string, names ...string) []snap.Identity {
	t.Helper()
	ids := make([]snap.Identity, 0, len(names))
	for _, name := range names {
		id := snap.Identity{
			WorkspaceRoot: root,
			ModuleRelPath: "pkg/app",
			ModuleID:      "app",
			TestName:      name,
			Format:        canonical.FormatJSON,
		}
		p := &snap.Pending{Identity: id, New: "{\n  \"test\": \"" + name + "\"\n}"}
		if err := snap.WritePending(p); err != nil {
			t.Fatalf("stage %s: %v", name, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestEnumerate(t *testing.T) {
	root := t.TempDir()
	stagePending(t, root, "test_c", "test_a", "test_b")

	items, err := Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	// deterministic path order
	for i := 1; i < len(items); i++ {
		if items[i-1].Path >= items[i].Path {
			t.Fatalf("items out of order: %q before %q", items[i-1].Path, items[i].Path)
		}
	}
	for _, item := range items {
		if item.Pending == nil {
			t.Fatalf("%s: envelope not parsed", item.Path)
		}
	}
}

func TestEnumerateMissingRoot(t *testing.T) {
	items, err := Enumerate(t.TempDir() + "/nope")
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %d, want 0", len(items))
	}
}

func TestEnumerateIgnoresAccepted(t *testing.T) {
	root := t.TempDir()
	ids := stagePending(t, root, "test_x")
	store := &snap.Store{}
	acc := &snap.Accepted{Source: "app::other", Format: canonical.FormatJSON, Body: "{}"}
	other := ids[0]
	other.TestName = "other"
	if err := store.Write(other.Resolve(), acc); err != nil {
		t.Fatalf("Write: %v", err)
	}

	items, err := Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
}

func TestSessionDecisions(t *testing.T) {
	root := t.TempDir()
	ids := stagePending(t, root, "test_a", "test_b", "test_c")

	items, err := Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	session := NewSession(items)

	if cur, total := session.Position(); cur != 1 || total != 3 {
		t.Fatalf("position = %d/%d", cur, total)
	}

	// accept the first
	if err := session.Decide(DecisionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}
	store := &snap.Store{}
	acc, err := store.Read(ids[0].Resolve())
	if err != nil || acc == nil {
		t.Fatalf("accepted snapshot after accept: %v, %v", acc, err)
	}
	if _, err := os.Stat(ids[0].ResolvePending()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("artifact survives accept: %v", err)
	}

	// reject the second
	if err := session.Decide(DecisionReject); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if acc, _ := store.Read(ids[1].Resolve()); acc != nil {
		t.Fatal("reject promoted a snapshot")
	}
	if _, err := os.Stat(ids[1].ResolvePending()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("artifact survives reject: %v", err)
	}

	// skip the third
	if err := session.Decide(DecisionSkip); err != nil {
		t.Fatalf("skip: %v", err)
	}
	if _, err := os.Stat(ids[2].ResolvePending()); err != nil {
		t.Fatalf("skipped artifact gone: %v", err)
	}

	if !session.Done() {
		t.Fatal("session not done")
	}
	counts := session.Counts()
	if counts.Accepted != 1 || counts.Rejected != 1 || counts.Skipped != 1 {
		t.Fatalf("counts = %+v", counts)
	}

	// a later session sees only the skipped artifact
	items, err = Enumerate(root)
	if err != nil {
		t.Fatalf("re-enumerate: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("remaining items = %d, want 1", len(items))
	}
	if items[0].Pending.Identity.TestName != "test_c" {
		t.Fatalf("remaining item = %s", items[0].Pending.Identity.TestName)
	}
}

func TestSessionDecideMissingArtifact(t *testing.T) {
	root := t.TempDir()
	ids := stagePending(t, root, "test_a")
	items, err := Enumerate(root)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	// the artifact disappears out-of-band
	if err := os.Remove(ids[0].ResolvePending()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	session := NewSession(items)
	if err := session.Decide(DecisionReject); !errors.Is(err, snap.ErrUnknownPending) {
		t.Fatalf("err = %v, want ErrUnknownPending", err)
	}
}

func TestSessionExhausted(t *testing.T) {
	session := NewSession(nil)
	if session.Next() != nil {
		t.Fatal("Next on empty session")
	}
	if err := session.Decide(DecisionSkip); err == nil {
		t.Fatal("Decide on empty session succeeded")
	}
}

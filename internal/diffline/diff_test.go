package diffline

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiffIdentical(t *testing.T) {
	body := "{\n  \"a\": 1\n}"
	if hunks := Diff(body, body); hunks != nil {
		t.Fatalf("identical bodies produced %d hunk(s)", len(hunks))
	}
}

func TestDiffSingleLineChange(t *testing.T) {
	old := "{\n  \"a\": 1\n}"
	new := "{\n  \"a\": 2\n}"
	hunks := Diff(old, new)
	if len(hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(hunks))
	}
	h := hunks[0]
	if h.OldStart != 1 || h.NewStart != 1 {
		t.Fatalf("starts = %d/%d, want 1/1", h.OldStart, h.NewStart)
	}
	want := []Line{
		{Op: OpContext, Text: "{"},
		{Op: OpRemove, Text: `  "a": 1`},
		{Op: OpAdd, Text: `  "a": 2`},
		{Op: OpContext, Text: "}"},
	}
	if !reflect.DeepEqual(h.Lines, want) {
		t.Fatalf("lines = %v, want %v", h.Lines, want)
	}
}

func TestDiffPureAddition(t *testing.T) {
	hunks := Diff("", "a\nb")
	if len(hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(hunks))
	}
	h := hunks[0]
	if h.OldStart != 0 || h.NewStart != 1 {
		t.Fatalf("starts = %d/%d, want 0/1", h.OldStart, h.NewStart)
	}
	for _, l := range h.Lines {
		if l.Op != OpAdd {
			t.Fatalf("op = %s, want +", l.Op)
		}
	}
}

func TestDiffContextWindow(t *testing.T) {
	var oldLines, newLines []string
	for i := 0; i < 20; i++ {
		oldLines = append(oldLines, "line")
		newLines = append(newLines, "line")
	}
	oldLines[10] = "old middle"
	newLines[10] = "new middle"
	hunks := Diff(strings.Join(oldLines, "\n"), strings.Join(newLines, "\n"))
	if len(hunks) != 1 {
		t.Fatalf("hunks = %d, want 1", len(hunks))
	}
	h := hunks[0]
	// 3 context before, remove+add, 3 context after
	if len(h.Lines) != 8 {
		t.Fatalf("lines = %d, want 8", len(h.Lines))
	}
	if h.OldStart != 8 {
		t.Fatalf("old start = %d, want 8", h.OldStart)
	}
}

func TestDiffSeparateHunks(t *testing.T) {
	var oldLines []string
	for i := 0; i < 30; i++ {
		oldLines = append(oldLines, "same")
	}
	newLines := make([]string, len(oldLines))
	copy(newLines, oldLines)
	newLines[2] = "first change"
	newLines[25] = "second change"
	hunks := Diff(strings.Join(oldLines, "\n"), strings.Join(newLines, "\n"))
	if len(hunks) != 2 {
		t.Fatalf("hunks = %d, want 2", len(hunks))
	}
}

func TestStats(t *testing.T) {
	hunks := Diff("a\nb\nc", "a\nx\ny\nc")
	removed, added := Stats(hunks)
	if removed != 1 || added != 2 {
		t.Fatalf("stats = -%d +%d, want -1 +2", removed, added)
	}
}

func TestOpJSONRoundTrip(t *testing.T) {
	for _, op := range []Op{OpContext, OpRemove, OpAdd} {
		data, err := json.Marshal(op)
		if err != nil {
			t.Fatalf("marshal %s: %v", op, err)
		}
		var back Op
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != op {
			t.Fatalf("round trip %s -> %s", op, back)
		}
	}
	var bad Op
	if err := json.Unmarshal([]byte(`"mod"`), &bad); err == nil {
		t.Fatal("unmarshal accepted unknown op")
	}
}

func TestRenderPlain(t *testing.T) {
	hunks := Diff("a\nb", "a\nc")
	out := Render(hunks, false)
	for _, want := range []string{"@@", "-b", "+c", " a"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

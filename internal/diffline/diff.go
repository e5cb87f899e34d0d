// Package diffline computes line-oriented diffs between snapshot bodies.
// The diff is derived from a longest-common-subsequence walk and reported as
// hunks so that review front ends can show removed/added lines with a little
// surrounding context.
package diffline

import (
	"encoding/json"
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// contextLines is the number of unchanged lines kept around each change when
// grouping into hunks.
const contextLines = 3

// Op classifies a diff line.
type Op uint8

const (
	OpContext Op = iota
	OpRemove
	OpAdd
)

// String returns the one-character unified-diff prefix for the op.
func (o Op) String() string {
	switch o {
	case OpRemove:
		return "-"
	case OpAdd:
		return "+"
	default:
		return " "
	}
}

// MarshalJSON encodes the op as its stable name.
func (o Op) MarshalJSON() ([]byte, error) {
	switch o {
	case OpContext:
		return []byte(`"ctx"`), nil
	case OpRemove:
		return []byte(`"del"`), nil
	case OpAdd:
		return []byte(`"add"`), nil
	default:
		return nil, fmt.Errorf("unknown diff op %d", uint8(o))
	}
}

// UnmarshalJSON decodes an op name written by MarshalJSON.
func (o *Op) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "ctx":
		*o = OpContext
	case "del":
		*o = OpRemove
	case "add":
		*o = OpAdd
	default:
		return fmt.Errorf("unknown diff op %q", s)
	}
	return nil
}

// Line is a single diff line.
type Line struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Hunk groups consecutive diff lines. Starts are 1-based line numbers into
// the old and new bodies.
type Hunk struct {
	OldStart uint32 `json:"old_start"`
	NewStart uint32 `json:"new_start"`
	Lines    []Line `json:"lines"`
}

// Diff computes the hunks transforming old into new. Identical inputs yield
// no hunks.
func Diff(old, new string) []Hunk {
	if old == new {
		return nil
	}
	oldLines := splitLines(old)
	newLines := splitLines(new)
	script := editScript(oldLines, newLines)
	return groupHunks(script)
}

// splitLines splits a body into lines without terminators. An empty body has
// no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	return lines
}

type scriptEntry struct {
	op      Op
	text    string
	oldLine int // 1-based, 0 for pure additions
	newLine int // 1-based, 0 for pure removals
}

// editScript walks the LCS table backwards producing a full line script.
func editScript(oldLines, newLines []string) []scriptEntry {
	n, m := len(oldLines), len(newLines)
	// lcs[i][j] = LCS length of oldLines[i:], newLines[j:]
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	script := make([]scriptEntry, 0, n+m)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case oldLines[i] == newLines[j]:
			script = append(script, scriptEntry{op: OpContext, text: oldLines[i], oldLine: i + 1, newLine: j + 1})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			script = append(script, scriptEntry{op: OpRemove, text: oldLines[i], oldLine: i + 1})
			i++
		default:
			script = append(script, scriptEntry{op: OpAdd, text: newLines[j], newLine: j + 1})
			j++
		}
	}
	for ; i < n; i++ {
		script = append(script, scriptEntry{op: OpRemove, text: oldLines[i], oldLine: i + 1})
	}
	for ; j < m; j++ {
		script = append(script, scriptEntry{op: OpAdd, text: newLines[j], newLine: j + 1})
	}
	return script
}

// groupHunks collapses the full script into hunks keeping contextLines of
// context around each changed region.
func groupHunks(script []scriptEntry) []Hunk {
	changed := make([]bool, len(script))
	for i, e := range script {
		if e.op != OpContext {
			changed[i] = true
		}
	}

	keep := make([]bool, len(script))
	for i := range script {
		if !changed[i] {
			continue
		}
		lo := i - contextLines
		if lo < 0 {
			lo = 0
		}
		hi := i + contextLines
		if hi > len(script)-1 {
			hi = len(script) - 1
		}
		for k := lo; k <= hi; k++ {
			keep[k] = true
		}
	}

	var hunks []Hunk
	i := 0
	for i < len(script) {
		if !keep[i] {
			i++
			continue
		}
		start := i
		for i < len(script) && keep[i] {
			i++
		}
		hunks = append(hunks, buildHunk(script[start:i]))
	}
	return hunks
}

func buildHunk(entries []scriptEntry) Hunk {
	h := Hunk{Lines: make([]Line, 0, len(entries))}
	for _, e := range entries {
		if h.OldStart == 0 && e.oldLine > 0 {
			h.OldStart = mustUint32(e.oldLine)
		}
		if h.NewStart == 0 && e.newLine > 0 {
			h.NewStart = mustUint32(e.newLine)
		}
		h.Lines = append(h.Lines, Line{Op: e.op, Text: e.text})
	}
	return h
}

func mustUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0
	}
	return v
}

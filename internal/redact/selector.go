// Package redact rewrites volatile sub-values of a Value tree before it is
// canonicalized. Rules run in declaration order and matching is structural:
// a selector addresses mapping keys and sequence indices, never raw text.
package redact

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind discriminates selector path segments.
type SegmentKind uint8

const (
	// SegmentKey matches one mapping key by name.
	SegmentKey SegmentKind = iota
	// SegmentIndex matches one sequence position.
	SegmentIndex
	// SegmentWildcard matches every mapping key or sequence index at its
	// depth.
	SegmentWildcard
)

// Segment is one step of a selector path.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

// Selector is a parsed path expression. An empty selector addresses the
// root value.
type Selector []Segment

// ParseSelector parses a dotted path expression into a Selector.
//
// Grammar: segments separated by '.', with an optional leading dot.
// A segment is a key name, '*' (wildcard over keys and indices), '[N]'
// (sequence index), or '[]' (wildcard over indices). Bracket segments may
// be attached to a key, as in "items[2].id".
func ParseSelector(expr string) (Selector, error) {
	s := strings.TrimPrefix(expr, ".")
	if s == "" {
		return Selector{}, nil
	}
	var sel Selector
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("selector %q: unterminated '['", expr)
			}
			inner := s[i+1 : i+end]
			if inner == "" || inner == "*" {
				sel = append(sel, Segment{Kind: SegmentWildcard})
			} else {
				idx, err := strconv.Atoi(inner)
				if err != nil || idx < 0 {
					return nil, fmt.Errorf("selector %q: bad index %q", expr, inner)
				}
				sel = append(sel, Segment{Kind: SegmentIndex, Index: idx})
			}
			i += end + 1
		default:
			end := i
			for end < len(s) && s[end] != '.' && s[end] != '[' {
				end++
			}
			name := s[i:end]
			if name == "*" {
				sel = append(sel, Segment{Kind: SegmentWildcard})
			} else {
				sel = append(sel, Segment{Kind: SegmentKey, Key: name})
			}
			i = end
		}
	}
	return sel, nil
}

// String renders the selector back into dotted form.
func (sel Selector) String() string {
	var b strings.Builder
	for _, seg := range sel {
		switch seg.Kind {
		case SegmentKey:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.Key)
		case SegmentIndex:
			fmt.Fprintf(&b, "[%d]", seg.Index)
		case SegmentWildcard:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteByte('*')
		}
	}
	return b.String()
}

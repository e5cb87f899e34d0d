package redact

import (
	"math"
	"sort"

	"snapforge/internal/canonical"
	"snapforge/internal/value"
)

// Apply runs the rules against v in declaration order and returns the
// rewritten tree. The input is never mutated. A rule whose selector matches
// nothing is a no-op, so defensive rules that only sometimes apply are fine.
func Apply(v value.Value, rules []Rule) value.Value {
	out := v
	for _, rule := range rules {
		rewritten, keep := applySelector(out, rule.Selector, rule.Action)
		if !keep {
			// the rule deleted the root
			out = value.Null()
			continue
		}
		out = rewritten
	}
	return out
}

// applySelector rewrites v along the selector path. The second return is
// false when the action deleted this location.
func applySelector(v value.Value, sel Selector, act Action) (value.Value, bool) {
	if len(sel) == 0 {
		return applyAction(v, act)
	}
	seg, rest := sel[0], sel[1:]

	switch v.Kind() {
	case value.KindMapping:
		switch seg.Kind {
		case SegmentKey:
			entry, ok := v.Get(seg.Key)
			if !ok {
				return v, true
			}
			rewritten, keep := applySelector(entry, rest, act)
			entries := mappingEntries(v)
			if keep {
				entries[seg.Key] = rewritten
			} else {
				delete(entries, seg.Key)
			}
			return value.MapFrom(entries), true
		case SegmentWildcard:
			entries := mappingEntries(v)
			for _, k := range v.Keys() {
				rewritten, keep := applySelector(entries[k], rest, act)
				if keep {
					entries[k] = rewritten
				} else {
					delete(entries, k)
				}
			}
			return value.MapFrom(entries), true
		default:
			return v, true
		}
	case value.KindSequence:
		switch seg.Kind {
		case SegmentIndex:
			elems := v.Elems()
			if seg.Index >= len(elems) {
				return v, true
			}
			rewritten, keep := applySelector(elems[seg.Index], rest, act)
			if keep {
				elems[seg.Index] = rewritten
				return value.Seq(elems...), true
			}
			return value.Seq(append(elems[:seg.Index], elems[seg.Index+1:]...)...), true
		case SegmentWildcard:
			elems := v.Elems()
			kept := elems[:0]
			for _, e := range elems {
				rewritten, keep := applySelector(e, rest, act)
				if keep {
					kept = append(kept, rewritten)
				}
			}
			return value.Seq(kept...), true
		default:
			return v, true
		}
	default:
		// scalar: path cannot descend, selector matches nothing
		return v, true
	}
}

func applyAction(v value.Value, act Action) (value.Value, bool) {
	switch act.kind {
	case ActionReplace:
		return act.replacement, true
	case ActionDelete:
		return value.Value{}, false
	case ActionRoundFloat:
		if f, ok := v.AsFloat(); ok {
			scale := math.Pow(10, float64(act.precision))
			return value.Float(math.Round(f*scale) / scale), true
		}
		return v, true
	case ActionSortSequence:
		if v.Kind() != value.KindSequence {
			return v, true
		}
		type keyed struct {
			key  string
			elem value.Value
		}
		elems := v.Elems()
		pairs := make([]keyed, len(elems))
		for i, e := range elems {
			text, err := canonical.Marshal(e, canonical.FormatJSON)
			if err != nil {
				// non-finite floats and the like sort by debug form instead
				text = e.String()
			}
			pairs[i] = keyed{key: text, elem: e}
		}
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		for i, p := range pairs {
			elems[i] = p.elem
		}
		return value.Seq(elems...), true
	default:
		return v, true
	}
}

func mappingEntries(v value.Value) map[string]value.Value {
	entries := make(map[string]value.Value, v.Len())
	for _, k := range v.Keys() {
		entry, _ := v.Get(k)
		entries[k] = entry
	}
	return entries
}

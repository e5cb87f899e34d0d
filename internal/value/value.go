package value

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindSequence
	KindMapping
)

// String returns a stable lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is the closed intermediate form every snapshot input is lowered to
// before redaction and canonicalization. Integers and floats are kept as
// distinct variants so the canonical rendering can treat them differently.
//
// The zero Value is Null.
type Value struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	textVal  string
	seq      []Value
	entries  map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, intVal: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, floatVal: f} }

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, textVal: s} }

// Seq returns a sequence Value preserving element order.
func Seq(elems ...Value) Value {
	out := make([]Value, len(elems))
	copy(out, elems)
	return Value{kind: KindSequence, seq: out}
}

// Map returns a mapping Value from alternating key/value pairs.
// It panics when given an odd number of arguments; construction mistakes
// are programmer errors, not runtime conditions.
func Map(pairs ...any) Value {
	if len(pairs)%2 != 0 {
		panic("value.Map: odd number of arguments")
	}
	entries := make(map[string]Value, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("value.Map: key %d is %T, want string", i/2, pairs[i]))
		}
		val, ok := pairs[i+1].(Value)
		if !ok {
			panic(fmt.Sprintf("value.Map: value for %q is %T, want value.Value", key, pairs[i+1]))
		}
		entries[key] = val
	}
	return Value{kind: KindMapping, entries: entries}
}

// MapFrom returns a mapping Value copied from m.
func MapFrom(m map[string]Value) Value {
	entries := make(map[string]Value, len(m))
	for k, v := range m {
		entries[k] = v
	}
	return Value{kind: KindMapping, entries: entries}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; ok is false for other kinds.
func (v Value) AsBool() (b bool, ok bool) { return v.boolVal, v.kind == KindBool }

// AsInt returns the integer payload; ok is false for other kinds.
func (v Value) AsInt() (i int64, ok bool) { return v.intVal, v.kind == KindInt }

// AsFloat returns the float payload; ok is false for other kinds.
func (v Value) AsFloat() (f float64, ok bool) { return v.floatVal, v.kind == KindFloat }

// AsText returns the text payload; ok is false for other kinds.
func (v Value) AsText() (s string, ok bool) { return v.textVal, v.kind == KindText }

// Len returns the element count for sequences and mappings, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Elems returns the sequence elements in order. The slice is a copy.
func (v Value) Elems() []Value {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out
}

// Elem returns the sequence element at idx; ok is false when out of range
// or when v is not a sequence.
func (v Value) Elem(idx int) (Value, bool) {
	if v.kind != KindSequence || idx < 0 || idx >= len(v.seq) {
		return Value{}, false
	}
	return v.seq[idx], true
}

// Keys returns the mapping keys sorted lexicographically. Iteration over a
// mapping must always go through Keys so that callers never observe Go map
// ordering.
func (v Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.entries))
	for k := range v.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the mapping entry for key; ok is false when absent or when v
// is not a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	val, ok := v.entries[key]
	return val, ok
}

// Equal reports deep structural equality. Int and Float values never compare
// equal even when numerically identical; the distinction is semantic.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindInt:
		return v.intVal == other.intVal
	case KindFloat:
		return v.floatVal == other.floatVal
	case KindText:
		return v.textVal == other.textVal
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for k, val := range v.entries {
			ov, ok := other.entries[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders a compact debug form. It is not the canonical rendering;
// use the canonical package for snapshot bodies.
func (v Value) String() string {
	var b strings.Builder
	v.debugString(&b)
	return b.String()
}

func (v Value) debugString(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		fmt.Fprintf(b, "%t", v.boolVal)
	case KindInt:
		fmt.Fprintf(b, "%d", v.intVal)
	case KindFloat:
		fmt.Fprintf(b, "%g", v.floatVal)
	case KindText:
		fmt.Fprintf(b, "%q", v.textVal)
	case KindSequence:
		b.WriteByte('[')
		for i, e := range v.seq {
			if i > 0 {
				b.WriteString(", ")
			}
			e.debugString(b)
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", k)
			e := v.entries[k]
			e.debugString(b)
		}
		b.WriteByte('}')
	}
}

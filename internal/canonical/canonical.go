package canonical

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"snapforge/internal/value"
)

// Marshal renders v into canonical text for the given format. The result
// carries no trailing newline; the store appends its own terminator when
// persisting.
func Marshal(v value.Value, format Format) (string, error) {
	return MarshalSchema(v, format, nil)
}

// MarshalSchema is Marshal with an explicit column schema for FormatCSV.
// The schema is ignored by the other formats.
func MarshalSchema(v value.Value, format Format, columns []string) (string, error) {
	switch format {
	case FormatJSON:
		var b strings.Builder
		if err := writeJSON(&b, v, 0); err != nil {
			return "", err
		}
		return b.String(), nil
	case FormatCSV:
		return marshalCSV(v, columns)
	case FormatText:
		return marshalText(v)
	default:
		return "", fmt.Errorf("%w: unsupported format %s", ErrMalformedValue, format)
	}
}

func writeJSON(b *strings.Builder, v value.Value, depth int) error {
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("null")
	case value.KindBool:
		bv, _ := v.AsBool()
		if bv {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case value.KindInt:
		iv, _ := v.AsInt()
		b.WriteString(strconv.FormatInt(iv, 10))
	case value.KindFloat:
		fv, _ := v.AsFloat()
		s, err := formatFloat(fv)
		if err != nil {
			return err
		}
		b.WriteString(s)
	case value.KindText:
		tv, _ := v.AsText()
		writeQuoted(b, tv)
	case value.KindSequence:
		elems := v.Elems()
		if len(elems) == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteString("[\n")
		for i, e := range elems {
			writeIndent(b, depth+1)
			if err := writeJSON(b, e, depth+1); err != nil {
				return err
			}
			if i < len(elems)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte(']')
	case value.KindMapping:
		keys := v.Keys()
		if len(keys) == 0 {
			b.WriteString("{}")
			return nil
		}
		b.WriteString("{\n")
		for i, k := range keys {
			writeIndent(b, depth+1)
			writeQuoted(b, k)
			b.WriteString(": ")
			entry, _ := v.Get(k)
			if err := writeJSON(b, entry, depth+1); err != nil {
				return err
			}
			if i < len(keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, depth)
		b.WriteByte('}')
	default:
		return fmt.Errorf("%w: unknown value kind %s", ErrMalformedValue, v.Kind())
	}
	return nil
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(Indent)
	}
}

// formatFloat renders a float as the shortest decimal string that round-trips
// back to the same bits. Negative zero collapses to "0" and a fractional part
// is always present so the value stays recognizably a float.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: non-finite float %v", ErrMalformedValue, f)
	}
	if f == 0 {
		// covers -0 as well
		return "0.0", nil
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}

// writeQuoted emits a JSON string escaping only what the format demands:
// the quote, the backslash, and control characters. Non-ASCII text passes
// through raw so snapshots stay readable.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
				continue
			}
			if r == utf8.RuneError {
				// invalid byte sequences degrade to the replacement rune,
				// still deterministic
				b.WriteRune(r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func marshalText(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindText:
		s, _ := v.AsText()
		return s, nil
	case value.KindNull:
		return "null", nil
	case value.KindBool:
		bv, _ := v.AsBool()
		return strconv.FormatBool(bv), nil
	case value.KindInt:
		iv, _ := v.AsInt()
		return strconv.FormatInt(iv, 10), nil
	case value.KindFloat:
		fv, _ := v.AsFloat()
		return formatFloat(fv)
	default:
		return "", fmt.Errorf("%w: text format requires a scalar, got %s", ErrMalformedValue, v.Kind())
	}
}

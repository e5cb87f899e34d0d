// Package canonical renders Value trees into deterministic text. The output
// is the comparison currency of the whole engine: two semantically identical
// values must always produce byte-identical text, regardless of input
// ordering or platform float formatting.
package canonical

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedValue reports a value tree that violates the structural
// constraints of the requested format.
var ErrMalformedValue = errors.New("malformed value for format")

// Format selects the canonical rendering applied to a value.
type Format uint8

const (
	// FormatJSON renders structured text: sorted mapping keys, two-space
	// indentation, minimal escaping.
	FormatJSON Format = iota
	// FormatCSV renders delimited records: column order from the first
	// record (or an explicit schema), RFC 4180 quoting.
	FormatCSV
	// FormatText renders a scalar verbatim; text values pass through
	// unescaped.
	FormatText
)

// String returns the stable name used in snapshot headers.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatText:
		return "text"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat resolves a header hint back into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "text":
		return FormatText, nil
	default:
		return FormatJSON, fmt.Errorf("unknown snapshot format %q", s)
	}
}

// MarshalJSON encodes the format as its stable name.
func (f Format) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON decodes a format name written by MarshalJSON.
func (f *Format) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Indent is the fixed indentation unit for structured text. It is a constant
// on purpose: configurable indentation would make accepted snapshots drift
// between tool versions.
const Indent = "  "

package canonical

import (
	"errors"
	"math"
	"testing"

	"snapforge/internal/value"
)

func mustMarshal(t *testing.T, v value.Value, format Format) string {
	t.Helper()
	s, err := Marshal(v, format)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return s
}

func TestJSONScalars(t *testing.T) {
	cases := []struct {
		v    value.Value
		want string
	}{
		{value.Null(), "null"},
		{value.Bool(true), "true"},
		{value.Bool(false), "false"},
		{value.Int(0), "0"},
		{value.Int(-12), "-12"},
		{value.Text("hi"), `"hi"`},
		{value.Float(1.5), "1.5"},
		{value.Float(3), "3.0"},
		{value.Float(0), "0.0"},
		{value.Float(math.Copysign(0, -1)), "0.0"},
		{value.Float(0.1), "0.1"},
	}
	for _, tc := range cases {
		if got := mustMarshal(t, tc.v, FormatJSON); got != tc.want {
			t.Errorf("Marshal(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestJSONMapping(t *testing.T) {
	v := value.Map("hello", value.Text("world"))
	want := "{\n  \"hello\": \"world\"\n}"
	if got := mustMarshal(t, v, FormatJSON); got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}

func TestJSONKeyOrderInsensitive(t *testing.T) {
	a := value.Map("b", value.Int(2), "a", value.Int(1), "c", value.Int(3))
	b := value.Map("c", value.Int(3), "a", value.Int(1), "b", value.Int(2))
	if mustMarshal(t, a, FormatJSON) != mustMarshal(t, b, FormatJSON) {
		t.Fatal("insertion order leaked into canonical output")
	}
	want := "{\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3\n}"
	if got := mustMarshal(t, a, FormatJSON); got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}

func TestJSONNested(t *testing.T) {
	v := value.Map(
		"items", value.Seq(
			value.Map("id", value.Int(1)),
			value.Map("id", value.Int(2)),
		),
		"empty_map", value.MapFrom(nil),
		"empty_seq", value.Seq(),
	)
	want := "{\n" +
		"  \"empty_map\": {},\n" +
		"  \"empty_seq\": [],\n" +
		"  \"items\": [\n" +
		"    {\n      \"id\": 1\n    },\n" +
		"    {\n      \"id\": 2\n    }\n" +
		"  ]\n" +
		"}"
	if got := mustMarshal(t, v, FormatJSON); got != want {
		t.Fatalf("Marshal = %q, want %q", got, want)
	}
}

func TestJSONEscaping(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"line\nbreak", `"line\nbreak"`},
		{"tab\there", `"tab\there"`},
		{`quote"and\slash`, `"quote\"and\\slash"`},
		{"bell\x07", `"bell"`},
		{"héllo wörld", `"héllo wörld"`},
		{"<html>&", `"<html>&"`},
	}
	for _, tc := range cases {
		if got := mustMarshal(t, value.Text(tc.in), FormatJSON); got != tc.want {
			t.Errorf("Marshal(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestJSONIdempotent(t *testing.T) {
	v := value.Map("pi", value.Float(3.14159), "list", value.Seq(value.Int(1), value.Null()))
	first := mustMarshal(t, v, FormatJSON)
	second := mustMarshal(t, v, FormatJSON)
	if first != second {
		t.Fatalf("marshal not deterministic:\n%s\nvs\n%s", first, second)
	}
}

func TestNonFiniteFloatRejected(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Marshal(value.Float(f), FormatJSON)
		if !errors.Is(err, ErrMalformedValue) {
			t.Errorf("Marshal(%v) err = %v, want ErrMalformedValue", f, err)
		}
	}
}

func TestFloatShortestRoundTrip(t *testing.T) {
	cases := []struct {
		f    float64
		want string
	}{
		{0.1, "0.1"},
		{1e21, "1000000000000000000000.0"},
		{-2.5, "-2.5"},
		{1.0 / 3.0, "0.3333333333333333"},
	}
	for _, tc := range cases {
		got, err := formatFloat(tc.f)
		if err != nil {
			t.Fatalf("formatFloat(%v): %v", tc.f, err)
		}
		if got != tc.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tc.f, got, tc.want)
		}
	}
}

func TestTextFormat(t *testing.T) {
	if got := mustMarshal(t, value.Text("plain\ntext"), FormatText); got != "plain\ntext" {
		t.Fatalf("text marshal = %q", got)
	}
	if got := mustMarshal(t, value.Int(42), FormatText); got != "42" {
		t.Fatalf("int as text = %q", got)
	}
	_, err := Marshal(value.Seq(), FormatText)
	if !errors.Is(err, ErrMalformedValue) {
		t.Fatalf("sequence as text err = %v, want ErrMalformedValue", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "csv", "text"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
		if f.String() != name {
			t.Errorf("round trip %q -> %q", name, f.String())
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("ParseFormat accepted xml")
	}
}

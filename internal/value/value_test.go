package value

import (
	"reflect"
	"testing"
)

func TestKindsAndAccessors(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"null", Null(), KindNull},
		{"bool", Bool(true), KindBool},
		{"int", Int(42), KindInt},
		{"float", Float(1.5), KindFloat},
		{"text", Text("hi"), KindText},
		{"seq", Seq(Int(1)), KindSequence},
		{"map", Map("a", Int(1)), KindMapping},
	}
	for _, tc := range cases {
		if got := tc.v.Kind(); got != tc.kind {
			t.Errorf("%s: kind = %s, want %s", tc.name, got, tc.kind)
		}
	}

	if b, ok := Bool(true).AsBool(); !ok || !b {
		t.Errorf("AsBool = %v, %v", b, ok)
	}
	if i, ok := Int(-7).AsInt(); !ok || i != -7 {
		t.Errorf("AsInt = %v, %v", i, ok)
	}
	if _, ok := Int(7).AsFloat(); ok {
		t.Error("AsFloat succeeded on an int")
	}
	if s, ok := Text("x").AsText(); !ok || s != "x" {
		t.Errorf("AsText = %q, %v", s, ok)
	}
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Fatalf("zero value kind = %s, want null", v.Kind())
	}
}

func TestKeysSorted(t *testing.T) {
	v := Map("zebra", Int(1), "apple", Int(2), "mango", Int(3))
	want := []string{"apple", "mango", "zebra"}
	if got := v.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
}

func TestEqual(t *testing.T) {
	a := Map("x", Seq(Int(1), Float(2.5)), "y", Null())
	b := Map("y", Null(), "x", Seq(Int(1), Float(2.5)))
	if !a.Equal(b) {
		t.Fatal("structurally identical mappings compare unequal")
	}
	if a.Equal(Map("x", Seq(Int(1), Float(2.5)))) {
		t.Fatal("mappings with different key sets compare equal")
	}
	// int and float are distinct variants even when numerically equal
	if Int(1).Equal(Float(1)) {
		t.Fatal("Int(1) equals Float(1)")
	}
	if !Seq().Equal(Seq()) {
		t.Fatal("empty sequences compare unequal")
	}
}

func TestFromJSONNumberKinds(t *testing.T) {
	v, err := FromJSON([]byte(`{"count": 3, "ratio": 3.0, "big": 9007199254740993}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	count, _ := v.Get("count")
	if count.Kind() != KindInt {
		t.Errorf("count lowered to %s, want int", count.Kind())
	}
	ratio, _ := v.Get("ratio")
	if ratio.Kind() != KindFloat {
		t.Errorf("ratio lowered to %s, want float", ratio.Kind())
	}
	// values beyond float53 must survive as exact integers
	big, _ := v.Get("big")
	if i, ok := big.AsInt(); !ok || i != 9007199254740993 {
		t.Errorf("big lowered to %v (%s)", big, big.Kind())
	}
}

func TestFromJSONNested(t *testing.T) {
	v, err := FromJSON([]byte(`{"items": [{"id": 1, "tags": ["a", "b"]}], "ok": true, "none": null}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	items, ok := v.Get("items")
	if !ok || items.Kind() != KindSequence || items.Len() != 1 {
		t.Fatalf("items = %v", items)
	}
	first, _ := items.Elem(0)
	tags, _ := first.Get("tags")
	second, _ := tags.Elem(1)
	if s, _ := second.AsText(); s != "b" {
		t.Errorf("tags[1] = %q, want b", s)
	}
	if none, _ := v.Get("none"); !none.IsNull() {
		t.Errorf("none = %v, want null", none)
	}
}

func TestFromJSONMalformed(t *testing.T) {
	if _, err := FromJSON([]byte(`{"unterminated": `)); err == nil {
		t.Fatal("FromJSON accepted malformed input")
	}
}

func TestFromAny(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	v, err := FromAny(payload{Name: "ada", Score: 10})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	name, _ := v.Get("name")
	if s, _ := name.AsText(); s != "ada" {
		t.Errorf("name = %q", s)
	}
	score, _ := v.Get("score")
	if score.Kind() != KindInt {
		t.Errorf("score kind = %s, want int", score.Kind())
	}

	direct, err := FromAny(map[string]any{"n": 1.25})
	if err != nil {
		t.Fatalf("FromAny map: %v", err)
	}
	n, _ := direct.Get("n")
	if n.Kind() != KindFloat {
		t.Errorf("n kind = %s, want float", n.Kind())
	}
}

func TestFromCSV(t *testing.T) {
	v, err := FromCSV("name,age,height\nada,36,1.63\ngrace,85,1.52\n")
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	if v.Len() != 3 {
		t.Fatalf("rows = %d, want 3", v.Len())
	}
	header, _ := v.Elem(0)
	first, _ := header.Elem(0)
	if s, _ := first.AsText(); s != "name" {
		t.Errorf("header[0] = %v", first)
	}
	row, _ := v.Elem(1)
	age, _ := row.Elem(1)
	if age.Kind() != KindInt {
		t.Errorf("age kind = %s, want int", age.Kind())
	}
	height, _ := row.Elem(2)
	if height.Kind() != KindFloat {
		t.Errorf("height kind = %s, want float", height.Kind())
	}
}

package value

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// jsonAPI keeps numbers as json.Number during decoding so integer and float
// inputs stay distinguishable after lowering.
var jsonAPI = jsoniter.Config{
	EscapeHTML: false,
	UseNumber:  true,
}.Froze()

// FromJSON lowers a JSON document into a Value.
func FromJSON(data []byte) (Value, error) {
	var raw any
	if err := jsonAPI.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("lower json: %w", err)
	}
	return fromDecoded(raw)
}

// FromAny lowers an arbitrary Go value into a Value. Basic kinds, slices and
// string-keyed maps lower directly; anything else is routed through a JSON
// round trip so that struct tags decide field names the same way an encoder
// would.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return Text(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case json.Number:
		return fromNumber(x)
	case []any:
		elems := make([]Value, 0, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return Seq(elems...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			entries[k] = ev
		}
		return MapFrom(entries), nil
	default:
		data, err := jsonAPI.Marshal(v)
		if err != nil {
			return Value{}, fmt.Errorf("lower %T: %w", v, err)
		}
		return FromJSON(data)
	}
}

// FromCSV lowers delimited text into a sequence of row sequences. The header
// row is kept as the first element, mirroring how spreadsheet-shaped results
// are snapshotted. Numeric-looking fields lower to Int or Float, everything
// else stays Text.
func FromCSV(text string) (Value, error) {
	r := csv.NewReader(bytes.NewReader([]byte(text)))
	r.FieldsPerRecord = -1
	rows := make([]Value, 0, 8)
	header := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Value{}, fmt.Errorf("lower csv: %w", err)
		}
		fields := make([]Value, 0, len(record))
		for _, f := range record {
			if header {
				fields = append(fields, Text(f))
				continue
			}
			fields = append(fields, lowerField(f))
		}
		rows = append(rows, Seq(fields...))
		header = false
	}
	return Seq(rows...), nil
}

func lowerField(f string) Value {
	if i, err := strconv.ParseInt(f, 10, 64); err == nil {
		return Int(i)
	}
	if fl, err := strconv.ParseFloat(f, 64); err == nil {
		return Float(fl)
	}
	return Text(f)
}

func fromDecoded(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return Text(x), nil
	case json.Number:
		return fromNumber(x)
	case float64:
		return Float(x), nil
	case []any:
		elems := make([]Value, 0, len(x))
		for i, e := range x {
			ev, err := fromDecoded(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return Seq(elems...), nil
	case map[string]any:
		entries := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := fromDecoded(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			entries[k] = ev
		}
		return MapFrom(entries), nil
	default:
		return Value{}, fmt.Errorf("lower: unsupported decoded type %T", raw)
	}
}

func fromNumber(n json.Number) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("lower number %q: %w", n.String(), err)
	}
	return Float(f), nil
}

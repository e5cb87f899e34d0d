package canonical

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"snapforge/internal/value"
)

// marshalCSV renders a sequence value as delimited records. Two shapes are
// accepted: a sequence of sequences (rows emitted as given, the first row
// acting as header) and a sequence of mappings (column order taken from the
// schema, or from the first record's sorted keys when no schema is given;
// a header row is synthesized).
func marshalCSV(v value.Value, columns []string) (string, error) {
	if v.Kind() != value.KindSequence {
		return "", fmt.Errorf("%w: csv format requires a sequence, got %s", ErrMalformedValue, v.Kind())
	}
	rows := v.Elems()
	if len(rows) == 0 {
		return "", nil
	}

	var records [][]string
	var err error
	switch rows[0].Kind() {
	case value.KindSequence:
		records, err = rowsFromSequences(rows)
	case value.KindMapping:
		records, err = rowsFromMappings(rows, columns)
	default:
		return "", fmt.Errorf("%w: csv rows must be sequences or mappings, got %s", ErrMalformedValue, rows[0].Kind())
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func rowsFromSequences(rows []value.Value) ([][]string, error) {
	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		if row.Kind() != value.KindSequence {
			return nil, fmt.Errorf("%w: csv row %d is %s, want sequence", ErrMalformedValue, i, row.Kind())
		}
		rec := make([]string, 0, row.Len())
		for j, field := range row.Elems() {
			s, err := scalarField(field)
			if err != nil {
				return nil, fmt.Errorf("csv row %d field %d: %w", i, j, err)
			}
			rec = append(rec, s)
		}
		records = append(records, rec)
	}
	return records, nil
}

func rowsFromMappings(rows []value.Value, columns []string) ([][]string, error) {
	if len(columns) == 0 {
		columns = rows[0].Keys()
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, columns)
	for i, row := range rows {
		if row.Kind() != value.KindMapping {
			return nil, fmt.Errorf("%w: csv row %d is %s, want mapping", ErrMalformedValue, i, row.Kind())
		}
		rec := make([]string, 0, len(columns))
		for _, col := range columns {
			field, ok := row.Get(col)
			if !ok {
				rec = append(rec, "")
				continue
			}
			s, err := scalarField(field)
			if err != nil {
				return nil, fmt.Errorf("csv row %d column %q: %w", i, col, err)
			}
			rec = append(rec, s)
		}
		records = append(records, rec)
	}
	return records, nil
}

func scalarField(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "", nil
	case value.KindBool:
		bv, _ := v.AsBool()
		return strconv.FormatBool(bv), nil
	case value.KindInt:
		iv, _ := v.AsInt()
		return strconv.FormatInt(iv, 10), nil
	case value.KindFloat:
		fv, _ := v.AsFloat()
		return formatFloat(fv)
	case value.KindText:
		s, _ := v.AsText()
		return s, nil
	default:
		return "", fmt.Errorf("%w: csv field must be a scalar, got %s", ErrMalformedValue, v.Kind())
	}
}

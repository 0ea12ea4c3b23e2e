package serialize

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Row is one line of the four-column export shape. RecordNum is 1 for
// singleton sections and the 1-based instance index otherwise.
type Row struct {
	Section   string
	RecordNum int
	Field     string
	Value     string
}

// Flatten turns an output record into the downstream four-column rows.
func Flatten(rec *OutputRecord) []Row {
	var rows []Row
	for _, section := range rec.Sections {
		for i, record := range section.Records {
			for _, fv := range record {
				rows = append(rows, Row{
					Section:   section.Title,
					RecordNum: i + 1,
					Field:     fv.Label,
					Value:     valueText(fv.Value),
				})
			}
		}
	}
	return rows
}

// Regroup reconstructs the per-section, per-instance field/value pairs from
// flattened rows. It is the inverse of Flatten up to the textual value form.
func Regroup(rows []Row) map[string]map[int][]FieldValue {
	out := make(map[string]map[int][]FieldValue)
	for _, row := range rows {
		instances, ok := out[row.Section]
		if !ok {
			instances = make(map[int][]FieldValue)
			out[row.Section] = instances
		}
		instances[row.RecordNum] = append(instances[row.RecordNum],
			FieldValue{Label: row.Field, Value: row.Value})
	}
	return out
}

// WriteCSV writes the header plus flattened rows.
func WriteCSV(w io.Writer, rec *OutputRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Section", "Record #", "Field", "Value"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range Flatten(rec) {
		line := []string{row.Section, strconv.Itoa(row.RecordNum), row.Field, row.Value}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func valueText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Package serialize walks a validated answer set into a normalized output
// record plus a manifest of deterministically named attachments, and flattens
// the record into the four-column CSV shape the downstream consumer expects.
package serialize

import (
	"bytes"
	"encoding/json"

	"entity-onboard/internal/forms"
)

// FieldValue is one labelled value of an output record. Value is limited to
// strings, numbers, and booleans so the record stays JSON-serializable.
type FieldValue struct {
	Label string
	Value any
}

// Record is the ordered field list for one section instance.
type Record []FieldValue

// MarshalJSON renders the record as an object preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(fv.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(fv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// OutputSection is one serialized section. Singleton sections carry exactly
// one record; repeating sections carry Count records.
type OutputSection struct {
	Title     string
	Repeating bool
	Count     int
	Records   []Record
}

// OutputRecord is the normalized submission, sections in declaration order.
type OutputRecord struct {
	EntityType  string
	EntityLabel string
	Sections    []OutputSection
}

// MarshalJSON renders the output tree keyed by section title. Singleton
// sections become a plain field object; repeating sections become
// {"count": n, "records": [...]}.
func (o OutputRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range o.Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		title, err := json.Marshal(s.Title)
		if err != nil {
			return nil, err
		}
		buf.Write(title)
		buf.WriteByte(':')
		if s.Repeating {
			records, err := json.Marshal(s.Records)
			if err != nil {
				return nil, err
			}
			count, _ := json.Marshal(s.Count)
			buf.WriteString(`{"count":`)
			buf.Write(count)
			buf.WriteString(`,"records":`)
			buf.Write(records)
			buf.WriteByte('}')
		} else {
			record := Record{}
			if len(s.Records) > 0 {
				record = s.Records[0]
			}
			body, err := json.Marshal(record)
			if err != nil {
				return nil, err
			}
			buf.Write(body)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Attachment pairs a final export filename with the original upload.
type Attachment struct {
	Filename string
	File     *forms.FileHandle
}

// Manifest is the ordered attachment collection for one submission.
type Manifest []Attachment

// SectionSummary is the per-section count line used in export cover notes.
type SectionSummary struct {
	Title string
	Count int
}

// Summary returns one count line per section in declaration order.
func Summary(rec *OutputRecord) []SectionSummary {
	out := make([]SectionSummary, len(rec.Sections))
	for i, s := range rec.Sections {
		out[i] = SectionSummary{Title: s.Title, Count: s.Count}
	}
	return out
}

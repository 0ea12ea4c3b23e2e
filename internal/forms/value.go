package forms

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the scalar variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
	KindBool
	KindCode
	KindFile
)

// FileHandle is an opaque upload reference. The engines never open the payload;
// they only carry it through to the attachment manifest.
type FileHandle struct {
	Filename string
	Data     []byte
}

// Value is one captured scalar. Exactly one variant field is meaningful,
// selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Date time.Time
	Bool bool
	Code string
	File *FileHandle
}

// String builds a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number builds a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Date builds a date value.
func Date(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Code builds a controlled-list coded value.
func Code(c string) Value { return Value{Kind: KindCode, Code: c} }

// File builds a file-handle value.
func File(fh *FileHandle) Value { return Value{Kind: KindFile, File: fh} }

// IsBlank reports whether the value counts as "not supplied" for requiredness
// checks. Booleans and numbers are never blank once captured.
func (v Value) IsBlank() bool {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str) == ""
	case KindCode:
		return strings.TrimSpace(v.Code) == ""
	case KindDate:
		return v.Date.IsZero()
	case KindFile:
		return v.File == nil
	default:
		return false
	}
}

// Text renders the value the way it appears in exports: dates as YYYY/MM/DD,
// numbers without a trailing ".0" when integral.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return strings.TrimSpace(v.Str)
	case KindCode:
		return strings.TrimSpace(v.Code)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindDate:
		if v.Date.IsZero() {
			return ""
		}
		return v.Date.Format("2006/01/02")
	case KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case KindFile:
		if v.File == nil {
			return ""
		}
		return v.File.Filename
	default:
		return ""
	}
}

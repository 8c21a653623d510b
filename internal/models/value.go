// Package models provides the data structures used throughout the application.
package models

import (
	"strconv"
	"strings"
)

type valueKind int

const (
	kindAbsent valueKind = iota
	kindNumber
	kindText
)

// Value is a single catalog cell. Source files carry cells that are
// numeric, textual, or missing entirely, and the distinction matters for
// price handling, so the three cases are kept explicit instead of being
// flattened to strings.
type Value struct {
	kind valueKind
	num  float64
	text string
}

// Absent is the missing-cell sentinel. The zero Value is absent.
var Absent = Value{}

// Number creates a numeric Value.
func Number(f float64) Value {
	return Value{kind: kindNumber, num: f}
}

// Text creates a textual Value.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// IsAbsent returns true if the value is missing.
func (v Value) IsAbsent() bool {
	return v.kind == kindAbsent
}

// IsNumber returns true if the value is numeric.
func (v Value) IsNumber() bool {
	return v.kind == kindNumber
}

// IsText returns true if the value is textual.
func (v Value) IsText() bool {
	return v.kind == kindText
}

// Float returns the numeric value and true when the value is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the textual value and true when the value is text.
func (v Value) Str() (string, bool) {
	if v.kind != kindText {
		return "", false
	}
	return v.text, true
}

// String renders the value for display: numbers without trailing zeros,
// text as-is, absent as the empty string.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindText:
		return v.text
	default:
		return ""
	}
}

// IsEmpty returns true if the value is absent or blank text.
func (v Value) IsEmpty() bool {
	if v.kind == kindAbsent {
		return true
	}
	if v.kind == kindText {
		return strings.TrimSpace(v.text) == ""
	}
	return false
}

// Row is one catalog row keyed by target field name.
type Row map[string]Value

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Get returns the value for a field, or Absent when the field is missing.
func (r Row) Get(field string) Value {
	if v, ok := r[field]; ok {
		return v
	}
	return Absent
}

// Table is the raw cell grid a format parser produces, before header
// detection and column mapping.
type Table [][]Value

// TextRow converts a slice of raw strings into a row of text values.
// Blank cells become absent.
func TextRow(cells []string) []Value {
	out := make([]Value, len(cells))
	for i, c := range cells {
		if strings.TrimSpace(c) == "" {
			out[i] = Absent
			continue
		}
		out[i] = Text(c)
	}
	return out
}

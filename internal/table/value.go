// Package table provides in-memory record tables of mixed-type cells.
package table

import (
	"strconv"
	"time"
)

// Kind identifies the type of a cell.
type Kind uint8

const (
	MissingKind Kind = iota
	IntKind
	FloatKind
	StringKind
	DateKind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	case DateKind:
		return "date"
	}
	return "missing"
}

// Value is a single table cell. The zero Value is missing.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Null returns a missing value.
func Null() Value { return Value{} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: IntKind, i: v} }

// Float returns a float value.
func Float(v float64) Value { return Value{kind: FloatKind, f: v} }

// String returns a string value.
func String(v string) Value { return Value{kind: StringKind, s: v} }

// Date returns a date value.
func Date(v time.Time) Value { return Value{kind: DateKind, t: v} }

// Kind reports the cell type.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell holds no value.
func (v Value) IsMissing() bool { return v.kind == MissingKind }

// Float64 returns the numeric value of an int or float cell.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case IntKind:
		return float64(v.i), true
	case FloatKind:
		return v.f, true
	}
	return 0, false
}

// Time returns the value of a date cell.
func (v Value) Time() (time.Time, bool) {
	return v.t, v.kind == DateKind
}

// Text renders the cell as it would appear in a CSV file.
// Missing renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case StringKind:
		return v.s
	case DateKind:
		return v.t.Format("2006-01-02")
	}
	return ""
}

// Key returns a comparable representation used for joins and grouping.
// Int and float cells holding the same number share a key.
func (v Value) Key() string {
	switch v.kind {
	case IntKind, FloatKind:
		f, _ := v.Float64()
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	case MissingKind:
		return "missing"
	}
	return v.kind.String() + ":" + v.Text()
}

// missingMarkers are cell texts read as missing values.
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"NULL": true,
	"null": true,
}

// Parse infers a cell from its CSV text.
func Parse(s string) Value {
	if missingMarkers[s] {
		return Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return String(s)
}

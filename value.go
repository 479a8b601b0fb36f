package mrt

import (
	"math"
	"strconv"
)

// Kind classifies a column's element type. It is decided once during
// [Column.Parse] and stored immutably.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// Value is one nullable cell of a column. The zero value is a null marker.
type Value struct {
	kind Kind
	null bool
	i    int64
	f    float64
	s    string
}

// Null returns a null marker.
func Null() Value { return Value{null: true} }

// Int returns an integer value.
func Int(v int64) Value {
	return Value{kind: KindInteger, i: v, s: strconv.FormatInt(v, 10)}
}

// Float returns a float value with its canonical textual rendering.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v, s: strconv.FormatFloat(v, 'g', -1, 64)}
}

// FloatText returns a float value that keeps the producer's original
// textual rendering, so format inference sees the precision that was
// actually written.
func FloatText(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindFloat, f: f, s: text}, nil
}

// Str returns a string value.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// Literal reads a textual scalar the way column values are typed:
// integer first, then float, falling back to a bare string.
func Literal(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if v, err := FloatText(s); err == nil {
		return v
	}
	return Str(s)
}

// Kind returns the value's kind. Null markers report [KindString].
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is a null marker.
func (v Value) IsNull() bool { return v.null }

// IsNaN reports whether the value is a float NaN. NaN is always
// serialized like a null marker.
func (v Value) IsNaN() bool {
	return v.kind == KindFloat && !v.null && math.IsNaN(v.f)
}

// Int returns the integer content. Float values are truncated.
func (v Value) Int() int64 {
	if v.kind == KindFloat {
		return int64(v.f)
	}
	return v.i
}

// Float returns the float content. Integer values are widened.
func (v Value) Float() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

// Text returns the value's textual rendering: the original text for
// values loaded from text, the canonical rendering otherwise. Null
// markers render as the empty string.
func (v Value) Text() string {
	if v.null {
		return ""
	}
	return v.s
}

// Equal reports whether two values hold the same content. A null marker
// equals only another null marker.
func (v Value) Equal(o Value) bool {
	if v.null || o.null {
		return v.null == o.null
	}
	if v.kind != o.kind {
		// Mixed numeric comparison, e.g. a null sentinel 999 against a
		// float column.
		if v.kind != KindString && o.kind != KindString {
			return v.Float() == o.Float()
		}
		return v.Text() == o.Text()
	}
	switch v.kind {
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	default:
		return v.s == o.s
	}
}

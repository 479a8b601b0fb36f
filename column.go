package mrt

import (
	"fmt"
	"regexp"
	"strings"
)

// SexaRole marks a string column as a sexagesimal coordinate.
type SexaRole int

const (
	RolePlain SexaRole = iota
	RoleRA
	RoleDE
)

// Column wraps one table column: its metadata, its values, and the
// inferred (or forced) fixed-width serialization.
//
// Unit and Description may be set before [Column.Parse]; Parse fills in
// defaults for whatever is left empty. "---" denotes a dimensionless or
// unset unit.
type Column struct {
	Name        string
	Unit        string
	Description string

	values []Value

	parsed    bool
	kind      Kind
	hasNull   bool
	size      int
	min, max  Value
	fortran   FortranFormat
	formatter Formatter
	forced    *forcedFormatter

	role   SexaRole
	sexaRA *SexaRA
	sexaDE *SexaDE
}

// NewColumn builds a column over an ordered sequence of values.
func NewColumn(name string, values []Value) *Column {
	return &Column{Name: name, values: values, min: Null(), max: Null()}
}

// SetNullValue re-marks every element equal to v (or already null) as a
// null marker. Call it before [Column.Parse] so inferred bounds and
// widths exclude the sentinel.
func (c *Column) SetNullValue(v Value) {
	for i := range c.values {
		if c.values[i].IsNull() {
			continue
		}
		if c.values[i].Equal(v) {
			c.values[i] = Null()
		}
	}
}

// SetFormat forces a Fortran-style format, e.g. "F10.5" or "I4". The
// forced format permanently overrides inference: Parse still runs for
// null detection and bounds, but its width and format are discarded.
func (c *Column) SetFormat(spec string) error {
	f, err := newForcedFormatter(spec)
	if err != nil {
		return err
	}
	c.forced = f
	if c.parsed {
		c.applyForced()
	}
	return nil
}

// Parse resolves metadata defaults, detects nulls, classifies the
// element kind and builds the formatter. It is idempotent: once a format
// is assigned it is never recomputed.
func (c *Column) Parse() {
	if c.parsed {
		return
	}

	if c.Description == "" {
		c.Description = "Description of " + c.Name
	}
	if c.Unit == "" {
		c.Unit = unitFromName(c.Name)
	}

	for _, v := range c.values {
		if v.IsNull() || v.IsNaN() {
			c.hasNull = true
			break
		}
	}

	c.kind = classify(c.values)
	switch c.kind {
	case KindInteger:
		f := newIntegerFormatter(c.values)
		c.formatter, c.min, c.max = f, f.min, f.max
	case KindFloat:
		f := newFloatFormatter(c.values)
		c.formatter, c.min, c.max = f, f.min, f.max
	default:
		c.formatter = newStringFormatter(c.values)
	}
	c.size = c.formatter.Size()
	c.fortran = c.formatter.Fortran()

	if c.forced != nil {
		c.applyForced()
	}
	c.parsed = true
}

func (c *Column) applyForced() {
	c.formatter = c.forced
	c.size = c.forced.Size()
	c.fortran = c.forced.Fortran()
}

// classify decides the column kind from the first non-null value.
func classify(values []Value) Kind {
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		return v.Kind()
	}
	return KindString
}

var reDaysUnit = regexp.MustCompile(`[ (]days[ )]`)

// unitFromName guesses a unit from the column name.
func unitFromName(name string) string {
	s := strings.ToLower(name)
	if strings.Contains(s, "magnitude") {
		return "mag"
	}
	if reDaysUnit.MatchString(s) {
		return "d"
	}
	return UndefinedUnit
}

// Write returns record i serialized to exactly Size bytes.
func (c *Column) Write(i int) string {
	c.Parse()
	return c.formatter.Write(c.values[i])
}

// Len returns the number of records.
func (c *Column) Len() int { return len(c.values) }

// Value returns record i.
func (c *Column) Value(i int) Value { return c.values[i] }

// Size returns the serialized field width. Valid after Parse.
func (c *Column) Size() int { return c.size }

// Kind returns the element kind decided by Parse.
func (c *Column) Kind() Kind { return c.kind }

// HasNull reports whether any value is a null marker.
func (c *Column) HasNull() bool { return c.hasNull }

// Min returns the lower bound over non-null values, or a null marker for
// string or all-null columns.
func (c *Column) Min() Value { return c.min }

// Max returns the upper bound over non-null values, or a null marker for
// string or all-null columns.
func (c *Column) Max() Value { return c.max }

// Fortran returns the serialization format tag.
func (c *Column) Fortran() FortranFormat { return c.fortran }

// Role returns the column's sexagesimal role.
func (c *Column) Role() SexaRole { return c.role }

// IsSexa reports whether the column has a sexagesimal role.
func (c *Column) IsSexa() bool { return c.role != RolePlain }

// SexaRA returns the right ascension sub-fields, or nil.
func (c *Column) SexaRA() *SexaRA { return c.sexaRA }

// SexaDE returns the declination sub-fields, or nil.
func (c *Column) SexaDE() *SexaDE { return c.sexaDE }

// SetSexaRA marks the column as a sexagesimal right ascension with the
// given seconds precision. Zero precision derives it from the stored
// width ("HH MM SS.ss"). The column must be string-shaped and the stored
// width must fit the precision.
func (c *Column) SetSexaRA(precision int) error {
	c.Parse()
	if c.role != RolePlain {
		return fmt.Errorf("%w: column %q already has a sexagesimal role", ErrSexa, c.Name)
	}
	if c.fortran.Letter != 'A' {
		return fmt.Errorf("%w: column %q is not string-shaped", ErrSexa, c.Name)
	}
	if precision == 0 {
		if c.size > 9 {
			precision = c.size - 9 // HH MM SS.ss
		}
	} else if c.size < 9+precision || c.size > 10+precision {
		return fmt.Errorf("%w: bad precision for width %d (format: hh mm ss[.ss])", ErrSexa, c.size)
	}
	c.role = RoleRA
	c.sexaRA = newSexaRA(precision)
	return nil
}

// SetSexaDE marks the column as a sexagesimal declination with the given
// seconds precision. Zero precision derives it from the stored width
// ("+DD MM SS.ss").
func (c *Column) SetSexaDE(precision int) error {
	c.Parse()
	if c.role != RolePlain {
		return fmt.Errorf("%w: column %q already has a sexagesimal role", ErrSexa, c.Name)
	}
	if c.fortran.Letter != 'A' {
		return fmt.Errorf("%w: column %q is not string-shaped", ErrSexa, c.Name)
	}
	if precision == 0 {
		if c.size > 9 {
			precision = c.size - 10 // [+-]DD MM SS.ss
		}
	} else if c.size < 9+precision || c.size > 10+precision {
		return fmt.Errorf("%w: bad precision for width %d (format: [+-]dd mm ss[.ss])", ErrSexa, c.size)
	}
	c.role = RoleDE
	c.sexaDE = newSexaDE(precision)
	return nil
}

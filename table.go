package mrt

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is an ordered sequence of named columns plus table-level
// metadata. Columns are parsed together so the row layout can be
// computed once and memoized.
type Table struct {
	Name        string
	Description string
	Notes       []string

	columns   []*Column
	nullValue *Value
	lineWidth int
}

// NewTable builds an empty table.
func NewTable(name string) *Table {
	return &Table{Name: name, lineWidth: -1}
}

// AddColumn appends a column and returns it.
func (t *Table) AddColumn(c *Column) *Column {
	t.columns = append(t.columns, c)
	return c
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column { return t.columns }

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetNullValue declares a null sentinel applied to every column before
// parsing.
func (t *Table) SetNullValue(v Value) { t.nullValue = &v }

// Parse parses every column. Safe to call more than once.
func (t *Table) Parse() error {
	if len(t.columns) == 0 {
		return ErrEmptyTable
	}
	n := t.columns[0].Len()
	for _, c := range t.columns {
		if c.Len() != n {
			return fmt.Errorf("%w: column %q has %d rows, want %d", ErrRaggedTable, c.Name, c.Len(), n)
		}
	}
	for _, c := range t.columns {
		if t.nullValue != nil {
			c.SetNullValue(*t.nullValue)
		}
		c.Parse()
	}
	return nil
}

// NRows returns the number of records.
func (t *Table) NRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// LineWidth returns the serialized line width: the field sizes plus one
// separating space between consecutive fields.
func (t *Table) LineWidth() int {
	if t.lineWidth >= 0 {
		return t.lineWidth
	}
	if err := t.Parse(); err != nil {
		return 0
	}
	w := 0
	for _, c := range t.columns {
		w += c.Size() + 1
	}
	t.lineWidth = w - 1
	return t.lineWidth
}

// TableName implements [CatalogTable].
func (t *Table) TableName() string { return t.Name }

// TableDescription implements [CatalogTable].
func (t *Table) TableDescription() string { return t.Description }

// ReadCSV loads a typed table from CSV input. The first record names the
// columns; each column's kind is sniffed over its values (all integers,
// else all floats, else strings) and empty fields become null markers.
// Float values keep their original textual rendering for format
// inference.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrEmptyTable)
	}

	header := records[0]
	t := NewTable(name)
	for j, colName := range header {
		cells := make([]string, 0, len(records)-1)
		for _, rec := range records[1:] {
			cell := ""
			if j < len(rec) {
				cell = strings.TrimSpace(rec[j])
			}
			cells = append(cells, cell)
		}
		t.AddColumn(NewColumn(strings.TrimSpace(colName), typedValues(cells)))
	}
	return t, nil
}

// typedValues sniffs a column kind over textual cells and converts them.
func typedValues(cells []string) []Value {
	isInt, isFloat, any := true, true, false
	for _, s := range cells {
		if s == "" {
			continue
		}
		any = true
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			isInt = false
		}
		if !reFloatText.MatchString(s) {
			isFloat = false
		} else if _, err := strconv.ParseFloat(s, 64); err != nil {
			isFloat = false
		}
	}

	values := make([]Value, len(cells))
	for i, s := range cells {
		switch {
		case s == "":
			values[i] = Null()
		case any && isInt:
			n, _ := strconv.ParseInt(s, 10, 64)
			values[i] = Int(n)
		case any && isFloat:
			v, err := FloatText(s)
			if err != nil {
				values[i] = Null()
				continue
			}
			values[i] = v
		default:
			values[i] = Str(s)
		}
	}
	return values
}

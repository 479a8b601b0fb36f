package mrt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Metadata is the YAML sidecar describing a catalog submission: the
// publication fields for the ReadMe plus per-table and per-column
// overrides for the inferred layout.
type Metadata struct {
	Catalogue  string      `yaml:"catalogue,omitempty"`
	Title      string      `yaml:"title,omitempty"`
	Author     string      `yaml:"author,omitempty"`
	Authors    string      `yaml:"authors,omitempty"`
	Date       string      `yaml:"date,omitempty"`
	Abstract   string      `yaml:"abstract,omitempty"`
	Keywords   string      `yaml:"keywords,omitempty"`
	Bibcode    string      `yaml:"bibcode,omitempty"`
	References []Reference `yaml:"references,omitempty"`
	Tables     []TableMeta `yaml:"tables,omitempty"`
}

// TableMeta overrides one table's description and columns, matched by
// table name.
type TableMeta struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Null        string       `yaml:"null,omitempty"`
	Columns     []ColumnMeta `yaml:"columns,omitempty"`
}

// ColumnMeta overrides one column, matched by column name. Sexa is
// "ra" or "de" to compose the column into sexagesimal sub-fields.
type ColumnMeta struct {
	Name        string `yaml:"name"`
	Unit        string `yaml:"unit,omitempty"`
	Description string `yaml:"description,omitempty"`
	Format      string `yaml:"format,omitempty"`
	Null        string `yaml:"null,omitempty"`
	Sexa        string `yaml:"sexa,omitempty"`
	Precision   int    `yaml:"precision,omitempty"`
}

// LoadMetadata reads a metadata sidecar from path.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &m, nil
}

// Save writes the metadata sidecar to path.
func (m *Metadata) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Maker builds a ReadMeMaker from the publication fields, keeping the
// placeholder defaults for anything left empty.
func (m *Metadata) Maker() (*ReadMeMaker, error) {
	mk := NewReadMeMaker()
	mk.Catalogue = m.Catalogue
	if m.Title != "" {
		mk.Title = m.Title
	}
	if m.Author != "" {
		mk.Author = m.Author
	}
	if m.Authors != "" {
		mk.Authors = m.Authors
	}
	if m.Date != "" {
		mk.Date = m.Date
	}
	if m.Abstract != "" {
		mk.Abstract = m.Abstract
	}
	if m.Bibcode != "" {
		mk.Bibcode = m.Bibcode
	}
	mk.Keywords = m.Keywords
	for _, r := range m.References {
		if err := mk.AddReference(r.Catalogue, r.Title); err != nil {
			return nil, err
		}
	}
	return mk, nil
}

// TableMeta returns the override block for the named table, or nil.
func (m *Metadata) TableMeta(name string) *TableMeta {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i]
		}
	}
	return nil
}

// Apply pushes the overrides onto a table. Null sentinels are applied
// before formats and sexagesimal roles so the masking is in effect when
// the column parses.
func (tm *TableMeta) Apply(t *Table) error {
	if tm.Description != "" {
		t.Description = tm.Description
	}
	if tm.Null != "" {
		t.SetNullValue(Literal(tm.Null))
	}
	for _, cm := range tm.Columns {
		c := t.Column(cm.Name)
		if c == nil {
			return fmt.Errorf("%w: table %q has no column %q", ErrFormat, t.Name, cm.Name)
		}
		if cm.Unit != "" {
			c.Unit = cm.Unit
		}
		if cm.Description != "" {
			c.Description = cm.Description
		}
		if cm.Null != "" {
			c.SetNullValue(Literal(cm.Null))
		}
		if cm.Format != "" {
			if err := c.SetFormat(cm.Format); err != nil {
				return fmt.Errorf("column %q: %w", cm.Name, err)
			}
		}
		switch cm.Sexa {
		case "":
		case "ra":
			if err := c.SetSexaRA(cm.Precision); err != nil {
				return fmt.Errorf("column %q: %w", cm.Name, err)
			}
		case "de":
			if err := c.SetSexaDE(cm.Precision); err != nil {
				return fmt.Errorf("column %q: %w", cm.Name, err)
			}
		default:
			return fmt.Errorf("%w: column %q: sexa must be \"ra\" or \"de\", got %q", ErrFormat, cm.Name, cm.Sexa)
		}
	}
	return nil
}


package mrt

import (
	"bufio"
	"io"
)

// Write serializes every record through the columns' formatters, one
// space-joined fixed-width line per record.
func (t *Table) Write(w io.Writer) error {
	if err := t.Parse(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < t.NRows(); i++ {
		for j, c := range t.columns {
			if j > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(c.Write(i)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteData implements [CatalogTable].
func (t *Table) WriteData(w io.Writer) error { return t.Write(w) }

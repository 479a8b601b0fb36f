package mrt

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ByteRange is one field's 1-based inclusive byte span in a serialized
// line.
type ByteRange struct {
	Start, End int
}

// ByteRanges returns each column's byte span. Consecutive fields are
// separated by exactly one space, so consecutive spans advance by
// size+1.
func (t *Table) ByteRanges() []ByteRange {
	if err := t.Parse(); err != nil {
		return nil
	}
	ranges := make([]ByteRange, 0, len(t.columns))
	start := 1
	for _, c := range t.columns {
		end := start + c.Size() - 1
		ranges = append(ranges, ByteRange{Start: start, End: end})
		start = end + 2
	}
	return ranges
}

// ByteByByte renders the byte-by-byte catalog: one line per column
// (three or four for sexagesimal columns) with byte range, Fortran
// format tag, unit, label and explanation, followed by the table notes
// fenced with dash rules. Lines over the page width soft-wrap with a
// hanging indent aligned to the explanation column.
func (t *Table) ByteByByte(w io.Writer) error {
	if err := t.Parse(); err != nil {
		return err
	}

	bw := len(strconv.Itoa(t.LineWidth()))
	lw := 7
	for _, c := range t.columns {
		if len(c.Name) > lw {
			lw = len(c.Name)
		}
	}
	indent := 2*bw + 1 + lw + 16

	var sb strings.Builder
	start := 1
	for _, c := range t.columns {
		end := start + c.Size() - 1
		switch c.role {
		case RoleRA:
			t.writeSexaRA(&sb, c, bw, lw, start)
		case RoleDE:
			t.writeSexaDE(&sb, c, bw, lw, start)
		default:
			explanation := boundTag(c) + nullFlag(c) + " " + c.Description
			line := catalogLine(bw, lw, start, end, c.Fortran().String(), c.Unit, c.Name, explanation)
			if len(line) > maxReadMeLine {
				line = strings.Join(wrapIndent(line, maxReadMeLine, indent), "\n")
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		start = end + 2
	}

	if len(t.Notes) > 0 {
		sb.WriteString(strings.Repeat("-", maxReadMeLine))
		sb.WriteByte('\n')
		for _, note := range t.Notes {
			sb.WriteString(note)
			sb.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *Table) writeSexaRA(sb *strings.Builder, c *Column, bw, lw, start int) {
	prefix := ""
	if c.HasNull() {
		prefix = "? "
	}
	n := start
	for i, f := range c.sexaRA.Fields() {
		if i > 0 {
			n++ // separating space
		}
		sb.WriteString(catalogLine(bw, lw, n, n+f.Size()-1, f.Fortran.String(), f.Unit, f.Name, prefix+f.Description))
		sb.WriteByte('\n')
		n += f.Size()
	}
}

func (t *Table) writeSexaDE(sb *strings.Builder, c *Column, bw, lw, start int) {
	prefix := ""
	if c.HasNull() {
		prefix = "? "
	}
	n := start
	for i, f := range c.sexaDE.Fields() {
		if i > 1 {
			n++ // the sign byte abuts the degrees, all other fields are spaced
		}
		sb.WriteString(catalogLine(bw, lw, n, n+f.Size()-1, f.Fortran.String(), f.Unit, f.Name, prefix+f.Description))
		sb.WriteByte('\n')
		n += f.Size()
	}
}

func catalogLine(bw, lw, start, end int, format, unit, label, explanation string) string {
	return fmt.Sprintf("%*d-%*d %1s %-6s %-6s %-*s %s",
		bw, start, bw, end, "", format, unit, lw, label, explanation)
}

func nullFlag(c *Column) string {
	if c.HasNull() {
		return "?"
	}
	return ""
}

// boundTag renders the inferred bound annotation: "[min/max]" (or "[v]"
// for a constant integer column), empty when a bound is undefined or an
// integer bound exceeds the magnitude guard. Float bounds are floored
// and ceiled to two decimal places.
func boundTag(c *Column) string {
	if c.min.IsNull() || c.max.IsNull() {
		return ""
	}
	switch c.Fortran().Letter {
	case 'I':
		mn, mx := c.min.Int(), c.max.Int()
		if absInt(mn) >= maxIntLimit || absInt(mx) >= maxIntLimit {
			return ""
		}
		if mn == mx {
			return fmt.Sprintf("[%d]", mn)
		}
		return fmt.Sprintf("[%d/%d]", mn, mx)
	case 'E', 'F':
		lo := math.Floor(c.min.Float()*100) / 100
		hi := math.Ceil(c.max.Float()*100) / 100
		return "[" + formatFloatShort(lo) + "/" + formatFloatShort(hi) + "]"
	}
	return ""
}

func formatFloatShort(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func absInt(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

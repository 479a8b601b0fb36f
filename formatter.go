package mrt

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Formatter owns one column's fixed-width serialization: the byte width,
// the Fortran-style format tag, and the rendering of single values.
// Null markers render as blank padding of the same width.
type Formatter interface {
	Size() int
	Fortran() FortranFormat
	Write(v Value) string
}

// --- Integer columns ---

type integerFormatter struct {
	size     int
	min, max Value
}

func newIntegerFormatter(values []Value) *integerFormatter {
	f := &integerFormatter{size: 1, min: Null(), max: Null()}
	found := false
	var mn, mx int64
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		n := v.Int()
		if !found || n < mn {
			mn = n
		}
		if !found || n > mx {
			mx = n
		}
		found = true
	}
	if found {
		f.min, f.max = Int(mn), Int(mx)
		f.size = max(len(strconv.FormatInt(mn, 10)), len(strconv.FormatInt(mx, 10)))
	}
	return f
}

func (f *integerFormatter) Size() int { return f.size }

func (f *integerFormatter) Fortran() FortranFormat {
	return FortranFormat{Letter: 'I', Width: f.size}
}

func (f *integerFormatter) Write(v Value) string {
	if v.IsNull() {
		return blank(f.size)
	}
	return fmt.Sprintf("%*d", f.size, v.Int())
}

// --- Float columns ---

type floatFormatter struct {
	size     int
	repr     FloatRepr
	min, max Value
}

func newFloatFormatter(values []Value) *floatFormatter {
	f := &floatFormatter{min: Null(), max: Null()}
	found := false
	var mn, mx float64
	for _, v := range values {
		if v.IsNull() || v.IsNaN() || math.IsInf(v.Float(), 0) {
			continue
		}
		if err := f.repr.Consume(v.Text()); err != nil {
			slog.Warn("skipping unparseable float rendering", "value", v.Text())
			continue
		}
		x := v.Float()
		if !found || x < mn {
			mn = x
		}
		if !found || x > mx {
			mx = x
		}
		found = true
	}
	if found {
		f.min, f.max = Float(mn), Float(mx)
	}
	f.size = max(1, f.repr.Width())
	return f
}

func (f *floatFormatter) Size() int { return f.size }

func (f *floatFormatter) Fortran() FortranFormat { return f.repr.Fortran() }

// Write renders NaN and infinities as blank padding even when the column
// was never declared nullable: NaN is always null-like at serialization
// time.
func (f *floatFormatter) Write(v Value) string {
	if v.IsNull() || v.IsNaN() || math.IsInf(v.Float(), 0) {
		return blank(f.size)
	}
	return f.repr.format(v.Float())
}

// --- String columns ---

type stringFormatter struct {
	size int
}

func newStringFormatter(values []Value) *stringFormatter {
	w := 0
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		if n := runewidth.StringWidth(v.Text()); n > w {
			w = n
		}
	}
	if w == 0 {
		// Width detection failed (no usable value). Degrade to the
		// default width rather than failing the whole export.
		slog.Warn("string width detection failed, using default", "size", defaultStringSize)
		w = defaultStringSize
	}
	return &stringFormatter{size: w}
}

func (f *stringFormatter) Size() int { return f.size }

func (f *stringFormatter) Fortran() FortranFormat {
	return FortranFormat{Letter: 'A', Width: f.size}
}

func (f *stringFormatter) Write(v Value) string {
	if v.IsNull() {
		return blank(f.size)
	}
	return padRight(v.Text(), f.size)
}

// --- Forced formats ---

// forcedFormatter applies an explicit format override. Its size and tag
// come from the override, never from the data.
type forcedFormatter struct {
	fortran FortranFormat
}

func newForcedFormatter(spec string) (*forcedFormatter, error) {
	ff, err := ParseFortran(spec)
	if err != nil {
		return nil, err
	}
	return &forcedFormatter{fortran: ff}, nil
}

func (f *forcedFormatter) Size() int { return f.fortran.Width }

func (f *forcedFormatter) Fortran() FortranFormat { return f.fortran }

func (f *forcedFormatter) Write(v Value) string {
	if v.IsNull() || v.IsNaN() {
		return blank(f.fortran.Width)
	}
	switch f.fortran.Letter {
	case 'I':
		return fmt.Sprintf("%*d", f.fortran.Width, v.Int())
	case 'F':
		return fmt.Sprintf("%*.*f", f.fortran.Width, f.fortran.Precision, v.Float())
	case 'E':
		// Precision counts significant digits; %e wants digits after
		// the point.
		return fmt.Sprintf("%*.*e", f.fortran.Width, f.fortran.Precision-1, v.Float())
	default:
		return padRight(v.Text(), f.fortran.Width)
	}
}

// --- Padding helpers ---

func blank(size int) string { return strings.Repeat(" ", size) }

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

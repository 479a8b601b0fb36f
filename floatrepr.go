package mrt

import (
	"fmt"
	"regexp"
	"strings"
)

// Notation classifies the textual renderings seen by a [FloatRepr].
type Notation int

const (
	// NotationNone means no value has been consumed yet.
	NotationNone Notation = iota
	// NotationDecimal: every rendering was plain decimal, e.g. "12.345".
	NotationDecimal
	// NotationScientific: every rendering carried an exponent, e.g. "1.2e-5".
	NotationScientific
	// NotationMixed: both decimal and scientific renderings were seen.
	NotationMixed
)

// FloatRepr infers a minimal textual float representation that
// round-trips the precision present across all sampled renderings of a
// column's values. Feed it every non-null rendering with [FloatRepr.Consume],
// then read the result with Width, Precision and Fortran.
//
// Published tables mix notations across rows (e.g. "0.0001" next to
// "1.2e-5"); a column that saw both must be wide and precise enough to
// represent every rendering in one uniform format.
type FloatRepr struct {
	notation Notation
	signed   bool

	// scientific renderings
	eWidth     int // widest rendering seen
	ePrecision int // most significant digits seen (mantissa only)
	expDigits  int // widest exponent seen, sign excluded

	// decimal renderings
	intDigits  int // digits before the point
	fracDigits int // digits after the point
}

var reFloatText = regexp.MustCompile(`^([+-]?)([0-9]*)(?:\.([0-9]*))?(?:[eE]([+-]?[0-9]+))?$`)

// Consume folds one textual rendering into the accumulated representation.
func (r *FloatRepr) Consume(value string) error {
	mo := reFloatText.FindStringSubmatch(value)
	if mo == nil || (mo[2] == "" && mo[3] == "") {
		return fmt.Errorf("%w: %q is not a float number", ErrFormat, value)
	}
	if mo[1] == "-" {
		r.signed = true
	}

	if mo[4] != "" { // scientific
		if p := len(mo[2]) + len(mo[3]); p > r.ePrecision {
			r.ePrecision = p
		}
		if w := len(value); w > r.eWidth {
			r.eWidth = w
		}
		if d := len(strings.TrimLeft(mo[4], "+-")); d > r.expDigits {
			r.expDigits = d
		}
		if r.notation == NotationDecimal || r.notation == NotationMixed {
			r.notation = NotationMixed
		} else {
			r.notation = NotationScientific
		}
		return nil
	}

	// decimal
	if n := len(mo[3]); n > r.fracDigits {
		r.fracDigits = n
	}
	if n := len(mo[2]); n > r.intDigits {
		r.intDigits = n
	}
	if r.notation == NotationScientific || r.notation == NotationMixed {
		r.notation = NotationMixed
	} else {
		r.notation = NotationDecimal
	}
	return nil
}

// Notation returns the notation class seen so far.
func (r *FloatRepr) Notation() Notation { return r.notation }

// Signed reports whether any consumed rendering was negative.
func (r *FloatRepr) Signed() bool { return r.signed }

// Width returns the serialized field width. For scientific and mixed
// columns it is at least the width of the normalized exponent rendering,
// so every value fits the field exactly.
func (r *FloatRepr) Width() int {
	switch r.notation {
	case NotationScientific:
		return max(r.eWidth, r.sciWidth())
	case NotationMixed:
		return max(r.decWidth(), r.eWidth, r.sciWidth())
	default:
		return r.decWidth()
	}
}

// Precision returns the significant-digit count the format must carry.
func (r *FloatRepr) Precision() int {
	switch r.notation {
	case NotationScientific:
		return r.ePrecision
	case NotationMixed:
		return max(r.intDigits+r.fracDigits, r.ePrecision)
	default:
		return r.intDigits + r.fracDigits
	}
}

// Fortran returns the inferred format tag: F<w>.<p> for decimal columns,
// E<w>.<p> for scientific and mixed ones.
func (r *FloatRepr) Fortran() FortranFormat {
	if r.notation == NotationDecimal {
		return FortranFormat{Letter: 'F', Width: r.Width(), Precision: r.fracDigits}
	}
	return FortranFormat{Letter: 'E', Width: r.Width(), Precision: r.Precision()}
}

// format renders v according to the inferred representation. Scientific
// and mixed columns use Precision() digits after the point, one full
// significant digit of headroom beyond the maximum observed precision.
func (r *FloatRepr) format(v float64) string {
	if r.notation == NotationDecimal {
		return fmt.Sprintf("%*.*f", r.Width(), r.fracDigits, v)
	}
	return fmt.Sprintf("%*.*e", r.Width(), r.Precision(), v)
}

// decWidth is the fixed-point width: digits, the decimal point, and a
// sign position when any rendering was negative. Fixed-point output
// always carries a digit before the point, so a bare-fraction rendering
// like ".5" still occupies one integer position.
func (r *FloatRepr) decWidth() int {
	w := max(r.intDigits, 1) + r.fracDigits + 1
	if r.signed {
		w++
	}
	return w
}

// sciWidth is the width of a normalized "d.p…e±dd" rendering with
// Precision() digits after the point.
func (r *FloatRepr) sciWidth() int {
	w := 4 + r.Precision() + max(2, r.expDigits)
	if r.signed {
		w++
	}
	return w
}

package mrt

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for programmatic error handling.
var (
	ErrFormat      = errors.New("invalid format")
	ErrSexa        = errors.New("bad sexagesimal format")
	ErrEmptyTable  = errors.New("table has no columns")
	ErrRaggedTable = errors.New("columns have unequal lengths")
)

const (
	// UndefinedUnit marks a dimensionless or unknown unit.
	UndefinedUnit = "---"

	defaultStringSize = 50
	maxReadMeLine     = 80
	maxIntLimit       = 10000000
)

// FortranFormat is a Fortran-style serialization format tag:
// I (integer), F (fixed float), E (scientific float), A (string),
// plus a width and, for E and F, a precision.
type FortranFormat struct {
	Letter    byte
	Width     int
	Precision int
}

// String renders the tag, e.g. "I4", "A12", "F10.5", "E12.7".
func (f FortranFormat) String() string {
	switch f.Letter {
	case 'E', 'F':
		return fmt.Sprintf("%c%d.%d", f.Letter, f.Width, f.Precision)
	case 0:
		return ""
	default:
		return fmt.Sprintf("%c%d", f.Letter, f.Width)
	}
}

var (
	reFortranFloat = regexp.MustCompile(`^([EF])([0-9]+)\.([0-9]+)`)
	reFortranPlain = regexp.MustCompile(`^([IA])([0-9]+)`)
)

// ParseFortran parses a Fortran-style format tag. Accepted shapes are
// E<width>.<precision>, F<width>.<precision>, I<width> and A<width>.
func ParseFortran(s string) (FortranFormat, error) {
	if mo := reFortranFloat.FindStringSubmatch(s); mo != nil {
		return FortranFormat{
			Letter:    mo[1][0],
			Width:     mustAtoi(mo[2]),
			Precision: mustAtoi(mo[3]),
		}, nil
	}
	if mo := reFortranPlain.FindStringSubmatch(s); mo != nil {
		return FortranFormat{Letter: mo[1][0], Width: mustAtoi(mo[2])}, nil
	}
	return FortranFormat{}, fmt.Errorf("%w: %q", ErrFormat, s)
}

func mustAtoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

package mrt

// SexaField describes one synthesized sub-field of a sexagesimal
// coordinate column. Sub-fields are catalog metadata only: they never
// become columns of their own in the row layout.
type SexaField struct {
	Name        string
	Description string
	Unit        string
	Fortran     FortranFormat
}

// Size returns the sub-field byte width.
func (f SexaField) Size() int { return f.Fortran.Width }

// SexaRA is a right ascension split into hour, minute and second
// sub-fields.
type SexaRA struct {
	Hour SexaField
	Min  SexaField
	Sec  SexaField
}

func newSexaRA(secDigits int) *SexaRA {
	ra := &SexaRA{
		Hour: SexaField{"RAh", "Right ascension (hour)", "h", FortranFormat{Letter: 'I', Width: 2}},
		Min:  SexaField{"RAm", "Right ascension (minute)", "min", FortranFormat{Letter: 'I', Width: 2}},
		Sec:  SexaField{"RAs", "Right ascension (seconds)", "s", FortranFormat{Letter: 'I', Width: 2}},
	}
	if secDigits != 0 {
		ra.Sec.Fortran = FortranFormat{Letter: 'F', Width: 3 + secDigits, Precision: secDigits}
	}
	return ra
}

// Fields returns the sub-fields in byte order.
func (ra *SexaRA) Fields() []SexaField { return []SexaField{ra.Hour, ra.Min, ra.Sec} }

// SexaDE is a declination split into sign, degree, arcminute and
// arcsecond sub-fields. The sign byte abuts the degree field.
type SexaDE struct {
	Sign SexaField
	Deg  SexaField
	Min  SexaField
	Sec  SexaField
}

func newSexaDE(secDigits int) *SexaDE {
	de := &SexaDE{
		Sign: SexaField{"DE-", "Declination (sign)", UndefinedUnit, FortranFormat{Letter: 'A', Width: 1}},
		Deg:  SexaField{"DEd", "Declination (degree)", "deg", FortranFormat{Letter: 'I', Width: 2}},
		Min:  SexaField{"DEm", "Declination (minute)", "arcmin", FortranFormat{Letter: 'I', Width: 2}},
		Sec:  SexaField{"DEs", "Declination (seconds)", "arcsec", FortranFormat{Letter: 'I', Width: 2}},
	}
	if secDigits != 0 {
		de.Sec.Fortran = FortranFormat{Letter: 'F', Width: 3 + secDigits, Precision: secDigits}
	}
	return de
}

// Fields returns the sub-fields in byte order.
func (de *SexaDE) Fields() []SexaField {
	return []SexaField{de.Sign, de.Deg, de.Min, de.Sec}
}

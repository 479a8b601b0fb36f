package mrt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdspub/mrt"
)

func TestColumnIntegerSentinel(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("Seq", []mrt.Value{
		mrt.Int(1), mrt.Int(2), mrt.Null(), mrt.Int(4), mrt.Int(999),
	})
	c.SetNullValue(mrt.Int(999))
	c.Parse()

	assert.Equal(t, mrt.KindInteger, c.Kind())
	assert.True(t, c.HasNull())
	// Both the sentinel and the true null are excluded from bounds and
	// width.
	assert.Equal(t, int64(1), c.Min().Int())
	assert.Equal(t, int64(4), c.Max().Int())
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, "I1", c.Fortran().String())
	assert.Equal(t, "1", c.Write(0))
	assert.Equal(t, " ", c.Write(2))
	assert.Equal(t, " ", c.Write(4))
}

func TestColumnFloatWidthInvariant(t *testing.T) {
	t.Parallel()

	texts := []string{"0.0001", "1.2e-5", "-3.5"}
	values := make([]mrt.Value, 0, len(texts))
	for _, s := range texts {
		v, err := mrt.FloatText(s)
		require.NoError(t, err)
		values = append(values, v)
	}
	c := mrt.NewColumn("Flux", values)
	c.Parse()

	assert.Equal(t, "E12.5", c.Fortran().String())
	for i := 0; i < c.Len(); i++ {
		assert.Len(t, c.Write(i), c.Size(), "row %d", i)
	}
}

func TestColumnBareFractionWidth(t *testing.T) {
	t.Parallel()

	tab, err := mrt.ReadCSV(strings.NewReader("x\n.5\n.25\n"), "t.dat")
	require.NoError(t, err)
	require.NoError(t, tab.Parse())

	c := tab.Column("x")
	assert.Equal(t, 4, c.Size())
	assert.Equal(t, "0.50", c.Write(0))
	for i := 0; i < c.Len(); i++ {
		assert.Len(t, c.Write(i), c.Size(), "row %d", i)
	}
}

func TestColumnString(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("Name", []mrt.Value{
		mrt.Str("NGC 104"), mrt.Str("M31"), mrt.Null(),
	})
	c.Parse()

	assert.Equal(t, mrt.KindString, c.Kind())
	assert.Equal(t, "A7", c.Fortran().String())
	assert.Equal(t, "M31    ", c.Write(1))
	assert.Equal(t, "       ", c.Write(2))
}

func TestColumnAllNullFallsBackToDefaultWidth(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("Empty", []mrt.Value{mrt.Null(), mrt.Null()})
	c.Parse()

	assert.True(t, c.HasNull())
	assert.Equal(t, 50, c.Size())
	assert.Equal(t, "A50", c.Fortran().String())
}

func TestColumnForcedFormat(t *testing.T) {
	t.Parallel()

	v, err := mrt.FloatText("1.5")
	require.NoError(t, err)
	c := mrt.NewColumn("Per", []mrt.Value{v})
	require.NoError(t, c.SetFormat("F10.5"))
	c.Parse()

	assert.Equal(t, 10, c.Size())
	assert.Equal(t, "F10.5", c.Fortran().String())
	assert.Equal(t, "   1.50000", c.Write(0))
	// Inferred bounds survive the override.
	assert.Equal(t, 1.5, c.Min().Float())
}

func TestColumnForcedFormatAfterParse(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("Seq", []mrt.Value{mrt.Int(7)})
	c.Parse()
	require.NoError(t, c.SetFormat("I4"))
	assert.Equal(t, "   7", c.Write(0))
}

func TestColumnForcedFormatInvalid(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("Seq", []mrt.Value{mrt.Int(7)})
	assert.ErrorIs(t, c.SetFormat("Q4"), mrt.ErrFormat)
}

func TestColumnDefaultsFromName(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("Bmagnitude", []mrt.Value{mrt.Int(12)})
	c.Parse()
	assert.Equal(t, "mag", c.Unit)
	assert.Equal(t, "Description of Bmagnitude", c.Description)

	d := mrt.NewColumn("Period (days)", []mrt.Value{mrt.Int(3)})
	d.Parse()
	assert.Equal(t, "d", d.Unit)
}

func TestSetSexaRA(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("RA", []mrt.Value{
		mrt.Str("01 02 03.45"), mrt.Str("10 20 30.12"),
	})
	require.NoError(t, c.SetSexaRA(0))

	assert.Equal(t, mrt.RoleRA, c.Role())
	assert.True(t, c.IsSexa())
	ra := c.SexaRA()
	require.NotNil(t, ra)
	assert.Equal(t, "RAh", ra.Hour.Name)
	// Width 11 leaves two fractional digits for the seconds.
	assert.Equal(t, "F5.2", ra.Sec.Fortran.String())
	// Sub-field widths plus separators cover the stored width.
	assert.Equal(t, c.Size(), ra.Hour.Size()+ra.Min.Size()+ra.Sec.Size()+2)
}

func TestSetSexaDEIntegerSeconds(t *testing.T) {
	t.Parallel()

	c := mrt.NewColumn("DE", []mrt.Value{
		mrt.Str("+41 16 09"), mrt.Str("-00 01 02"),
	})
	require.NoError(t, c.SetSexaDE(0))

	de := c.SexaDE()
	require.NotNil(t, de)
	assert.Equal(t, "A1", de.Sign.Fortran.String())
	assert.Equal(t, "I2", de.Sec.Fortran.String())
}

func TestSetSexaErrors(t *testing.T) {
	t.Parallel()

	num := mrt.NewColumn("RA", []mrt.Value{mrt.Int(1)})
	assert.ErrorIs(t, num.SetSexaRA(0), mrt.ErrSexa)

	short := mrt.NewColumn("RA", []mrt.Value{mrt.Str("01 02 03")})
	assert.ErrorIs(t, short.SetSexaRA(3), mrt.ErrSexa)

	c := mrt.NewColumn("RA", []mrt.Value{mrt.Str("01 02 03.45")})
	require.NoError(t, c.SetSexaRA(2))
	assert.ErrorIs(t, c.SetSexaRA(2), mrt.ErrSexa)
}

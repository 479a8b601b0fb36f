package mrt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdspub/mrt"
)

func TestReadMeMakerDefaults(t *testing.T) {
	t.Parallel()

	m := mrt.NewReadMeMaker()
	assert.Equal(t, "Title ?", m.Title)
	assert.Equal(t, "1st author ?", m.Author)
	assert.Equal(t, "Date ?", m.Date)
	assert.Empty(t, m.Tables())
}

func TestAddReference(t *testing.T) {
	t.Parallel()

	m := mrt.NewReadMeMaker()
	assert.ErrorIs(t, m.AddReference("", "no name"), mrt.ErrFormat)
	require.NoError(t, m.AddReference("II/246", "2MASS All-Sky Catalog"))
	assert.Contains(t, m.SeeAlso(), " II/246 : 2MASS All-Sky Catalog")
}

func TestTablesIndex(t *testing.T) {
	t.Parallel()

	m := mrt.NewReadMeMaker()
	tab := loadObjects(t)
	tab.Description = "Observed objects"
	m.AddTable(tab)

	idx := m.TablesIndex()
	lines := strings.Split(strings.TrimSuffix(idx, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ReadMe         80        .  this file", lines[0])
	assert.Equal(t, "objects.dat    14        3  Observed objects", lines[1])
}

func TestWriteReadMe(t *testing.T) {
	t.Parallel()

	m := mrt.NewReadMeMaker()
	m.Catalogue = "J/A+A/999/1"
	m.Title = "A test catalog"
	m.Author = "Doe J."
	m.Authors = "Smith A.B., Jones C."
	m.Abstract = "Short abstract."
	m.Keywords = "stars: abundances; techniques: spectroscopic"
	m.Bibcode = "2020A&A...999....1D"

	tab := loadObjects(t)
	tab.Description = "Observed objects"
	m.AddTable(tab)

	var buf bytes.Buffer
	require.NoError(t, m.WriteReadMe(&buf))
	out := buf.String()

	assert.Contains(t, out, "J/A+A/999/1")
	assert.Contains(t, out, "A test catalog")
	assert.Contains(t, out, "Doe J., Smith A.B., Jones C.")
	assert.Contains(t, out, "<=2020A&A...999....1D>")
	assert.Contains(t, out, "Keywords: stars: abundances; techniques: spectroscopic")
	assert.Contains(t, out, "Abstract:\n  Short abstract.")
	assert.Contains(t, out, "Byte-by-byte Description of file: objects.dat")
	assert.Contains(t, out, "this file")
	assert.Contains(t, out, "(End)")
}

func TestWriteReadMeSeeAlso(t *testing.T) {
	t.Parallel()

	m := mrt.NewReadMeMaker()
	var buf bytes.Buffer
	require.NoError(t, m.WriteReadMe(&buf))
	assert.NotContains(t, buf.String(), "See also:")

	require.NoError(t, m.AddReference("II/246", "2MASS"))
	buf.Reset()
	require.NoError(t, m.WriteReadMe(&buf))
	assert.Contains(t, buf.String(), "See also:\n II/246 : 2MASS")
}

func TestWriteMRT(t *testing.T) {
	t.Parallel()

	m := mrt.NewReadMeMaker()
	m.Title = "A test catalog"
	m.Author = "Doe J."
	m.Authors = ""

	f := parseLegacy(t)
	var buf bytes.Buffer
	require.NoError(t, m.WriteMRT(&buf, f))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Title: A test catalog\n"))
	assert.Contains(t, out, "Authors: Doe J.\n")
	assert.Contains(t, out, "Table: Objects observed in 2020\n")
	// The recovered block already carries its header rows.
	assert.Equal(t, 1, strings.Count(out, "Bytes Format"))
	assert.Contains(t, out, "Byte-by-byte Description of file: objects.dat")
	assert.True(t, strings.HasSuffix(out, "  1  12.25\n  2   9.80\n  3\n"))
}

func TestWriteMRTInferredTable(t *testing.T) {
	t.Parallel()

	m := mrt.NewReadMeMaker()
	tab := loadObjects(t)
	tab.Description = "Observed objects"

	var buf bytes.Buffer
	require.NoError(t, m.WriteMRT(&buf, tab))
	out := buf.String()

	assert.Contains(t, out, "Byte-by-byte Description of file: objects.dat")
	assert.Contains(t, out, "Bytes Format Units  Label     Explanations")
	assert.Contains(t, out, " 1 alpha 12.25\n")
}

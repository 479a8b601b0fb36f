package mrt_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdspub/mrt"
)

const sidecarYAML = `title: A test catalog
author: Doe J.
keywords: "stars: abundances"
references:
  - catalogue: II/246
    title: 2MASS All-Sky Catalog
tables:
  - name: objects.dat
    description: Observed objects
    columns:
      - name: Mag
        unit: mag
        description: Magnitude
        format: F6.2
      - name: ID
        "null": "999"
`

func writeSidecar(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sidecarYAML), 0o644))
	return path
}

func TestLoadMetadata(t *testing.T) {
	t.Parallel()

	m, err := mrt.LoadMetadata(writeSidecar(t))
	require.NoError(t, err)

	assert.Equal(t, "A test catalog", m.Title)
	assert.Equal(t, "Doe J.", m.Author)
	require.Len(t, m.References, 1)
	assert.Equal(t, "II/246", m.References[0].Catalogue)

	require.NotNil(t, m.TableMeta("objects.dat"))
	assert.Nil(t, m.TableMeta("other.dat"))
}

func TestLoadMetadataMissingFile(t *testing.T) {
	t.Parallel()

	_, err := mrt.LoadMetadata(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestMetadataApply(t *testing.T) {
	t.Parallel()

	m, err := mrt.LoadMetadata(writeSidecar(t))
	require.NoError(t, err)

	tab := loadObjects(t)
	require.NoError(t, m.TableMeta("objects.dat").Apply(tab))
	require.NoError(t, tab.Parse())

	assert.Equal(t, "Observed objects", tab.Description)

	mag := tab.Column("Mag")
	assert.Equal(t, "mag", mag.Unit)
	assert.Equal(t, "Magnitude", mag.Description)
	assert.Equal(t, "F6.2", mag.Fortran().String())
	assert.Equal(t, 6, mag.Size())
}

func TestMetadataApplyNullSentinel(t *testing.T) {
	t.Parallel()

	m, err := mrt.LoadMetadata(writeSidecar(t))
	require.NoError(t, err)

	id := mrt.NewColumn("ID", []mrt.Value{mrt.Int(1), mrt.Int(999)})
	tab := mrt.NewTable("objects.dat")
	tab.AddColumn(id)
	tab.AddColumn(mrt.NewColumn("Mag", []mrt.Value{mrt.Int(1), mrt.Int(2)}))
	require.NoError(t, m.TableMeta("objects.dat").Apply(tab))
	require.NoError(t, tab.Parse())

	assert.True(t, id.HasNull())
	assert.Equal(t, int64(1), id.Max().Int())
}

func TestMetadataApplyUnknownColumn(t *testing.T) {
	t.Parallel()

	tm := &mrt.TableMeta{
		Name:    "t.dat",
		Columns: []mrt.ColumnMeta{{Name: "missing"}},
	}
	tab := loadObjects(t)
	assert.ErrorIs(t, tm.Apply(tab), mrt.ErrFormat)
}

func TestMetadataApplyBadSexa(t *testing.T) {
	t.Parallel()

	tm := &mrt.TableMeta{
		Name:    "t.dat",
		Columns: []mrt.ColumnMeta{{Name: "Name", Sexa: "dec"}},
	}
	tab := loadObjects(t)
	assert.ErrorIs(t, tm.Apply(tab), mrt.ErrFormat)
}

func TestMetadataMaker(t *testing.T) {
	t.Parallel()

	m, err := mrt.LoadMetadata(writeSidecar(t))
	require.NoError(t, err)

	mk, err := m.Maker()
	require.NoError(t, err)
	assert.Equal(t, "A test catalog", mk.Title)
	assert.Equal(t, "Doe J.", mk.Author)
	// Untouched fields keep their placeholders.
	assert.Equal(t, "Date ?", mk.Date)
	assert.Contains(t, mk.SeeAlso(), "II/246")
}

func TestMetadataSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yaml")
	m := &mrt.Metadata{Title: "Saved", Keywords: "stars"}
	require.NoError(t, m.Save(path))

	got, err := mrt.LoadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/radwaste/internal/dataset"
)

func TestStoreReadTable(t *testing.T) {
	st := New(fstest.MapFS{
		"initial_cond.csv": {Data: []byte(",Moles\nCm245,1.5\nPu241,0.2\n")},
	})

	tbl, err := st.ReadTable("initial_cond.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Cm245", "Pu241"}, tbl.Index)
	assert.Equal(t, []string{"Moles"}, tbl.Columns)
}

func TestStoreReadTable_Missing(t *testing.T) {
	st := New(fstest.MapFS{})

	_, err := st.ReadTable("decay_cte_data.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var de *dataset.DataError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "decay_cte_data.csv", de.Path)
}

func TestStoreReadTable_Malformed(t *testing.T) {
	st := New(fstest.MapFS{
		"bad.csv": {Data: []byte(",Moles\nCm245,abc\n")},
	})

	_, err := st.ReadTable("bad.csv")
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)
	assert.ErrorIs(t, err, dataset.ErrMalformed)
}

func TestStoreStat(t *testing.T) {
	st := New(fstest.MapFS{
		"a.csv":     {Data: []byte("k\n")},
		"dir/b.csv": {Data: []byte("k\n")},
	})

	assert.NoError(t, st.Stat("a.csv"))
	assert.ErrorIs(t, st.Stat("dir"), dataset.ErrDataUnavailable)
	assert.ErrorIs(t, st.Stat("nope.csv"), dataset.ErrDataUnavailable)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t.csv"), []byte("k,v\na,1\n"), 0644))

	st, err := Open(dir)
	require.NoError(t, err)

	tbl, err := st.ReadTable("t.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Rows())

	_, err = Open(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)
}

func TestExportCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	tbl := &dataset.Table{IndexName: "time", Index: []string{"1"}, Columns: []string{"x"}, Values: [][]float64{{2}}}

	require.NoError(t, ExportCSV(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "time,x\n1,2\n", string(data))
}

package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	in := "time,Cm245,Pu241\n1,0.5,\n10,0.25,3e-4\n"

	tbl, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "time", tbl.IndexName)
	assert.Equal(t, []string{"1", "10"}, tbl.Index)
	assert.Equal(t, []string{"Cm245", "Pu241"}, tbl.Columns)
	assert.Equal(t, 0.25, tbl.Values[1][0])
	assert.True(t, IsMissing(tbl.Values[0][1]))

	times, err := tbl.IndexFloats()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 10}, times)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"non-numeric", "k,Moles\nCm245,lots\n"},
		{"ragged", "k,Moles\nCm245,1,2\n"},
		{"duplicate key", "k,Moles\nCm245,1\nCm245,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	in := "k,Moles\nCm245,1.5\nTl205,\n"
	tbl, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tbl))
	assert.Equal(t, in, buf.String())
}

func TestOuterJoin(t *testing.T) {
	moles := &Table{
		IndexName: "nuclide",
		Index:     []string{"Pu241", "Cm245"},
		Columns:   []string{"Moles"},
		Values:    [][]float64{{2}, {1}},
	}
	cte := &Table{
		Index:   []string{"Cm245", "Tl205"},
		Columns: []string{"Cte"},
		Values:  [][]float64{{8e-5}, {0}},
	}

	joined, err := OuterJoin(moles, cte)
	require.NoError(t, err)

	assert.Equal(t, "nuclide", joined.IndexName)
	assert.Equal(t, []string{"Cm245", "Pu241", "Tl205"}, joined.Index)
	assert.Equal(t, []string{"Moles", "Cte"}, joined.Columns)
	assert.Equal(t, []float64{1, 8e-5}, joined.Values[0])
	assert.Equal(t, 2.0, joined.Values[1][0])
	assert.True(t, math.IsNaN(joined.Values[1][1]))
	assert.True(t, math.IsNaN(joined.Values[2][0]))
	assert.Equal(t, 0.0, joined.Values[2][1])
}

func TestOuterJoin_KeyCoverage(t *testing.T) {
	a := &Table{Index: []string{"a", "b", "c"}, Columns: []string{"x"}, Values: [][]float64{{1}, {2}, {3}}}
	b := &Table{Index: []string{"c", "d"}, Columns: []string{"y"}, Values: [][]float64{{4}, {5}}}

	ab, err := OuterJoin(a, b)
	require.NoError(t, err)
	ba, err := OuterJoin(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab.Index, ba.Index)
	assert.Len(t, ab.Index, 4)
	assert.GreaterOrEqual(t, len(ab.Index), max(a.Rows(), b.Rows()))
}

func TestOuterJoin_ColumnClash(t *testing.T) {
	a := &Table{Index: []string{"a"}, Columns: []string{"x"}, Values: [][]float64{{1}}}
	_, err := OuterJoin(a, a)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSplit(t *testing.T) {
	for n := 0; n <= 9; n++ {
		t.Run(fmt.Sprintf("cols=%d", n), func(t *testing.T) {
			tbl := wideTable(n)
			inside, outside := Split(tbl)

			assert.Equal(t, n/2, inside.Cols())
			assert.Equal(t, n-n/2, outside.Cols())
			assert.Equal(t, tbl.Columns, append(append([]string{}, inside.Columns...), outside.Columns...))
			assert.Equal(t, tbl.Index, inside.Index)
			assert.Equal(t, tbl.Index, outside.Index)
		})
	}
}

func TestSplit_OddColumns(t *testing.T) {
	inside, outside := Split(wideTable(7))

	assert.Equal(t, []string{"c0", "c1", "c2"}, inside.Columns)
	assert.Equal(t, []string{"c3", "c4", "c5", "c6"}, outside.Columns)
	assert.Equal(t, 3.0, outside.Values[1][0]-10)
}

func TestPermuteDoesNotMutate(t *testing.T) {
	tbl := wideTable(2)
	out := tbl.Permute([]int{1, 0})

	assert.Equal(t, []string{"1", "0"}, out.Index)
	out.Values[0][0] = -1
	assert.Equal(t, 10.0, tbl.Values[1][0])
}

func TestDataError(t *testing.T) {
	err := Unavailable("initial_cond.csv", fs.ErrNotExist)

	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "initial_cond.csv")
	assert.NoError(t, Unavailable("x", nil))
}

// wideTable builds a two-row table with n columns where cell (i, j) = 10*i + j.
func wideTable(n int) *Table {
	tbl := &Table{IndexName: "time", Index: []string{"0", "1"}}
	for j := 0; j < n; j++ {
		tbl.Columns = append(tbl.Columns, fmt.Sprintf("c%d", j))
	}
	for i := range tbl.Index {
		row := make([]float64, n)
		for j := range row {
			row[j] = float64(10*i + j)
		}
		tbl.Values = append(tbl.Values, row)
	}
	return tbl
}

package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Table is a row-indexed grid of values. Values[i][j] is the cell at row
// Index[i] and column Columns[j].
type Table struct {
	IndexName string
	Index     []string
	Columns   []string
	Values    [][]float64
}

func (t *Table) Rows() int { return len(t.Index) }

func (t *Table) Cols() int { return len(t.Columns) }

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for j, c := range t.Columns {
		if c == name {
			return j, true
		}
	}
	return -1, false
}

// Column returns a copy of column j.
func (t *Table) Column(j int) []float64 {
	out := make([]float64, len(t.Values))
	for i, row := range t.Values {
		out[i] = row[j]
	}
	return out
}

// ColumnByName returns a copy of the named column.
func (t *Table) ColumnByName(name string) ([]float64, error) {
	j, ok := t.ColumnIndex(name)
	if !ok {
		return nil, fmt.Errorf("%w: no column %q", ErrMalformed, name)
	}
	return t.Column(j), nil
}

// IndexFloats parses the row keys as numbers, as used by time-indexed tables.
func (t *Table) IndexFloats() ([]float64, error) {
	out := make([]float64, len(t.Index))
	for i, k := range t.Index {
		v, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: index %q is not numeric", ErrMalformed, k)
		}
		out[i] = v
	}
	return out, nil
}

// SelectColumns returns the columns in [from, to). The row index is shared
// with t, the values are copied.
func (t *Table) SelectColumns(from, to int) *Table {
	from = clamp(from, 0, t.Cols())
	to = clamp(to, from, t.Cols())

	out := &Table{
		IndexName: t.IndexName,
		Index:     t.Index,
		Columns:   append([]string(nil), t.Columns[from:to]...),
		Values:    make([][]float64, len(t.Values)),
	}
	for i, row := range t.Values {
		out.Values[i] = append([]float64(nil), row[from:to]...)
	}
	return out
}

// Permute returns a new table whose row i is row order[i] of t.
func (t *Table) Permute(order []int) *Table {
	out := &Table{
		IndexName: t.IndexName,
		Index:     make([]string, len(order)),
		Columns:   append([]string(nil), t.Columns...),
		Values:    make([][]float64, len(order)),
	}
	for i, src := range order {
		out.Index[i] = t.Index[src]
		out.Values[i] = append([]float64(nil), t.Values[src]...)
	}
	return out
}

// IsMissing reports whether a cell holds no value.
func IsMissing(v float64) bool { return math.IsNaN(v) }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Nullable maps a missing value to nil for encodings without NaN.
func Nullable(v float64) *float64 {
	if IsMissing(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON encodes the table column-wise with missing cells as null.
func (t *Table) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(t.Values))
	for i, row := range t.Values {
		values[i] = make([]*float64, len(row))
		for j, v := range row {
			values[i][j] = Nullable(v)
		}
	}
	return json.Marshal(struct {
		IndexName string       `json:"index_name"`
		Index     []string     `json:"index"`
		Columns   []string     `json:"columns"`
		Values    [][]*float64 `json:"values"`
	}{t.IndexName, t.Index, t.Columns, values})
}

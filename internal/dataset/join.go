package dataset

import (
	"fmt"
	"math"
	"sort"
)

// OuterJoin merges left and right on their row keys. Every key of either
// side appears exactly once, in ascending order; cells the absent side would
// have supplied are missing. Column names must not overlap.
func OuterJoin(left, right *Table) (*Table, error) {
	for _, c := range right.Columns {
		if _, clash := left.ColumnIndex(c); clash {
			return nil, fmt.Errorf("%w: column %q present on both sides of join", ErrMalformed, c)
		}
	}

	leftRows := rowLookup(left)
	rightRows := rowLookup(right)

	keys := make([]string, 0, len(leftRows)+len(rightRows))
	for k := range leftRows {
		keys = append(keys, k)
	}
	for k := range rightRows {
		if _, ok := leftRows[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	indexName := left.IndexName
	if indexName == "" {
		indexName = right.IndexName
	}

	out := &Table{
		IndexName: indexName,
		Index:     keys,
		Columns:   append(append([]string(nil), left.Columns...), right.Columns...),
		Values:    make([][]float64, len(keys)),
	}
	for i, k := range keys {
		row := make([]float64, 0, out.Cols())
		row = appendRow(row, left, leftRows, k)
		row = appendRow(row, right, rightRows, k)
		out.Values[i] = row
	}
	return out, nil
}

func rowLookup(t *Table) map[string]int {
	m := make(map[string]int, len(t.Index))
	for i, k := range t.Index {
		m[k] = i
	}
	return m
}

func appendRow(dst []float64, t *Table, rows map[string]int, key string) []float64 {
	i, ok := rows[key]
	if !ok {
		for range t.Columns {
			dst = append(dst, math.NaN())
		}
		return dst
	}
	return append(dst, t.Values[i]...)
}

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Decode reads a CSV table whose first row is the header and whose first
// column is the row key. Empty cells decode as missing values.
func Decode(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: empty header", ErrMalformed)
	}

	t := &Table{
		IndexName: header[0],
		Columns:   append([]string(nil), header[1:]...),
	}
	seen := make(map[string]struct{})

	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}

		key := record[0]
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: line %d: duplicate key %q", ErrMalformed, line, key)
		}
		seen[key] = struct{}{}

		row := make([]float64, len(record)-1)
		for j, cell := range record[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d, column %q: %v", ErrMalformed, line, t.Columns[j], err)
			}
			row[j] = v
		}
		t.Index = append(t.Index, key)
		t.Values = append(t.Values, row)
	}

	return t, nil
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

// Encode writes t in the layout Decode reads. Missing values are written as
// empty cells.
func Encode(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := append([]string{t.IndexName}, t.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, key := range t.Index {
		row := []string{key}
		for _, v := range t.Values[i] {
			if IsMissing(v) {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

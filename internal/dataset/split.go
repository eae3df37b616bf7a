package dataset

// Split cuts a result table at column floor(n/2). The first half holds the
// concentrations inside the glass matrix, the second half those outside it.
// For an odd column count the middle column lands in the outside half.
func Split(t *Table) (inside, outside *Table) {
	mid := t.Cols() / 2
	return t.SelectColumns(0, mid), t.SelectColumns(mid, t.Cols())
}

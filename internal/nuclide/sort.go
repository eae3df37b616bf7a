package nuclide

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/radwaste/internal/dataset"
)

// SortMode selects the ordering of the reference table.
type SortMode int

const (
	ByKey SortMode = iota
	ByQuantity
	ByDecayConstant
	numSortModes
)

var sortModeInfo = [numSortModes]struct {
	code, label string
}{
	ByKey:           {"key", "Mass Order"},
	ByQuantity:      {"moles", "Moles Order"},
	ByDecayConstant: {"cte", "Decay Cte Order"},
}

func SortModes() []SortMode {
	return []SortMode{ByKey, ByQuantity, ByDecayConstant}
}

func (m SortMode) Valid() bool { return m >= 0 && m < numSortModes }

// Code is the short identifier used in query strings and flags.
func (m SortMode) Code() string {
	if !m.Valid() {
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
	return sortModeInfo[m].code
}

func (m SortMode) Label() string {
	if !m.Valid() {
		return m.Code()
	}
	return sortModeInfo[m].label
}

func (m SortMode) String() string { return m.Code() }

func (m SortMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: sort mode %d", dataset.ErrSelectionOutOfRange, int(m))
	}
	return []byte(m.Code()), nil
}

func (m *SortMode) UnmarshalText(text []byte) error {
	v, err := ParseSortMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseSortMode accepts a mode's code or its label, case-insensitively.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.TrimSpace(s)
	for _, m := range SortModes() {
		if strings.EqualFold(s, m.Code()) || strings.EqualFold(s, m.Label()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: sort mode %q", dataset.ErrSelectionOutOfRange, s)
}

// Sort returns a reordered copy of t. All modes are ascending and stable;
// records missing the sort attribute go last.
func Sort(t *Table, mode SortMode) (*Table, error) {
	out := &Table{Records: append([]Record(nil), t.Records...)}

	var less func(a, b Record) bool
	switch mode {
	case ByKey:
		less = func(a, b Record) bool { return a.ID < b.ID }
	case ByQuantity:
		less = func(a, b Record) bool { return lessMissingLast(a.Moles, b.Moles) }
	case ByDecayConstant:
		less = func(a, b Record) bool { return lessMissingLast(a.Cte, b.Cte) }
	default:
		return nil, fmt.Errorf("%w: sort mode %d", dataset.ErrSelectionOutOfRange, int(mode))
	}

	sort.SliceStable(out.Records, func(i, j int) bool {
		return less(out.Records[i], out.Records[j])
	})
	return out, nil
}

func lessMissingLast(a, b float64) bool {
	switch {
	case dataset.IsMissing(a):
		return false
	case dataset.IsMissing(b):
		return true
	default:
		return a < b
	}
}

package nuclide

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/storage"
)

const (
	ColumnMoles = "Moles"
	ColumnCte   = "Cte"
)

// Sources names the two reference files inside the data directory.
type Sources struct {
	InitialConditions string `yaml:"initial_conditions"`
	DecayConstants    string `yaml:"decay_constants"`
}

func DefaultSources() Sources {
	return Sources{
		InitialConditions: "initial_cond.csv",
		DecayConstants:    "decay_cte_data.csv",
	}
}

// Record is one nuclide of the merged reference table. Moles and Cte are NaN
// when the nuclide is absent from the corresponding source table.
type Record struct {
	ID    string  `json:"id"`
	Moles float64 `json:"moles"`
	Cte   float64 `json:"cte"`
}

// MarshalJSON encodes missing attributes as null.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    string   `json:"id"`
		Moles *float64 `json:"moles"`
		Cte   *float64 `json:"cte"`
	}{r.ID, dataset.Nullable(r.Moles), dataset.Nullable(r.Cte)})
}

func (r Record) HasMoles() bool { return !dataset.IsMissing(r.Moles) }
func (r Record) HasCte() bool   { return !dataset.IsMissing(r.Cte) }

// Table is the merged reference data, one record per nuclide.
type Table struct {
	Records []Record
}

func (t *Table) Len() int { return len(t.Records) }

func (t *Table) IDs() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.ID
	}
	return out
}

func (t *Table) Moles() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Moles
	}
	return out
}

func (t *Table) Cte() []float64 {
	out := make([]float64, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Cte
	}
	return out
}

// Load reads the initial-conditions and decay-constant tables and outer-joins
// them on the nuclide key.
func Load(st *storage.Store, src Sources) (*Table, error) {
	moles, err := readColumn(st, src.InitialConditions, ColumnMoles)
	if err != nil {
		return nil, err
	}
	cte, err := readColumn(st, src.DecayConstants, ColumnCte)
	if err != nil {
		return nil, err
	}

	joined, err := dataset.OuterJoin(moles, cte)
	if err != nil {
		return nil, dataset.Unavailable(src.DecayConstants, err)
	}
	return FromTable(joined)
}

// readColumn loads name and keeps only its row key and the wanted column.
func readColumn(st *storage.Store, name, column string) (*dataset.Table, error) {
	t, err := st.ReadTable(name)
	if err != nil {
		return nil, err
	}
	j, ok := t.ColumnIndex(column)
	if !ok {
		return nil, dataset.Unavailable(name, fmt.Errorf("%w: missing column %q", dataset.ErrMalformed, column))
	}
	return t.SelectColumns(j, j+1), nil
}

// FromTable converts a joined table carrying Moles and Cte columns.
func FromTable(t *dataset.Table) (*Table, error) {
	moles, err := t.ColumnByName(ColumnMoles)
	if err != nil {
		return nil, err
	}
	cte, err := t.ColumnByName(ColumnCte)
	if err != nil {
		return nil, err
	}

	out := &Table{Records: make([]Record, t.Rows())}
	for i, id := range t.Index {
		out.Records[i] = Record{ID: id, Moles: moles[i], Cte: cte[i]}
	}
	return out, nil
}

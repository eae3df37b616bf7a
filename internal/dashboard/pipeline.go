package dashboard

import (
	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/metrics"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/scenario"
	"github.com/san-kum/radwaste/internal/storage"
)

// RenderModel is everything one render pass shows. It is built from scratch
// for every Selections and never mutated afterwards.
type RenderModel struct {
	Selections Selections       `json:"selections"`
	Reference  *nuclide.Table   `json:"-"`
	Records    []nuclide.Record `json:"reference"`

	Scenario     scenario.Key      `json:"scenario"`
	ScenarioFile string            `json:"scenario_file"`
	Times        []float64         `json:"times"`
	Inside       *dataset.Table    `json:"inside"`
	Outside      *dataset.Table    `json:"outside"`
	InsideStats  []metrics.Summary `json:"inside_stats"`
	OutsideStats []metrics.Summary `json:"outside_stats"`
}

// Dashboard runs the two pipelines of a render:
//
//	load reference -> sort
//	resolve scenario -> split -> summarize
type Dashboard struct {
	store    *storage.Store
	sources  nuclide.Sources
	resolver *scenario.Resolver
}

func New(st *storage.Store, sources nuclide.Sources, files scenario.Files) *Dashboard {
	return &Dashboard{
		store:    st,
		sources:  sources,
		resolver: scenario.NewResolver(st, files),
	}
}

func (d *Dashboard) Resolver() *scenario.Resolver { return d.resolver }

// Reference loads the merged reference table in the requested order.
func (d *Dashboard) Reference(mode nuclide.SortMode) (*nuclide.Table, error) {
	tbl, err := nuclide.Load(d.store, d.sources)
	if err != nil {
		return nil, err
	}
	return nuclide.Sort(tbl, mode)
}

// Results is the scenario half of a render.
type Results struct {
	File    string
	Times   []float64
	Inside  *dataset.Table
	Outside *dataset.Table
}

// Results resolves k and splits its table into the two matrix regions.
func (d *Dashboard) Results(k scenario.Key) (*Results, error) {
	tbl, err := d.resolver.Resolve(k)
	if err != nil {
		return nil, err
	}
	files := d.resolver.Files()
	name, _ := files.Name(k)

	times, err := tbl.IndexFloats()
	if err != nil {
		return nil, dataset.Unavailable(name, err)
	}

	inside, outside := dataset.Split(tbl)
	return &Results{File: name, Times: times, Inside: inside, Outside: outside}, nil
}

// Build runs both pipelines for sel. Any failure fails the whole render.
func (d *Dashboard) Build(sel Selections) (*RenderModel, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	ref, err := d.Reference(sel.Sort)
	if err != nil {
		return nil, err
	}
	res, err := d.Results(sel.Key())
	if err != nil {
		return nil, err
	}

	return &RenderModel{
		Selections:   sel,
		Reference:    ref,
		Records:      ref.Records,
		Scenario:     sel.Key(),
		ScenarioFile: res.File,
		Times:        res.Times,
		Inside:       res.Inside,
		Outside:      res.Outside,
		InsideStats:  metrics.Summarize(res.Times, res.Inside),
		OutsideStats: metrics.Summarize(res.Times, res.Outside),
	}, nil
}

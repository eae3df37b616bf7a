package dashboard

import (
	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/render"
)

const (
	TitleReference = "Initial Conditions & Nuclear Data"
	TitleInside    = "Concentration Glass Matrix"
	TitleOutside   = "Concentration Outside of Matrix"
)

// Charts returns the reference chart followed by the inside and outside
// concentration charts.
func (m *RenderModel) Charts() []*render.Chart {
	return []*render.Chart{
		m.ReferenceChart(),
		m.InsideChart(),
		m.OutsideChart(),
	}
}

// ReferenceChart plots moles as bars on a linear axis and decay constants as
// a line on a log secondary axis, one category per nuclide.
func (m *RenderModel) ReferenceChart() *render.Chart {
	return &render.Chart{
		Title:      TitleReference,
		Categories: m.Reference.IDs(),
		X:          render.Axis{Label: "Compounds"},
		Y:          render.Axis{Label: "Moles", Scale: render.Linear},
		Y2:         &render.Axis{Label: "Decay Constant", Scale: render.Log},
		Series: []render.Series{
			{Name: "Moles", Kind: render.Bar, Y: m.Reference.Moles()},
			{Name: "Decay Cte", Kind: render.Line, Y: m.Reference.Cte(), Secondary: true},
		},
	}
}

func (m *RenderModel) InsideChart() *render.Chart  { return m.resultChart(TitleInside, m.Inside) }
func (m *RenderModel) OutsideChart() *render.Chart { return m.resultChart(TitleOutside, m.Outside) }

func (m *RenderModel) resultChart(title string, t *dataset.Table) *render.Chart {
	c := &render.Chart{
		Title: title,
		X:     render.Axis{Label: "Times (Years)", Scale: render.Log},
		Y:     render.Axis{Label: "Moles", Scale: m.Selections.YScale},
	}
	for j, name := range t.Columns {
		c.Series = append(c.Series, render.Series{
			Name: name,
			Kind: render.Line,
			X:    m.Times,
			Y:    t.Column(j),
		})
	}
	return c
}

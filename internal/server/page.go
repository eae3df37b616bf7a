package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/san-kum/radwaste/internal/dashboard"
	radmetrics "github.com/san-kum/radwaste/internal/metrics"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type control struct {
	Name    string
	Label   string
	Options []option
}

// panel is one chart with the summaries of its series, if any.
type panel struct {
	SVG   template.HTML
	Stats []radmetrics.Summary
}

type pageData struct {
	Controls  []control
	Charts    []panel
	Chain     string
	HalfLives []nuclide.HalfLife
	File      string
	Error     string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Radionuclide leaching</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 16rem; padding: 1rem; background: #f3f3f6; min-height: 100vh; }
main { padding: 1rem; flex: 1; }
label { display: block; margin-top: 1rem; font-weight: bold; }
select { width: 100%; }
.error { color: #b00020; font-weight: bold; }
.chain { color: #666; font-size: 0.9rem; }
table { border-collapse: collapse; font-size: 0.85rem; margin-bottom: 1rem; }
th, td { padding: 0.2rem 0.6rem; text-align: right; border-bottom: 1px solid #ddd; }
</style>
</head>
<body>
<aside>
<form method="get" action="/">
{{range .Controls}}
<label for="{{.Name}}">{{.Label}}</label>
<select id="{{.Name}}" name="{{.Name}}" onchange="this.form.submit()">
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
{{end}}
<noscript><button type="submit">Render</button></noscript>
</form>
</aside>
<main>
{{if .Error}}<p class="error">{{.Error}}</p>{{else}}
{{range .Charts}}<section>{{.SVG}}
{{if .Stats}}<table class="stats">
<tr><th>Series</th><th>Peak (Moles)</th><th>Peak time (Years)</th><th>Final (Moles)</th></tr>
{{range .Stats}}<tr><td>{{.Series}}</td><td>{{printf "%.3g" .Peak}}</td><td>{{printf "%.3g" .PeakTime}}</td><td>{{printf "%.3g" .Final}}</td></tr>
{{end}}</table>
{{end}}</section>
{{end}}
<p class="chain">{{.File}}</p>
<p class="chain">{{.Chain}}</p>
<table class="half-lives">
<tr><th>Nuclide</th><th>Decays</th><th>Half-life</th></tr>
{{range .HalfLives}}<tr><td>{{.Nuclide}}</td><td>{{.Decays}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
{{end}}
</main>
</body>
</html>
`))

func controls(sel dashboard.Selections) []control {
	sortCtl := control{Name: "sort", Label: "Sort reference by"}
	for _, m := range nuclide.SortModes() {
		sortCtl.Options = append(sortCtl.Options, option{m.Code(), m.Label(), m == sel.Sort})
	}
	onsetCtl := control{Name: "onset", Label: "Corrosion start"}
	for _, o := range scenario.Onsets() {
		onsetCtl.Options = append(onsetCtl.Options, option{o.Code(), o.Label(), o == sel.Onset})
	}
	completionCtl := control{Name: "completion", Label: "Corrosion end"}
	for _, c := range scenario.Completions() {
		completionCtl.Options = append(completionCtl.Options, option{c.Code(), c.Label(), c == sel.Completion})
	}
	logCtl := control{Name: "log", Label: "Log scale", Options: []option{
		{"no", "No, Thanks", sel.YScale == render.Linear},
		{"yes", "Yes, please", sel.YScale == render.Log},
	}}
	return []control{sortCtl, onsetCtl, completionCtl, logCtl}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{Chain: nuclide.ChainString(), HalfLives: nuclide.HalfLives}
	status := http.StatusOK

	model, err := s.build("page", r)
	if err != nil {
		status = statusOf(err)
		data.Error = err.Error()
		sel, perr := selectionsFromRequest(r)
		if perr != nil {
			sel = dashboard.DefaultSelections()
		}
		data.Controls = controls(sel)
	} else {
		data.Controls = controls(model.Selections)
		data.File = model.ScenarioFile
		svg := &render.SVG{Width: s.chart.Width, Height: s.chart.Height, Inline: true}
		stats := [][]radmetrics.Summary{nil, model.InsideStats, model.OutsideStats}
		for i, c := range model.Charts() {
			var buf bytes.Buffer
			if err := svg.Render(&buf, c); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			data.Charts = append(data.Charts, panel{SVG: template.HTML(buf.String()), Stats: stats[i]})
		}
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

var asciiColors = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Blue,
	asciigraph.Magenta, asciigraph.Cyan, asciigraph.Orange, asciigraph.Lime,
}

// ASCII renders charts as terminal plots. Line series are drawn with
// asciigraph against their point index, bar series as labelled text bars.
type ASCII struct {
	Width  int
	Height int
	Color  bool
}

func NewASCII(width, height int) *ASCII {
	return &ASCII{Width: width, Height: height}
}

func (a *ASCII) Render(w io.Writer, c *Chart) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", c.Title); err != nil {
		return err
	}

	groups := []struct {
		series []Series
		axis   Axis
	}{{c.primary(), c.Y}}
	if c.Y2 != nil {
		groups = append(groups, struct {
			series []Series
			axis   Axis
		}{c.secondary(), *c.Y2})
	}

	for _, g := range groups {
		var lines []Series
		for _, s := range g.series {
			if s.Kind == Bar {
				if err := a.bars(w, c, s, g.axis); err != nil {
					return err
				}
				continue
			}
			lines = append(lines, s)
		}
		if len(lines) == 0 {
			continue
		}
		if err := a.lines(w, c, lines, g.axis); err != nil {
			return err
		}
	}
	return nil
}

func (a *ASCII) lines(w io.Writer, c *Chart, series []Series, axis Axis) error {
	data := make([][]float64, 0, len(series))
	names := make([]string, 0, len(series))
	for _, s := range series {
		scaled, ok := scaleSeries(s.Y, axis.Scale)
		if !ok {
			continue
		}
		data = append(data, scaled)
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		_, err := fmt.Fprintf(w, "(%s: nothing to plot on a %s scale)\n\n", axis.Label, axis.Scale)
		return err
	}

	opts := []asciigraph.Option{
		asciigraph.Height(a.Height),
		asciigraph.Width(a.Width),
		asciigraph.Caption(a.caption(c, axis, names)),
		asciigraph.Precision(3),
	}
	if a.Color {
		opts = append(opts, asciigraph.SeriesColors(palette(len(data))...))
	}

	_, err := fmt.Fprintf(w, "%s\n\n", asciigraph.PlotMany(data, opts...))
	return err
}

func (a *ASCII) caption(c *Chart, axis Axis, names []string) string {
	label := axis.Label
	if axis.Scale == Log {
		label = "log10 " + label
	}
	xs := c.X.Label
	if c.xScale() == Log {
		xs += " (log spaced)"
	}
	return fmt.Sprintf("%s vs %s: %s", label, xs, strings.Join(names, ", "))
}

func (a *ASCII) bars(w io.Writer, c *Chart, s Series, axis Axis) error {
	width := a.Width / 2
	if width < 10 {
		width = 10
	}

	var e extent
	e.add(0)
	for _, v := range s.Y {
		if y, ok := axis.Scale.Apply(v); ok {
			e.add(y)
		}
	}

	labelWidth := 0
	for i := range s.Y {
		labelWidth = max(labelWidth, len(category(c, s, i)))
	}

	fmt.Fprintf(w, "%s (%s)\n", s.Name, axis.Label)
	for i, v := range s.Y {
		y, ok := axis.Scale.Apply(v)
		if !ok {
			fmt.Fprintf(w, "  %-*s  %s\n", labelWidth, category(c, s, i), "-")
			continue
		}
		n := int(math.Round((y - e.min) / e.span() * float64(width)))
		fmt.Fprintf(w, "  %-*s  %s %.4g\n", labelWidth, category(c, s, i), strings.Repeat("█", n), v)
	}
	_, err := fmt.Fprintln(w)
	return err
}

func category(c *Chart, s Series, i int) string {
	if i < len(c.Categories) {
		return c.Categories[i]
	}
	return fmt.Sprintf("%g", c.xAt(s, i))
}

// scaleSeries applies scale to ys, leaving gaps as NaN. ok is false when no
// point survives.
func scaleSeries(ys []float64, scale Scale) ([]float64, bool) {
	out := make([]float64, len(ys))
	found := false
	for i, v := range ys {
		y, ok := scale.Apply(v)
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = y
		found = true
	}
	return out, found
}

func palette(n int) []asciigraph.AnsiColor {
	out := make([]asciigraph.AnsiColor, n)
	for i := range out {
		out[i] = asciiColors[i%len(asciiColors)]
	}
	return out
}

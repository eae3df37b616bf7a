package render

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Braille draws every series of a chart onto one braille canvas per y axis,
// honouring the x and y scales. It is the compact renderer used by the TUI.
type Braille struct {
	Width  int
	Height int
}

// Plot is a rendered braille panel with its axis annotations.
type Plot struct {
	Title  string
	Series []string
	Lines  []string
	YMin   float64
	YMax   float64
	YLabel string
	Scale  Scale
}

func NewBraille(width, height int) *Braille {
	return &Braille{Width: width, Height: height}
}

// Plots draws c as one panel for c.Y and, when set, one for c.Y2.
func (b *Braille) Plots(c *Chart) []Plot {
	plots := []Plot{b.plot(c, c.primary(), c.Y)}
	if c.Y2 != nil {
		plots = append(plots, b.plot(c, c.secondary(), *c.Y2))
	}
	return plots
}

func (b *Braille) plot(c *Chart, series []Series, axis Axis) Plot {
	canvas := NewCanvas(b.Width, b.Height)
	xs := xExtent(c)
	ys := yExtent(series, axis.Scale)
	if axis.Scale == Linear && ys.ok {
		for _, s := range series {
			if s.Kind == Bar {
				ys.add(0)
			}
		}
	}

	pw, ph := canvas.PixelWidth()-1, canvas.PixelHeight()-1
	px := func(x float64) int { return int(math.Round((x - xs.min) / xs.span() * float64(pw))) }
	py := func(y float64) int { return ph - int(math.Round((y-ys.min)/ys.span()*float64(ph))) }

	base := ys.min
	if axis.Scale == Linear {
		base = 0
	}

	p := Plot{Title: c.Title, YLabel: axis.Label, Scale: axis.Scale}
	for _, s := range series {
		p.Series = append(p.Series, s.Name)
		prevOK := false
		var x0, y0 int
		for i, v := range s.Y {
			x, okX := c.xScale().Apply(c.xAt(s, i))
			y, okY := axis.Scale.Apply(v)
			if !okX || !okY || !ys.ok {
				prevOK = false
				continue
			}
			x1, y1 := px(x), py(y)
			switch {
			case s.Kind == Bar:
				canvas.DrawLine(x1, py(base), x1, y1)
			case prevOK:
				canvas.DrawLine(x0, y0, x1, y1)
			default:
				canvas.Set(x1, y1)
			}
			x0, y0, prevOK = x1, y1, true
		}
	}

	p.Lines = canvas.Lines()
	if ys.ok {
		p.YMin, p.YMax = ys.min, ys.max
	}
	return p
}

func (b *Braille) Render(w io.Writer, c *Chart) error {
	for _, p := range b.Plots(c) {
		if _, err := io.WriteString(w, p.String()); err != nil {
			return err
		}
	}
	return nil
}

// String lays the panel out with its y range and legend.
func (p Plot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  [%s]\n", p.Title, strings.Join(p.Series, ", "))
	for i, line := range p.Lines {
		label := strings.Repeat(" ", 10)
		switch i {
		case 0:
			label = fmt.Sprintf("%10s", p.Tick(p.YMax))
		case len(p.Lines) - 1:
			label = fmt.Sprintf("%10s", p.Tick(p.YMin))
		}
		sb.WriteString(label + " │" + line + "\n")
	}
	fmt.Fprintf(&sb, "%10s  %s (%s)\n", "", p.YLabel, p.Scale)
	return sb.String()
}

// Tick formats an axis value; log panels hold exponents.
func (p Plot) Tick(v float64) string {
	if p.Scale == Log {
		return fmt.Sprintf("1e%.1f", v)
	}
	return fmt.Sprintf("%.3g", v)
}

package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"
)

var svgPalette = []string{
	"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// SVG renders charts as standalone SVG documents. Bars are drawn on the
// primary axis, lines on whichever axis their series names.
type SVG struct {
	Width  int
	Height int
	// Inline omits the XML prolog so the output can be embedded in HTML.
	Inline bool
}

func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height}
}

const (
	marginLeft   = 70.0
	marginRight  = 70.0
	marginTop    = 40.0
	marginBottom = 70.0
	legendRow    = 16.0
)

type plotArea struct {
	x0, y0, w, h float64
}

func (s *SVG) Render(w io.Writer, c *Chart) error {
	var sb strings.Builder
	width, height := float64(s.Width), float64(s.Height)
	area := plotArea{
		x0: marginLeft,
		y0: marginTop,
		w:  width - marginLeft - marginRight,
		h:  height - marginTop - marginBottom,
	}

	if !s.Inline {
		sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	}
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="11">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")
	fmt.Fprintf(&sb, `<text x="%.1f" y="20" font-size="14" font-weight="bold">%s</text>`+"\n", area.x0, esc(c.Title))
	fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#444444"/>`+"\n", area.x0, area.y0, area.w, area.h)

	xs := xExtent(c)
	primary := yExtent(c.primary(), c.Y.Scale)
	for _, sr := range c.primary() {
		if sr.Kind == Bar && c.Y.Scale == Linear && primary.ok {
			primary.add(0)
		}
	}

	s.xAxis(&sb, c, area, xs)
	s.yAxis(&sb, area, primary, c.Y, area.x0, "end", -6)

	s.series(&sb, c, c.primary(), c.Y.Scale, area, xs, primary)

	if c.Y2 != nil {
		secondary := yExtent(c.secondary(), c.Y2.Scale)
		s.yAxis(&sb, area, secondary, *c.Y2, area.x0+area.w, "start", 6)
		s.series(&sb, c, c.secondary(), c.Y2.Scale, area, xs, secondary)
	}

	s.legend(&sb, c, area)
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (s *SVG) series(sb *strings.Builder, c *Chart, series []Series, scale Scale, area plotArea, xs, ys extent) {
	if !ys.ok || !xs.ok {
		return
	}
	px := func(x float64) float64 { return area.x0 + (x-xs.min)/xs.span()*area.w }
	py := func(y float64) float64 { return area.y0 + area.h - (y-ys.min)/ys.span()*area.h }

	barWidth := area.w / float64(max(len(c.Categories), 1)) * 0.7
	base := ys.min
	if scale == Linear {
		base = 0
	}
	if c.Categories != nil {
		px = func(x float64) float64 {
			return area.x0 + (x+0.5)/float64(max(len(c.Categories), 1))*area.w
		}
	}

	for _, sr := range series {
		stroke := colorOf(c, sr.Name)

		var path strings.Builder
		pen := false
		for i, v := range sr.Y {
			x, okX := c.xScale().Apply(c.xAt(sr, i))
			y, okY := scale.Apply(v)
			if !okX || !okY {
				pen = false
				continue
			}
			if sr.Kind == Bar {
				top, bottom := py(y), py(base)
				fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.4" stroke="%s" stroke-width="2"><title>%s: %g</title></rect>`+"\n",
					px(x)-barWidth/2, math.Min(top, bottom), barWidth, math.Abs(bottom-top), stroke, stroke, esc(category(c, sr, i)), v)
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.1f,%.1f ", cmd, px(x), py(y))
			pen = true
		}
		if sr.Kind == Line && path.Len() > 0 {
			fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="%s"><title>%s</title></path>`+"\n",
				stroke, strings.TrimSpace(path.String()), esc(sr.Name))
		}
	}
}

// colorOf picks the colour of the named series by its position in c.Series.
func colorOf(c *Chart, name string) string {
	for i, sr := range c.Series {
		if sr.Name == name {
			return svgPalette[i%len(svgPalette)]
		}
	}
	return svgPalette[0]
}

func (s *SVG) xAxis(sb *strings.Builder, c *Chart, area plotArea, xs extent) {
	bottom := area.y0 + area.h
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="middle" font-weight="bold">%s</text>`+"\n",
		area.x0+area.w/2, bottom+marginBottom-10, esc(c.X.Label))

	if c.Categories != nil {
		n := float64(max(len(c.Categories), 1))
		for i, label := range c.Categories {
			x := area.x0 + (float64(i)+0.5)/n*area.w
			fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="end" transform="rotate(-45 %.1f %.1f)">%s</text>`+"\n",
				x, bottom+14, x, bottom+14, esc(label))
		}
		return
	}
	if !xs.ok {
		return
	}
	for _, t := range ticks(xs, c.xScale()) {
		x := area.x0 + (t.pos-xs.min)/xs.span()*area.w
		fmt.Fprintf(sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444444"/>`+"\n", x, bottom, x, bottom+4)
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n", x, bottom+16, t.label)
	}
}

func (s *SVG) yAxis(sb *strings.Builder, area plotArea, ys extent, axis Axis, x float64, anchor string, dx float64) {
	labelX := x + dx*8
	fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="middle" font-weight="bold" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
		labelX, area.y0+area.h/2, labelX, area.y0+area.h/2, esc(axis.Label))
	if !ys.ok {
		return
	}
	for _, t := range ticks(ys, axis.Scale) {
		y := area.y0 + area.h - (t.pos-ys.min)/ys.span()*area.h
		fmt.Fprintf(sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#dddddd"/>`+"\n", area.x0, y, area.x0+area.w, y)
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n", x+dx, y, anchor, t.label)
	}
}

func (s *SVG) legend(sb *strings.Builder, c *Chart, area plotArea) {
	x := area.x0 + area.w - 150
	for i, sr := range c.Series {
		y := area.y0 + 12 + float64(i)*legendRow
		stroke := colorOf(c, sr.Name)
		fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="10" height="10" fill="%s"/>`+"\n", x, y-9, stroke)
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f">%s</text>`+"\n", x+14, y, esc(sr.Name))
	}
}

type tick struct {
	pos   float64
	label string
}

// ticks places five evenly spaced ticks, or one per decade on a log scale.
func ticks(e extent, scale Scale) []tick {
	var out []tick
	if scale == Log {
		lo, hi := math.Ceil(e.min), math.Floor(e.max)
		step := math.Max(1, math.Ceil((hi-lo)/8))
		for p := lo; p <= hi; p += step {
			out = append(out, tick{pos: p, label: fmt.Sprintf("1e%d", int(p))})
		}
		if len(out) > 0 {
			return out
		}
	}
	for i := 0; i <= 4; i++ {
		v := e.min + float64(i)/4*(e.max-e.min)
		label := fmt.Sprintf("%.3g", v)
		if scale == Log {
			label = fmt.Sprintf("%.3g", math.Pow(10, v))
		}
		out = append(out, tick{pos: v, label: label})
	}
	return out
}

func esc(s string) string { return html.EscapeString(s) }

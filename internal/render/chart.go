package render

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Scale is the axis scale preference.
type Scale int

const (
	Linear Scale = iota
	Log
)

func (s Scale) String() string {
	if s == Log {
		return "log"
	}
	return "linear"
}

// ParseScale accepts "linear"/"log" and the yes/no answers of the log toggle.
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "no", "false", "0", "no, thanks":
		return Linear, nil
	case "log", "yes", "true", "1", "yes, please":
		return Log, nil
	}
	return Linear, fmt.Errorf("render: unknown scale %q", s)
}

func (s Scale) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Scale) UnmarshalText(text []byte) error {
	v, err := ParseScale(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Apply maps v onto the scale. ok is false for values the scale cannot show:
// missing or infinite values, and non-positive values on a log scale.
func (s Scale) Apply(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if s == Log {
		if v <= 0 {
			return 0, false
		}
		return math.Log10(v), true
	}
	return v, true
}

type Kind int

const (
	Line Kind = iota
	Bar
)

func (k Kind) MarshalText() ([]byte, error) {
	if k == Bar {
		return []byte("bar"), nil
	}
	return []byte("line"), nil
}

type Axis struct {
	Label string `json:"label"`
	Scale Scale  `json:"scale"`
}

// Series is one trace. X is nil for charts over categories, in which case
// point i belongs to Chart.Categories[i].
type Series struct {
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	X         []float64 `json:"-"`
	Y         []float64 `json:"-"`
	Secondary bool      `json:"secondary,omitempty"`
}

// Chart is everything a renderer needs to draw one figure.
type Chart struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories,omitempty"`
	X          Axis     `json:"x"`
	Y          Axis     `json:"y"`
	Y2         *Axis    `json:"y2,omitempty"`
	Series     []Series `json:"series"`
}

func (c *Chart) primary() []Series   { return c.filter(false) }
func (c *Chart) secondary() []Series { return c.filter(true) }

func (c *Chart) filter(secondary bool) []Series {
	var out []Series
	for _, s := range c.Series {
		if s.Secondary == secondary {
			out = append(out, s)
		}
	}
	return out
}

// xAt returns the x coordinate of point i of s.
func (c *Chart) xAt(s Series, i int) float64 {
	if s.X == nil {
		return float64(i)
	}
	if i >= len(s.X) {
		return math.NaN()
	}
	return s.X[i]
}

func (c *Chart) xScale() Scale {
	if c.Categories != nil {
		return Linear
	}
	return c.X.Scale
}

// Renderer draws a chart to w.
type Renderer interface {
	Render(w io.Writer, c *Chart) error
}

// extent is the bounding range of scaled values.
type extent struct {
	min, max float64
	ok       bool
}

func (e *extent) add(v float64) {
	if !e.ok {
		e.min, e.max, e.ok = v, v, true
		return
	}
	e.min = math.Min(e.min, v)
	e.max = math.Max(e.max, v)
}

// span returns the range, widened to 1 when flat.
func (e extent) span() float64 {
	if e.max-e.min == 0 {
		return 1
	}
	return e.max - e.min
}

func yExtent(series []Series, scale Scale) extent {
	var e extent
	for _, s := range series {
		for _, v := range s.Y {
			if y, ok := scale.Apply(v); ok {
				e.add(y)
			}
		}
	}
	return e
}

func xExtent(c *Chart) extent {
	var e extent
	if c.Categories != nil {
		e.add(0)
		e.add(float64(max(len(c.Categories)-1, 0)))
		return e
	}
	for _, s := range c.Series {
		for i := range s.Y {
			if x, ok := c.xScale().Apply(c.xAt(s, i)); ok {
				e.add(x)
			}
		}
	}
	return e
}

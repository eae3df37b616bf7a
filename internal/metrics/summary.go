package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/radwaste/internal/dataset"
)

// Summary condenses one concentration series.
type Summary struct {
	Series   string  `json:"series"`
	Peak     float64 `json:"peak"`
	PeakTime float64 `json:"peak_time"`
	Final    float64 `json:"final"`
	Samples  int     `json:"samples"`
}

// Summarize reports, per column of t, the peak value, the time it occurs and
// the last present value. times holds one entry per row of t. Columns with
// no values yield a zero Summary carrying only the name.
func Summarize(times []float64, t *dataset.Table) []Summary {
	out := make([]Summary, t.Cols())
	for j, name := range t.Columns {
		out[j] = summarize(name, times, t.Column(j))
	}
	return out
}

func summarize(name string, times, values []float64) Summary {
	s := Summary{Series: name}

	present := make([]float64, 0, len(values))
	at := make([]float64, 0, len(values))
	for i, v := range values {
		if dataset.IsMissing(v) || i >= len(times) {
			continue
		}
		present = append(present, v)
		at = append(at, times[i])
	}
	if len(present) == 0 {
		return s
	}

	peak := floats.MaxIdx(present)
	s.Peak = present[peak]
	s.PeakTime = at[peak]
	s.Final = present[len(present)-1]
	s.Samples = len(present)
	return s
}

// Total sums the present values of each row, the inventory of a region over
// time.
func Total(t *dataset.Table) []float64 {
	out := make([]float64, t.Rows())
	for i, row := range t.Values {
		present := make([]float64, 0, len(row))
		for _, v := range row {
			if !dataset.IsMissing(v) {
				present = append(present, v)
			}
		}
		out[i] = floats.Sum(present)
	}
	return out
}

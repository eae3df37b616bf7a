package dashboard

import (
	"fmt"

	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
)

// Selections is the complete user input for one render: the four controls
// of the dashboard.
type Selections struct {
	Sort       nuclide.SortMode    `json:"sort" yaml:"sort"`
	Onset      scenario.Onset      `json:"onset" yaml:"onset"`
	Completion scenario.Completion `json:"completion" yaml:"completion"`
	YScale     render.Scale        `json:"y_scale" yaml:"y_scale"`
}

// DefaultSelections picks the first option of every control.
func DefaultSelections() Selections {
	return Selections{
		Sort:       nuclide.ByKey,
		Onset:      scenario.Onset1000,
		Completion: scenario.Completion1M,
		YScale:     render.Linear,
	}
}

func (s Selections) Key() scenario.Key {
	return scenario.Key{Onset: s.Onset, Completion: s.Completion}
}

func (s Selections) Validate() error {
	if !s.Sort.Valid() {
		return fmt.Errorf("%w: sort mode %s", dataset.ErrSelectionOutOfRange, s.Sort)
	}
	if !s.Key().Valid() {
		return fmt.Errorf("%w: scenario %s", dataset.ErrSelectionOutOfRange, s.Key())
	}
	if s.YScale != render.Linear && s.YScale != render.Log {
		return fmt.Errorf("%w: y scale %d", dataset.ErrSelectionOutOfRange, int(s.YScale))
	}
	return nil
}

// ParseSelections builds Selections from the textual control values. Empty
// values keep their default.
func ParseSelections(sort, onset, completion, yScale string) (Selections, error) {
	sel := DefaultSelections()
	var err error
	if sort != "" {
		if sel.Sort, err = nuclide.ParseSortMode(sort); err != nil {
			return sel, err
		}
	}
	if onset != "" {
		if sel.Onset, err = scenario.ParseOnset(onset); err != nil {
			return sel, err
		}
	}
	if completion != "" {
		if sel.Completion, err = scenario.ParseCompletion(completion); err != nil {
			return sel, err
		}
	}
	if sel.YScale, err = render.ParseScale(yScale); err != nil {
		return sel, fmt.Errorf("%w: %v", dataset.ErrSelectionOutOfRange, err)
	}
	return sel, nil
}

package config

import (
	"sort"

	"github.com/san-kum/radwaste/internal/dashboard"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
)

// Presets are named starting selections for the dashboard.
var Presets = map[string]dashboard.Selections{
	"default": dashboard.DefaultSelections(),
	"early-failure": {
		Sort: nuclide.ByKey, Onset: scenario.Onset1000, Completion: scenario.Completion1M, YScale: render.Log,
	},
	"late-failure": {
		Sort: nuclide.ByKey, Onset: scenario.Onset5000, Completion: scenario.Completion10M, YScale: render.Log,
	},
	"slow-leach": {
		Sort: nuclide.ByDecayConstant, Onset: scenario.Onset2000, Completion: scenario.Completion10M, YScale: render.Linear,
	},
	"inventory": {
		Sort: nuclide.ByQuantity, Onset: scenario.Onset3000, Completion: scenario.Completion5M, YScale: render.Log,
	},
}

func GetPreset(name string) (dashboard.Selections, bool) {
	sel, ok := Presets[name]
	return sel, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Selections returns the configured preset, or the dashboard defaults.
func (c *Config) Selections() dashboard.Selections {
	if sel, ok := GetPreset(c.Preset); ok {
		return sel
	}
	return dashboard.DefaultSelections()
}

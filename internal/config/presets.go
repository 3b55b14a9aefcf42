package config

import "sort"

// Preset is a named set of embedding parameters.
type Preset struct {
	Description string
	Phase       PhaseConfig
}

var Presets = map[string]Preset{
	"quick": {
		Description: "short window, planar track",
		Phase:       PhaseConfig{Window: 10, Components: 2},
	},
	"default": {
		Description: "balanced window, 3-D track",
		Phase:       PhaseConfig{Window: DefaultWindow, Components: DefaultComponents},
	},
	"gesture": {
		Description: "about one second at 50 Hz, captures hand motion cycles",
		Phase:       PhaseConfig{Window: 50, Components: 3},
	},
	"periodic": {
		Description: "long window with lag correlation for slow oscillations",
		Phase:       PhaseConfig{Window: 100, Components: 3, Correlation: true},
	},
	"correlation": {
		Description: "planar track plus lag correlation heatmap",
		Phase:       PhaseConfig{Window: DefaultWindow, Components: 2, Correlation: true},
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

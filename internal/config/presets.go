package config

import "sort"

// Plant is a named transfer function, coefficients highest degree first.
type Plant struct {
	Num []float64
	Den []float64
}

var Presets = map[string]Plant{
	"first_order": {
		Num: []float64{1}, Den: []float64{1, 1},
	},
	"critically_damped": {
		Num: []float64{1}, Den: []float64{1, 2, 1},
	},
	"underdamped": {
		Num: []float64{1}, Den: []float64{1, 0.1, 1},
	},
	"overdamped": {
		Num: []float64{1}, Den: []float64{1, 6, 11, 6},
	},
	"integrator": {
		Num: []float64{1}, Den: []float64{1, 0},
	},
	"double_integrator": {
		Num: []float64{1}, Den: []float64{1, 0, 0},
	},
	"unstable": {
		Num: []float64{1}, Den: []float64{1, -1},
	},
	"lead": {
		Num: []float64{2, 1}, Den: []float64{1, 2, 1},
	},
}

func GetPreset(name string) *Plant {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

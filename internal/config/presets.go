package config

import "sort"

// Presets are named starting points per scenario, mirroring the example
// systems the project ships.
var Presets = map[string]map[string]*Config{
	"wave": {
		"default": {
			Scenario: "wave", Dt: 0.05, Duration: 20.0, GridN: 10,
			Params: map[string]float64{"speed": 1.0},
		},
		"finite": {
			Scenario: "wave", Dt: 0.05, Duration: 20.0, GridN: 10,
			Params: map[string]float64{"speed": 1.0, "finite": 1},
		},
		"fast": {
			Scenario: "wave", Dt: 0.02, Duration: 10.0, GridN: 10,
			Params: map[string]float64{"speed": 2.0},
		},
	},
	"heat": {
		"corners": {
			Scenario: "heat", Dt: 0.05, Duration: 20.0, GridN: 10,
			Params: map[string]float64{"alpha": 1.0},
		},
		"neumann": {
			Scenario: "heat", Dt: 0.05, Duration: 20.0, GridN: 7,
			Params: map[string]float64{"alpha": 1.0, "border_flux": 0.1},
		},
	},
	"pattern": {
		"stripes": {
			Scenario: "pattern", Dt: 0.05, Duration: 60.0, GridN: 20,
			Params: map[string]float64{"a": 0.7, "b": 0, "c": 1, "gam0": -2, "gam2": 1},
		},
		"spots": {
			Scenario: "pattern", Dt: 0.05, Duration: 60.0, GridN: 20,
			Params: map[string]float64{"a": 0.99, "b": -1, "c": 1, "gam0": -2, "gam2": 1},
		},
		"spirals": {
			Scenario: "pattern", Dt: 0.05, Duration: 60.0, GridN: 20,
			Params: map[string]float64{"a": 0.3, "b": -1, "c": 1, "gam0": -2, "gam2": 1},
		},
		"spots-irregular": {
			Scenario: "pattern", Dt: 0.05, Duration: 60.0, Seed: 9001,
			Params: map[string]float64{
				"a": 0.99, "b": -1, "c": 1, "gam0": -2, "gam2": 1,
				"irregular": 1, "nodes": 300, "radius": 0.25,
			},
		},
	},
	"fluid": {
		"grid": {
			Scenario: "fluid", Dt: 0.05, Duration: 20.0, GridN: 10,
			Params: map[string]float64{"viscosity": 0.1},
		},
	},
}

// GetPreset returns a copy of the named preset with the remaining fields
// filled from defaults, or nil when unknown.
func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	p, ok := group[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	base := p.Clone()
	cfg.Scenario = base.Scenario
	if base.Dt > 0 {
		cfg.Dt = base.Dt
	}
	if base.Duration > 0 {
		cfg.Duration = base.Duration
	}
	if base.GridN > 0 {
		cfg.GridN = base.GridN
	}
	if base.Seed != 0 {
		cfg.Seed = base.Seed
	}
	if base.Integrator != "" {
		cfg.Integrator = base.Integrator
	}
	cfg.Params = base.Params
	return cfg
}

// ListPresets returns the preset names for a scenario, sorted, or nil when
// the scenario has none.
func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package config holds the YAML-backed run configuration and named
// presets for the bundled scenarios.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.05
	DefaultDuration = 10.0
	DefaultFPS      = 30
	DefaultGridN    = 10
	DefaultSeed     = 9001
)

// Config selects a scenario and its numerical parameters. Scenario
// coefficients travel in Params so the whole configuration stays
// declarative and serializable.
type Config struct {
	Scenario   string             `yaml:"scenario"`
	Integrator string             `yaml:"integrator"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	FPS        int                `yaml:"fps"`
	Addr       string             `yaml:"addr"`
	Topic      string             `yaml:"topic"`
	Seed       int64              `yaml:"seed"`
	GridN      int                `yaml:"grid_n"`
	Params     map[string]float64 `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "wave",
		Integrator: "rk45",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
		Addr:       "127.0.0.1:8079",
		Topic:      "0",
		Seed:       DefaultSeed,
		GridN:      DefaultGridN,
		Params:     map[string]float64{},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Param returns a named scenario coefficient, or def when unset.
func (c *Config) Param(name string, def float64) float64 {
	if v, ok := c.Params[name]; ok {
		return v
	}
	return def
}

// Clone returns a deep copy, so presets can be adjusted per run without
// mutating the shared table.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = make(map[string]float64, len(c.Params))
	for k, v := range c.Params {
		out.Params[k] = v
	}
	return &out
}

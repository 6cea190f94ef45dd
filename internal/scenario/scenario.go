// Package scenario assembles the bundled example systems. Builders are
// registered by name so transports and viewers can refer to a system as
// declarative data rather than executable configuration.
package scenario

import (
	"fmt"
	"sort"

	"github.com/ooblahman/graph-turbulence/internal/config"
	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/integrators"
)

// Builder constructs a ready-to-step simulation from a configuration.
type Builder func(cfg *config.Config) (field.Simulation, error)

var registry = map[string]Builder{}

// Register installs a builder under a name. Last registration wins.
func Register(name string, b Builder) {
	registry[name] = b
}

// Build constructs the named scenario.
func Build(name string, cfg *config.Config) (field.Simulation, error) {
	b, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("scenario: unknown scenario %q (have %v)", name, Names())
	}
	return b(cfg)
}

// Names returns the registered scenario names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// method resolves the configured integration method, defaulting to RK45.
func method(cfg *config.Config) (integrators.Method, error) {
	return integrators.New(cfg.Integrator)
}

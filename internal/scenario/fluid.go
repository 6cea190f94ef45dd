package scenario

import (
	"fmt"

	"github.com/ooblahman/graph-turbulence/internal/config"
	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/graph"
	"github.com/ooblahman/graph-turbulence/internal/ops"
)

func init() {
	Register("fluid", buildFluid)
}

// buildFluid couples a vertex pressure field to an edge velocity field:
// velocity is driven down the pressure gradient and diffused by
// viscosity, while pressure is held at two fixed source/sink vertices.
// Both fields advance under a single joint integrator so the gradient
// seen inside each trial stage is the stage's own pressure, not a stale
// snapshot.
func buildFluid(cfg *config.Config) (field.Simulation, error) {
	n := cfg.GridN
	visc := cfg.Param("viscosity", 0.1)
	g := graph.Grid2D(n, n)

	m, err := method(cfg)
	if err != nil {
		return nil, err
	}

	pressure := field.NewVertexField(g, field.WithDesc("Pressure"), field.WithMethod(m))
	velocity := field.NewEdgeField(g, field.WithDesc("Velocity"), field.WithMethod(m))

	// Pressure is quasi-static here: sources pin it and nothing else
	// moves it, so its derivative is identically zero away from them.
	pRHS := func(float64) field.Vector {
		return field.Zeros(pressure.Len())
	}
	if err := pressure.SetODE(pRHS); err != nil {
		return nil, err
	}
	if err := pressure.SetInitial(0, func(string) float64 { return 0 }); err != nil {
		return nil, err
	}
	source := graph.CellID(n/3, n/3)
	sink := graph.CellID(2*n/3, 2*n/3)
	if err := pressure.SetBoundary(map[string]float64{source: 1.0, sink: -1.0}, nil); err != nil {
		return nil, err
	}
	pressure.SetRender(field.RenderParams{Palette: "fire", Lo: -1, Hi: 1, ShowBar: true})

	vRHS := func(float64) field.Vector {
		drive := ops.Gradient(pressure).Scale(-1)
		return drive.Add(ops.Laplacian(velocity).Scale(visc))
	}
	if err := velocity.SetODE(vRHS); err != nil {
		return nil, err
	}
	if err := velocity.SetInitial(0, func(graph.Edge) float64 { return 1.0 }); err != nil {
		return nil, err
	}
	velocity.SetRender(field.RenderParams{Palette: "kgy", Lo: -1, Hi: 1, ShowBar: true})

	return field.Couple(fmt.Sprintf("A test fluid flow (viscosity=%g)", visc),
		velocity, pressure)
}

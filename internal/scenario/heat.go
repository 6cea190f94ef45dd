package scenario

import (
	"fmt"

	"github.com/ooblahman/graph-turbulence/internal/config"
	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/graph"
	"github.com/ooblahman/graph-turbulence/internal/ops"
)

func init() {
	Register("heat", buildHeat)
}

// buildHeat sets up graph diffusion du/dt = α∇²u on an n×n grid: opposite
// corners pinned hot and cold, and an optional uniform Neumann flux along
// the border (params["border_flux"]).
func buildHeat(cfg *config.Config) (field.Simulation, error) {
	n := cfg.GridN
	alpha := cfg.Param("alpha", 1.0)
	g := graph.Grid2D(n, n)

	m, err := method(cfg)
	if err != nil {
		return nil, err
	}
	temp := field.NewVertexField(g, field.WithDesc("Temperature"), field.WithMethod(m))

	rhs := func(float64) field.Vector { return ops.Laplacian(temp).Scale(alpha) }
	if err := temp.SetODE(rhs); err != nil {
		return nil, err
	}
	if err := temp.SetInitial(0, func(string) float64 { return 0 }); err != nil {
		return nil, err
	}

	dirichlet := map[string]float64{
		graph.CellID(0, 0):     1.0,
		graph.CellID(n-1, n-1): -1.0,
	}
	neumann := make(map[string]float64)
	if flux := cfg.Param("border_flux", 0); flux != 0 {
		for _, id := range graph.GridBorder(n, n) {
			if _, fixed := dirichlet[id]; !fixed {
				neumann[id] = flux
			}
		}
	}
	if err := temp.SetBoundary(dirichlet, neumann); err != nil {
		return nil, err
	}

	temp.SetRender(field.RenderParams{Palette: "fire", Lo: -1, Hi: 1, ShowBar: true})

	return field.NewSystem(fmt.Sprintf("Heat diffusion (alpha=%g)", alpha), temp)
}

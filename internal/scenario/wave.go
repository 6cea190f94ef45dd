package scenario

import (
	"fmt"

	"github.com/ooblahman/graph-turbulence/internal/config"
	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/finite"
	"github.com/ooblahman/graph-turbulence/internal/graph"
	"github.com/ooblahman/graph-turbulence/internal/ops"
)

func init() {
	Register("wave", buildWave)
}

// buildWave sets up the wave equation d²u/dt² = c²∇²u on an n×n grid with
// the border held at zero and a product-bump initial displacement. With
// params["finite"] set, the right-hand side comes from the
// finite-difference helper instead of the graph Laplacian.
func buildWave(cfg *config.Config) (field.Simulation, error) {
	n := cfg.GridN
	c := cfg.Param("speed", 1.0)
	g := graph.Grid2D(n, n)

	dirichlet := make(map[string]float64)
	for _, id := range graph.GridBorder(n, n) {
		dirichlet[id] = 0
	}

	m, err := method(cfg)
	if err != nil {
		return nil, err
	}
	ampl := field.NewVertexField(g, field.WithDesc("Amplitude"), field.WithMethod(m))

	var rhs field.RHS
	if cfg.Param("finite", 0) != 0 {
		f, err := finite.Diffusion([]int{n, n}, []float64{1, 1}, c*c, dirichlet)
		if err != nil {
			return nil, err
		}
		rhs = func(t float64) field.Vector { return f(t, ampl.Values()) }
	} else {
		rhs = func(float64) field.Vector { return ops.Laplacian(ampl).Scale(c * c) }
	}
	if err := ampl.SetODE(rhs, field.Order(2)); err != nil {
		return nil, err
	}

	bump := func(id string) float64 {
		coords, err := graph.CellCoords(id)
		if err != nil {
			return 0
		}
		i, j := float64(coords[0]), float64(coords[1])
		nf := float64(n)
		return i * j * (nf - i) * (nf - j) / (nf * nf * nf)
	}
	zero := func(string) float64 { return 0 }
	if err := ampl.SetInitial(0, bump, zero); err != nil {
		return nil, err
	}
	if err := ampl.SetBoundary(dirichlet, nil); err != nil {
		return nil, err
	}

	peak := ampl.Values().MaxAbs()
	ampl.SetRender(field.RenderParams{Palette: "bgy", Lo: -peak, Hi: peak, ShowBar: true})

	return field.NewSystem(fmt.Sprintf("Wave equation (c=%g) with fixed boundary conditions", c), ampl)
}

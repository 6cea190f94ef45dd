package scenario

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/ooblahman/graph-turbulence/internal/config"
	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/graph"
	"github.com/ooblahman/graph-turbulence/internal/ops"
)

func init() {
	Register("pattern", buildPattern)
}

// buildPattern sets up Swift-Hohenberg pattern formation
//
//	du/dt = -a·u - b·u² - c·u³ + γ₀∇²u - γ₂∇⁴u
//
// with a deterministic noise initial condition. params["irregular"]
// switches the domain from an n×n grid to a random geometric graph
// (params["nodes"], params["radius"]). Solutions leaving |u| ≤ 2 are
// non-physical.
func buildPattern(cfg *config.Config) (field.Simulation, error) {
	a := cfg.Param("a", 0.7)
	b := cfg.Param("b", 0)
	c := cfg.Param("c", 1)
	gam0 := cfg.Param("gam0", -2)
	gam2 := cfg.Param("gam2", 1)
	if c <= 0 {
		return nil, fmt.Errorf("scenario: pattern needs c > 0 for stability, got %g", c)
	}

	var g *graph.Graph
	if cfg.Param("irregular", 0) != 0 {
		nodes := int(cfg.Param("nodes", 300))
		radius := cfg.Param("radius", 0.25)
		g = graph.RandomGeometric(nodes, radius, cfg.Seed)
	} else {
		g = graph.Grid2D(cfg.GridN, cfg.GridN)
	}

	m, err := method(cfg)
	if err != nil {
		return nil, err
	}
	ampl := field.NewVertexField(g, field.WithDesc("Amplitude"), field.WithMethod(m))

	rhs := func(float64) field.Vector {
		y := ampl.Values()
		out := make(field.Vector, len(y))
		lap := ops.Laplacian(ampl)
		bilap := ops.Bilaplacian(ampl)
		for i, u := range y {
			out[i] = -a*u - b*u*u - c*u*u*u + gam0*lap[i] - gam2*bilap[i]
		}
		return out
	}
	if err := ampl.SetODE(rhs, field.MaxStep(1e-2)); err != nil {
		return nil, err
	}

	// Smooth deterministic noise over vertex positions stands in for the
	// original's uniform random initial condition.
	noise := opensimplex.New(cfg.Seed)
	y0 := func(id string) float64 {
		p, ok := g.Pos(id)
		if !ok {
			return 0.5
		}
		return (noise.Eval2(p[0]*8, p[1]*8) + 1) / 2
	}
	if err := ampl.SetInitial(0, y0); err != nil {
		return nil, err
	}

	ampl.SetNonphysical(func(y field.Vector) bool {
		for _, u := range y {
			if math.Abs(u) > 2.0 {
				return true
			}
		}
		return false
	})
	ampl.SetRender(field.RenderParams{Palette: "bgy", Lo: -1.2, Hi: 1.2, ShowBar: true})

	return field.NewSystem(
		fmt.Sprintf("Swift-Hohenberg (a=%g, b=%g, c=%g)", a, b, c), ampl)
}

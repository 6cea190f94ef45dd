package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ooblahman/graph-turbulence/internal/graph"
	"github.com/ooblahman/graph-turbulence/internal/integrators"
)

func TestNewSystemValidation(t *testing.T) {
	g := graph.Path(3)

	_, err := NewSystem("empty")
	require.ErrorIs(t, err, ErrEmptySystem)

	a := NewVertexField(g)
	b := NewVertexField(g)
	_, err = NewSystem("two vertex fields", a, b)
	require.ErrorIs(t, err, ErrDuplicateKind)

	other := graph.Path(3)
	_, err = NewSystem("split graphs", NewVertexField(g), NewEdgeField(other))
	require.ErrorIs(t, err, ErrGraphMismatch)

	_, err = NewSystem("ok", NewVertexField(g), NewEdgeField(g))
	require.NoError(t, err)
}

func TestSystemFanOut(t *testing.T) {
	g := graph.Path(3)

	vf := NewVertexField(g, WithDesc("p"))
	require.NoError(t, vf.SetODE(func(float64) Vector { return Vector{1, 1, 1} }))
	require.NoError(t, vf.SetInitial(0, func(string) float64 { return 0 }))

	ef := NewEdgeField(g, WithDesc("v"))
	require.NoError(t, ef.SetODE(func(float64) Vector { return Vector{2, 2} }))
	require.NoError(t, ef.SetInitial(0, func(graph.Edge) float64 { return 0 }))

	sys, err := NewSystem("pair", vf, ef)
	require.NoError(t, err)
	require.Len(t, sys.Observables(), 2)

	require.NoError(t, sys.Step(0.5))
	vecs, err := sys.Measure()
	require.NoError(t, err)
	require.InDelta(t, 0.5, vecs[0][0], 1e-9)
	require.InDelta(t, 1.0, vecs[1][0], 1e-9)
	require.InDelta(t, 0.5, sys.T(), 1e-9)

	require.NoError(t, sys.Reset())
	require.Equal(t, 0.0, sys.T())
	vecs, err = sys.Measure()
	require.NoError(t, err)
	require.Equal(t, Vector{0, 0, 0}, vecs[0])
}

func TestCoupleRequiresODEs(t *testing.T) {
	g := graph.Path(3)
	vf := NewVertexField(g)
	ef := NewEdgeField(g)
	require.NoError(t, vf.SetODE(func(float64) Vector { return Zeros(3) }))

	_, err := Couple("half-wired", vf, ef)
	require.ErrorIs(t, err, ErrNoODE)
}

func TestCoupledStepSynchronizesMembers(t *testing.T) {
	g := graph.Path(3)

	p := NewVertexField(g, WithDesc("pressure"))
	require.NoError(t, p.SetODE(func(float64) Vector { return Zeros(3) }))
	require.NoError(t, p.SetInitial(0, func(string) float64 { return 0 }))
	require.NoError(t, p.SetBoundary(map[string]float64{"0": 1}, nil))

	// Velocity grows at the pinned pressure: dv/dt = p("0") = 1.
	v := NewEdgeField(g, WithDesc("velocity"))
	require.NoError(t, v.SetODE(func(float64) Vector {
		src := p.At("0")
		return Vector{src, src}
	}))
	require.NoError(t, v.SetInitial(0, func(graph.Edge) float64 { return 0 }))

	c, err := Couple("flow", v, p)
	require.NoError(t, err)

	require.NoError(t, c.Step(1))
	vecs, err := c.Measure()
	require.NoError(t, err)

	require.InDelta(t, 1.0, vecs[0][0], 1e-6)
	require.Equal(t, 1.0, p.At("0"))
	require.InDelta(t, v.Time(), p.Time(), 1e-12)
	require.InDelta(t, 1.0, c.T(), 1e-9)

	// Members no longer step themselves.
	before := v.Values().Clone()
	require.NoError(t, v.Step(1))
	require.Equal(t, before, v.Values())

	require.NoError(t, c.Reset())
	require.Equal(t, 0.0, c.T())
	vecs, err = c.Measure()
	require.NoError(t, err)
	require.Equal(t, Vector{0, 0}, vecs[0])
	require.Equal(t, 1.0, p.At("0"))
}

func TestCoupledRunsMemberIntegrator(t *testing.T) {
	euler, err := integrators.New("euler")
	require.NoError(t, err)
	g := graph.Path(2)

	// dy/dt = y under forward Euler with h = 0.1: ten steps over [0, 1]
	// give exactly (1.1)^10, well away from the RK45 value of e.
	p := NewVertexField(g, WithMethod(euler))
	require.NoError(t, p.SetODE(func(float64) Vector { return p.Values().Clone() }, MaxStep(0.1)))
	require.NoError(t, p.SetInitial(0, func(string) float64 { return 1 }))

	v := NewEdgeField(g, WithMethod(euler))
	require.NoError(t, v.SetODE(func(float64) Vector { return Zeros(v.Len()) }))
	require.NoError(t, v.SetInitial(0, func(graph.Edge) float64 { return 0 }))

	c, err := Couple("growth", p, v)
	require.NoError(t, err)

	require.NoError(t, c.Step(1))
	require.InDelta(t, math.Pow(1.1, 10), p.Values()[0], 1e-9)
}

func TestCoupledBoundaryChangeAfterCoupling(t *testing.T) {
	g := graph.Path(3)

	p := NewVertexField(g, WithDesc("pressure"))
	require.NoError(t, p.SetODE(func(float64) Vector { return Zeros(3) }))
	require.NoError(t, p.SetInitial(0, func(string) float64 { return 0 }))

	v := NewEdgeField(g, WithDesc("velocity"))
	require.NoError(t, v.SetODE(func(float64) Vector { return Zeros(2) }))
	require.NoError(t, v.SetInitial(0, func(graph.Edge) float64 { return 0 }))

	c, err := Couple("flow", v, p)
	require.NoError(t, err)

	// Pinning a vertex after coupling must survive the joint integrator's
	// stage scatter, not be overwritten by the pre-pin state.
	require.NoError(t, p.SetBoundary(map[string]float64{"0": 5}, nil))

	require.NoError(t, c.Step(0.5))
	vecs, err := c.Measure()
	require.NoError(t, err)
	require.Equal(t, 5.0, p.At("0"))
	require.Equal(t, 0.0, p.At("1"))
	require.Equal(t, Vector{0, 0}, vecs[0])
}

package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/graph"
)

func vertexOnPath(t *testing.T, vals ...float64) *field.VertexField {
	t.Helper()
	g := graph.Path(len(vals))
	f := field.NewVertexField(g)
	require.NoError(t, f.SetInitial(0, func(v string) float64 {
		i, _ := f.Index(v)
		return vals[i]
	}))
	return f
}

func TestLaplacianOnPath(t *testing.T) {
	f := vertexOnPath(t, 0, 1, 0)

	lap := Laplacian(f)
	require.InDelta(t, 1.0, lap[0], 1e-12)
	require.InDelta(t, -2.0, lap[1], 1e-12)
	require.InDelta(t, 1.0, lap[2], 1e-12)
}

func TestLaplacianConstantFieldIsZero(t *testing.T) {
	f := vertexOnPath(t, 4, 4, 4, 4)
	for _, x := range Laplacian(f) {
		require.Equal(t, 0.0, x)
	}
	for _, x := range Bilaplacian(f) {
		require.Equal(t, 0.0, x)
	}
}

func TestBilaplacianIsLaplacianTwice(t *testing.T) {
	f := vertexOnPath(t, 1, 0, 2, -1, 0)

	lap := Laplacian(f)
	// Apply once more by hand through the capability contract.
	want := make(field.Vector, f.Len())
	for i := 0; i < f.Len(); i++ {
		for _, j := range f.NeighborIndices(i) {
			want[i] += f.CouplingWeight(i, j) * (lap[j] - lap[i])
		}
	}

	got := Bilaplacian(f)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-12)
	}
}

// The vertex path goes through the precomputed matrix; it must agree with
// the neighbor-difference sums the capability contract defines, weights
// included.
func TestLaplacianMatrixMatchesNeighborSums(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddWeightedEdge("a", "b", 2))
	require.NoError(t, g.AddWeightedEdge("b", "c", 0.5))
	require.NoError(t, g.AddWeightedEdge("a", "c", 3))

	f := field.NewVertexField(g, field.WithEdgeWeights())
	require.NoError(t, f.SetInitial(0, func(v string) float64 {
		i, _ := f.Index(v)
		return float64(i + 1)
	}))

	want := make(field.Vector, f.Len())
	y := f.Values()
	for i := 0; i < f.Len(); i++ {
		for _, j := range f.NeighborIndices(i) {
			want[i] += f.CouplingWeight(i, j) * (y[j] - y[i])
		}
	}

	got := Laplacian(f)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestGradientOnPath(t *testing.T) {
	f := vertexOnPath(t, 0, 2, 3)

	grad := Gradient(f)
	require.Len(t, grad, 2)
	require.InDelta(t, 2.0, grad[0], 1e-12)
	require.InDelta(t, 1.0, grad[1], 1e-12)
}

func TestGradientUsesEdgeWeights(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddWeightedEdge("a", "b", 3))
	f := field.NewVertexField(g, field.WithEdgeWeights())
	require.NoError(t, f.SetInitial(0, func(v string) float64 {
		if v == "b" {
			return 1
		}
		return 0
	}))

	grad := Gradient(f)
	require.InDelta(t, 3.0, grad[0], 1e-12)
}

func TestDivergenceOnPath(t *testing.T) {
	g := graph.Path(3)
	v := field.NewEdgeField(g)
	require.NoError(t, v.SetInitial(0, func(graph.Edge) float64 { return 1 }))

	div := Divergence(v)
	// Uniform flux along the path drains the start, feeds the end.
	require.InDelta(t, -1.0, div[0], 1e-12)
	require.InDelta(t, 0.0, div[1], 1e-12)
	require.InDelta(t, 1.0, div[2], 1e-12)
}

// Gradient and Divergence are adjoint: <grad p, v> = <p, div v> with the
// incidence sign convention (tail -1, head +1) on both sides.
func TestGradientDivergenceAdjoint(t *testing.T) {
	g := graph.Grid2D(3, 3)

	p := field.NewVertexField(g)
	require.NoError(t, p.SetInitial(0, func(id string) float64 {
		i, _ := p.Index(id)
		return float64(i*i%7) - 3
	}))

	v := field.NewEdgeField(g)
	require.NoError(t, v.SetInitial(0, func(e graph.Edge) float64 {
		i, _ := v.Index(e)
		return float64((i*3)%5) - 2
	}))

	grad := Gradient(p)
	div := Divergence(v)

	var lhs, rhs float64
	for k := range grad {
		lhs += grad[k] * v.Values()[k]
	}
	for i := range div {
		rhs += p.Values()[i] * div[i]
	}
	require.InDelta(t, lhs, rhs, 1e-9)
}

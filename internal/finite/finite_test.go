package finite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/graph"
)

func TestDiffusionValidation(t *testing.T) {
	_, err := Diffusion(nil, nil, 1, nil)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = Diffusion([]int{3, 3}, []float64{1}, 1, nil)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = Diffusion([]int{3, 0}, []float64{1, 1}, 1, nil)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = Diffusion([]int{3}, []float64{0}, 1, nil)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = Diffusion([]int{3, 3}, []float64{1, 1}, 1, map[string]float64{"5,0": 0})
	require.ErrorIs(t, err, ErrUnknownCell)

	_, err = Diffusion([]int{3, 3}, []float64{1, 1}, 1, map[string]float64{"1": 0})
	require.ErrorIs(t, err, ErrUnknownCell)

	_, err = Diffusion([]int{3, 3}, []float64{1, 1}, 1, map[string]float64{"bad": 0})
	require.ErrorIs(t, err, ErrUnknownCell)
}

// The interior stencil at unit spacing must agree with the unweighted
// graph Laplacian on the matching grid graph.
func TestDiffusionMatchesGraphLaplacian(t *testing.T) {
	const rows, cols = 3, 4
	rhs, err := Diffusion([]int{rows, cols}, []float64{1, 1}, 1, nil)
	require.NoError(t, err)

	g := graph.Grid2D(rows, cols)
	f := field.NewVertexField(g)
	require.NoError(t, f.SetInitial(0, func(id string) float64 {
		i, _ := f.Index(id)
		return float64(i*i%5) - 2
	}))

	want := make(field.Vector, f.Len())
	y := f.Values()
	for i := 0; i < f.Len(); i++ {
		for _, j := range f.NeighborIndices(i) {
			want[i] += y[j] - y[i]
		}
	}

	got := rhs(0, y)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-12, "cell %d", i)
	}
}

func TestDiffusionSpacingScalesStencil(t *testing.T) {
	unit, err := Diffusion([]int{5}, []float64{1}, 1, nil)
	require.NoError(t, err)
	half, err := Diffusion([]int{5}, []float64{0.5}, 1, nil)
	require.NoError(t, err)

	y := field.Vector{0, 1, 0, 2, 0}
	u := unit(0, y)
	h := half(0, y)
	for i := range y {
		require.InDelta(t, 4*u[i], h[i], 1e-12)
	}
}

func TestDiffusionDirichletDerivativeZero(t *testing.T) {
	rhs, err := Diffusion([]int{3, 3}, []float64{1, 1}, 1, map[string]float64{
		graph.CellID(0, 0): 1,
		graph.CellID(2, 2): -1,
	})
	require.NoError(t, err)

	y := field.Vector{1, 0, 0, 0, 0, 0, 0, 0, -1}
	out := rhs(0, y)

	require.Equal(t, 0.0, out[0])
	require.Equal(t, 0.0, out[8])
	// A neighbor of a pinned cell still feels it.
	require.NotEqual(t, 0.0, out[1])
}

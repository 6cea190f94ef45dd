package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVertexOrderIsInsertionOrder(t *testing.T) {
	g := New()
	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		g.AddVertex(id)
	}
	g.AddVertex("a") // duplicate is a no-op

	require.Equal(t, ids, g.Vertices())
	for i, id := range ids {
		idx, ok := g.VertexIndex(id)
		require.True(t, ok)
		require.Equal(t, i, idx)
	}
}

func TestEdgeOrderAndDedup(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("b", "a")) // same edge, reversed

	require.Equal(t, []Edge{{U: "a", V: "b"}, {U: "b", V: "c"}}, g.Edges())
	require.True(t, g.HasEdge("b", "a"))

	idx, ok := g.EdgeIndex(Edge{U: "b", V: "a"})
	require.True(t, ok)
	require.Equal(t, 0, idx)
}

func TestSelfLoopRejected(t *testing.T) {
	g := New()
	err := g.AddEdge("a", "a")
	require.True(t, errors.Is(err, ErrSelfLoop))
}

func TestWeights(t *testing.T) {
	g := New()
	require.NoError(t, g.AddWeightedEdge("a", "b", 2.5))

	w, ok := g.Weight("b", "a")
	require.True(t, ok)
	require.Equal(t, 2.5, w)

	_, ok = g.Weight("a", "c")
	require.False(t, ok)
}

func TestGrid2D(t *testing.T) {
	g := Grid2D(3, 4)
	require.Equal(t, 12, g.VertexCount())
	// 3 rows of 3 horizontal edges + 2 rows of 4 vertical edges.
	require.Equal(t, 3*3+2*4, g.EdgeCount())

	require.Equal(t, 2, g.Degree(CellID(0, 0)))
	require.Equal(t, 4, g.Degree(CellID(1, 1)))

	p, ok := g.Pos(CellID(2, 3))
	require.True(t, ok)
	require.Equal(t, [2]float64{1, 1}, p)
}

func TestGridBorder(t *testing.T) {
	border := GridBorder(4, 5)
	require.Len(t, border, 2*4+2*5-4)
	seen := map[string]bool{}
	for _, id := range border {
		require.False(t, seen[id], "duplicate border cell %s", id)
		seen[id] = true
	}
	require.True(t, seen[CellID(0, 0)])
	require.True(t, seen[CellID(3, 4)])
	require.False(t, seen[CellID(1, 1)])
}

func TestCellIDRoundTrip(t *testing.T) {
	id := CellID(7, 3)
	coords, err := CellCoords(id)
	require.NoError(t, err)
	require.Equal(t, []int{7, 3}, coords)

	_, err = CellCoords("not-a-cell")
	require.Error(t, err)
}

func TestPathAndCycle(t *testing.T) {
	p := Path(5)
	require.Equal(t, 5, p.VertexCount())
	require.Equal(t, 4, p.EdgeCount())

	c := Cycle(5)
	require.Equal(t, 5, c.VertexCount())
	require.Equal(t, 5, c.EdgeCount())
	require.Equal(t, 2, c.Degree(c.Vertices()[0]))
}

func TestRandomGeometricDeterministic(t *testing.T) {
	a := RandomGeometric(50, 0.3, 42)
	b := RandomGeometric(50, 0.3, 42)

	require.Equal(t, a.Vertices(), b.Vertices())
	require.Equal(t, a.Edges(), b.Edges())
	require.Equal(t, 50, a.VertexCount())

	for _, v := range a.Vertices() {
		p, ok := a.Pos(v)
		require.True(t, ok)
		require.GreaterOrEqual(t, p[0], 0.0)
		require.LessOrEqual(t, p[0], 1.0)
		require.GreaterOrEqual(t, p[1], 0.0)
		require.LessOrEqual(t, p[1], 1.0)
	}
}

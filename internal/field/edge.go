package field

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ooblahman/graph-turbulence/internal/graph"
)

// EdgeField is a scalar field over the edges of a graph, carrying a signed
// flux value per edge. Each edge's stored (U, V) order is assigned a +1
// orientation; reading an edge against its stored orientation flips the
// sign.
type EdgeField struct {
	core[graph.Edge]

	// Weighted line-graph (vertex-dual) adjacency: for edges sharing an
	// endpoint of degree d the coupling magnitude is 1/d, with zero
	// coupling through endpoints of degree <= 1. Computed as
	// inc^T diag(1/deg) inc with the diagonal zeroed.
	dual   *mat.Dense
	orient []float64
}

// NewEdgeField indexes the graph's edges in enumeration order, assigns +1
// orientations, and derives the dual adjacency.
func NewEdgeField(g *graph.Graph, opts ...Option) *EdgeField {
	s := newSettings(opts)
	f := &EdgeField{}
	edges := g.Edges()
	elems := make([]graph.Edge, len(edges))
	copy(elems, edges)
	f.initCore(g, KindEdge, s, elems)
	f.orient = make([]float64, len(elems))
	for i := range f.orient {
		f.orient[i] = 1
	}
	f.buildDual()
	return f
}

func (f *EdgeField) buildDual() {
	verts := f.g.Vertices()
	nv, ne := len(verts), len(f.elems)

	inc := mat.NewDense(nv, ne, nil)
	for k, e := range f.elems {
		ui, _ := f.g.VertexIndex(e.U)
		vi, _ := f.g.VertexIndex(e.V)
		inc.Set(ui, k, -1)
		inc.Set(vi, k, 1)
	}

	invDeg := mat.NewDense(nv, nv, nil)
	for i, v := range verts {
		if d := f.g.Degree(v); d > 1 {
			invDeg.Set(i, i, 1/float64(d))
		}
	}

	f.dual = mat.NewDense(ne, ne, nil)
	var tmp mat.Dense
	tmp.Mul(invDeg, inc)
	f.dual.Mul(inc.T(), &tmp)
	for k := 0; k < ne; k++ {
		f.dual.Set(k, k, 0)
	}

	f.nbrs = make([][]int, ne)
	for i := 0; i < ne; i++ {
		for j := 0; j < ne; j++ {
			if i != j && f.dual.At(i, j) != 0 {
				f.nbrs[i] = append(f.nbrs[i], j)
			}
		}
	}
}

// resolve maps an edge in either orientation to its domain index and the
// sign of the query relative to the field's stored orientation.
func (f *EdgeField) resolve(e graph.Edge) (int, float64, bool) {
	if i, ok := f.index[e]; ok {
		return i, f.orient[i], true
	}
	if i, ok := f.index[e.Reversed()]; ok {
		return i, -f.orient[i], true
	}
	return 0, 0, false
}

// Weight returns the dual-adjacency coupling weight between two edges.
func (f *EdgeField) Weight(a, b graph.Edge) float64 {
	i, _, ok := f.resolve(a)
	if !ok {
		return 0
	}
	j, _, ok := f.resolve(b)
	if !ok {
		return 0
	}
	return f.dual.At(i, j)
}

// CouplingWeight returns the dual-adjacency weight between two domain
// indices.
func (f *EdgeField) CouplingWeight(i, j int) float64 {
	return f.dual.At(i, j)
}

// At returns the flux along e, sign-flipped when e is queried against the
// stored orientation. It panics on an edge outside the domain.
func (f *EdgeField) At(e graph.Edge) float64 {
	i, sign, ok := f.resolve(e)
	if !ok {
		panic(fmt.Sprintf("field: edge %v not in domain", e))
	}
	return sign * f.y[i]
}

// Orientation returns the stored orientation sign of the i-th edge.
func (f *EdgeField) Orientation(i int) float64 { return f.orient[i] }

// DualAdjacency returns the derived line-graph adjacency matrix. Shared;
// callers must not modify it.
func (f *EdgeField) DualAdjacency() *mat.Dense { return f.dual }

// Track mirrors values from another edge field whose domain covers this
// field's, matching edges in either orientation. Mutually exclusive with
// SetODE.
func (f *EdgeField) Track(other *EdgeField) error {
	contains := func(e graph.Edge) bool {
		_, _, ok := other.resolve(e)
		return ok
	}
	return f.track(&other.core, contains, other.At)
}

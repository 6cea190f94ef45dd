package field

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ooblahman/graph-turbulence/internal/graph"
)

// VertexField is a scalar field over the vertices of a graph.
type VertexField struct {
	core[string]

	defaultWeight float64
	useEdgeWeight bool
	negLap        *mat.Dense
}

// NewVertexField indexes the graph's vertices in enumeration order and
// precomputes the negated weighted Laplacian.
func NewVertexField(g *graph.Graph, opts ...Option) *VertexField {
	s := newSettings(opts)
	f := &VertexField{
		defaultWeight: s.defaultWeight,
		useEdgeWeight: s.useEdgeWeight,
	}
	verts := g.Vertices()
	elems := make([]string, len(verts))
	copy(elems, verts)
	f.initCore(g, KindVertex, s, elems)
	f.buildAdjacency()
	return f
}

// Weight returns the coupling weight between two vertices: the configured
// uniform default, or the graph's edge weight when WithEdgeWeights is set.
func (f *VertexField) Weight(a, b string) float64 {
	if f.useEdgeWeight {
		w, ok := f.g.Weight(a, b)
		if !ok {
			return 0
		}
		return w
	}
	return f.defaultWeight
}

func (f *VertexField) buildAdjacency() {
	n := len(f.elems)
	f.nbrs = make([][]int, n)
	f.negLap = mat.NewDense(n, n, nil)
	for i, v := range f.elems {
		for _, u := range f.g.Neighbors(v) {
			f.nbrs[i] = append(f.nbrs[i], f.index[u])
		}
	}
	for _, e := range f.g.Edges() {
		i, j := f.index[e.U], f.index[e.V]
		w := f.Weight(e.U, e.V)
		f.negLap.Set(i, j, w)
		f.negLap.Set(j, i, w)
		f.negLap.Set(i, i, f.negLap.At(i, i)-w)
		f.negLap.Set(j, j, f.negLap.At(j, j)-w)
	}
}

// CouplingWeight returns the coupling weight between two domain indices.
func (f *VertexField) CouplingWeight(i, j int) float64 {
	return f.Weight(f.elems[i], f.elems[j])
}

// At returns the current value at a vertex. It panics on a vertex outside
// the domain, like an out-of-range slice index.
func (f *VertexField) At(v string) float64 {
	i, ok := f.index[v]
	if !ok {
		panic(fmt.Sprintf("field: vertex %q not in domain", v))
	}
	return f.y[i]
}

// NegLaplacian applies the precomputed negated Laplacian matrix to a
// vector: (A - D) v.
func (f *VertexField) NegLaplacian(v Vector) Vector {
	var r mat.VecDense
	r.MulVec(f.negLap, mat.NewVecDense(len(v), v))
	out := make(Vector, len(v))
	copy(out, r.RawVector().Data)
	return out
}

// Track mirrors values from another vertex field whose domain is a
// superset of this field's. Mutually exclusive with SetODE.
func (f *VertexField) Track(other *VertexField) error {
	contains := func(v string) bool {
		_, ok := other.index[v]
		return ok
	}
	return f.track(&other.core, contains, other.At)
}

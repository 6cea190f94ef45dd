// Package ops provides the discrete differential operators used to build
// right-hand sides: gradient, laplacian, bilaplacian, and divergence.
//
// Laplacian and Bilaplacian are written against the capability contract
// shared by both field variants and behave identically over vertex and
// edge domains. Gradient and Divergence move values between the two
// domains of one graph and are an adjoint pair under unit weights.
package ops

import (
	"github.com/ooblahman/graph-turbulence/internal/field"
)

// Field is the capability contract the domain-agnostic operators rely on.
// Both field.VertexField and field.EdgeField satisfy it.
type Field interface {
	Len() int
	Values() field.Vector
	NeighborIndices(i int) []int
	CouplingWeight(i, j int) float64
}

// matrixField is satisfied by fields carrying a precomputed negated
// Laplacian matrix; vertex fields do, edge fields fall back to the
// adjacency-sum path.
type matrixField interface {
	NegLaplacian(field.Vector) field.Vector
}

// Laplacian returns, per domain element, the weighted sum of neighbor
// differences: sum_j w(i,j) * (y_j - y_i). Fields with a precomputed
// Laplacian matrix are applied through it.
func Laplacian(f Field) field.Vector {
	if mf, ok := f.(matrixField); ok {
		return mf.NegLaplacian(f.Values())
	}
	return laplacianOf(f, f.Values())
}

// Bilaplacian returns the Laplacian applied twice.
func Bilaplacian(f Field) field.Vector {
	if mf, ok := f.(matrixField); ok {
		return mf.NegLaplacian(mf.NegLaplacian(f.Values()))
	}
	return laplacianOf(f, laplacianOf(f, f.Values()))
}

func laplacianOf(f Field, y field.Vector) field.Vector {
	out := make(field.Vector, f.Len())
	for i := 0; i < f.Len(); i++ {
		var acc float64
		for _, j := range f.NeighborIndices(i) {
			acc += f.CouplingWeight(i, j) * (y[j] - y[i])
		}
		out[i] = acc
	}
	return out
}

// Gradient returns the edge-indexed discrete derivative of a vertex field:
// for the k-th stored edge (u, v), w(u,v) * (p(v) - p(u)). Signs follow
// each edge's stored orientation.
func Gradient(p *field.VertexField) field.Vector {
	edges := p.Graph().Edges()
	out := make(field.Vector, len(edges))
	for k, e := range edges {
		out[k] = p.Weight(e.U, e.V) * (p.At(e.V) - p.At(e.U))
	}
	return out
}

// Divergence returns the vertex-indexed adjoint of Gradient applied to an
// edge field: each edge's flux drains its tail and feeds its head,
// weighted by the graph's edge weight.
func Divergence(v *field.EdgeField) field.Vector {
	g := v.Graph()
	out := make(field.Vector, g.VertexCount())
	for _, e := range g.Edges() {
		w, _ := g.Weight(e.U, e.V)
		flux := w * v.At(e)
		ui, _ := g.VertexIndex(e.U)
		vi, _ := g.VertexIndex(e.V)
		out[ui] -= flux
		out[vi] += flux
	}
	return out
}

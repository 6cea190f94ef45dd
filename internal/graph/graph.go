// Package graph provides the undirected weighted graphs that fields are
// defined on.
//
// A Graph is built once and treated as immutable for the lifetime of any
// field constructed on it; mutating it afterwards is undefined behavior for
// those fields. Vertex and edge enumeration order is insertion order and is
// stored explicitly, never re-derived from map iteration.
package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph operations.
var (
	// ErrSelfLoop indicates an edge from a vertex to itself.
	ErrSelfLoop = errors.New("graph: self-loops not supported")

	// ErrVertexNotFound indicates an operation referenced a missing vertex.
	ErrVertexNotFound = errors.New("graph: vertex not found")
)

// Edge identifies an undirected edge by its endpoints. The stored (U, V)
// order fixes the edge's reference orientation: flux along the edge is
// positive from U to V.
type Edge struct {
	U, V string
}

// Reversed returns the same edge with opposite orientation.
func (e Edge) Reversed() Edge { return Edge{U: e.V, V: e.U} }

func (e Edge) String() string { return fmt.Sprintf("%s--%s", e.U, e.V) }

// Graph is an undirected graph with float64 edge weights and optional
// 2-D vertex positions.
type Graph struct {
	vertices []string
	vindex   map[string]int
	edges    []Edge
	eindex   map[Edge]int
	adj      map[string][]string
	weights  map[Edge]float64
	pos      map[string][2]float64
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		vindex:  make(map[string]int),
		eindex:  make(map[Edge]int),
		adj:     make(map[string][]string),
		weights: make(map[Edge]float64),
		pos:     make(map[string][2]float64),
	}
}

// AddVertex inserts a vertex if not already present.
func (g *Graph) AddVertex(id string) {
	if _, ok := g.vindex[id]; ok {
		return
	}
	g.vindex[id] = len(g.vertices)
	g.vertices = append(g.vertices, id)
}

// AddEdge inserts an undirected unit-weight edge, adding endpoints as
// needed. Adding an edge that already exists (in either orientation) is a
// no-op.
func (g *Graph) AddEdge(u, v string) error {
	return g.AddWeightedEdge(u, v, 1.0)
}

// AddWeightedEdge inserts an undirected edge with the given weight.
func (g *Graph) AddWeightedEdge(u, v string, w float64) error {
	if u == v {
		return fmt.Errorf("%w: %q", ErrSelfLoop, u)
	}
	if _, ok := g.lookupEdge(Edge{u, v}); ok {
		return nil
	}
	g.AddVertex(u)
	g.AddVertex(v)
	e := Edge{U: u, V: v}
	g.eindex[e] = len(g.edges)
	g.edges = append(g.edges, e)
	g.weights[e] = w
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return nil
}

func (g *Graph) lookupEdge(e Edge) (int, bool) {
	if i, ok := g.eindex[e]; ok {
		return i, true
	}
	if i, ok := g.eindex[e.Reversed()]; ok {
		return i, true
	}
	return 0, false
}

// HasVertex reports whether the vertex exists.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.vindex[id]
	return ok
}

// HasEdge reports whether an edge exists between u and v in either
// orientation.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.lookupEdge(Edge{u, v})
	return ok
}

// Weight returns the weight of the edge between u and v, or false if no
// such edge exists.
func (g *Graph) Weight(u, v string) (float64, bool) {
	i, ok := g.lookupEdge(Edge{u, v})
	if !ok {
		return 0, false
	}
	return g.weights[g.edges[i]], true
}

// VertexIndex returns the insertion-order index of a vertex.
func (g *Graph) VertexIndex(id string) (int, bool) {
	i, ok := g.vindex[id]
	return i, ok
}

// EdgeIndex returns the insertion-order index of an edge, matching either
// orientation.
func (g *Graph) EdgeIndex(e Edge) (int, bool) {
	return g.lookupEdge(e)
}

// Vertices returns vertex IDs in insertion order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Vertices() []string { return g.vertices }

// Edges returns edges in insertion order. The returned slice is shared;
// callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Neighbors returns the neighbors of u in edge-insertion order. The
// returned slice is shared; callers must not modify it.
func (g *Graph) Neighbors(u string) []string { return g.adj[u] }

// Degree returns the number of edges incident to u.
func (g *Graph) Degree(u string) int { return len(g.adj[u]) }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// SetPos records a 2-D position for a vertex, used only by viewers.
func (g *Graph) SetPos(id string, x, y float64) {
	g.pos[id] = [2]float64{x, y}
}

// Pos returns the recorded position of a vertex.
func (g *Graph) Pos(id string) ([2]float64, bool) {
	p, ok := g.pos[id]
	return p, ok
}

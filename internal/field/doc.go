// Package field implements time-dependent scalar fields on graph domains.
//
// A field owns a value vector indexed by graph elements (vertices for
// [VertexField], edges for [EdgeField]), boundary-condition state, and
// either an ODE with a stepping integrator or a tracking reference to
// another field. Multiple fields on one graph aggregate into a [System];
// fields whose right-hand sides reference each other advance under a single
// synchronized integrator via [Couple].
//
// The domain index assignment is fixed at construction and never re-derived
// from the graph, so vector layout is stable for the lifetime of a field.
//
// All operations are synchronous and single-caller; driving one field from
// multiple goroutines is unsupported.
package field

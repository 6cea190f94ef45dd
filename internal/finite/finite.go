// Package finite builds explicit finite-difference right-hand sides for
// regular grids, as an alternative to the graph-Laplacian operators for
// grid-shaped domains.
package finite

import (
	"errors"
	"fmt"

	"github.com/ooblahman/graph-turbulence/internal/field"
	"github.com/ooblahman/graph-turbulence/internal/graph"
)

var (
	// ErrBadShape indicates an empty shape, a non-positive extent, or a
	// spacing list that does not match the shape.
	ErrBadShape = errors.New("finite: invalid grid shape or spacing")

	// ErrUnknownCell indicates a Dirichlet key outside the grid.
	ErrUnknownCell = errors.New("finite: dirichlet cell outside grid")
)

// RHS is the signature Diffusion produces: a time-dependent derivative of
// a grid-shaped state vector.
type RHS func(t float64, y field.Vector) field.Vector

// Diffusion returns an RHS computing alpha times the discrete Laplacian
// over a regular grid in row-major layout, with the spacing given per
// axis. Cells named in dirichlet are held fixed: their derivative is
// forced to zero. Cell keys use graph.CellID, matching the grid builders,
// so the result is a drop-in right-hand side for a field on a grid graph.
func Diffusion(shape []int, spacing []float64, alpha float64, dirichlet map[string]float64) (RHS, error) {
	if len(shape) == 0 || len(spacing) != len(shape) {
		return nil, ErrBadShape
	}
	n := 1
	for a, s := range shape {
		if s <= 0 || spacing[a] <= 0 {
			return nil, ErrBadShape
		}
		n *= s
	}

	// Row-major strides, last axis fastest.
	dims := len(shape)
	strides := make([]int, dims)
	strides[dims-1] = 1
	for a := dims - 2; a >= 0; a-- {
		strides[a] = strides[a+1] * shape[a+1]
	}

	fixed := make([]bool, n)
	for id := range dirichlet {
		coords, err := graph.CellCoords(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCell, id)
		}
		if len(coords) != dims {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCell, id)
		}
		idx := 0
		for a, c := range coords {
			if c < 0 || c >= shape[a] {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCell, id)
			}
			idx += c * strides[a]
		}
		fixed[idx] = true
	}

	inv2 := make([]float64, dims)
	for a := range spacing {
		inv2[a] = 1 / (spacing[a] * spacing[a])
	}

	return func(_ float64, y field.Vector) field.Vector {
		out := make(field.Vector, n)
		coords := make([]int, dims)
		for idx := 0; idx < n; idx++ {
			if !fixed[idx] {
				var acc float64
				for a := 0; a < dims; a++ {
					if coords[a] > 0 {
						acc += (y[idx-strides[a]] - y[idx]) * inv2[a]
					}
					if coords[a] < shape[a]-1 {
						acc += (y[idx+strides[a]] - y[idx]) * inv2[a]
					}
				}
				out[idx] = alpha * acc
			}
			// Advance row-major coordinates.
			for a := dims - 1; a >= 0; a-- {
				coords[a]++
				if coords[a] < shape[a] {
					break
				}
				coords[a] = 0
			}
		}
		return out
	}, nil
}

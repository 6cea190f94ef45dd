package graph

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// CellID formats the vertex ID for a grid cell, e.g. CellID(2, 3) == "2,3".
// Grid builders and the finite-difference helper share this keying.
func CellID(coords ...int) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// CellCoords parses a vertex ID produced by CellID back into coordinates.
func CellCoords(id string) ([]int, error) {
	parts := strings.Split(id, ",")
	coords := make([]int, len(parts))
	for i, p := range parts {
		c, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("graph: bad cell id %q: %w", id, err)
		}
		coords[i] = c
	}
	return coords, nil
}

// Grid2D builds a rows×cols grid graph with 4-connectivity. Vertices are
// keyed "i,j" in row-major order and positioned on the unit square.
func Grid2D(rows, cols int) *Graph {
	g := New()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			id := CellID(i, j)
			g.AddVertex(id)
			var x, y float64
			if cols > 1 {
				x = float64(j) / float64(cols-1)
			}
			if rows > 1 {
				y = float64(i) / float64(rows-1)
			}
			g.SetPos(id, x, y)
		}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if j+1 < cols {
				g.AddEdge(CellID(i, j), CellID(i, j+1))
			}
			if i+1 < rows {
				g.AddEdge(CellID(i, j), CellID(i+1, j))
			}
		}
	}
	return g
}

// Path builds a path graph on n vertices keyed "0".."n-1".
func Path(n int) *Graph {
	g := New()
	for i := 0; i < n; i++ {
		g.AddVertex(strconv.Itoa(i))
	}
	for i := 0; i+1 < n; i++ {
		g.AddEdge(strconv.Itoa(i), strconv.Itoa(i+1))
	}
	return g
}

// Cycle builds a cycle graph on n vertices keyed "0".."n-1".
func Cycle(n int) *Graph {
	g := Path(n)
	if n > 2 {
		g.AddEdge(strconv.Itoa(n-1), "0")
	}
	return g
}

// RandomGeometric builds a random geometric graph: n vertices placed
// uniformly on the unit square, with an edge between every pair closer
// than radius. The seed fixes the placement for reproducibility.
func RandomGeometric(n int, radius float64, seed int64) *Graph {
	rng := rand.New(rand.NewSource(seed))
	g := New()
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		id := strconv.Itoa(i)
		xs[i], ys[i] = rng.Float64(), rng.Float64()
		g.AddVertex(id)
		g.SetPos(id, xs[i], ys[i])
	}
	r2 := radius * radius
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx, dy := xs[i]-xs[j], ys[i]-ys[j]
			if dx*dx+dy*dy < r2 {
				g.AddEdge(strconv.Itoa(i), strconv.Itoa(j))
			}
		}
	}
	return g
}

// GridBorder returns the IDs of the outermost cells of a rows×cols grid,
// each exactly once.
func GridBorder(rows, cols int) []string {
	seen := make(map[string]bool)
	var border []string
	add := func(i, j int) {
		id := CellID(i, j)
		if !seen[id] {
			seen[id] = true
			border = append(border, id)
		}
	}
	for j := 0; j < cols; j++ {
		add(0, j)
		add(rows-1, j)
	}
	for i := 0; i < rows; i++ {
		add(i, 0)
		add(i, cols-1)
	}
	return border
}

package field

import "math"

// Vector is a dense value vector laid out in domain-index order.
type Vector []float64

// Zeros returns a zero vector of length n.
func Zeros(n int) Vector { return make(Vector, n) }

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

// IsValid reports whether the vector is free of NaN and Inf components.
func (v Vector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Scale returns a*v as a new vector.
func (v Vector) Scale(a float64) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = a * x
	}
	return out
}

// Add returns v+o as a new vector.
func (v Vector) Add(o Vector) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x + o[i]
	}
	return out
}

// Sub returns v-o as a new vector.
func (v Vector) Sub(o Vector) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x - o[i]
	}
	return out
}

func (v Vector) Min() float64 {
	m := math.Inf(1)
	for _, x := range v {
		m = math.Min(m, x)
	}
	return m
}

func (v Vector) Max() float64 {
	m := math.Inf(-1)
	for _, x := range v {
		m = math.Max(m, x)
	}
	return m
}

func (v Vector) Mean() float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// MaxAbs returns the largest absolute component, 0 for an empty vector.
func (v Vector) MaxAbs() float64 {
	m := 0.0
	for _, x := range v {
		m = math.Max(m, math.Abs(x))
	}
	return m
}

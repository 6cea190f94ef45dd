package integrators

// Euler is the explicit fixed-step first-order method. Useful as a
// reference and for stiff-free smoke tests; prefer RK45 otherwise.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Attempt(f RHS, t float64, y []float64, h, _ float64) ([]float64, float64, float64, error) {
	dy := f(t, y)
	result := make([]float64, len(y))
	for i := range y {
		result[i] = y[i] + h*dy[i]
	}
	return result, h, h, nil
}

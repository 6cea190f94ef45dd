// Package integrators provides numerical ODE integration for field
// simulations: an adaptive Dormand-Prince RK45 method, fixed-step RK4 and
// Euler methods, a stateful Stepper that advances a system to successive
// time bounds by repeated sub-steps, and a one-shot Solve.
package integrators

import (
	"errors"
	"fmt"
)

// RHS is a first-order ODE right-hand side dy/dt = f(t, y).
type RHS func(t float64, y []float64) []float64

// Method performs single integration steps. Adaptive methods may take a
// smaller step than requested; fixed-step methods always take exactly h.
type Method interface {
	// Attempt advances y by one step of size at most h and returns the new
	// state, the step actually taken, and the suggested next step size.
	Attempt(f RHS, t float64, y []float64, h, tol float64) (yNext []float64, hUsed, hNext float64, err error)

	// Name identifies the method, e.g. "rk45".
	Name() string
}

// Sentinel errors for integration failures. Neither is recoverable within
// the current run; callers reset and retry with different parameters.
var (
	// ErrStepTooSmall indicates the adaptive step size underflowed while
	// trying to meet the error tolerance.
	ErrStepTooSmall = errors.New("integrators: adaptive step size below minimum")

	// ErrUnstable indicates the state picked up NaN or Inf components.
	ErrUnstable = errors.New("integrators: state diverged (NaN or Inf)")
)

// New returns the method registered under the given name.
func New(name string) (Method, error) {
	switch name {
	case "", "rk45":
		return NewRK45(), nil
	case "rk4":
		return NewRK4(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("integrators: unknown method %q", name)
	}
}

package integrators

import "math"

const defaultTol = 1e-6

// boundEps guards the sub-step loop against floating-point shortfall at the
// time bound.
const boundEps = 1e-12

// Stepper advances an ODE state to successive time bounds by repeated
// internal sub-steps, holding the current time, state, and step size
// between calls.
type Stepper struct {
	f      RHS
	method Method
	t      float64
	y      []float64
	h      float64
	max    float64
	tol    float64
}

// Option configures a Stepper.
type Option func(*Stepper)

// WithMethod selects the integration method (default RK45).
func WithMethod(m Method) Option {
	return func(s *Stepper) {
		if m != nil {
			s.method = m
		}
	}
}

// WithMaxStep caps the size of each sub-step.
func WithMaxStep(h float64) Option {
	return func(s *Stepper) {
		if h > 0 {
			s.max = h
		}
	}
}

// WithTolerance sets the local error tolerance for adaptive methods.
func WithTolerance(tol float64) Option {
	return func(s *Stepper) {
		if tol > 0 {
			s.tol = tol
		}
	}
}

// NewStepper creates a stepper positioned at (t0, y0). The initial state is
// copied.
func NewStepper(f RHS, t0 float64, y0 []float64, opts ...Option) *Stepper {
	y := make([]float64, len(y0))
	copy(y, y0)
	s := &Stepper{
		f:      f,
		method: NewRK45(),
		t:      t0,
		y:      y,
		max:    math.Inf(1),
		tol:    defaultTol,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.h = s.max
	if math.IsInf(s.h, 1) {
		s.h = 1e-2
	}
	return s
}

// T returns the current time.
func (s *Stepper) T() float64 { return s.t }

// Y returns the current state. The slice is live; callers must not modify
// it.
func (s *Stepper) Y() []float64 { return s.y }

// AdvanceTo sub-steps until tBound is reached, invoking observe (if
// non-nil) after every accepted sub-step. On error the state is left at the
// last accepted sub-step.
func (s *Stepper) AdvanceTo(tBound float64, observe func(t float64, y []float64)) error {
	for s.t < tBound-boundEps {
		h := math.Min(s.h, s.max)
		clipped := false
		if s.t+h > tBound {
			h = tBound - s.t
			clipped = true
		}
		yNext, hUsed, hNext, err := s.method.Attempt(s.f, s.t, s.y, h, s.tol)
		if err != nil {
			return err
		}
		s.t += hUsed
		s.y = yNext
		if !clipped {
			s.h = math.Min(hNext, s.max)
		}
		if observe != nil {
			observe(s.t, s.y)
		}
	}
	return nil
}

// Solve integrates f from t0 to tf in one shot and returns the final state.
func Solve(f RHS, t0, tf float64, y0 []float64, opts ...Option) ([]float64, error) {
	s := NewStepper(f, t0, y0, opts...)
	if err := s.AdvanceTo(tf, nil); err != nil {
		return nil, err
	}
	return s.y, nil
}

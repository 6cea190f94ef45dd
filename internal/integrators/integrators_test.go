package integrators

import (
	"errors"
	"math"
	"testing"
)

// y'' = -y written first-order: y = {pos, vel}.
func oscillator(t float64, y []float64) []float64 {
	return []float64{y[1], -y[0]}
}

func decay(t float64, y []float64) []float64 {
	return []float64{-y[0]}
}

func TestRK45HarmonicOscillator(t *testing.T) {
	s := NewStepper(oscillator, 0, []float64{1, 0}, WithTolerance(1e-8))
	if err := s.AdvanceTo(2*math.Pi, nil); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if math.Abs(s.Y()[0]-1) > 1e-4 {
		t.Errorf("expected position 1 after full period, got %f", s.Y()[0])
	}
	if math.Abs(s.Y()[1]) > 1e-4 {
		t.Errorf("expected velocity 0 after full period, got %f", s.Y()[1])
	}
}

func TestExponentialDecay(t *testing.T) {
	want := math.Exp(-1)
	tests := []struct {
		name    string
		maxStep float64
		tol     float64
	}{
		{"euler", 1e-4, 1e-3},
		{"rk4", 1e-2, 1e-8},
		{"rk45", math.Inf(1), 1e-6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := New(tc.name)
			if err != nil {
				t.Fatalf("New(%q): %v", tc.name, err)
			}
			yf, err := Solve(decay, 0, 1, []float64{1},
				WithMethod(m), WithMaxStep(tc.maxStep))
			if err != nil {
				t.Fatalf("solve failed: %v", err)
			}
			if math.Abs(yf[0]-want) > tc.tol {
				t.Errorf("expected %f within %g, got %f", want, tc.tol, yf[0])
			}
		})
	}
}

func TestStepperAdvancesExactlyToBound(t *testing.T) {
	s := NewStepper(decay, 0, []float64{1}, WithMaxStep(0.3))
	if err := s.AdvanceTo(1, nil); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if math.Abs(s.T()-1) > 1e-9 {
		t.Errorf("expected t=1, got %f", s.T())
	}
	// A second call with the same bound must not move.
	before := s.Y()[0]
	if err := s.AdvanceTo(1, nil); err != nil {
		t.Fatalf("second advance failed: %v", err)
	}
	if s.Y()[0] != before {
		t.Error("stepper moved past an already reached bound")
	}
}

func TestMaxStepRespected(t *testing.T) {
	const max = 0.05
	s := NewStepper(decay, 0, []float64{1}, WithMaxStep(max))
	prev := s.T()
	err := s.AdvanceTo(1, func(tNow float64, y []float64) {
		if tNow-prev > max+1e-9 {
			t.Errorf("sub-step %f exceeds max step %f", tNow-prev, max)
		}
		prev = tNow
	})
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
}

func TestObserveSeesEverySubStep(t *testing.T) {
	s := NewStepper(decay, 0, []float64{1}, WithMaxStep(0.25))
	var count int
	if err := s.AdvanceTo(1, func(float64, []float64) { count++ }); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if count < 4 {
		t.Errorf("expected at least 4 sub-steps, got %d", count)
	}
}

func TestSolveMatchesStepperEndpoint(t *testing.T) {
	yf, err := Solve(oscillator, 0, 3, []float64{1, 0})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	s := NewStepper(oscillator, 0, []float64{1, 0})
	if err := s.AdvanceTo(3, nil); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	for i := range yf {
		if math.Abs(yf[i]-s.Y()[i]) > 1e-9 {
			t.Errorf("component %d: solve %f vs stepper %f", i, yf[i], s.Y()[i])
		}
	}
}

func TestRK45Unstable(t *testing.T) {
	blowup := func(t float64, y []float64) []float64 {
		return []float64{math.NaN()}
	}
	_, err := Solve(blowup, 0, 1, []float64{1})
	if !errors.Is(err, ErrUnstable) {
		t.Errorf("expected ErrUnstable, got %v", err)
	}
}

func TestNewUnknownMethod(t *testing.T) {
	if _, err := New("leapfrog"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestFixedStepMethodsKeepStep(t *testing.T) {
	for _, name := range []string{"euler", "rk4"} {
		m, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		_, hUsed, hNext, err := m.Attempt(decay, 0, []float64{1}, 0.1, 1e-6)
		if err != nil {
			t.Fatalf("%s attempt failed: %v", name, err)
		}
		if hUsed != 0.1 || hNext != 0.1 {
			t.Errorf("%s: expected fixed step 0.1, got used=%f next=%f", name, hUsed, hNext)
		}
	}
}

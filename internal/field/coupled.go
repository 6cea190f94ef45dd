package field

import (
	"fmt"
	"math"

	"github.com/ooblahman/graph-turbulence/internal/integrators"
)

// joiner is the private hook set a field exposes for synchronized
// coupling.
type joiner interface {
	Observable
	odeDim() int
	odeFunc() integrators.RHS
	odeMaxStep() float64
	odeMethod() integrators.Method
	odeTol() float64
	odeReady() bool
	setReseed(func())
	augState() []float64
	setState(t float64, y []float64)
	detach()
}

// Coupled advances several observables under one joint integrator. Every
// integrator stage scatters the stage state back into the members before
// evaluating their right-hand sides, so cross-field closures always read
// stage-synchronized sibling values - unlike a System, where independently
// integrated members see each other only at sub-step boundaries.
type Coupled struct {
	desc    string
	obs     []Observable
	members []joiner
	offs    []int
	stepper *integrators.Stepper
	maxStep float64
	method  integrators.Method
	tol     float64
}

// Couple validates the observables like NewSystem and binds them into one
// jointly integrated group. Every member must have an ODE installed;
// members' private integrators are discarded and the group drives time
// from then on. The joint integrator runs the first member's method and
// tolerance, capped by the tightest member max-step.
func Couple(desc string, obs ...Observable) (*Coupled, error) {
	if err := validateMembers(obs); err != nil {
		return nil, err
	}
	members := make([]joiner, len(obs))
	for i, o := range obs {
		j, ok := o.(joiner)
		if !ok || !j.odeReady() {
			return nil, fmt.Errorf("%w: %q", ErrNoODE, o.Desc())
		}
		members[i] = j
	}

	c := &Coupled{desc: desc, obs: obs, members: members}
	c.offs = make([]int, len(members)+1)
	c.maxStep = math.Inf(1)
	c.method = members[0].odeMethod()
	c.tol = members[0].odeTol()
	for i, m := range members {
		c.offs[i+1] = c.offs[i] + m.odeDim()
		c.maxStep = math.Min(c.maxStep, m.odeMaxStep())
	}
	for _, m := range members {
		m.detach()
		m.setReseed(c.rebuild)
	}
	c.rebuild()
	return c, nil
}

func (c *Coupled) joint() []float64 {
	y := make([]float64, c.offs[len(c.members)])
	for i, m := range c.members {
		copy(y[c.offs[i]:c.offs[i+1]], m.augState())
	}
	return y
}

func (c *Coupled) rhs() integrators.RHS {
	return func(t float64, y []float64) []float64 {
		// Scatter the stage state first so member right-hand sides read
		// synchronized sibling values.
		for i, m := range c.members {
			m.setState(t, y[c.offs[i]:c.offs[i+1]])
		}
		dydt := make([]float64, len(y))
		for i, m := range c.members {
			seg := y[c.offs[i]:c.offs[i+1]]
			copy(dydt[c.offs[i]:c.offs[i+1]], m.odeFunc()(t, seg))
		}
		return dydt
	}
}

// rebuild re-gathers the members' state into a fresh joint stepper. It
// also serves as the members' reseed hook, so reconfiguring a member's
// boundary or initial values after coupling takes effect on the next step.
func (c *Coupled) rebuild() {
	opts := []integrators.Option{integrators.WithMaxStep(c.maxStep)}
	if c.method != nil {
		opts = append(opts, integrators.WithMethod(c.method))
	}
	if c.tol > 0 {
		opts = append(opts, integrators.WithTolerance(c.tol))
	}
	c.stepper = integrators.NewStepper(c.rhs(), c.T(), c.joint(), opts...)
}

func (c *Coupled) Desc() string { return c.desc }

// Observables returns the members in construction order.
func (c *Coupled) Observables() []Observable { return c.obs }

// Step advances the joint state to T()+dt, refreshing every member after
// each sub-step.
func (c *Coupled) Step(dt float64) error {
	return c.stepper.AdvanceTo(c.T()+dt, func(t float64, y []float64) {
		for i, m := range c.members {
			m.setState(t, y[c.offs[i]:c.offs[i+1]])
		}
	})
}

// Measure measures every member and returns the value vectors in member
// order.
func (c *Coupled) Measure() ([]Vector, error) {
	out := make([]Vector, len(c.obs))
	for i, o := range c.obs {
		v, err := o.Measure()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Reset resets every member to its configured initial state and rebuilds
// the joint integrator.
func (c *Coupled) Reset() error {
	for _, o := range c.obs {
		if err := o.Reset(); err != nil {
			return err
		}
	}
	c.rebuild()
	return nil
}

// T returns the first member's time; the joint integrator keeps all
// members synchronized.
func (c *Coupled) T() float64 { return c.obs[0].Time() }

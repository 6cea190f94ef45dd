package field

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ooblahman/graph-turbulence/internal/graph"
	"github.com/ooblahman/graph-turbulence/internal/integrators"
)

// RHS is a user-supplied right-hand side: the time derivative of the
// field's top-order block. It is evaluated against whatever state its
// closure reads, normally the field's own current values.
type RHS func(t float64) Vector

// core carries everything shared by the two field variants. E is the
// domain element type: vertex IDs for vertex fields, graph.Edge for edge
// fields.
type core[E comparable] struct {
	id   string
	desc string
	g    *graph.Graph
	kind Kind

	// Domain: element -> dense index, assigned once at construction.
	elems []E
	index map[E]int
	nbrs  [][]int

	y  Vector
	t  float64
	t0 float64

	y0     func(E) float64
	higher []func(E) float64

	rhs     RHS
	order   int
	maxStep float64
	ode     integrators.RHS

	dirichlet  map[E]float64
	neumann    map[E]float64
	fixedIdx   []int
	neumannVec Vector

	stepper *integrators.Stepper
	method  integrators.Method
	tol     float64

	tracked *core[E]
	trackAt func(E) float64
	coupled bool
	reseed  func()

	nonphysical func(Vector) bool

	render RenderParams
}

// initCore populates the domain and defaults. Variant constructors call it
// exactly once; elems is owned by the core afterwards.
func (c *core[E]) initCore(g *graph.Graph, kind Kind, s settings, elems []E) {
	c.id = uuid.NewString()
	c.desc = s.desc
	c.g = g
	c.kind = kind
	c.elems = elems
	c.index = make(map[E]int, len(elems))
	for i, x := range elems {
		c.index[x] = i
	}
	c.y = Zeros(len(elems))
	c.y0 = func(E) float64 { return 0 }
	c.order = 1
	c.dirichlet = make(map[E]float64)
	c.neumann = make(map[E]float64)
	c.neumannVec = Zeros(len(elems))
	c.method = s.method
	c.tol = s.tol
	c.render = DefaultRenderParams()
}

// ID returns the stable identifier used to key this field's plot in
// transport messages.
func (c *core[E]) ID() string { return c.id }

// Desc returns the human-readable label.
func (c *core[E]) Desc() string { return c.desc }

// Kind returns the domain variant.
func (c *core[E]) Kind() Kind { return c.kind }

// Graph returns the graph this field is defined on.
func (c *core[E]) Graph() *graph.Graph { return c.g }

// Len returns the domain size.
func (c *core[E]) Len() int { return len(c.elems) }

// Time returns the current simulation time.
func (c *core[E]) Time() float64 { return c.t }

// Values returns the current value vector. The slice is live; callers must
// not modify it.
func (c *core[E]) Values() Vector { return c.y }

// Elements returns the domain elements in index order. The slice is
// shared; callers must not modify it.
func (c *core[E]) Elements() []E { return c.elems }

// Index returns the dense index of a domain element.
func (c *core[E]) Index(x E) (int, bool) {
	i, ok := c.index[x]
	return i, ok
}

// NeighborIndices returns the indices coupled to index i under the
// variant's adjacency. The slice is shared; callers must not modify it.
func (c *core[E]) NeighborIndices(i int) []int { return c.nbrs[i] }

// Populate evaluates f at every domain element in index order. Pure: the
// field state is untouched.
func (c *core[E]) Populate(f func(E) float64) Vector {
	out := make(Vector, len(c.elems))
	for i, x := range c.elems {
		out[i] = f(x)
	}
	return out
}

// SetODE installs the right-hand side and (re)builds the stepping
// integrator from the current state. For orders above 1 the internal
// first-order system stacks order blocks of size Len, each block's
// derivative wired from the block above and the top block from f.
// Dirichlet-pinned indices never evolve in any block.
func (c *core[E]) SetODE(f RHS, opts ...ODEOption) error {
	if c.tracked != nil {
		return ErrTracking
	}
	cfg := newODEConfig(opts)
	if cfg.order < 1 {
		return fmt.Errorf("%w: got %d", ErrBadOrder, cfg.order)
	}
	c.rhs = f
	c.order = cfg.order
	c.maxStep = cfg.maxStep
	c.buildODE()
	c.rebuildStepper()
	return nil
}

func (c *core[E]) buildODE() {
	n := len(c.elems)
	order := c.order
	c.ode = func(t float64, y []float64) []float64 {
		// Scatter the stage's value block into the public state first, so
		// the user's closure reads stage-consistent values at every
		// integrator stage, not a snapshot from the last accepted step.
		copy(c.y, y[:n])
		dydt := make([]float64, len(y))
		for b := 0; b < order-1; b++ {
			copy(dydt[n*b:n*(b+1)], y[n*(b+1):n*(b+2)])
		}
		top := c.rhs(t)
		copy(dydt[n*(order-1):], top)
		for i := 0; i < n; i++ {
			dydt[n*(order-1)+i] += c.neumannVec[i]
		}
		for _, i := range c.fixedIdx {
			for b := 0; b < order; b++ {
				dydt[n*b+i] = 0
			}
		}
		return dydt
	}
}

// augmented assembles the order-stacked state vector from the current
// values and the stored higher-order initial conditions.
func (c *core[E]) augmented() []float64 {
	n := len(c.elems)
	aug := make([]float64, n*c.order)
	copy(aug, c.y)
	for b, f := range c.higher {
		if b+1 >= c.order {
			break
		}
		copy(aug[n*(b+1):n*(b+2)], c.Populate(f))
	}
	return aug
}

func (c *core[E]) stepperOpts() []integrators.Option {
	opts := []integrators.Option{integrators.WithMaxStep(c.maxStep)}
	if c.method != nil {
		opts = append(opts, integrators.WithMethod(c.method))
	}
	if c.tol > 0 {
		opts = append(opts, integrators.WithTolerance(c.tol))
	}
	return opts
}

func (c *core[E]) rebuildStepper() {
	if c.coupled {
		// The joint integrator owns the state; hand it the new
		// configuration so the next stage scatter does not undo it.
		c.stepper = nil
		if c.reseed != nil {
			c.reseed()
		}
		return
	}
	if c.rhs == nil {
		return
	}
	c.stepper = integrators.NewStepper(c.ode, c.t, c.augmented(), c.stepperOpts()...)
}

// track configures value mirroring from another field over a superset
// domain. contains and read come from the variant so that edge fields can
// match reversed orientations.
func (c *core[E]) track(other *core[E], contains func(E) bool, read func(E) float64) error {
	if c.rhs != nil || c.stepper != nil {
		return ErrHasODE
	}
	for _, x := range c.elems {
		if !contains(x) {
			return fmt.Errorf("%w: %v", ErrTrackDomain, x)
		}
	}
	c.tracked = other
	c.trackAt = read
	return nil
}

// SetInitial sets the initial time and value function and resets the
// current state to them. With an installed ODE of order k, exactly k-1
// higher-order initial-condition functions are required (velocity first).
func (c *core[E]) SetInitial(t0 float64, y0 func(E) float64, higher ...func(E) float64) error {
	if c.rhs != nil && len(higher) != c.order-1 {
		return fmt.Errorf("%w: %d provided but %d needed", ErrInitialCount, len(higher)+1, c.order)
	}
	c.t0 = t0
	c.t = t0
	c.y0 = y0
	c.y = c.Populate(y0)
	c.higher = higher
	c.applyDirichlet()
	c.rebuildStepper()
	return nil
}

func (c *core[E]) applyDirichlet() {
	for x, v := range c.dirichlet {
		c.y[c.index[x]] = v
	}
}

// SetBoundary installs Dirichlet and Neumann conditions. The key sets must
// be disjoint and inside the domain. Dirichlet values overwrite the state
// immediately; Neumann fluxes fold additively into the right-hand side.
func (c *core[E]) SetBoundary(dirichlet, neumann map[E]float64) error {
	for x := range dirichlet {
		if _, ok := neumann[x]; ok {
			return fmt.Errorf("%w: %v", ErrBoundaryOverlap, x)
		}
	}
	for x := range dirichlet {
		if _, ok := c.index[x]; !ok {
			return fmt.Errorf("%w: dirichlet %v", ErrNotInDomain, x)
		}
	}
	for x := range neumann {
		if _, ok := c.index[x]; !ok {
			return fmt.Errorf("%w: neumann %v", ErrNotInDomain, x)
		}
	}
	c.dirichlet = make(map[E]float64, len(dirichlet))
	for x, v := range dirichlet {
		c.dirichlet[x] = v
	}
	c.neumann = make(map[E]float64, len(neumann))
	for x, v := range neumann {
		c.neumann[x] = v
	}
	// Derived index sets follow domain order, not map iteration order.
	c.fixedIdx = c.fixedIdx[:0]
	c.neumannVec = Zeros(len(c.elems))
	for i, x := range c.elems {
		if v, ok := c.dirichlet[x]; ok {
			c.fixedIdx = append(c.fixedIdx, i)
			c.y[i] = v
		}
		if v, ok := c.neumann[x]; ok {
			c.neumannVec[i] = v
		}
	}
	c.rebuildStepper()
	return nil
}

// Boundary returns the constrained elements: Dirichlet first, then
// Neumann, each in domain order.
func (c *core[E]) Boundary() []E {
	out := make([]E, 0, len(c.dirichlet)+len(c.neumann))
	for _, x := range c.elems {
		if _, ok := c.dirichlet[x]; ok {
			out = append(out, x)
		}
	}
	for _, x := range c.elems {
		if _, ok := c.neumann[x]; ok {
			out = append(out, x)
		}
	}
	return out
}

// Step advances the stepping integrator to t+dt by repeated sub-steps,
// refreshing the public time and values after each one. A field without
// its own integrator (tracking, coupled, or unconfigured) is a no-op.
func (c *core[E]) Step(dt float64) error {
	if c.stepper == nil {
		return nil
	}
	n := len(c.elems)
	return c.stepper.AdvanceTo(c.t+dt, func(t float64, y []float64) {
		c.t = t
		copy(c.y, y[:n])
	})
}

// Measure refreshes the public state - from the integrator, or from the
// tracked field - checks the nonphysical predicate, and returns the value
// vector. The returned slice is live; callers must not modify it.
func (c *core[E]) Measure() (Vector, error) {
	if c.stepper != nil {
		c.t = c.stepper.T()
		copy(c.y, c.stepper.Y()[:len(c.elems)])
	} else if c.tracked != nil {
		c.t = c.tracked.t
		for i, x := range c.elems {
			c.y[i] = c.trackAt(x)
		}
	}
	if c.nonphysical != nil && c.nonphysical(c.y) {
		return nil, fmt.Errorf("%w: %q at t=%g", ErrNonphysical, c.desc, c.t)
	}
	return c.y, nil
}

// Integrate solves from t0 to tf in one shot, bypassing the stepping
// integrator, and leaves the state at the endpoint. Boundary and initial
// configuration are untouched. Only endpoint equivalence with Step-wise
// trajectories is guaranteed.
func (c *core[E]) Integrate(t0, tf float64) error {
	if c.ode == nil {
		return ErrNoODE
	}
	yf, err := integrators.Solve(c.ode, t0, tf, c.augmented(), c.stepperOpts()...)
	if err != nil {
		return err
	}
	c.t = tf
	copy(c.y, yf[:len(c.elems)])
	return nil
}

// Reset restores time, values, and boundary conditions to their originally
// configured state (or the tracked field's originals) and rebuilds the
// integrator. Idempotent.
func (c *core[E]) Reset() error {
	if c.tracked == nil {
		if err := c.SetInitial(c.t0, c.y0, c.higher...); err != nil {
			return err
		}
		return c.SetBoundary(c.dirichlet, c.neumann)
	}
	src := c.tracked
	if err := c.SetInitial(src.t0, src.y0); err != nil {
		return err
	}
	return c.SetBoundary(c.restrict(src.dirichlet), c.restrict(src.neumann))
}

// restrict filters a boundary map from a superset domain down to this
// field's own domain.
func (c *core[E]) restrict(m map[E]float64) map[E]float64 {
	out := make(map[E]float64)
	for x, v := range m {
		if _, ok := c.index[x]; ok {
			out[x] = v
		}
	}
	return out
}

// SetNonphysical installs the failure predicate checked by Measure.
func (c *core[E]) SetNonphysical(f func(Vector) bool) {
	c.nonphysical = f
}

// SetRender stores display hints for viewers.
func (c *core[E]) SetRender(p RenderParams) { c.render = p }

// Render returns the stored display hints.
func (c *core[E]) Render() RenderParams { return c.render }

// Coupling hooks used by Couple; see coupled.go.

func (c *core[E]) odeDim() int { return len(c.elems) * c.order }

func (c *core[E]) odeFunc() integrators.RHS { return c.ode }

func (c *core[E]) odeMaxStep() float64 { return c.maxStep }

func (c *core[E]) odeMethod() integrators.Method { return c.method }

func (c *core[E]) odeTol() float64 { return c.tol }

func (c *core[E]) setReseed(f func()) { c.reseed = f }

func (c *core[E]) odeReady() bool { return c.rhs != nil }

func (c *core[E]) augState() []float64 { return c.augmented() }

// setState scatters the top block of a jointly integrated state into the
// public values so sibling right-hand sides read synchronized data.
func (c *core[E]) setState(t float64, y []float64) {
	c.t = t
	copy(c.y, y[:len(c.elems)])
}

// detach hands time advancement to an enclosing coupled system.
func (c *core[E]) detach() {
	c.coupled = true
	c.stepper = nil
}

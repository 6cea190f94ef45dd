package field

import (
	"math"

	"github.com/ooblahman/graph-turbulence/internal/integrators"
)

// Kind distinguishes the two concrete field variants.
type Kind int

const (
	KindVertex Kind = iota
	KindEdge
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// RenderParams are opaque display hints passed through to viewers; the core
// never interprets them.
type RenderParams struct {
	Palette string
	Lo, Hi  float64
	ShowBar bool
}

// DefaultRenderParams matches the defaults viewers assume when a field
// carries none.
func DefaultRenderParams() RenderParams {
	return RenderParams{Palette: "fire", Lo: 0, Hi: 1, ShowBar: true}
}

type settings struct {
	desc          string
	method        integrators.Method
	tol           float64
	defaultWeight float64
	useEdgeWeight bool
}

// Option configures a field at construction.
type Option func(*settings)

// WithDesc sets the human-readable label carried into plots and transport.
func WithDesc(desc string) Option {
	return func(s *settings) { s.desc = desc }
}

// WithMethod selects the integration method for this field's stepper
// (default RK45).
func WithMethod(m integrators.Method) Option {
	return func(s *settings) { s.method = m }
}

// WithTolerance sets the local error tolerance for adaptive stepping.
func WithTolerance(tol float64) Option {
	return func(s *settings) { s.tol = tol }
}

// WithDefaultWeight sets the uniform coupling weight of a vertex field.
// Ignored by edge fields, whose coupling comes from the dual adjacency.
func WithDefaultWeight(w float64) Option {
	return func(s *settings) { s.defaultWeight = w }
}

// WithEdgeWeights makes a vertex field read coupling weights from the
// graph's per-edge weights instead of the uniform default. Ignored by edge
// fields.
func WithEdgeWeights() Option {
	return func(s *settings) { s.useEdgeWeight = true }
}

func newSettings(opts []Option) settings {
	s := settings{defaultWeight: 1.0}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ODE installation options.

type odeConfig struct {
	order   int
	maxStep float64
}

// ODEOption configures SetODE.
type ODEOption func(*odeConfig)

// Order sets the ODE order: 1 for first-order state, 2 for state+velocity,
// and so on.
func Order(k int) ODEOption {
	return func(c *odeConfig) { c.order = k }
}

// MaxStep caps the integrator's internal sub-step size.
func MaxStep(h float64) ODEOption {
	return func(c *odeConfig) { c.maxStep = h }
}

func newODEConfig(opts []ODEOption) odeConfig {
	c := odeConfig{order: 1, maxStep: math.Inf(1)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

package field

import (
	"fmt"

	"github.com/ooblahman/graph-turbulence/internal/graph"
)

// Observable is the capability surface shared by both field variants,
// consumed by systems, viewers, and transport.
type Observable interface {
	ID() string
	Desc() string
	Kind() Kind
	Graph() *graph.Graph
	Len() int
	Time() float64
	Values() Vector
	Render() RenderParams
	Step(dt float64) error
	Measure() (Vector, error)
	Reset() error
}

// Simulation is anything a viewer or transport layer can drive: a System
// or a Coupled group.
type Simulation interface {
	Desc() string
	Observables() []Observable
	Step(dt float64) error
	Measure() ([]Vector, error)
	Reset() error
	T() float64
}

// System aggregates observables sharing one graph into a single steppable,
// measurable unit. Members are integrated independently; right-hand sides
// that reference sibling values see them only as of the last completed
// sub-step. Use Couple when that staleness matters.
type System struct {
	desc string
	obs  []Observable
}

// NewSystem validates and wraps the given observables: at least one, at
// most one per kind, all on the same graph instance.
func NewSystem(desc string, obs ...Observable) (*System, error) {
	if err := validateMembers(obs); err != nil {
		return nil, err
	}
	return &System{desc: desc, obs: obs}, nil
}

func validateMembers(obs []Observable) error {
	if len(obs) == 0 {
		return ErrEmptySystem
	}
	seen := make(map[Kind]bool)
	for _, o := range obs {
		if seen[o.Kind()] {
			return fmt.Errorf("%w: %s", ErrDuplicateKind, o.Kind())
		}
		seen[o.Kind()] = true
		if o.Graph() != obs[0].Graph() {
			return ErrGraphMismatch
		}
	}
	return nil
}

func (s *System) Desc() string { return s.desc }

// Observables returns the members in construction order.
func (s *System) Observables() []Observable { return s.obs }

// Step advances every member by dt.
func (s *System) Step(dt float64) error {
	for _, o := range s.obs {
		if err := o.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

// Measure measures every member and returns the value vectors in member
// order.
func (s *System) Measure() ([]Vector, error) {
	out := make([]Vector, len(s.obs))
	for i, o := range s.obs {
		v, err := o.Measure()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Reset resets every member.
func (s *System) Reset() error {
	for _, o := range s.obs {
		if err := o.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// T returns the first member's time; members stay synchronized as long as
// they are stepped only through the system.
func (s *System) T() float64 { return s.obs[0].Time() }

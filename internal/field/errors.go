package field

import "errors"

// Precondition and runtime errors. Precondition violations surface at the
// call that makes them; there is no retry or silent recovery path.
var (
	// ErrBoundaryOverlap indicates Dirichlet and Neumann conditions on the
	// same element.
	ErrBoundaryOverlap = errors.New("field: dirichlet and neumann conditions overlap")

	// ErrNotInDomain indicates a boundary or lookup element outside the
	// field's domain.
	ErrNotInDomain = errors.New("field: element not in domain")

	// ErrTracking indicates an ODE installation on a field that tracks
	// another field.
	ErrTracking = errors.New("field: cannot install an ODE while tracking another field")

	// ErrHasODE indicates a tracking request on a field that already owns
	// an ODE.
	ErrHasODE = errors.New("field: cannot track another field while an ODE is installed")

	// ErrTrackDomain indicates the tracked field does not cover this
	// field's domain.
	ErrTrackDomain = errors.New("field: tracked field must cover this field's domain")

	// ErrBadOrder indicates an ODE order below 1.
	ErrBadOrder = errors.New("field: ode order must be at least 1")

	// ErrInitialCount indicates the wrong number of higher-order initial
	// conditions for the installed ODE order.
	ErrInitialCount = errors.New("field: wrong number of initial conditions")

	// ErrNoODE indicates an operation that requires an installed ODE.
	ErrNoODE = errors.New("field: no ODE installed")

	// ErrNonphysical indicates the nonphysical predicate rejected the
	// measured state; the run is over, callers may Reset and retry.
	ErrNonphysical = errors.New("field: non-physical solution")

	// ErrEmptySystem indicates a system constructed with no members.
	ErrEmptySystem = errors.New("field: system needs at least one observable")

	// ErrDuplicateKind indicates two observables of the same kind in one
	// system; coupling same-kinded fields is unsupported.
	ErrDuplicateKind = errors.New("field: multiple observables of the same kind in one system")

	// ErrGraphMismatch indicates system members on different graph
	// instances.
	ErrGraphMismatch = errors.New("field: all observables must share one graph instance")
)

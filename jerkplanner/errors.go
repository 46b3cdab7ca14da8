package jerkplanner

import "github.com/pkg/errors"

// QPError wraps a failure to produce a feasible, numerically sound jerk
// plan. Kind says how the solve failed: the active-set loop did not settle
// within its iteration limit (Infeasible); the KKT solve failed, or the
// solution contains NaN/Inf or fails the equality residual check
// (Numerical); or the caller passed a malformed problem (InvalidInput).
// Hard constraints with no common solution usually make the KKT solve
// fail, so they are mostly reported as Numerical, not Infeasible.
type QPError struct {
	Kind ErrorKind
	err  error
}

// ErrorKind enumerates the failure classes a JerkPlanner can report.
type ErrorKind int

const (
	// InvalidInput means the problem was malformed before solving began
	// (e.g. N <= 0, a constraint referencing an out-of-range timestep).
	InvalidInput ErrorKind = iota
	// Infeasible means the active-set loop did not settle within its
	// iteration limit. An infeasible problem is not detected as such; it
	// usually surfaces as Numerical through a failed KKT solve.
	Infeasible
	// Numerical means the KKT solve failed, the solver produced NaN/Inf,
	// or an equality residual exceeded tolerance after solving.
	Numerical
)

func (e *QPError) Error() string {
	return e.err.Error()
}

// Unwrap allows errors.Is/As to see through to the wrapped cause.
func (e *QPError) Unwrap() error {
	return e.err
}

func newQPError(kind ErrorKind, format string, args ...interface{}) *QPError {
	return &QPError{Kind: kind, err: errors.Errorf(format, args...)}
}

// Package walk assembles the Footsteps, Support, JerkPlanner and SwingFoot
// components into a single time-indexed Trajectory, and supports online
// replanning that preserves continuity with the trajectory already being
// tracked (spec.md §4.5).
package walk

import "github.com/pkg/errors"

// ErrorKind classifies a walk-package failure per spec.md §7.
type ErrorKind int

const (
	// InvalidInput covers empty supports, an unsupported replan entry
	// state, or an unknown side.
	InvalidInput ErrorKind = iota
	// LogicError marks an internal invariant violation (empty parts,
	// binary search on an empty list) — non-recoverable, indicates a bug
	// rather than bad input.
	LogicError
)

// Error wraps an InvalidInput or LogicError failure. Infeasible and
// Numerical failures are never wrapped here: planCoM passes on the error
// from jerkplanner.Planner.Plan as is, a jerkplanner.QPError carrying a
// message prefix added by Plan and reachable with errors.As, per
// spec.md §7 ("the WPG never catches a QP error").
type Error struct {
	Kind ErrorKind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

// Package swingfoot builds the 3-D trajectory flown by the airborne foot
// during a single support phase: smooth in x/y between the lift-off and
// landing placements, with a mid-flight apex in z. Two variants are
// provided, Cubic (fast, C1 continuous) and Quintic (smoother, C2
// continuous), sharing the contract described in spec.md §4.3.
package swingfoot

import (
	"github.com/golang/geo/r3"

	"github.com/rhoban/walkgen/splines"
)

// Trajectory is a parametric 3-D swing-foot path valid over [TStart, TEnd].
// Evaluation outside that interval clamps to the nearest endpoint.
type Trajectory struct {
	x, y   splines.Polynomial
	zLow   splines.Polynomial
	zHigh  splines.Polynomial
	apexT  float64
	tStart float64
	tEnd   float64
}

// TStart and TEnd return the trajectory's validity interval.
func (t Trajectory) TStart() float64 { return t.tStart }
func (t Trajectory) TEnd() float64   { return t.tEnd }

func (t Trajectory) zAt(time float64, deriv int) float64 {
	if time <= t.apexT {
		return t.zLow.Eval(time, deriv)
	}
	return t.zHigh.Eval(time, deriv)
}

// Pos returns the foot position at time t.
func (t Trajectory) Pos(time float64) r3.Vector {
	return r3.Vector{X: t.x.Pos(time), Y: t.y.Pos(time), Z: t.zAt(time, 0)}
}

// Vel returns the foot velocity at time t.
func (t Trajectory) Vel(time float64) r3.Vector {
	return r3.Vector{X: t.x.Vel(time), Y: t.y.Vel(time), Z: t.zAt(time, 1)}
}

// Params carries the tunable knobs shared by both swing-foot variants
// beyond the core (t_start, t_end, height, start, target) contract of
// spec.md §4.3. RiseRatio is a supplement from original_source (placo's
// walk_foot_rise_ratio): the fraction of the flight duration, measured from
// lift-off, at which the apex is reached. The spec.md description places
// the apex at mid-time, i.e. RiseRatio = 0.5, which is the zero-value
// default used by MakeTrajectory.
type Params struct {
	RiseRatio float64
}

func (p Params) apexRatio() float64 {
	if p.RiseRatio <= 0 || p.RiseRatio >= 1 {
		return 0.5
	}
	return p.RiseRatio
}

package swingfoot

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/rhoban/walkgen/splines"
)

// MakeTrajectory fits a cubic swing-foot trajectory from start to target
// over [tStart, tEnd]: x and y are a single cubic each, zero velocity at
// both ends; z is two cubics joined at the apex time (RiseRatio of the way
// through the flight, mid-flight by default) at height max(start.Z,
// target.Z)+height, with zero velocity at lift-off/landing and continuous
// position and velocity at the apex (see Params.RiseRatio for the
// supplemented rise-ratio knob; the zero-value Params{} reproduces
// spec.md's unparametrized mid-time apex).
func MakeTrajectory(tStart, tEnd, height float64, start, target r3.Vector) Trajectory {
	return MakeTrajectoryWithParams(tStart, tEnd, height, start, target, Params{})
}

// MakeTrajectoryWithParams is MakeTrajectory with an explicit Params.
func MakeTrajectoryWithParams(tStart, tEnd, height float64, start, target r3.Vector, params Params) Trajectory {
	apexT := tStart + (tEnd-tStart)*params.apexRatio()
	apexZ := math.Max(start.Z, target.Z) + height

	x, _ := splines.FitHermite(tStart, tEnd, []float64{start.X, 0}, []float64{target.X, 0})
	y, _ := splines.FitHermite(tStart, tEnd, []float64{start.Y, 0}, []float64{target.Y, 0})
	zLow, _ := splines.FitHermite(tStart, apexT, []float64{start.Z, 0}, []float64{apexZ, 0})
	zHigh, _ := splines.FitHermite(apexT, tEnd, []float64{apexZ, 0}, []float64{target.Z, 0})

	return Trajectory{x: x, y: y, zLow: zLow, zHigh: zHigh, apexT: apexT, tStart: tStart, tEnd: tEnd}
}

// MakeTrajectoryFromVelocity fits a single cubic per axis from (tStart,
// start, startVel) to (tEnd, target, 0) with no intermediate apex. This is
// a supplement from original_source (SwingFoot::make_trajectory_from_initial_velocity),
// used when a swing begins, or resumes mid-flight, from a state that is not
// itself at rest: RemakeTrajectory uses it directly, since by the time a
// swing is re-targeted mid-flight its z-profile no longer needs a fresh
// apex — the existing motion already carries whatever rise or descent was
// under way.
func MakeTrajectoryFromVelocity(tStart, tEnd float64, start, target, startVel r3.Vector) Trajectory {
	x, _ := splines.FitHermite(tStart, tEnd, []float64{start.X, startVel.X}, []float64{target.X, 0})
	y, _ := splines.FitHermite(tStart, tEnd, []float64{start.Y, startVel.Y}, []float64{target.Y, 0})
	z, _ := splines.FitHermite(tStart, tEnd, []float64{start.Z, startVel.Z}, []float64{target.Z, 0})

	return Trajectory{x: x, y: y, zLow: z, zHigh: z, apexT: tEnd, tStart: tStart, tEnd: tEnd}
}

// RemakeTrajectory re-fits a cubic swing trajectory using old's actual
// position and velocity at tNow as the new initial condition, landing at
// newTarget at old's unchanged TEnd. This preserves C1 continuity across a
// mid-flight replan (spec.md §4.3, §8 invariant 5): the foot does not jump
// or kink at the moment the landing placement is revised.
func RemakeTrajectory(old Trajectory, tNow float64, newTarget r3.Vector) Trajectory {
	pos := old.Pos(tNow)
	vel := old.Vel(tNow)
	return MakeTrajectoryFromVelocity(tNow, old.tEnd, pos, newTarget, vel)
}

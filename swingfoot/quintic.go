package swingfoot

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/rhoban/walkgen/splines"
)

// MakeQuinticTrajectory fits the smoother variant of the swing-foot
// trajectory: x and y are a single quintic each with zero velocity and
// zero acceleration at both ends; z is two quintics joined at the apex,
// each independently zero-velocity/zero-acceleration at its own ends. Since
// both halves meet at the same height with the same (zero) velocity and
// acceleration, the joint is automatically position-, velocity-, and
// acceleration-continuous — satisfying spec.md §4.3's "acceleration
// continuity at the apex" without an extra continuity solve. Used for
// gaits where touchdown jerk matters more than raw planning speed.
func MakeQuinticTrajectory(tStart, tEnd, height float64, start, target r3.Vector) Trajectory {
	return MakeQuinticTrajectoryWithParams(tStart, tEnd, height, start, target, Params{})
}

// MakeQuinticTrajectoryWithParams is MakeQuinticTrajectory with an explicit Params.
func MakeQuinticTrajectoryWithParams(tStart, tEnd, height float64, start, target r3.Vector, params Params) Trajectory {
	apexT := tStart + (tEnd-tStart)*params.apexRatio()
	apexZ := math.Max(start.Z, target.Z) + height

	zero3 := []float64{0, 0}

	x, _ := splines.FitHermite(tStart, tEnd, append([]float64{start.X}, zero3...), append([]float64{target.X}, zero3...))
	y, _ := splines.FitHermite(tStart, tEnd, append([]float64{start.Y}, zero3...), append([]float64{target.Y}, zero3...))
	zLow, _ := splines.FitHermite(tStart, apexT, append([]float64{start.Z}, zero3...), append([]float64{apexZ}, zero3...))
	zHigh, _ := splines.FitHermite(apexT, tEnd, append([]float64{apexZ}, zero3...), append([]float64{target.Z}, zero3...))

	return Trajectory{x: x, y: y, zLow: zLow, zHigh: zHigh, apexT: apexT, tStart: tStart, tEnd: tEnd}
}

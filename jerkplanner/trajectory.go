package jerkplanner

import (
	"math"

	"github.com/rhoban/walkgen/spatial"
)

// Trajectory is the solved piecewise-cubic CoM motion returned by
// Planner.Plan: within each timestep the jerk is constant, so position is
// a cubic, velocity a quadratic, and acceleration linear in the local
// time since the start of that timestep.
type Trajectory struct {
	dynX, dynY   *axisDynamics
	jerksX, jerksY []float64
	n            int
	dt           float64
	omega        float64
	tStart       float64
}

// TStart and TEnd return the trajectory's validity interval.
func (t *Trajectory) TStart() float64 { return t.tStart }
func (t *Trajectory) TEnd() float64   { return t.tStart + float64(t.n)*t.dt }
func (t *Trajectory) Omega() float64  { return t.omega }

// timestepAt clamps time into [0, TEnd], returning the timestep index k
// and the local time s since the start of that timestep.
func (t *Trajectory) timestepAt(time float64) (k int, s float64) {
	rel := time - t.tStart
	if rel < 0 {
		rel = 0
	}
	k = int(rel / t.dt)
	if k >= t.n {
		k = t.n - 1
	}
	if k < 0 {
		k = 0
	}
	s = rel - float64(k)*t.dt
	if s < 0 {
		s = 0
	}
	if s > t.dt {
		s = t.dt
	}
	return
}

func axisState(dyn *axisDynamics, jerks []float64, k int, s float64, deriv int) float64 {
	pos, vel, acc := dyn.state(k, jerks)
	jerk := 0.0
	if k < len(jerks) {
		jerk = jerks[k]
	}
	switch deriv {
	case 3:
		return jerk
	case 2:
		return acc + jerk*s
	case 1:
		return vel + acc*s + jerk*s*s/2
	default:
		return pos + vel*s + acc*s*s/2 + jerk*s*s*s/6
	}
}

func (t *Trajectory) axisValue(axis int, time float64, deriv int) float64 {
	k, s := t.timestepAt(time)
	if axis == 0 {
		return axisState(t.dynX, t.jerksX, k, s, deriv)
	}
	return axisState(t.dynY, t.jerksY, k, s, deriv)
}

// Pos, Vel, Acc and Jerk return the CoM's position, velocity,
// acceleration and jerk (x, y) at time.
func (t *Trajectory) Pos(time float64) spatial.Point2 {
	return spatial.Point2{X: t.axisValue(0, time, 0), Y: t.axisValue(1, time, 0)}
}
func (t *Trajectory) Vel(time float64) spatial.Point2 {
	return spatial.Point2{X: t.axisValue(0, time, 1), Y: t.axisValue(1, time, 1)}
}
func (t *Trajectory) Acc(time float64) spatial.Point2 {
	return spatial.Point2{X: t.axisValue(0, time, 2), Y: t.axisValue(1, time, 2)}
}
func (t *Trajectory) Jerk(time float64) spatial.Point2 {
	return spatial.Point2{X: t.axisValue(0, time, 3), Y: t.axisValue(1, time, 3)}
}

// ZMP returns the zero-moment point at time: pos - acc/omega^2.
func (t *Trajectory) ZMP(time float64) spatial.Point2 {
	pos, acc := t.Pos(time), t.Acc(time)
	w2 := t.omega * t.omega
	return spatial.Point2{X: pos.X - acc.X/w2, Y: pos.Y - acc.Y/w2}
}

// DCM returns the divergent component of motion at time: pos + vel/omega.
func (t *Trajectory) DCM(time float64) spatial.Point2 {
	pos, vel := t.Pos(time), t.Vel(time)
	return spatial.Point2{X: pos.X + vel.X/t.omega, Y: pos.Y + vel.Y/t.omega}
}

// StateAt returns the full (pos, vel, acc) state at time, useful for
// seeding a replanned Planner from a trajectory already in flight.
func (t *Trajectory) StateAt(time float64) (pos, vel, acc [2]float64) {
	pos = [2]float64{t.axisValue(0, time, 0), t.axisValue(1, time, 0)}
	vel = [2]float64{t.axisValue(0, time, 1), t.axisValue(1, time, 1)}
	acc = [2]float64{t.axisValue(0, time, 2), t.axisValue(1, time, 2)}
	return
}

// IsFinite reports whether every evaluated sample used to build this
// trajectory's jerks is finite; Plan already checks this, IsFinite lets
// callers re-verify after storing/transmitting a Trajectory.
func (t *Trajectory) IsFinite() bool {
	for _, v := range append(append([]float64{}, t.jerksX...), t.jerksY...) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

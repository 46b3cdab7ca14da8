// Package jerkplanner solves, for the CoM of a Linear Inverted Pendulum
// Model, the jerk sequence that minimizes jerk magnitude subject to
// position/velocity/acceleration/ZMP/DCM equality and support-polygon
// inequality constraints, per spec.md §4.4. It is a small hand-rolled QP
// built on gonum/mat rather than an imported QP library, grounded the
// same way the teacher's own Kalman filter (control/kalman_filter.go) is:
// hand-rolled numerics on top of gonum/mat, because no QP library appears
// anywhere in the retrieved corpus.
package jerkplanner

import (
	"github.com/pkg/errors"
)

// Planner assembles and solves one jerk-minimizing QP over a fixed
// horizon of N timesteps of duration dt, starting from initial CoM
// position/velocity/acceleration (p0, v0, a0), each an (x, y) pair.
type Planner struct {
	n     int
	dt    float64
	omega float64

	p0, v0, a0 [2]float64

	equalities []*EqualityConstraint
	polygons   []*PolygonConstraint
}

// NewPlanner creates a planner over n timesteps of duration dt, with LIPM
// natural frequency omega (see params.HumanoidParameters.Omega), starting
// from state (p0, v0, a0) for each of the x and y axes.
func NewPlanner(n int, dt, omega float64, p0, v0, a0 [2]float64) (*Planner, error) {
	if n <= 0 {
		return nil, newQPError(InvalidInput, "jerk planner: N must be positive, got %d", n)
	}
	if dt <= 0 {
		return nil, newQPError(InvalidInput, "jerk planner: dt must be positive, got %g", dt)
	}
	if omega <= 0 {
		return nil, newQPError(InvalidInput, "jerk planner: omega must be positive, got %g", omega)
	}
	return &Planner{n: n, dt: dt, omega: omega, p0: p0, v0: v0, a0: a0}, nil
}

// N and Dt report the planner's horizon.
func (p *Planner) N() int        { return p.n }
func (p *Planner) Dt() float64   { return p.dt }

func embed(coef []float64, n, offset int) []float64 {
	out := make([]float64, 2*n)
	copy(out[offset:offset+n], coef)
	return out
}

// Plan assembles the QP from the registered constraints and solves it,
// returning the resulting piecewise-cubic CoM trajectory. tStart anchors
// the returned Trajectory's time axis; callers pass the wall/plan time at
// which timestep 0 begins (spec.md §9's "anchored planCoM").
func (p *Planner) Plan(tStart float64) (*Trajectory, error) {
	for _, c := range p.equalities {
		if c.timestep < 0 || c.timestep > p.n {
			return nil, newQPError(InvalidInput, "jerk planner: equality constraint timestep %d out of range [0,%d]", c.timestep, p.n)
		}
	}
	for _, c := range p.polygons {
		if c.timestep < 0 || c.timestep > p.n {
			return nil, newQPError(InvalidInput, "jerk planner: polygon constraint timestep %d out of range [0,%d]", c.timestep, p.n)
		}
	}

	dynX := buildAxisDynamics(p.n, p.dt, p.p0[0], p.v0[0], p.a0[0])
	dynY := buildAxisDynamics(p.n, p.dt, p.p0[1], p.v0[1], p.a0[1])

	qp := newQPProblem(2 * p.n)

	for _, c := range p.equalities {
		coefX, constX := dynX.row(c.kind, c.timestep, p.omega)
		coefY, constY := dynY.row(c.kind, c.timestep, p.omega)
		rowX := linearRow{coef: embed(coefX, p.n, 0), b: constX - c.target[0]}
		rowY := linearRow{coef: embed(coefY, p.n, p.n), b: constY - c.target[1]}
		if c.mode == Soft {
			weight := c.weight
			if weight <= 0 {
				weight = 1
			}
			qp.addSoftCost(rowX, weight)
			qp.addSoftCost(rowY, weight)
		} else {
			qp.addHardEquality(rowX)
			qp.addHardEquality(rowY)
		}
	}

	for _, c := range p.polygons {
		coefX, constX := dynX.row(c.kind, c.timestep, p.omega)
		coefY, constY := dynY.row(c.kind, c.timestep, p.omega)
		for _, hs := range c.polygon.HalfSpaces() {
			a, b, cc := hs[0], hs[1], hs[2]
			full := make([]float64, 2*p.n)
			for i := 0; i < p.n; i++ {
				full[i] = a * coefX[i]
				full[p.n+i] = b * coefY[i]
			}
			qp.addInequality(linearRow{coef: full, b: a*constX + b*constY + cc - c.margin})
		}
	}

	x, err := qp.solve()
	if err != nil {
		return nil, errors.WithMessage(err, "jerk planner: plan")
	}

	return &Trajectory{
		dynX: dynX, dynY: dynY,
		jerksX: x[:p.n], jerksY: x[p.n:],
		n: p.n, dt: p.dt, omega: p.omega, tStart: tStart,
	}, nil
}

package swingfoot

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestMakeTrajectoryEndpoints(t *testing.T) {
	start := r3.Vector{X: 0, Y: 0, Z: 0}
	target := r3.Vector{X: 0.2, Y: 0.05, Z: 0}
	traj := MakeTrajectory(0, 0.3, 0.03, start, target)

	test.That(t, traj.TStart(), test.ShouldEqual, 0.0)
	test.That(t, traj.TEnd(), test.ShouldEqual, 0.3)

	p0 := traj.Pos(0)
	test.That(t, p0.X, test.ShouldAlmostEqual, start.X, 1e-9)
	test.That(t, p0.Y, test.ShouldAlmostEqual, start.Y, 1e-9)
	test.That(t, p0.Z, test.ShouldAlmostEqual, start.Z, 1e-9)

	p1 := traj.Pos(0.3)
	test.That(t, p1.X, test.ShouldAlmostEqual, target.X, 1e-9)
	test.That(t, p1.Y, test.ShouldAlmostEqual, target.Y, 1e-9)
	test.That(t, p1.Z, test.ShouldAlmostEqual, target.Z, 1e-9)

	v0 := traj.Vel(0)
	test.That(t, v0.X, test.ShouldAlmostEqual, 0, 1e-9)
	v1 := traj.Vel(0.3)
	test.That(t, v1.X, test.ShouldAlmostEqual, 0, 1e-9)
}

func TestMakeTrajectoryClearsApexHeight(t *testing.T) {
	start := r3.Vector{X: 0, Y: 0, Z: 0}
	target := r3.Vector{X: 0.2, Y: 0, Z: 0}
	traj := MakeTrajectory(0, 0.3, 0.03, start, target)

	apex := traj.Pos(0.15)
	test.That(t, apex.Z, test.ShouldAlmostEqual, 0.03, 1e-9)

	for _, tt := range []float64{0, 0.05, 0.1, 0.15, 0.2, 0.25, 0.3} {
		z := traj.Pos(tt).Z
		test.That(t, z, test.ShouldBeGreaterThan, -1e-9)
	}
}

func TestRemakeTrajectoryPreservesVelocity(t *testing.T) {
	start := r3.Vector{X: 0, Y: 0, Z: 0}
	target := r3.Vector{X: 0.2, Y: 0, Z: 0}
	old := MakeTrajectory(0, 0.3, 0.03, start, target)

	tNow := 0.1
	oldVel := old.Vel(tNow)
	oldPos := old.Pos(tNow)

	newTarget := r3.Vector{X: 0.25, Y: 0.02, Z: 0}
	fresh := RemakeTrajectory(old, tNow, newTarget)

	test.That(t, fresh.TStart(), test.ShouldEqual, tNow)
	test.That(t, fresh.TEnd(), test.ShouldEqual, old.TEnd())

	p0 := fresh.Pos(tNow)
	test.That(t, p0.X, test.ShouldAlmostEqual, oldPos.X, 1e-9)
	test.That(t, p0.Y, test.ShouldAlmostEqual, oldPos.Y, 1e-9)
	test.That(t, p0.Z, test.ShouldAlmostEqual, oldPos.Z, 1e-9)

	v0 := fresh.Vel(tNow)
	test.That(t, v0.X, test.ShouldAlmostEqual, oldVel.X, 1e-9)
	test.That(t, v0.Y, test.ShouldAlmostEqual, oldVel.Y, 1e-9)
	test.That(t, v0.Z, test.ShouldAlmostEqual, oldVel.Z, 1e-9)

	landing := fresh.Pos(fresh.TEnd())
	test.That(t, landing.X, test.ShouldAlmostEqual, newTarget.X, 1e-9)
	test.That(t, landing.Y, test.ShouldAlmostEqual, newTarget.Y, 1e-9)
}

func TestTrajectoryClampsOutsideInterval(t *testing.T) {
	traj := MakeTrajectory(1, 1.3, 0.03, r3.Vector{}, r3.Vector{X: 0.1})
	test.That(t, traj.Pos(0).X, test.ShouldAlmostEqual, traj.Pos(1).X, 1e-9)
	test.That(t, traj.Pos(5).X, test.ShouldAlmostEqual, traj.Pos(1.3).X, 1e-9)
}

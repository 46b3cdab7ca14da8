package walk

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/rhoban/walkgen/footsteps"
	"github.com/rhoban/walkgen/params"
	"github.com/rhoban/walkgen/spatial"
)

func testParameters() params.HumanoidParameters {
	return params.HumanoidParameters{
		SingleSupportDuration:      0.3,
		SingleSupportTimesteps:     6,
		DoubleSupportRatio:         0.2,
		StartEndDoubleSupportRatio: 0.5,
		PlannedTimesteps:           40,
		ReplanTimesteps:            6,

		FootWidth:         0.1,
		FootLength:        0.15,
		FeetSpacing:       0.15,
		WalkComHeight:     0.3,
		PendulumHeight:    0.3,
		WalkFootHeight:    0.03,
		WalkTrunkPitch:    0,
		WalkMaxDxForward:  0.08,
		WalkMaxDxBackward: 0.04,
		WalkMaxDy:         0.04,
		WalkMaxDtheta:     0.3,
		FootZmpTargetX:    0,
		FootZmpTargetY:    0,
		ZmpMargin:         0.01,
	}
}

func testSupports(p params.HumanoidParameters, steps int) []footsteps.Support {
	planner := footsteps.Planner{Parameters: p}
	r := footsteps.NewRepetitive(planner)
	r.Configure(0.05, 0, 0, steps)

	worldLeft := spatial.NewPoseFromYaw(r3.Vector{Y: p.FeetSpacing / 2}, 0)
	worldRight := spatial.NewPoseFromYaw(r3.Vector{Y: -p.FeetSpacing / 2}, 0)

	fs, err := r.Plan(footsteps.Right, worldLeft, worldRight)
	if err != nil {
		panic(err)
	}
	return footsteps.MakeSupports(fs, true, true, true)
}

func TestPlanProducesContiguousTrajectory(t *testing.T) {
	p := testParameters()
	supports := testSupports(p, 4)

	gen := New(p, nil)
	traj, err := gen.Plan(supports, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(traj.Parts), test.ShouldEqual, len(supports))

	for i := 1; i < len(traj.Parts); i++ {
		test.That(t, traj.Parts[i].TStart, test.ShouldAlmostEqual, traj.Parts[i-1].TEnd, 1e-9)
	}
	test.That(t, traj.Parts[0].TStart, test.ShouldAlmostEqual, traj.TStart, 1e-9)
	test.That(t, traj.Parts[len(traj.Parts)-1].TEnd, test.ShouldAlmostEqual, traj.TEnd, 1e-9)
}

func TestPlanEmptySupportsErrors(t *testing.T) {
	gen := New(testParameters(), nil)
	_, err := gen.Plan(nil, 0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlanFeetStayOnGroundWhenNotFlying(t *testing.T) {
	p := testParameters()
	supports := testSupports(p, 4)

	gen := New(p, nil)
	traj, err := gen.Plan(supports, 0)
	test.That(t, err, test.ShouldBeNil)

	for _, part := range traj.Parts {
		if part.HasSwing {
			continue
		}
		left, err := traj.GetTWorldLeft(part.TStart)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, left.Translation().Z, test.ShouldAlmostEqual, 0, 1e-9)
		right, err := traj.GetTWorldRight(part.TStart)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, right.Translation().Z, test.ShouldAlmostEqual, 0, 1e-9)
	}
}

func TestPlanSwingFootLeavesGroundMidFlight(t *testing.T) {
	p := testParameters()
	supports := testSupports(p, 4)

	gen := New(p, nil)
	traj, err := gen.Plan(supports, 0)
	test.That(t, err, test.ShouldBeNil)

	found := false
	for _, part := range traj.Parts {
		if !part.HasSwing {
			continue
		}
		found = true
		mid := (part.TStart + part.TEnd) / 2
		var frame spatial.Pose
		if part.FlyingSide == footsteps.Left {
			frame, err = traj.GetTWorldLeft(mid)
		} else {
			frame, err = traj.GetTWorldRight(mid)
		}
		test.That(t, err, test.ShouldBeNil)
		test.That(t, frame.Translation().Z, test.ShouldBeGreaterThan, 0)
	}
	test.That(t, found, test.ShouldBeTrue)
}

func TestReplanPreservesContinuity(t *testing.T) {
	p := testParameters()
	supports := testSupports(p, 6)

	gen := New(p, nil)
	traj, err := gen.Plan(supports, 0)
	test.That(t, err, test.ShouldBeNil)

	// pick a replan time inside the plan, not at its very start or end.
	tReplan := traj.TStart + (traj.TEnd-traj.TStart)*0.3

	newSupports := testSupports(p, 6)
	replanned, err := gen.Replan(newSupports, traj, tReplan)
	test.That(t, err, test.ShouldBeNil)

	anchor, err := traj.GetPartTStart(tReplan)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, replanned.TStart, test.ShouldAlmostEqual, anchor, 1e-9)

	oldPos := traj.GetPWorldCoM(anchor)
	newPos := replanned.GetPWorldCoM(replanned.TStart)
	test.That(t, newPos.X, test.ShouldAlmostEqual, oldPos.X, 1e-6)
	test.That(t, newPos.Y, test.ShouldAlmostEqual, oldPos.Y, 1e-6)
}

func TestApplyTransformTranslatesQueries(t *testing.T) {
	p := testParameters()
	supports := testSupports(p, 4)

	gen := New(p, nil)
	traj, err := gen.Plan(supports, 0)
	test.That(t, err, test.ShouldBeNil)

	before := traj.GetPWorldCoM(traj.TStart)
	traj.ApplyTransform(spatial.NewPoseFromYaw(r3.Vector{X: 1, Y: 2, Z: 0}, 0))
	after := traj.GetPWorldCoM(traj.TStart)

	test.That(t, after.X, test.ShouldAlmostEqual, before.X+1, 1e-9)
	test.That(t, after.Y, test.ShouldAlmostEqual, before.Y+2, 1e-9)
}

func TestCanReplanSupportsFalseOnLastSupport(t *testing.T) {
	p := testParameters()
	supports := testSupports(p, 4)
	gen := New(p, nil)
	traj, err := gen.Plan(supports, 0)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, gen.CanReplanSupports(traj, traj.TEnd), test.ShouldBeFalse)
}

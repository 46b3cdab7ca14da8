package footsteps

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/rhoban/walkgen/params"
	"github.com/rhoban/walkgen/spatial"
)

func testRepetitivePlanner() Planner {
	return Planner{Parameters: params.HumanoidParameters{
		FootWidth:         0.1,
		FootLength:        0.2,
		FeetSpacing:       0.15,
		WalkMaxDxForward:  0.08,
		WalkMaxDxBackward: 0.04,
		WalkMaxDy:         0.04,
		WalkMaxDtheta:     0.3,
	}}
}

func TestRepetitivePlanStepCount(t *testing.T) {
	r := NewRepetitive(testRepetitivePlanner())
	r.Configure(0.05, 0, 0, 4)

	worldLeft := spatial.NewPoseFromYaw(r3.Vector{Y: 0.075}, 0)
	worldRight := spatial.NewPoseFromYaw(r3.Vector{Y: -0.075}, 0)

	steps, err := r.Plan(Right, worldLeft, worldRight)
	test.That(t, err, test.ShouldBeNil)
	// 2 initial footsteps + (Steps-1) commanded + 1 closing footstep
	test.That(t, len(steps), test.ShouldEqual, 2+(r.Steps-1)+1)
}

func TestRepetitivePlanAlternatesSides(t *testing.T) {
	r := NewRepetitive(testRepetitivePlanner())
	r.Configure(0.05, 0, 0, 3)

	worldLeft := spatial.NewPoseFromYaw(r3.Vector{Y: 0.075}, 0)
	worldRight := spatial.NewPoseFromYaw(r3.Vector{Y: -0.075}, 0)

	steps, err := r.Plan(Left, worldLeft, worldRight)
	test.That(t, err, test.ShouldBeNil)
	for i := 1; i < len(steps); i++ {
		test.That(t, steps[i].Side, test.ShouldEqual, steps[i-1].Side.Other())
	}
}

func TestRepetitivePlanZeroStepsReturnsOnlyInitialFootsteps(t *testing.T) {
	r := NewRepetitive(testRepetitivePlanner())
	r.Configure(0.05, 0, 0, 0)

	worldLeft := spatial.NewPoseFromYaw(r3.Vector{Y: 0.075}, 0)
	worldRight := spatial.NewPoseFromYaw(r3.Vector{Y: -0.075}, 0)

	steps, err := r.Plan(Right, worldLeft, worldRight)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(steps), test.ShouldEqual, 2)
}

func TestRepetitivePlanFinalFootstepIsNeutral(t *testing.T) {
	r := NewRepetitive(testRepetitivePlanner())
	r.Configure(0.05, 0.01, 0.02, 2)

	worldLeft := spatial.NewPoseFromYaw(r3.Vector{Y: 0.075}, 0)
	worldRight := spatial.NewPoseFromYaw(r3.Vector{Y: -0.075}, 0)

	steps, err := r.Plan(Right, worldLeft, worldRight)
	test.That(t, err, test.ShouldBeNil)

	last := steps[len(steps)-1]
	secondLast := steps[len(steps)-2]
	expected := r.ClippedNeutralOppositeFootstep(secondLast, 0, 0, 0)
	test.That(t, last.Frame.Translation().X, test.ShouldAlmostEqual, expected.Frame.Translation().X, 1e-9)
	test.That(t, last.Frame.Translation().Y, test.ShouldAlmostEqual, expected.Frame.Translation().Y, 1e-9)
}

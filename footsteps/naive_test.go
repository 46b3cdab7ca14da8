package footsteps

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/rhoban/walkgen/params"
	"github.com/rhoban/walkgen/spatial"
)

func TestNaivePlanReachesTarget(t *testing.T) {
	p := Planner{Parameters: params.HumanoidParameters{
		FootWidth:         0.1,
		FootLength:        0.2,
		FeetSpacing:       0.15,
		WalkMaxDxForward:  0.08,
		WalkMaxDxBackward: 0.04,
		WalkMaxDy:         0.04,
		WalkMaxDtheta:     0.3,
	}}
	n := NewNaive(p, DefaultNaiveConfig())

	targetLeft := spatial.NewPoseFromYaw(r3.Vector{X: 1, Y: 0.075}, 0)
	targetRight := spatial.NewPoseFromYaw(r3.Vector{X: 1, Y: -0.075}, 0)
	n.Configure(targetLeft, targetRight)

	worldLeft := spatial.NewPoseFromYaw(r3.Vector{Y: 0.075}, 0)
	worldRight := spatial.NewPoseFromYaw(r3.Vector{Y: -0.075}, 0)

	steps, err := n.Plan(Right, worldLeft, worldRight)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(steps), test.ShouldBeGreaterThan, 2)

	last := steps[len(steps)-1]
	secondLast := steps[len(steps)-2]
	var lastLeft, lastRight Footstep
	if last.Side == Left {
		lastLeft, lastRight = last, secondLast
	} else {
		lastLeft, lastRight = secondLast, last
	}
	test.That(t, lastLeft.Frame.Translation().X, test.ShouldAlmostEqual, targetLeft.Translation().X, 0.1)
	test.That(t, lastRight.Frame.Translation().X, test.ShouldAlmostEqual, targetRight.Translation().X, 0.1)
}

func TestNaivePlanStartsWithFlyingSide(t *testing.T) {
	p := Planner{Parameters: params.HumanoidParameters{
		FootWidth:  0.1,
		FootLength: 0.2,
	}}
	n := NewNaive(p, DefaultNaiveConfig())
	n.Configure(spatial.Identity(), spatial.Identity())

	steps, err := n.Plan(Left, spatial.Identity(), spatial.Identity())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, steps[0].Side, test.ShouldEqual, Left)
	test.That(t, steps[1].Side, test.ShouldEqual, Right)
}

func TestNaivePlanBoundedByMaxSteps(t *testing.T) {
	p := Planner{Parameters: params.HumanoidParameters{
		FootWidth:  0.1,
		FootLength: 0.2,
	}}
	config := DefaultNaiveConfig()
	config.MaxSteps = 3
	n := NewNaive(p, config)

	// an unreachable target (accessibility window never satisfied) exercises
	// the MaxSteps bound rather than convergence.
	n.Configure(spatial.NewPoseFromYaw(r3.Vector{X: 100}, 0), spatial.NewPoseFromYaw(r3.Vector{X: 100}, 0))
	steps, err := n.Plan(Left, spatial.Identity(), spatial.Identity())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(steps), test.ShouldEqual, 2+config.MaxSteps)
}

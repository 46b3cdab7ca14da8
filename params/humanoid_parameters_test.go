package params

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func testParameters() HumanoidParameters {
	return HumanoidParameters{
		SingleSupportDuration:      1.0,
		SingleSupportTimesteps:     10,
		DoubleSupportRatio:         0.2,
		StartEndDoubleSupportRatio: 0.5,
		PlannedTimesteps:           40,
		ReplanTimesteps:            10,

		FootWidth:         0.1,
		FootLength:        0.2,
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

func TestDerivedTiming(t *testing.T) {
	p := testParameters()
	test.That(t, p.Dt(), test.ShouldAlmostEqual, 0.1, 1e-12)
	test.That(t, p.Omega(), test.ShouldAlmostEqual, math.Sqrt(9.80665/0.3), 1e-9)
	test.That(t, p.DoubleSupportDuration(), test.ShouldAlmostEqual, 0.2, 1e-12)
	test.That(t, p.StartEndDoubleSupportDuration(), test.ShouldAlmostEqual, 0.5, 1e-12)
	test.That(t, p.DoubleSupportTimesteps(), test.ShouldEqual, 2)
	test.That(t, p.StartEndDoubleSupportTimesteps(), test.ShouldEqual, 5)
	test.That(t, p.HasDoubleSupport(), test.ShouldBeTrue)
}

func TestHasDoubleSupportFalse(t *testing.T) {
	p := testParameters()
	p.DoubleSupportRatio = 0
	test.That(t, p.HasDoubleSupport(), test.ShouldBeFalse)
}

func TestOmegaZeroHeight(t *testing.T) {
	p := testParameters()
	p.PendulumHeight = 0
	test.That(t, p.Omega(), test.ShouldEqual, 0.0)
}

func TestEllipsoidClipInsideUnchanged(t *testing.T) {
	p := testParameters()
	step := Step{Dx: 0.01, Dy: 0.01, Dtheta: 0.05}
	clipped := p.EllipsoidClip(step)
	test.That(t, clipped.Dx, test.ShouldAlmostEqual, step.Dx, 1e-12)
	test.That(t, clipped.Dy, test.ShouldAlmostEqual, step.Dy, 1e-12)
	test.That(t, clipped.Dtheta, test.ShouldAlmostEqual, step.Dtheta, 1e-12)
}

func TestEllipsoidClipOutsideIsScaledToBoundary(t *testing.T) {
	p := testParameters()
	step := Step{Dx: 1, Dy: 1, Dtheta: 1}
	clipped := p.EllipsoidClip(step)

	x := clipped.Dx / p.WalkMaxDxForward
	y := clipped.Dy / p.WalkMaxDy
	z := clipped.Dtheta / p.WalkMaxDtheta
	norm := math.Sqrt(x*x + y*y + z*z)
	test.That(t, norm, test.ShouldAlmostEqual, 1, 1e-9)
}

func TestEllipsoidClipUsesBackwardMaxForNegativeDx(t *testing.T) {
	p := testParameters()
	step := Step{Dx: -1, Dy: 0, Dtheta: 0}
	clipped := p.EllipsoidClip(step)
	test.That(t, clipped.Dx, test.ShouldAlmostEqual, -p.WalkMaxDxBackward, 1e-9)
}

func TestValidateRejectsNonPositive(t *testing.T) {
	p := testParameters()
	p.FootWidth = 0
	err := p.Validate()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidateAcceptsGoodParameters(t *testing.T) {
	p := testParameters()
	test.That(t, p.Validate(), test.ShouldBeNil)
}

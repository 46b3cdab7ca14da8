// Package params defines HumanoidParameters, the immutable bundle of timing
// and geometry constants shared read-only by every other component of the
// walk pattern generator.
package params

import (
	"math"

	"github.com/pkg/errors"
)

const gravity = 9.80665

// HumanoidParameters is a plain value object; every derived quantity below
// is recomputed on each read, matching the teacher's plain-struct-plus-
// accessor-methods shape (see _teacher_copy/control/constant.go) and
// spec.md §6 ("a single HumanoidParameters value filled in-memory; every
// derived quantity is recomputed on each read"). It is never mutated after
// being handed to a planner: every component that holds one stores it by
// value.
type HumanoidParameters struct {
	// Timing
	SingleSupportDuration      float64
	SingleSupportTimesteps     int
	DoubleSupportRatio         float64
	StartEndDoubleSupportRatio float64
	PlannedTimesteps           int
	ReplanTimesteps            int

	// Geometry
	FootWidth         float64
	FootLength        float64
	FeetSpacing       float64
	WalkComHeight     float64
	PendulumHeight    float64
	WalkFootHeight    float64
	WalkTrunkPitch    float64
	WalkMaxDxForward  float64
	WalkMaxDxBackward float64
	WalkMaxDy         float64
	WalkMaxDtheta     float64
	FootZmpTargetX    float64
	FootZmpTargetY    float64
	ZmpMargin         float64
}

// Dt returns the planning timestep, derived from the single support
// duration split into single_support_timesteps steps.
func (p HumanoidParameters) Dt() float64 {
	return p.SingleSupportDuration / float64(p.SingleSupportTimesteps)
}

// Omega returns the LIPM natural frequency sqrt(g/h).
func (p HumanoidParameters) Omega() float64 {
	if p.PendulumHeight <= 0 {
		return 0
	}
	return math.Sqrt(gravity / p.PendulumHeight)
}

// DoubleSupportDuration returns the duration, in seconds, of a double
// support phase that is neither the first nor the last of a plan.
func (p HumanoidParameters) DoubleSupportDuration() float64 {
	return p.DoubleSupportRatio * p.SingleSupportDuration
}

// StartEndDoubleSupportDuration returns the duration, in seconds, of the
// double support phase at the very start or end of a plan.
func (p HumanoidParameters) StartEndDoubleSupportDuration() float64 {
	return p.StartEndDoubleSupportRatio * p.SingleSupportDuration
}

// DoubleSupportTimesteps returns DoubleSupportDuration in units of Dt.
func (p HumanoidParameters) DoubleSupportTimesteps() int {
	return int(math.Round(p.DoubleSupportRatio * float64(p.SingleSupportTimesteps)))
}

// StartEndDoubleSupportTimesteps returns StartEndDoubleSupportDuration in
// units of Dt.
func (p HumanoidParameters) StartEndDoubleSupportTimesteps() int {
	return int(math.Round(p.StartEndDoubleSupportRatio * float64(p.SingleSupportTimesteps)))
}

// HasDoubleSupport reports whether this parameter set produces any double
// support phase at all.
func (p HumanoidParameters) HasDoubleSupport() bool {
	return p.DoubleSupportTimesteps() > 0
}

// SingleSupportTimestepsCount is an alias kept for readability at call
// sites that enumerate a support's timestep count (see walk's timestepsFor).
func (p HumanoidParameters) SingleSupportTimestepsCount() int {
	return p.SingleSupportTimesteps
}

// Step is a planar footstep displacement command (dx, dy, dtheta).
type Step struct {
	Dx, Dy, Dtheta float64
}

// EllipsoidClip divides each axis of step by its corresponding maximum
// (choosing the forward or backward max for Dx based on its sign), then, if
// the resulting norm exceeds 1, rescales it to 1, then undoes the per-axis
// scaling. The result always lies inside or on the parameter ellipsoid and
// equals the input whenever the input already did.
func (p HumanoidParameters) EllipsoidClip(step Step) Step {
	dxMax := p.WalkMaxDxForward
	if step.Dx < 0 {
		dxMax = p.WalkMaxDxBackward
	}
	if dxMax == 0 {
		dxMax = 1
	}
	dyMax := p.WalkMaxDy
	if dyMax == 0 {
		dyMax = 1
	}
	dthetaMax := p.WalkMaxDtheta
	if dthetaMax == 0 {
		dthetaMax = 1
	}

	x := step.Dx / dxMax
	y := step.Dy / dyMax
	z := step.Dtheta / dthetaMax

	norm := math.Sqrt(x*x + y*y + z*z)
	if norm > 1 {
		x /= norm
		y /= norm
		z /= norm
	}

	return Step{
		Dx:     x * dxMax,
		Dy:     y * dyMax,
		Dtheta: z * dthetaMax,
	}
}

// Validate returns an error if any field required to be strictly positive
// is not, so that a misconfigured HumanoidParameters fails fast instead of
// producing NaN/Inf deep inside the QP. This check has no counterpart in
// original_source (plain public fields there); it is a supplemented safety
// net appropriate for a library consumed outside its own planner.
func (p HumanoidParameters) Validate() error {
	type positive struct {
		name  string
		value float64
	}
	required := []positive{
		{"SingleSupportDuration", p.SingleSupportDuration},
		{"PendulumHeight", p.PendulumHeight},
		{"FootWidth", p.FootWidth},
		{"FootLength", p.FootLength},
		{"FeetSpacing", p.FeetSpacing},
		{"WalkComHeight", p.WalkComHeight},
	}
	for _, r := range required {
		if r.value <= 0 {
			return errors.Errorf("humanoid parameters: %s must be positive, got %v", r.name, r.value)
		}
	}
	if p.SingleSupportTimesteps <= 0 {
		return errors.Errorf("humanoid parameters: SingleSupportTimesteps must be positive, got %d", p.SingleSupportTimesteps)
	}
	if p.PlannedTimesteps <= 0 {
		return errors.Errorf("humanoid parameters: PlannedTimesteps must be positive, got %d", p.PlannedTimesteps)
	}
	return nil
}

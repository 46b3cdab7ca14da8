package footsteps

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/rhoban/walkgen/spatial"
)

// NaiveConfig holds the accessibility-window and arrival tuning that the
// Naive strategy needs beyond HumanoidParameters (spec.md §4.2, §9
// "Shared parameters object" — these are the strategy's own knobs, not
// part of the shared immutable parameters record).
type NaiveConfig struct {
	MaxSteps            int
	AccessibilityWidth  float64
	AccessibilityLength float64
	AccessibilityYaw    float64
	PlaceThreshold      float64
}

// DefaultNaiveConfig returns the values used by the original implementation.
func DefaultNaiveConfig() NaiveConfig {
	return NaiveConfig{
		MaxSteps:            100,
		AccessibilityWidth:  0.025,
		AccessibilityLength: 0.08,
		AccessibilityYaw:    0.2,
		PlaceThreshold:      0.5,
	}
}

// Naive is the goal-seeking footsteps strategy: an open-loop greedy policy
// that walks each foot toward its target one step at a time, rescaling the
// per-step error into an accessibility box and switching between
// bearing-toward-target and orientation-matching yaw depending on
// distance to the target (spec.md §4.2).
type Naive struct {
	Planner
	Config                  NaiveConfig
	TargetLeft, TargetRight spatial.Pose
}

// NewNaive builds a Naive strategy. Call Configure before Plan.
func NewNaive(planner Planner, config NaiveConfig) *Naive {
	if config.MaxSteps <= 0 {
		config = DefaultNaiveConfig()
	}
	return &Naive{Planner: planner, Config: config}
}

// Configure sets the target left/right foot placements to walk toward.
func (n *Naive) Configure(targetLeft, targetRight spatial.Pose) {
	n.TargetLeft = targetLeft
	n.TargetRight = targetRight
}

// Plan implements Strategy.
func (n *Naive) Plan(flyingSide Side, worldLeft, worldRight spatial.Pose) ([]Footstep, error) {
	worldTarget := spatial.AveragePoses(n.TargetLeft, n.TargetRight, 0.5)

	currentLeft, currentRight := worldLeft, worldRight
	currentSide := flyingSide

	var footsteps []Footstep
	push := func(side Side, frame spatial.Pose) {
		footsteps = append(footsteps, NewFootstep(side, frame, n.Parameters.FootWidth, n.Parameters.FootLength))
	}

	frameFor := func(side Side) spatial.Pose {
		if side == Left {
			return currentLeft
		}
		return currentRight
	}

	push(currentSide, frameFor(currentSide))
	currentSide = currentSide.Other()
	push(currentSide, frameFor(currentSide))

	leftArrived, rightArrived := false, false
	steps := 0

	for (!leftArrived || !rightArrived) && steps < n.Config.MaxSteps {
		steps++
		arrived := true

		worldSupport := frameFor(currentSide)

		oppositeTarget := n.TargetLeft
		if currentSide == Left {
			oppositeTarget = n.TargetRight
		}
		supportTarget := worldSupport.Inverse().Compose(oppositeTarget)
		targetTranslation := supportTarget.Translation()
		targetTranslation.Z = 0

		spacingSign := -1.0
		if currentSide == Right {
			spacingSign = 1.0
		}
		floatingIdle := r3.Vector{Y: spacingSign * n.Parameters.FeetSpacing}
		center := r3.Vector{Y: spacingSign * n.Parameters.FeetSpacing / 2}

		errX := targetTranslation.X - floatingIdle.X
		errY := targetTranslation.Y - floatingIdle.Y

		rescale := 1.0
		al, aw := n.Config.AccessibilityLength, n.Config.AccessibilityWidth
		if errX < -al {
			rescale = math.Min(rescale, -al/errX)
			arrived = false
		}
		if errX > al {
			rescale = math.Min(rescale, al/errX)
			arrived = false
		}
		if errY < -aw {
			rescale = math.Min(rescale, -aw/errY)
			arrived = false
		}
		if errY > aw {
			rescale = math.Min(rescale, aw/errY)
			arrived = false
		}

		dist := math.Hypot(errX, errY)
		errX *= rescale
		errY *= rescale

		var errYaw float64
		if dist > n.Config.PlaceThreshold {
			targetInSupport := worldSupport.Inverse().Compose(worldTarget).Translation()
			errYaw = math.Atan2(targetInSupport.Y-center.Y, targetInSupport.X-center.X)
		} else {
			errYaw = supportTarget.Yaw()
		}

		ay := n.Config.AccessibilityYaw
		if errYaw < -ay {
			arrived = false
			errYaw = -ay
		}
		if errYaw > ay {
			arrived = false
			errYaw = ay
		}

		newStep := spatial.NewPoseFromYaw(r3.Vector{X: floatingIdle.X + errX, Y: floatingIdle.Y + errY, Z: 0}, errYaw)
		landingFrame := worldSupport.Compose(newStep)
		landingSide := currentSide.Other()
		push(landingSide, landingFrame)

		if currentSide == Left {
			rightArrived = arrived
			currentRight = landingFrame
			currentSide = Right
		} else {
			leftArrived = arrived
			currentLeft = landingFrame
			currentSide = Left
		}
	}

	return footsteps, nil
}

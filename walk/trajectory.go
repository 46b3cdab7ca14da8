package walk

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"

	"github.com/rhoban/walkgen/footsteps"
	"github.com/rhoban/walkgen/jerkplanner"
	"github.com/rhoban/walkgen/params"
	"github.com/rhoban/walkgen/spatial"
	"github.com/rhoban/walkgen/splines"
	"github.com/rhoban/walkgen/swingfoot"
)

// TrajectoryPart is one contiguous interval of a Trajectory: the support
// active during it, and, for a single support, the swing trajectory of
// the flying foot. Parts are contiguous and non-overlapping (spec.md §3).
type TrajectoryPart struct {
	Support         footsteps.Support
	HasSwing        bool
	FlyingSide      footsteps.Side
	SwingTrajectory swingfoot.Trajectory
	TStart, TEnd    float64
}

// Trajectory is the full time-indexed plan produced by a WalkPatternGenerator:
// ordered parts, the supports they were built from, the CoM motion, and the
// per-side/trunk yaw splines, queryable at any time in [TStart, TEnd].
type Trajectory struct {
	Parts      []TrajectoryPart
	Supports   []footsteps.Support
	CoM        *jerkplanner.Trajectory
	LeftYaw    splines.AngleSpline
	RightYaw   splines.AngleSpline
	TrunkYaw   splines.AngleSpline
	ComHeight  float64
	TrunkPitch float64
	TStart     float64
	TEnd       float64

	JerkPlannerTimesteps int
	Parameters           params.HumanoidParameters

	worldTransform spatial.Pose
}

func newTrajectory(parameters params.HumanoidParameters, tStart float64) *Trajectory {
	return &Trajectory{
		Parameters:     parameters,
		ComHeight:      parameters.WalkComHeight,
		TrunkPitch:     parameters.WalkTrunkPitch,
		TStart:         tStart,
		worldTransform: spatial.Identity(),
	}
}

func (t *Trajectory) partIndexAt(time float64) (int, error) {
	if len(t.Parts) == 0 {
		return 0, newError(LogicError, "walk: trajectory has no parts")
	}
	idx := sort.Search(len(t.Parts), func(i int) bool {
		return t.Parts[i].TEnd >= time
	})
	if idx >= len(t.Parts) {
		idx = len(t.Parts) - 1
	}
	return idx, nil
}

// PartContaining returns the part whose interval contains time, clamping
// to the nearest part outside [TStart, TEnd].
func (t *Trajectory) PartContaining(time float64) (*TrajectoryPart, error) {
	idx, err := t.partIndexAt(time)
	if err != nil {
		return nil, err
	}
	return &t.Parts[idx], nil
}

// GetPartTStart returns the start time of the part containing time.
func (t *Trajectory) GetPartTStart(time float64) (float64, error) {
	part, err := t.PartContaining(time)
	if err != nil {
		return 0, err
	}
	return part.TStart, nil
}

// GetSupport, GetNextSupport and GetPrevSupport return the support active
// at time, the one after it, and the one before it (clamped at the ends).
func (t *Trajectory) GetSupport(time float64) (footsteps.Support, error) {
	idx, err := t.partIndexAt(time)
	if err != nil {
		return footsteps.Support{}, err
	}
	return t.Parts[idx].Support, nil
}

func (t *Trajectory) GetNextSupport(time float64) (footsteps.Support, error) {
	idx, err := t.partIndexAt(time)
	if err != nil {
		return footsteps.Support{}, err
	}
	if idx+1 < len(t.Parts) {
		idx++
	}
	return t.Parts[idx].Support, nil
}

func (t *Trajectory) GetPrevSupport(time float64) (footsteps.Support, error) {
	idx, err := t.partIndexAt(time)
	if err != nil {
		return footsteps.Support{}, err
	}
	if idx > 0 {
		idx--
	}
	return t.Parts[idx].Support, nil
}

// SupportSide returns the support side active at time (Both for a double
// support).
func (t *Trajectory) SupportSide(time float64) (footsteps.Side, error) {
	s, err := t.GetSupport(time)
	if err != nil {
		return footsteps.Both, err
	}
	return s.Side(), nil
}

// SupportIsBoth reports whether time falls in a double support.
func (t *Trajectory) SupportIsBoth(time float64) (bool, error) {
	s, err := t.GetSupport(time)
	if err != nil {
		return false, err
	}
	return s.IsBoth(), nil
}

func (t *Trajectory) yawSplineFor(side footsteps.Side) *splines.AngleSpline {
	if side == footsteps.Left {
		return &t.LeftYaw
	}
	return &t.RightYaw
}

func (t *Trajectory) stanceFrame(part *TrajectoryPart, side footsteps.Side) (spatial.Pose, error) {
	frame, err := part.Support.FootstepFrame(side)
	if err != nil {
		return spatial.Pose{}, err
	}
	return frame, nil
}

// worldFrame returns the world-space frame of side's foot at time: a
// swing-trajectory evaluation when it is flying, otherwise the stance
// footstep frame, both with the trajectory's accumulated world transform
// applied (see ApplyTransform).
func (t *Trajectory) worldFrame(time float64, side footsteps.Side) (spatial.Pose, error) {
	idx, err := t.partIndexAt(time)
	if err != nil {
		return spatial.Pose{}, err
	}
	part := &t.Parts[idx]

	if part.HasSwing && part.FlyingSide == side {
		pos := part.SwingTrajectory.Pos(time)
		yaw := t.yawSplineFor(side).Pos(time)
		return t.worldTransform.Compose(spatial.NewPoseFromYaw(pos, yaw)), nil
	}

	frame, err := t.stanceFrame(part, side)
	if err != nil {
		return spatial.Pose{}, err
	}
	return t.worldTransform.Compose(frame), nil
}

// GetTWorldLeft and GetTWorldRight return the world frame of the left/right
// foot at time.
func (t *Trajectory) GetTWorldLeft(time float64) (spatial.Pose, error) {
	return t.worldFrame(time, footsteps.Left)
}
func (t *Trajectory) GetTWorldRight(time float64) (spatial.Pose, error) {
	return t.worldFrame(time, footsteps.Right)
}

func (t *Trajectory) worldVelocity(time float64, side footsteps.Side) (r3.Vector, error) {
	idx, err := t.partIndexAt(time)
	if err != nil {
		return r3.Vector{}, err
	}
	part := &t.Parts[idx]
	if part.HasSwing && part.FlyingSide == side {
		v := part.SwingTrajectory.Vel(time)
		yaw := t.worldTransform.Yaw()
		c, s := math.Cos(yaw), math.Sin(yaw)
		return r3.Vector{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y, Z: v.Z}, nil
	}
	return r3.Vector{}, nil
}

// GetVWorldLeft and GetVWorldRight return the foot velocity at time: the
// swing-trajectory velocity when flying, zero otherwise.
func (t *Trajectory) GetVWorldLeft(time float64) (r3.Vector, error) {
	return t.worldVelocity(time, footsteps.Left)
}
func (t *Trajectory) GetVWorldRight(time float64) (r3.Vector, error) {
	return t.worldVelocity(time, footsteps.Right)
}

func (t *Trajectory) rotatedPoint(p spatial.Point2, translate bool) spatial.Point2 {
	yaw := t.worldTransform.Yaw()
	c, s := math.Cos(yaw), math.Sin(yaw)
	out := spatial.Point2{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
	if translate {
		origin := t.worldTransform.Translation()
		out.X += origin.X
		out.Y += origin.Y
	}
	return out
}

// GetPWorldCoM returns the CoM position at time, at the configured
// ComHeight.
func (t *Trajectory) GetPWorldCoM(time float64) r3.Vector {
	p := t.rotatedPoint(t.CoM.Pos(time), true)
	z := t.ComHeight + t.worldTransform.Translation().Z
	return r3.Vector{X: p.X, Y: p.Y, Z: z}
}

// GetPWorldZMP returns the zero moment point at time.
func (t *Trajectory) GetPWorldZMP(time float64) spatial.Point2 {
	return t.rotatedPoint(t.CoM.ZMP(time), true)
}

// GetPWorldDCM returns the divergent component of motion at time.
func (t *Trajectory) GetPWorldDCM(time float64) spatial.Point2 {
	return t.rotatedPoint(t.CoM.DCM(time), true)
}

// GetRWorldTrunk returns the trunk orientation at time: a yaw rotation
// from the trunk yaw spline composed with the configured constant pitch.
func (t *Trajectory) GetRWorldTrunk(time float64) mgl64.Mat3 {
	yaw := t.TrunkYaw.Pos(time) + t.worldTransform.Yaw()
	m := mgl64.HomogRotate3DZ(yaw).Mul4(mgl64.HomogRotate3DY(t.TrunkPitch))
	return m.Mat3()
}

// ApplyTransform post-multiplies every frame, position and velocity this
// trajectory returns by T, composing with any transform already applied.
// Rather than eagerly rewriting every stored polynomial and frame (which
// would require re-deriving each spline's coefficients under rotation),
// the transform is stored and composed lazily at query time: the result is
// identical, since every query method above already routes through
// worldFrame/rotatedPoint.
func (t *Trajectory) ApplyTransform(transform spatial.Pose) {
	t.worldTransform = transform.Compose(t.worldTransform)
}

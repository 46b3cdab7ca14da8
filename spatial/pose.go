// Package spatial provides the rigid-transform and planar-geometry primitives
// shared by the walk pattern generator: SE(3) frames for footsteps and
// supports, and 2-D polygons for the ZMP support regions those frames define.
package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform in world space: a rotation composed with a
// translation, backed by an mgl64.Mat4 homogeneous matrix exactly as the
// teacher's kinmath.Transform wraps one.
type Pose struct {
	mat mgl64.Mat4
}

// Identity returns the pose with no rotation or translation.
func Identity() Pose {
	return Pose{mgl64.Ident4()}
}

// NewPoseFromYaw builds a pose with the given world translation and a
// rotation of yaw radians about the world Z axis. Footsteps and supports are
// always built this way: the ground-contact assumption of the LIPM means
// roll and pitch of a foot frame are never needed by the planner.
func NewPoseFromYaw(translation r3.Vector, yaw float64) Pose {
	m := mgl64.HomogRotate3DZ(yaw)
	setTranslation(&m, translation)
	return Pose{m}
}

// NewPoseFromMatrix wraps an arbitrary homogeneous transform.
func NewPoseFromMatrix(m mgl64.Mat4) Pose {
	return Pose{m}
}

func setTranslation(m *mgl64.Mat4, t r3.Vector) {
	m.Set(0, 3, t.X)
	m.Set(1, 3, t.Y)
	m.Set(2, 3, t.Z)
}

// Translation returns the world-space translation component.
func (p Pose) Translation() r3.Vector {
	c := p.mat.Col(3)
	return r3.Vector{X: c.X(), Y: c.Y(), Z: c.Z()}
}

// Rotation returns the 3x3 rotation block.
func (p Pose) Rotation() mgl64.Mat3 {
	return p.mat.Mat3()
}

// Matrix returns the underlying homogeneous transform.
func (p Pose) Matrix() mgl64.Mat4 {
	return p.mat
}

// Quaternion returns the rotation as a unit quaternion.
func (p Pose) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(p.mat)
	return quat.Number{Real: q.W, Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// Yaw returns the rotation about the world Z axis, in the same convention
// produced by NewPoseFromYaw: atan2 of the rotated X axis's planar components.
func (p Pose) Yaw() float64 {
	r := p.Rotation()
	return math.Atan2(r.At(1, 0), r.At(0, 0))
}

// Compose returns p * other, i.e. other expressed in p's frame mapped into
// the frame p itself lives in (equivalent to the C++ Eigen::Affine3d operator*).
func (p Pose) Compose(other Pose) Pose {
	return Pose{p.mat.Mul4(other.mat)}
}

// Inverse returns the pose whose Compose undoes p.
func (p Pose) Inverse() Pose {
	return Pose{p.mat.Inv()}
}

// WithTranslation returns a copy of p with its translation replaced.
func (p Pose) WithTranslation(t r3.Vector) Pose {
	m := p.mat
	setTranslation(&m, t)
	return Pose{m}
}

// WithZeroZ returns a copy of p with its Z translation zeroed, used when
// projecting a foot target onto the ground plane.
func (p Pose) WithZeroZ() Pose {
	t := p.Translation()
	t.Z = 0
	return p.WithTranslation(t)
}

// UnwrapYawNear returns yaw shifted by a multiple of 2*pi so that it lies
// within pi of reference, avoiding the 2*pi jumps the spec calls out for yaw
// interpolation (spec.md Design Notes, "Yaw interpolation").
func UnwrapYawNear(yaw, reference float64) float64 {
	for yaw-reference > math.Pi {
		yaw -= 2 * math.Pi
	}
	for yaw-reference < -math.Pi {
		yaw += 2 * math.Pi
	}
	return yaw
}

// AveragePoses returns the pose whose translation is the affine blend of a
// and b by weight (0 => a, 1 => b) and whose yaw is the corresponding
// circular-mean blend, matching the teacher's rhoban_utils::averageFrames
// used to build a Support's frame() from its one or two footsteps. Every
// pose in this package is yaw-only (see NewPoseFromYaw), so blending yaw
// directly is equivalent to, and cheaper than, a full quaternion slerp.
func AveragePoses(a, b Pose, weight float64) Pose {
	ta, tb := a.Translation(), b.Translation()
	t := r3.Vector{
		X: ta.X + (tb.X-ta.X)*weight,
		Y: ta.Y + (tb.Y-ta.Y)*weight,
		Z: ta.Z + (tb.Z-ta.Z)*weight,
	}
	ya := a.Yaw()
	yb := UnwrapYawNear(b.Yaw(), ya)
	yaw := ya + (yb-ya)*weight
	return NewPoseFromYaw(t, yaw)
}

// yawToRot2 returns the 2x2 rotation matrix for a planar yaw, used by
// Polygon corner generation.
func yawToRot2(yaw float64) (c, s float64) {
	return math.Cos(yaw), math.Sin(yaw)
}

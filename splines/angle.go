package splines

import (
	"sort"

	"github.com/rhoban/walkgen/spatial"
)

type angleKeyframe struct {
	t, angle, vel float64
}

// AngleSpline is a piecewise-cubic spline over keyframed angles, unwrapping
// each new keyframe against the previous one so the fitted segments never
// cross a 2*pi discontinuity (spec.md §9, "Yaw interpolation"). It backs the
// per-side and trunk yaw trajectories built incrementally during
// planFeetTrajectories.
type AngleSpline struct {
	keyframes []angleKeyframe
	segments  []Polynomial
	built     int
}

// AddPoint appends a keyframe at time t with the given angle (radians) and
// angular velocity, unwrapping angle relative to the most recently added
// keyframe so consecutive values never differ by more than pi.
func (s *AngleSpline) AddPoint(t, angle, vel float64) {
	if len(s.keyframes) > 0 {
		angle = spatial.UnwrapYawNear(angle, s.keyframes[len(s.keyframes)-1].angle)
	}
	s.keyframes = append(s.keyframes, angleKeyframe{t: t, angle: angle, vel: vel})
}

// HasPoints reports whether any keyframe has been added.
func (s *AngleSpline) HasPoints() bool {
	return len(s.keyframes) > 0
}

func (s *AngleSpline) ensureBuilt() {
	for s.built < len(s.keyframes)-1 {
		a := s.keyframes[s.built]
		b := s.keyframes[s.built+1]
		poly, err := FitHermite(a.t, b.t, []float64{a.angle, a.vel}, []float64{b.angle, b.vel})
		if err != nil {
			// Two keyframes at (numerically) the same time: hold the first value.
			poly = NewConstant(a.t, b.t, a.angle)
		}
		s.segments = append(s.segments, poly)
		s.built++
	}
}

func (s *AngleSpline) segmentAt(t float64) (Polynomial, bool) {
	s.ensureBuilt()
	if len(s.segments) == 0 {
		return Polynomial{}, false
	}
	idx := sort.Search(len(s.segments), func(i int) bool {
		return s.segments[i].TEnd() >= t
	})
	if idx >= len(s.segments) {
		idx = len(s.segments) - 1
	}
	return s.segments[idx], true
}

// Pos returns the interpolated angle at time t, clamped to the first/last
// keyframe outside the spline's range.
func (s *AngleSpline) Pos(t float64) float64 {
	if seg, ok := s.segmentAt(t); ok {
		return seg.Pos(t)
	}
	if len(s.keyframes) > 0 {
		return s.keyframes[0].angle
	}
	return 0
}

// Vel returns the interpolated angular velocity at time t.
func (s *AngleSpline) Vel(t float64) float64 {
	if seg, ok := s.segmentAt(t); ok {
		return seg.Vel(t)
	}
	return 0
}

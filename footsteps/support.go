package footsteps

import (
	"github.com/pkg/errors"

	"github.com/rhoban/walkgen/spatial"
)

// Support is an ordered list of one or two footsteps in contact with the
// ground at the same time, plus flags marking the very first/last support
// of a plan. A 2-footstep support always pairs two opposite sides
// (spec.md §3).
type Support struct {
	Footsteps []Footstep
	Start     bool
	End       bool

	polygon *spatial.Polygon
}

// NewSupport builds a support from 1 or 2 footsteps.
func NewSupport(footsteps ...Footstep) Support {
	return Support{Footsteps: footsteps}
}

// IsBoth reports whether this is a double support (2 footsteps).
func (s Support) IsBoth() bool {
	return len(s.Footsteps) == 2
}

// Side returns the single footstep's side. Calling it on a double support
// is programmer error; it returns Both.
func (s Support) Side() Side {
	if len(s.Footsteps) == 1 {
		return s.Footsteps[0].Side
	}
	return Both
}

// Polygon returns the convex hull of every footstep's corners, computed
// and cached on first call.
func (s *Support) Polygon() *spatial.Polygon {
	if s.polygon == nil {
		var corners []spatial.Point2
		for i := range s.Footsteps {
			corners = append(corners, spatial.FootCorners(s.Footsteps[i].Frame, s.Footsteps[i].Width, s.Footsteps[i].Length)...)
		}
		s.polygon = spatial.NewPolygon(corners)
	}
	return s.polygon
}

// Frame returns the support's reference frame: the single footstep's frame,
// or the weight-0.5 average of both footsteps' frames for a double support.
func (s Support) Frame() spatial.Pose {
	if len(s.Footsteps) == 1 {
		return s.Footsteps[0].Frame
	}
	return spatial.AveragePoses(s.Footsteps[0].Frame, s.Footsteps[1].Frame, 0.5)
}

// FootstepFrame returns the frame of the footstep with the given side,
// erroring if the support has no footstep on that side.
func (s Support) FootstepFrame(side Side) (spatial.Pose, error) {
	for i := range s.Footsteps {
		if s.Footsteps[i].Side == side {
			return s.Footsteps[i].Frame, nil
		}
	}
	return spatial.Pose{}, errors.Errorf("footsteps: support has no footstep on side %s", side)
}

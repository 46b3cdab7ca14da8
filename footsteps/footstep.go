package footsteps

import (
	"github.com/rhoban/walkgen/spatial"
)

// Footstep is a single foot placement: a side, a world-frame pose, and the
// foot's physical extent. Its ground-contact polygon is the convex hull of
// its four corners, computed lazily and memoized (spec.md §3, §9 "Lazy
// polygon memoization") — mirroring Support's own lazy polygon.
type Footstep struct {
	Side   Side
	Frame  spatial.Pose
	Width  float64
	Length float64

	polygon *spatial.Polygon
}

// NewFootstep builds a footstep at frame for side, with the given foot
// dimensions.
func NewFootstep(side Side, frame spatial.Pose, width, length float64) Footstep {
	return Footstep{Side: side, Frame: frame, Width: width, Length: length}
}

// Polygon returns the footstep's ground-contact polygon, computing and
// caching it on first call.
func (f *Footstep) Polygon() *spatial.Polygon {
	if f.polygon == nil {
		f.polygon = spatial.NewPolygon(spatial.FootCorners(f.Frame, f.Width, f.Length))
	}
	return f.polygon
}

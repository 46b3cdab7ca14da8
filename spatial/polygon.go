package spatial

import (
	"math"
	"sort"
)

// Point2 is a point in the ground plane (z=0 implied).
type Point2 struct {
	X, Y float64
}

// Polygon is a clockwise-ordered list of ground-plane vertices, as produced
// by the convex hull of a footstep's or support's corners. The hull is
// memoized on first computation: construct a Polygon with NewPolygon from an
// unordered corner set and Vertices() will compute and cache the hull once,
// mirroring the teacher's lazily-memoized support_polygon().
type Polygon struct {
	corners []Point2
	hull    []Point2
	done    bool
}

// NewPolygon builds a polygon from an unordered set of corners. The convex
// hull is not computed until Vertices() is first called.
func NewPolygon(corners []Point2) *Polygon {
	return &Polygon{corners: corners}
}

// Vertices returns the clockwise convex hull of the polygon's corners,
// computing it on first call and caching the result.
func (p *Polygon) Vertices() []Point2 {
	if !p.done {
		p.hull = convexHull(p.corners)
		p.done = true
	}
	return p.hull
}

// convexHull computes the convex hull via Andrew's monotone chain, returning
// vertices in clockwise order (screen/ground convention used throughout this
// package: x forward, y left, viewed from above).
func convexHull(points []Point2) []Point2 {
	pts := append([]Point2(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupe(pts)
	n := len(pts)
	if n < 3 {
		return pts
	}

	cross := func(o, a, b Point2) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]Point2, 0, n)
	for _, pt := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], pt) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, pt)
	}

	upper := make([]Point2, 0, n)
	for i := n - 1; i >= 0; i-- {
		pt := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], pt) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, pt)
	}

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	// Andrew's monotone chain as written above produces a counter-clockwise
	// hull; reverse it to the clockwise convention used elsewhere.
	for i, j := 0, len(hull)-1; i < j; i, j = i+1, j-1 {
		hull[i], hull[j] = hull[j], hull[i]
	}
	return hull
}

func dedupe(pts []Point2) []Point2 {
	out := pts[:0:0]
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Shrink returns a new polygon whose edges are inset by margin along their
// inward normal. For a clockwise polygon the inward normal of edge (a -> b)
// is the edge vector rotated -90 degrees. Shrinking is performed by offsetting
// every edge's line and re-intersecting consecutive offset lines; this is the
// dual of the per-edge half-space inequality the JerkPlanner assembles
// directly, kept here for Support.Polygon() callers (e.g. tests) that want an
// inset polygon rather than a list of half-spaces.
func (p *Polygon) Shrink(margin float64) *Polygon {
	v := p.Vertices()
	n := len(v)
	if n < 3 || margin == 0 {
		return NewPolygon(append([]Point2(nil), v...))
	}

	type line struct{ a, b, c float64 } // a*x + b*y + c = 0, inward side positive

	lines := make([]line, n)
	for i := 0; i < n; i++ {
		a := v[i]
		b := v[(i+1)%n]
		ex, ey := b.X-a.X, b.Y-a.Y
		length := math.Hypot(ex, ey)
		if length == 0 {
			continue
		}
		// inward normal for a clockwise polygon is (ey, -ex)/length
		nx, ny := ey/length, -ex/length
		c := -(nx*a.X + ny*a.Y) - margin
		lines[i] = line{nx, ny, c}
	}

	out := make([]Point2, n)
	for i := 0; i < n; i++ {
		l1 := lines[(i-1+n)%n]
		l2 := lines[i]
		det := l1.a*l2.b - l2.a*l1.b
		if math.Abs(det) < 1e-12 {
			out[i] = v[i]
			continue
		}
		out[i] = Point2{
			X: (-l1.c*l2.b + l2.c*l1.b) / det,
			Y: (-l1.a*l2.c + l2.a*l1.c) / det,
		}
	}
	return &Polygon{hull: out, done: true}
}

// Contains reports whether point lies inside or on the polygon boundary,
// assuming the clockwise vertex convention used throughout this package.
func (p *Polygon) Contains(pt Point2) bool {
	v := p.Vertices()
	n := len(v)
	for i := 0; i < n; i++ {
		a := v[i]
		b := v[(i+1)%n]
		cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
		if cross > 1e-9 {
			return false
		}
	}
	return true
}

// HalfSpaces returns, for each edge of the (unshrunk) hull, the coefficients
// (a, b, c) of the inward half-space inequality a*x + b*y + c >= margin,
// i.e. a*x + b*y + (c - margin) >= 0. JerkPlanner's polygon constraint uses
// this directly instead of materializing a shrunk polygon.
func (p *Polygon) HalfSpaces() [][3]float64 {
	v := p.Vertices()
	n := len(v)
	out := make([][3]float64, 0, n)
	for i := 0; i < n; i++ {
		a := v[i]
		b := v[(i+1)%n]
		ex, ey := b.X-a.X, b.Y-a.Y
		length := math.Hypot(ex, ey)
		if length == 0 {
			continue
		}
		nx, ny := ey/length, -ex/length
		c := -(nx*a.X + ny*a.Y)
		out = append(out, [3]float64{nx, ny, c})
	}
	return out
}

// FootCorners returns the four ground-plane corners of a foot of the given
// width/length centered at pose (before hull reduction — a single foot's
// corners are already its own hull, but Support.Polygon concatenates several
// feet's corners before hulling).
func FootCorners(pose Pose, width, length float64) []Point2 {
	t := pose.Translation()
	yaw := pose.Yaw()
	c, s := yawToRot2(yaw)
	hw, hl := width/2, length/2
	local := [4][2]float64{
		{hl, hw}, {hl, -hw}, {-hl, -hw}, {-hl, hw},
	}
	out := make([]Point2, 4)
	for i, l := range local {
		x, y := l[0], l[1]
		out[i] = Point2{
			X: t.X + x*c - y*s,
			Y: t.Y + x*s + y*c,
		}
	}
	return out
}

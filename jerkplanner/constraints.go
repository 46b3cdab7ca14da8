package jerkplanner

import "github.com/rhoban/walkgen/spatial"

// Kind identifies which quantity of the CoM's motion a constraint bears
// on. ZMP and DCM are derived quantities: zmp = pos - acc/omega^2, dcm =
// pos + vel/omega, per the LIPM relations in spec.md §4.4.
type Kind int

const (
	Position Kind = iota
	Velocity
	Acceleration
	Jerk
	ZMP
	DCM
)

// Mode is whether a constraint must hold exactly (Hard) or is merely
// penalized when violated (Soft).
type Mode int

const (
	Hard Mode = iota
	Soft
)

// EqualityConstraint pins a Kind at a given timestep to an (x, y) target.
// It contributes a 2-row equality (one row per axis) to the QP: Hard rows
// go into the equality system solved exactly, Soft rows become a weighted
// quadratic penalty term added to the objective instead.
//
// AddEqualityConstraint returns the constraint so callers can chain
// Configure, mirroring the planner's own add-then-configure call sites.
type EqualityConstraint struct {
	kind     Kind
	timestep int
	target   [2]float64
	mode     Mode
	weight   float64
}

// Configure sets the constraint's mode and, for Soft, its penalty weight.
// Weight is ignored for Hard constraints.
func (c *EqualityConstraint) Configure(mode Mode, weight float64) *EqualityConstraint {
	c.mode = mode
	c.weight = weight
	return c
}

// PolygonConstraint keeps a derived quantity (typically ZMP) inside a
// support polygon, shrunk by margin, at a given timestep. It is always
// hard: one linear inequality per polygon edge, x and y jointly, via
// Polygon.HalfSpaces.
type PolygonConstraint struct {
	kind     Kind
	timestep int
	polygon  *spatial.Polygon
	margin   float64
}

// AddEqualityConstraint registers a 2-row equality at timestep for kind,
// defaulting to Hard. Call Configure on the result to make it Soft.
func (p *Planner) AddEqualityConstraint(kind Kind, timestep int, targetX, targetY float64) *EqualityConstraint {
	c := &EqualityConstraint{kind: kind, timestep: timestep, target: [2]float64{targetX, targetY}, mode: Hard}
	p.equalities = append(p.equalities, c)
	return c
}

// AddPolygonConstraint registers a hard inequality keeping kind's value at
// timestep inside polygon, shrunk by margin.
func (p *Planner) AddPolygonConstraint(kind Kind, timestep int, polygon *spatial.Polygon, margin float64) *PolygonConstraint {
	c := &PolygonConstraint{kind: kind, timestep: timestep, polygon: polygon, margin: margin}
	p.polygons = append(p.polygons, c)
	return c
}

package footsteps

import "github.com/rhoban/walkgen/spatial"

// Repetitive is the velocity-command footsteps strategy: it chains
// Steps-1 footsteps forward by (Dx, Dy, Dtheta) via
// ClippedNeutralOppositeFootstep, then closes with one final zero-command
// footstep to return to double support (spec.md §4.2).
type Repetitive struct {
	Planner
	Dx, Dy, Dtheta float64
	Steps          int
}

// NewRepetitive builds a Repetitive strategy. Call Configure before Plan,
// or set the fields directly.
func NewRepetitive(planner Planner) *Repetitive {
	return &Repetitive{Planner: planner}
}

// Configure sets the velocity command and step count.
func (r *Repetitive) Configure(dx, dy, dtheta float64, steps int) {
	r.Dx, r.Dy, r.Dtheta = dx, dy, dtheta
	r.Steps = steps
}

// Plan implements Strategy.
func (r *Repetitive) Plan(flyingSide Side, worldLeft, worldRight spatial.Pose) ([]Footstep, error) {
	frameFor := func(side Side) spatial.Pose {
		if side == Left {
			return worldLeft
		}
		return worldRight
	}

	footsteps := []Footstep{
		NewFootstep(flyingSide, frameFor(flyingSide), r.Parameters.FootWidth, r.Parameters.FootLength),
	}
	other := flyingSide.Other()
	footsteps = append(footsteps, NewFootstep(other, frameFor(other), r.Parameters.FootWidth, r.Parameters.FootLength))

	if r.Steps <= 0 {
		return footsteps, nil
	}

	footstep := footsteps[1]
	for i := 0; i < r.Steps-1; i++ {
		footstep = r.ClippedNeutralOppositeFootstep(footstep, r.Dx, r.Dy, r.Dtheta)
		footsteps = append(footsteps, footstep)
	}
	footsteps = append(footsteps, r.ClippedNeutralOppositeFootstep(footstep, 0, 0, 0))

	return footsteps, nil
}

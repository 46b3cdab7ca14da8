package footsteps

import (
	"github.com/golang/geo/r3"

	"github.com/rhoban/walkgen/params"
	"github.com/rhoban/walkgen/spatial"
)

// Planner is the shared scaffold both concrete strategies (Naive,
// Repetitive) build on: the feet geometry and parameters needed to place
// a neutral opposite footstep, and the public plan/make_supports contract
// of spec.md §4.2.
type Planner struct {
	Parameters params.HumanoidParameters
}

// Strategy is a footsteps placement policy: Naive or Repetitive.
type Strategy interface {
	// Plan returns the ordered footstep list, beginning with the two
	// current footsteps (flyingSide first, then the support side), followed
	// by newly generated footsteps alternating sides.
	Plan(flyingSide Side, worldLeft, worldRight spatial.Pose) ([]Footstep, error)
}

// NeutralOppositeFootstep returns the footstep of the opposite side from
// fs, placed at the natural feet-spacing offset in fs's local frame,
// translated/rotated by (dx, dy, dtheta).
func (p Planner) NeutralOppositeFootstep(fs Footstep, dx, dy, dtheta float64) Footstep {
	lateralSign := 1.0
	if fs.Side == Left {
		lateralSign = -1.0
	}
	local := spatial.NewPoseFromYaw(r3.Vector{X: dx, Y: dy + lateralSign*p.Parameters.FeetSpacing, Z: 0}, dtheta)
	frame := fs.Frame.Compose(local)
	return NewFootstep(fs.Side.Other(), frame, p.Parameters.FootWidth, p.Parameters.FootLength)
}

// ClippedNeutralOppositeFootstep is NeutralOppositeFootstep with (dx, dy,
// dtheta) passed through HumanoidParameters.EllipsoidClip first.
func (p Planner) ClippedNeutralOppositeFootstep(fs Footstep, dx, dy, dtheta float64) Footstep {
	clipped := p.Parameters.EllipsoidClip(params.Step{Dx: dx, Dy: dy, Dtheta: dtheta})
	return p.NeutralOppositeFootstep(fs, clipped.Dx, clipped.Dy, clipped.Dtheta)
}

// MakeSupports turns an ordered footstep list into a Support list: for
// every consecutive pair of footsteps, optionally insert a double support
// between them (middle), always followed by a single support carrying
// the footstep being stepped onto; the very first double (pair steps[0],
// steps[1]) is created even when middle is false if start is requested,
// and marked Start; a final double support pairing the last two
// footsteps is appended, marked End, when end is requested. This is the
// construction that satisfies spec.md §8 invariant 7: with start, middle
// and end all true, the result alternates double/single, starts with a
// Start-marked double and ends with an End-marked double, with length
// 2*len(steps)-1.
func MakeSupports(steps []Footstep, start, middle, end bool) []Support {
	if len(steps) == 0 {
		return nil
	}
	if len(steps) == 1 {
		return []Support{{Footsteps: steps, Start: true, End: true}}
	}

	var supports []Support
	for i := 1; i < len(steps); i++ {
		isFirstPair := i == 1
		if middle || (isFirstPair && start) {
			d := Support{Footsteps: []Footstep{steps[i-1], steps[i]}}
			if isFirstPair && start {
				d.Start = true
			}
			supports = append(supports, d)
		}
		supports = append(supports, Support{Footsteps: []Footstep{steps[i]}})
	}

	if end {
		last, secondLast := steps[len(steps)-1], steps[len(steps)-2]
		supports = append(supports, Support{Footsteps: []Footstep{secondLast, last}, End: true})
	}
	return supports
}

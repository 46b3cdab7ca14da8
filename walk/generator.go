package walk

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/rhoban/walkgen/footsteps"
	"github.com/rhoban/walkgen/jerkplanner"
	"github.com/rhoban/walkgen/params"
	"github.com/rhoban/walkgen/spatial"
	"github.com/rhoban/walkgen/swingfoot"
)

// pinEpsilonFraction is how far past the start of a pinned timestep, as a
// fraction of dt, the old trajectory's jerk is sampled, avoiding the
// timestep boundary itself
// (spec.md §9, "the epsilon offset ... is not documented ... pick any
// epsilon in (0, dt/2)"). Using exactly dt/2 samples the pinned step at
// its midpoint.
const pinEpsilonFraction = 0.5

// zmpReferenceWeight is the soft-constraint weight steering the ZMP
// toward the foot's reference point during planCoM step 4. Not given a
// specific value anywhere in the retrieved sources; chosen small enough
// that the hard polygon constraint, not this term, determines the ZMP
// whenever the reference point and the polygon disagree.
const zmpReferenceWeight = 1.0

// WalkPatternGenerator assembles Footsteps/Supports, a JerkPlanner and
// SwingFoot trajectories into a single queryable Trajectory, and supports
// replanning that preserves continuity with the trajectory already in
// flight (spec.md §4.5).
type WalkPatternGenerator struct {
	Parameters params.HumanoidParameters
	logger     golog.Logger
}

// New builds a WalkPatternGenerator over parameters, logging at
// golog.Logger's Debug level on every plan/replan, in the teacher's own
// inject-a-logger-at-construction style (control.NewLoop).
func New(parameters params.HumanoidParameters, logger golog.Logger) *WalkPatternGenerator {
	if logger == nil {
		logger = golog.Global()
	}
	return &WalkPatternGenerator{Parameters: parameters, logger: logger}
}

// Plan builds a fresh Trajectory from supports, anchored at tStart. The
// CoM starts at rest over the center of the first support.
func (w *WalkPatternGenerator) Plan(supports []footsteps.Support, tStart float64) (*Trajectory, error) {
	if len(supports) == 0 {
		return nil, newError(InvalidInput, "walk: plan: supports must not be empty")
	}
	w.logger.Debugf("planning %d supports from t_start=%v", len(supports), tStart)

	traj := newTrajectory(w.Parameters, tStart)
	traj.Supports = supports

	origin := supports[0].Frame().Translation()
	p0 := [2]float64{origin.X, origin.Y}
	zero := [2]float64{0, 0}

	if err := w.planCoM(traj, p0, zero, zero, nil, 0); err != nil {
		return nil, err
	}
	if err := w.planFeetTrajectories(traj, nil, 0); err != nil {
		return nil, err
	}
	return traj, nil
}

// Replan builds a new Trajectory anchored at the start of old's current
// in-flight part, continuing old's CoM state and in-flight swing.
func (w *WalkPatternGenerator) Replan(supports []footsteps.Support, old *Trajectory, tReplan float64) (*Trajectory, error) {
	if len(supports) == 0 {
		return nil, newError(InvalidInput, "walk: replan: supports must not be empty")
	}
	anchor, err := old.GetPartTStart(tReplan)
	if err != nil {
		return nil, err
	}
	w.logger.Debugf("replanning at t_replan=%v, anchored at t_start=%v", tReplan, anchor)

	traj := newTrajectory(w.Parameters, anchor)
	traj.Supports = supports

	pos, vel, acc := old.CoM.StateAt(anchor)
	if err := w.planCoM(traj, pos, vel, acc, old, tReplan); err != nil {
		return nil, err
	}
	if err := w.planFeetTrajectories(traj, old, tReplan); err != nil {
		return nil, err
	}
	return traj, nil
}

// CanReplanSupports reports whether replanning footstep positions is
// safe at tReplan: the support active there must not be the plan's last,
// and neither it nor the next support may be a double support.
func (w *WalkPatternGenerator) CanReplanSupports(trajectory *Trajectory, tReplan float64) bool {
	support, err := trajectory.GetSupport(tReplan)
	if err != nil || support.End {
		return false
	}
	if support.IsBoth() {
		return false
	}
	next, err := trajectory.GetNextSupport(tReplan)
	if err != nil || next.IsBoth() {
		return false
	}
	return true
}

// ReplanSupports generates a new footstep/support list starting from the
// current single-support side and the next single support's opposite
// side, via strategy, and turns the footsteps into supports with
// make_supports(start=false, middle=false, end=true): one single support
// per footstep after the first, then one terminal double support.
func (w *WalkPatternGenerator) ReplanSupports(strategy footsteps.Strategy, trajectory *Trajectory, tReplan float64) ([]footsteps.Support, error) {
	current, err := trajectory.GetSupport(tReplan)
	if err != nil {
		return nil, err
	}
	next, err := trajectory.GetNextSupport(tReplan)
	if err != nil {
		return nil, err
	}
	flyingSide := current.Side().Other()

	leftFrame, err := left(current, next)
	if err != nil {
		return nil, err
	}
	rightFrame, err := right(current, next)
	if err != nil {
		return nil, err
	}

	steps, err := strategy.Plan(flyingSide, leftFrame, rightFrame)
	if err != nil {
		return nil, err
	}
	return footsteps.MakeSupports(steps, false, false, true), nil
}

func left(supports ...footsteps.Support) (spatial.Pose, error) {
	for _, s := range supports {
		if frame, err := s.FootstepFrame(footsteps.Left); err == nil {
			return frame, nil
		}
	}
	return spatial.Pose{}, newError(InvalidInput, "walk: replan_supports: no left footstep in current/next support")
}

func right(supports ...footsteps.Support) (spatial.Pose, error) {
	for _, s := range supports {
		if frame, err := s.FootstepFrame(footsteps.Right); err == nil {
			return frame, nil
		}
	}
	return spatial.Pose{}, newError(InvalidInput, "walk: replan_supports: no right footstep in current/next support")
}

// timestepsFor returns the number of jerk-planner timesteps a support
// occupies.
func (w *WalkPatternGenerator) timestepsFor(s footsteps.Support) int {
	if s.IsBoth() {
		if s.Start || s.End {
			return w.Parameters.StartEndDoubleSupportTimesteps()
		}
		return w.Parameters.DoubleSupportTimesteps()
	}
	return w.Parameters.SingleSupportTimestepsCount()
}

// planCoM implements spec.md §4.5's planCoM: horizon scan, JerkPlanner
// construction, replan pinning, per-timestep ZMP polygon + soft reference
// constraints, and the final end-of-plan equalities.
func (w *WalkPatternGenerator) planCoM(traj *Trajectory, p0, v0, a0 [2]float64, old *Trajectory, tReplan float64) error {
	dt := w.Parameters.Dt()
	omega := w.Parameters.Omega()

	type span struct {
		support  footsteps.Support
		from, to int // global timestep range [from, to)
	}
	var spans []span
	cumulative := 0
	lastSupport := footsteps.Support{}
	for _, s := range traj.Supports {
		ts := w.timestepsFor(s)
		spans = append(spans, span{support: s, from: cumulative, to: cumulative + ts})
		cumulative += ts
		lastSupport = s
		if cumulative >= w.Parameters.PlannedTimesteps {
			break
		}
	}
	n := cumulative
	if n <= 0 {
		return newError(InvalidInput, "walk: plan_com: supports produce a zero-length horizon")
	}

	planner, err := jerkplanner.NewPlanner(n, dt, omega, p0, v0, a0)
	if err != nil {
		return err
	}

	kept := 0
	if old != nil && tReplan > traj.TStart {
		kept = int(math.Round((tReplan - traj.TStart) / dt))
	}
	for k := 0; k < kept && k < n; k++ {
		sampleTime := traj.TStart + float64(k)*dt + pinEpsilonFraction*dt
		jerk := old.CoM.Jerk(sampleTime)
		planner.AddEqualityConstraint(jerkplanner.Jerk, k, jerk.X, jerk.Y)
	}

	for _, sp := range spans {
		for k := sp.from; k < sp.to && k < n; k++ {
			if k < kept {
				continue
			}
			planner.AddPolygonConstraint(jerkplanner.ZMP, k, sp.support.Polygon(), w.Parameters.ZmpMargin)

			ref, err := zmpReference(sp.support, w.Parameters)
			if err != nil {
				return err
			}
			planner.AddEqualityConstraint(jerkplanner.ZMP, k, ref.X, ref.Y).Configure(jerkplanner.Soft, zmpReferenceWeight)
		}
	}

	if lastSupport.End {
		final := lastSupport.Frame().Translation()
		planner.AddEqualityConstraint(jerkplanner.Position, n, final.X, final.Y)
		planner.AddEqualityConstraint(jerkplanner.Velocity, n, 0, 0)
		planner.AddEqualityConstraint(jerkplanner.Acceleration, n, 0, 0)
	}

	com, err := planner.Plan(traj.TStart)
	if err != nil {
		w.logger.Errorf("jerk planner failed over horizon N=%d: %v", n, err)
		return err
	}
	traj.CoM = com
	traj.JerkPlannerTimesteps = n
	return nil
}

// zmpReference computes the per-timestep soft ZMP target of planCoM step
// 4: for a single support, foot_zmp_target offset from the footstep
// frame with y-sign following the support side; for a double support,
// foot_zmp_target_x with y=0, expressed in the support's average frame.
func zmpReference(s footsteps.Support, parameters params.HumanoidParameters) (spatial.Point2, error) {
	if s.IsBoth() {
		offset := spatial.NewPoseFromYaw(r3.Vector{X: parameters.FootZmpTargetX}, 0)
		t := s.Frame().Compose(offset).Translation()
		return spatial.Point2{X: t.X, Y: t.Y}, nil
	}
	sign := 1.0
	if s.Side() == footsteps.Right {
		sign = -1.0
	}
	frame, err := s.FootstepFrame(s.Side())
	if err != nil {
		return spatial.Point2{}, err
	}
	offset := spatial.NewPoseFromYaw(r3.Vector{X: parameters.FootZmpTargetX, Y: sign * parameters.FootZmpTargetY}, 0)
	t := frame.Compose(offset).Translation()
	return spatial.Point2{X: t.X, Y: t.Y}, nil
}

// planFeetTrajectories implements spec.md §4.5's planFeetTrajectories,
// walking supports in order to emit yaw keyframes, swing trajectories and
// TrajectoryParts.
func (w *WalkPatternGenerator) planFeetTrajectories(traj *Trajectory, old *Trajectory, tReplan float64) error {
	supports := traj.Supports
	if old == nil && !supports[0].IsBoth() {
		return newError(InvalidInput, "walk: plan_feet_trajectories: a fresh plan must start on a double support")
	}

	currentFrame := map[footsteps.Side]spatial.Pose{}
	t := traj.TStart

	emitStanceKeyframes := func(s footsteps.Support, at float64) {
		for i := range s.Footsteps {
			fs := &s.Footsteps[i]
			traj.yawSplineFor(fs.Side).AddPoint(at, fs.Frame.Yaw(), 0)
			currentFrame[fs.Side] = fs.Frame
		}
	}

	nextFrameFor := func(side footsteps.Side, fromIdx int) (spatial.Pose, error) {
		for j := fromIdx + 1; j < len(supports); j++ {
			if frame, err := supports[j].FootstepFrame(side); err == nil {
				return frame, nil
			}
		}
		return spatial.Pose{}, newError(LogicError, "walk: plan_feet_trajectories: no future footstep found for side %s", side)
	}

	for i, support := range supports {
		emitStanceKeyframes(support, t)

		if support.IsBoth() {
			duration := w.Parameters.DoubleSupportDuration()
			if support.Start || support.End {
				duration = w.Parameters.StartEndDoubleSupportDuration()
			}
			tPartStart := t
			t += duration
			emitStanceKeyframes(support, t)
			traj.TrunkYaw.AddPoint(t, support.Frame().Yaw(), 0)
			traj.Parts = append(traj.Parts, TrajectoryPart{Support: support, TStart: tPartStart, TEnd: t})
			continue
		}

		flyingSide := support.Side().Other()
		duration := w.Parameters.SingleSupportDuration
		tPartStart := t
		t += duration

		targetFrame, err := nextFrameFor(flyingSide, i)
		if err != nil {
			return err
		}

		var swing swingfoot.Trajectory
		if old != nil && i == 0 && support.Start {
			oldPart, err := old.PartContaining(tReplan)
			if err != nil {
				return err
			}
			targetPos := targetFrame.Translation()
			swing = swingfoot.RemakeTrajectory(oldPart.SwingTrajectory, tReplan, r3.Vector{X: targetPos.X, Y: targetPos.Y, Z: 0})
		} else {
			startFrame, ok := currentFrame[flyingSide]
			if !ok {
				return newError(LogicError, "walk: plan_feet_trajectories: no known starting frame for side %s", flyingSide)
			}
			startPos := startFrame.Translation()
			targetPos := targetFrame.Translation()
			swing = swingfoot.MakeTrajectory(tPartStart, t, w.Parameters.WalkFootHeight,
				r3.Vector{X: startPos.X, Y: startPos.Y, Z: 0}, r3.Vector{X: targetPos.X, Y: targetPos.Y, Z: 0})
		}

		landingYaw := targetFrame.Yaw()
		traj.yawSplineFor(flyingSide).AddPoint(t, landingYaw, 0)
		if !w.Parameters.HasDoubleSupport() {
			traj.TrunkYaw.AddPoint(t, landingYaw, 0)
		}
		currentFrame[flyingSide] = targetFrame

		traj.Parts = append(traj.Parts, TrajectoryPart{
			Support: support, HasSwing: true, FlyingSide: flyingSide,
			SwingTrajectory: swing, TStart: tPartStart, TEnd: t,
		})
	}

	traj.TEnd = t
	return nil
}

package predict

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// Guidance produces the desired unit direction for a missile at the
// current instant. Implementations return their direction by value; there
// is no shared buffer between steps or between missiles. Returning false
// tells the predictor to fall back to its default direction.
type Guidance interface {
	Direction(view ProjectileView, dt float32) (vecmath.Vec3, bool)
}

// timeTracking is implemented by guidance strategies that sample a
// time-indexed target. The predictor advances the clock before each query.
type timeTracking interface {
	setTime(t float32)
}

// NoGuidance never produces a direction, leaving the missile on its
// default thrust axis.
type NoGuidance struct{}

// Direction implements Guidance.
func (NoGuidance) Direction(ProjectileView, float32) (vecmath.Vec3, bool) {
	return vecmath.Vec3{}, false
}

// ToPoint steers straight at a fixed position.
type ToPoint struct {
	Target vecmath.Vec3
}

// Direction implements Guidance.
func (g ToPoint) Direction(view ProjectileView, _ float32) (vecmath.Vec3, bool) {
	dir := g.Target.Sub(view.Position).Normalize()
	if dir.IsZero() {
		return vecmath.Vec3{}, false
	}
	return dir, true
}

// Lead steers at the point where a target moving at constant velocity will
// be when the missile arrives, estimating the intercept time from the
// current separation and the missile's own speed.
type Lead struct {
	TargetPosition vecmath.Vec3
	TargetVelocity vecmath.Vec3
}

// Direction implements Guidance.
func (g Lead) Direction(view ProjectileView, _ float32) (vecmath.Vec3, bool) {
	separation := g.TargetPosition.Sub(view.Position).Length()
	speed := view.Velocity.Length()
	aim := g.TargetPosition
	if speed >= 1e-6 {
		aim = aim.Add(g.TargetVelocity.Scale(separation / speed))
	}
	dir := aim.Sub(view.Position).Normalize()
	if dir.IsZero() {
		return vecmath.Vec3{}, false
	}
	return dir, true
}

// FromTrajectory steers at a target position sampled from a recorded
// trajectory at the prediction clock plus LeadTime. The predictor advances
// the clock as the simulation runs.
type FromTrajectory struct {
	Trajectory Trajectory
	LeadTime   float32

	now float32
}

// Direction implements Guidance.
func (g *FromTrajectory) Direction(view ProjectileView, _ float32) (vecmath.Vec3, bool) {
	if len(g.Trajectory) == 0 {
		return vecmath.Vec3{}, false
	}
	target := g.Trajectory.At(g.now + g.LeadTime).Linear.Position
	dir := target.Sub(view.Position).Normalize()
	if dir.IsZero() {
		return vecmath.Vec3{}, false
	}
	return dir, true
}

func (g *FromTrajectory) setTime(t float32) {
	g.now = t
}

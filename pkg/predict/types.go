// Package predict closes the loop between the motion model, the
// integrators, and the control blocks: it forward-simulates projectiles
// and missiles to a ground-plane impact and inverts the ballistic
// equations to solve for launch parameters.
package predict

import (
	"github.com/ballisto/ballisto/pkg/control"
	"github.com/ballisto/ballisto/pkg/physics"
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// Sample is one point of a predicted trajectory.
type Sample struct {
	Time  float32
	State physics.MotionState
}

// Trajectory is an ordered sequence of samples with non-decreasing time.
type Trajectory []Sample

// Duration returns the time of the last sample.
func (t Trajectory) Duration() float32 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Time
}

// At returns the state at the given time, linearly interpolating position
// and velocity between the bracketing samples. Times outside the sampled
// range clamp to the first or last sample.
func (t Trajectory) At(time float32) physics.MotionState {
	if len(t) == 0 {
		return physics.NewMotionState()
	}
	if time <= t[0].Time {
		return t[0].State
	}
	last := t[len(t)-1]
	if time >= last.Time {
		return last.State
	}
	for i := 1; i < len(t); i++ {
		if t[i].Time < time {
			continue
		}
		lo, hi := t[i-1], t[i]
		span := hi.Time - lo.Time
		if span <= 0 {
			return hi.State
		}
		alpha := (time - lo.Time) / span
		state := lo.State
		state.Linear.Position = lo.State.Linear.Position.Lerp(hi.State.Linear.Position, alpha)
		state.Linear.Velocity = lo.State.Linear.Velocity.Lerp(hi.State.Linear.Velocity, alpha)
		return state
	}
	return last.State
}

// ProjectileView is the read-only snapshot handed to env and guidance
// callbacks during a prediction step.
type ProjectileView struct {
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	Age      float32
}

// EnvFunc samples an environmental force field, returning an extra
// acceleration for the current step. Returning false contributes nothing.
// The function must be pure: it is invoked once per step, synchronously.
type EnvFunc func(view ProjectileView, dt float32) (vecmath.Vec3, bool)

// ProjectileConfig configures a ballistic forward prediction.
type ProjectileConfig struct {
	StartPosition vecmath.Vec3
	StartVelocity vecmath.Vec3
	Gravity       vecmath.Vec3
	Env           EnvFunc
	GroundHeight  float32
	MaxTime       float32
	DT            float32
}

// MissileConfig extends the ballistic prediction with thrust, fuel, a
// guidance strategy, and an optional thrust-magnitude controller.
type MissileConfig struct {
	ProjectileConfig
	Thrust     vecmath.Vec3
	Fuel       float32
	Guidance   Guidance
	Controller *control.PID
}

// Result is the outcome of a forward prediction. When Valid is false the
// trajectory holds the samples produced before the prediction gave up and
// the impact fields stay at their zero values.
type Result struct {
	Trajectory     Trajectory
	ImpactTime     float32
	ImpactPosition vecmath.Vec3
	Valid          bool
}

// LaunchParam describes how to fire a projectile at a target: a unit
// launch direction, the force to apply, and the expected flight time.
type LaunchParam struct {
	Direction vecmath.Vec3
	Force     float32
	TimeToHit float32
}

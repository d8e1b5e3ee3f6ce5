package predict

import (
	"fmt"

	"github.com/ballisto/ballisto/pkg/physics"
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// PredictProjectile forward-simulates a ballistic trajectory until it
// crosses the ground plane or runs out of time. Each step is a
// semi-implicit Euler update of gravity plus the optional env sample. The
// impact is interpolated to first order between the bracketing positions,
// with its height forced onto the ground plane, and appended as the final
// trajectory sample.
func PredictProjectile(cfg ProjectileConfig) Result {
	if cfg.DT <= 0 || cfg.MaxTime <= 0 {
		return Result{}
	}

	pos := cfg.StartPosition
	vel := cfg.StartVelocity
	trajectory := make(Trajectory, 0, int(cfg.MaxTime/cfg.DT)+2)

	for t := float32(0); t <= cfg.MaxTime; t += cfg.DT {
		accel := cfg.Gravity
		if cfg.Env != nil {
			if extra, ok := cfg.Env(ProjectileView{Position: pos, Velocity: vel, Age: t}, cfg.DT); ok {
				accel = accel.Add(extra)
			}
		}
		trajectory = append(trajectory, sampleAt(t, pos, vel, accel))

		prev := pos
		vel = vel.Add(accel.Scale(cfg.DT))
		pos = pos.Add(vel.Scale(cfg.DT))

		if pos.Y <= cfg.GroundHeight {
			impactTime, impactPos := interpolateImpact(t, cfg.DT, prev, pos, cfg.GroundHeight)
			trajectory = append(trajectory, sampleAt(impactTime, impactPos, vel, accel))
			return Result{
				Trajectory:     trajectory,
				ImpactTime:     impactTime,
				ImpactPosition: impactPos,
				Valid:          true,
			}
		}
	}
	return Result{Trajectory: trajectory}
}

// interpolateImpact blends the bracketing positions of a ground crossing.
// alpha is the fraction of the step spent above the plane; the returned
// position has its height forced exactly onto the plane.
func interpolateImpact(t, dt float32, before, after vecmath.Vec3, ground float32) (float32, vecmath.Vec3) {
	span := after.Y - before.Y
	alpha := float32(1)
	if span != 0 {
		alpha = (ground - before.Y) / span
	}
	impact := before.Lerp(after, alpha)
	impact.Y = ground
	return t + alpha*dt, impact
}

func sampleAt(t float32, pos, vel, accel vecmath.Vec3) Sample {
	state := physics.NewMotionState()
	state.Linear = physics.LinearState{Position: pos, Velocity: vel, Acceleration: accel}
	return Sample{Time: t, State: state}
}

// HitFunc is invoked once when a projectile's age reaches its lifetime.
type HitFunc func(view ProjectileView)

// Projectile is a live simulated projectile advanced step by step, as
// opposed to the one-shot predictors. It carries its own environment and
// body, bounces once off the ground plane with the body's restitution,
// and fires HitFunc once when its age reaches its lifetime.
type Projectile struct {
	State        physics.MotionState
	Env          physics.Environment
	Body         physics.Body
	GroundHeight float32
	Lifetime     float32
	Age          float32
	HitFunc      HitFunc

	hitFired bool
}

// NewProjectile creates a projectile at the given position and velocity
// under the default environment and body.
func NewProjectile(position, velocity vecmath.Vec3) *Projectile {
	state := physics.NewMotionState()
	state.Linear.Position = position
	state.Linear.Velocity = velocity
	return &Projectile{
		State: state,
		Env:   physics.DefaultEnvironment(),
		Body:  physics.DefaultBody(),
	}
}

// View returns the callback snapshot of the projectile.
func (p *Projectile) View() ProjectileView {
	return ProjectileView{
		Position: p.State.Linear.Position,
		Velocity: p.State.Linear.Velocity,
		Age:      p.Age,
	}
}

// Update advances the projectile by dt: model evaluation, semi-implicit
// integration, a single restitution bounce off the ground plane with
// friction damping the horizontal velocity, then the lifetime check.
func (p *Projectile) Update(dt float32) error {
	if dt <= 0 {
		return fmt.Errorf("predict: projectile update requires a positive time step, got %v", dt)
	}
	p.State.Linear.Acceleration = physics.Accel(p.State.Linear, p.Env, p.Body)
	if err := physics.Integrate(&p.State, physics.Config{
		Scheme: physics.SemiImplicitEuler,
		DT:     dt,
		Env:    &p.Env,
		Body:   &p.Body,
	}); err != nil {
		return err
	}

	linear := &p.State.Linear
	if linear.Position.Y < p.GroundHeight && linear.Velocity.Y < 0 {
		linear.Position.Y = p.GroundHeight
		linear.Velocity.Y = -linear.Velocity.Y * p.Body.Restitution
		horizontal := vecmath.Vec3{X: linear.Velocity.X, Z: linear.Velocity.Z}
		damped := physics.ApplyFriction(horizontal, p.Body.Friction, dt)
		linear.Velocity.X = damped.X
		linear.Velocity.Z = damped.Z
	}

	p.Age += dt
	if p.Age >= p.Lifetime && p.Lifetime > 0 && !p.hitFired {
		p.hitFired = true
		if p.HitFunc != nil {
			p.HitFunc(p.View())
		}
	}
	return nil
}

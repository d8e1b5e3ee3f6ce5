package physics

import (
	"fmt"

	"github.com/ballisto/ballisto/pkg/vecmath"
)

// Scheme selects the discrete-time update rule used by Integrate.
type Scheme int

const (
	// Euler advances position with the pre-step velocity.
	Euler Scheme = iota
	// SemiImplicitEuler advances position with the post-step velocity.
	// This is the recommended default at typical time steps (1/60 s).
	SemiImplicitEuler
	// Verlet advances position from the current and previous positions.
	// It requires Config.Prev.
	Verlet
	// RK4 is the classical 4-stage Runge-Kutta with the state's constant
	// acceleration.
	RK4
	// RK4WithEnv re-evaluates the motion model at each Runge-Kutta stage.
	RK4WithEnv
	// MotionEuler and the other Motion variants additionally advance the
	// angular state.
	MotionEuler
	MotionSemiImplicit
	MotionRK4
	MotionRK4WithEnv
	MotionVerlet
)

// String returns the scheme's name.
func (s Scheme) String() string {
	switch s {
	case Euler:
		return "euler"
	case SemiImplicitEuler:
		return "semi-implicit-euler"
	case Verlet:
		return "verlet"
	case RK4:
		return "rk4"
	case RK4WithEnv:
		return "rk4-with-env"
	case MotionEuler:
		return "motion-euler"
	case MotionSemiImplicit:
		return "motion-semi-implicit"
	case MotionRK4:
		return "motion-rk4"
	case MotionRK4WithEnv:
		return "motion-rk4-with-env"
	case MotionVerlet:
		return "motion-verlet"
	default:
		return "unknown"
	}
}

// Config selects the scheme and step parameters for one Integrate call.
// Prev is required by the Verlet family and is updated to the pre-step
// state after every Verlet step. Env and Body default to
// DefaultEnvironment/DefaultBody when nil; only the WithEnv schemes consume
// them.
type Config struct {
	Scheme Scheme
	DT     float32
	Prev   *MotionState
	Env    *Environment
	Body   *Body
}

// Integrate advances state by cfg.DT under the configured scheme. A nil
// state or non-positive DT leaves the state untouched and returns an error.
// An unknown scheme, or a Verlet-family scheme without Prev, is a contract
// violation and panics.
func Integrate(state *MotionState, cfg Config) error {
	if state == nil {
		return fmt.Errorf("physics: integrate requires a state")
	}
	if cfg.DT <= 0 {
		return fmt.Errorf("physics: integrate requires a positive time step, got %v", cfg.DT)
	}

	env := DefaultEnvironment()
	if cfg.Env != nil {
		env = *cfg.Env
	}
	body := DefaultBody()
	if cfg.Body != nil {
		body = *cfg.Body
	}

	switch cfg.Scheme {
	case Euler:
		eulerStep(&state.Linear, cfg.DT)
	case SemiImplicitEuler:
		semiImplicitStep(&state.Linear, cfg.DT)
	case Verlet:
		requirePrev(cfg)
		verletStep(&state.Linear, &cfg.Prev.Linear, cfg.DT)
	case RK4:
		rk4Step(&state.Linear, cfg.DT)
	case RK4WithEnv:
		rk4EnvStep(&state.Linear, env, body, cfg.DT)
	case MotionEuler:
		eulerStep(&state.Linear, cfg.DT)
		angularStep(&state.Angular, state.Angular.AngularAcceleration, cfg.DT)
	case MotionSemiImplicit:
		semiImplicitStep(&state.Linear, cfg.DT)
		angularStep(&state.Angular, state.Angular.AngularAcceleration, cfg.DT)
	case MotionRK4:
		rk4Step(&state.Linear, cfg.DT)
		angularStep(&state.Angular, state.Angular.AngularAcceleration, cfg.DT)
	case MotionRK4WithEnv:
		rk4EnvStep(&state.Linear, env, body, cfg.DT)
		drag := AngularDrag(state.Angular.AngularVelocity, env, body)
		state.Angular.AngularAcceleration = drag
		angularStep(&state.Angular, drag, cfg.DT)
	case MotionVerlet:
		requirePrev(cfg)
		pre := *state
		verletStep(&state.Linear, &cfg.Prev.Linear, cfg.DT)
		angularStep(&state.Angular, state.Angular.AngularAcceleration, cfg.DT)
		*cfg.Prev = pre
	default:
		panic(fmt.Sprintf("physics: unknown integration scheme %d", cfg.Scheme))
	}
	return nil
}

func requirePrev(cfg Config) {
	if cfg.Prev == nil {
		panic(fmt.Sprintf("physics: %s integration requires a previous state", cfg.Scheme))
	}
}

// eulerStep advances position with the pre-step velocity, then velocity.
func eulerStep(l *LinearState, dt float32) {
	l.Position = l.Position.Add(l.Velocity.Scale(dt))
	l.Velocity = l.Velocity.Add(l.Acceleration.Scale(dt))
}

// semiImplicitStep advances velocity first, then position with the updated
// velocity.
func semiImplicitStep(l *LinearState, dt float32) {
	l.Velocity = l.Velocity.Add(l.Acceleration.Scale(dt))
	l.Position = l.Position.Add(l.Velocity.Scale(dt))
}

// verletStep advances position from the current and previous positions:
// p' = 2p - p_prev + a*dt^2, with the velocity recovered by the central
// difference (p' - p_prev)/(2*dt). prev is rewritten to the pre-step state.
func verletStep(l, prev *LinearState, dt float32) {
	pre := *l
	next := l.Position.Scale(2).Sub(prev.Position).Add(l.Acceleration.Scale(dt * dt))
	l.Velocity = next.Sub(prev.Position).Scale(1 / (2 * dt))
	l.Position = next
	*prev = pre
}

// rk4Step performs the classical four-stage update with the state's stored
// acceleration. With a constant acceleration the stages collapse to the
// midpoint rule in position, but the full form is kept so the stage
// structure matches rk4EnvStep.
func rk4Step(l *LinearState, dt float32) {
	a := l.Acceleration

	v1 := l.Velocity
	v2 := l.Velocity.Add(a.Scale(dt / 2))
	v3 := l.Velocity.Add(a.Scale(dt / 2))
	v4 := l.Velocity.Add(a.Scale(dt))

	l.Position = l.Position.Add(weighted(v1, v2, v3, v4).Scale(dt / 6))
	l.Velocity = l.Velocity.Add(weighted(a, a, a, a).Scale(dt / 6))
}

// rk4EnvStep re-evaluates the motion model at each stage with offsets
// c = (0, 1/2, 1/2, 1). The stage states keep the base position and only
// sub-step the velocity: the sampled field is treated as
// position-independent within a step, so only the drag term varies across
// stages. The k4 evaluation is written back as the state's acceleration.
func rk4EnvStep(l *LinearState, env Environment, body Body, dt float32) {
	base := *l

	v1 := base.Velocity
	k1 := AccelAt(0, base, env, body)

	s2 := base
	s2.Velocity = base.Velocity.Add(k1.Scale(dt / 2))
	k2 := AccelAt(dt/2, s2, env, body)

	s3 := base
	s3.Velocity = base.Velocity.Add(k2.Scale(dt / 2))
	k3 := AccelAt(dt/2, s3, env, body)

	s4 := base
	s4.Velocity = base.Velocity.Add(k3.Scale(dt))
	k4 := AccelAt(dt, s4, env, body)

	l.Position = l.Position.Add(weighted(v1, s2.Velocity, s3.Velocity, s4.Velocity).Scale(dt / 6))
	l.Velocity = l.Velocity.Add(weighted(k1, k2, k3, k4).Scale(dt / 6))
	l.Acceleration = k4
}

// weighted combines four Runge-Kutta stages with the canonical 1-2-2-1
// weights.
func weighted(k1, k2, k3, k4 vecmath.Vec3) vecmath.Vec3 {
	return k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
}

// angularStep advances the angular velocity by alpha*dt and composes the
// orientation with the body-frame increment on the right:
// q' = normalize(q * dq(omega', dt)).
func angularStep(a *AngularState, alpha vecmath.Vec3, dt float32) {
	a.AngularVelocity = a.AngularVelocity.Add(alpha.Scale(dt))
	dq := vecmath.QuatFromAngularVelocity(a.AngularVelocity, dt)
	a.Orientation = a.Orientation.Mul(dq)
}

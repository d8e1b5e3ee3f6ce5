package physics

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// ApplyFriction damps a velocity linearly in dt: v * max(0, 1 - friction*dt).
// The factor clamps at zero so a large step cannot reverse the velocity.
// This deliberately does not model Coulomb static friction.
func ApplyFriction(v vecmath.Vec3, friction, dt float32) vecmath.Vec3 {
	factor := 1 - friction*dt
	if factor < 0 {
		factor = 0
	}
	return v.Scale(factor)
}

// ApplyFrictionWithStopTime damps the velocity and reports how much of dt
// was actually consumed. Solving friction*t = 1 gives the instant the
// velocity reaches zero; when that instant falls inside [0, dt] the
// returned velocity is zero and the stop time is returned instead of dt.
func ApplyFrictionWithStopTime(v vecmath.Vec3, friction, dt float32) (vecmath.Vec3, float32) {
	if friction > 0 {
		stop := 1 / friction
		if stop >= 0 && stop <= dt {
			return vecmath.Vec3{}, stop
		}
	}
	return ApplyFriction(v, friction, dt), dt
}

// ApplyFrictionWithHeat damps the velocity and returns the kinetic energy
// dissipated by the step: max(0, 0.5*m*(|v0|^2 - |v1|^2)).
func ApplyFrictionWithHeat(v vecmath.Vec3, friction, dt, mass float32) (vecmath.Vec3, float32) {
	damped := ApplyFriction(v, friction, dt)
	heat := 0.5 * mass * (v.LengthSquared() - damped.LengthSquared())
	if heat < 0 {
		heat = 0
	}
	return damped, heat
}

package physics

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// velocityEpsilon is the speed below which drag contributes nothing. This
// keeps the direction division out of the near-zero regime.
const velocityEpsilon float32 = 1e-6

// Accel returns the instantaneous net linear acceleration of a body:
// gravity plus aerodynamic drag. Drag acts on the airspeed (velocity minus
// wind) and opposes it with magnitude 0.5*rho*Cd*A*|v|^2/m. Every
// integration sub-step uses this same airspeed policy. External forces such
// as thrust are added by the caller.
func Accel(state LinearState, env Environment, body Body) vecmath.Vec3 {
	accel := env.Gravity
	if body.Mass <= 0 {
		return accel
	}
	airspeed := state.Velocity.Sub(env.Wind)
	speed := airspeed.Length()
	if speed < velocityEpsilon {
		return accel
	}
	dragMag := 0.5 * env.AirDensity * body.DragCoef * body.CrossSection * speed * speed / body.Mass
	return accel.Add(airspeed.Normalize().Scale(-dragMag))
}

// AccelAt is the time-parameterized acceleration used by the RK4 sub-step
// evaluations. The model itself is time-invariant, so t only exists to keep
// the sub-step contract explicit.
func AccelAt(t float32, state LinearState, env Environment, body Body) vecmath.Vec3 {
	_ = t
	return Accel(state, env, body)
}

// AngularDrag returns the linear damping torque acting against the angular
// velocity. Only the attitude-with-env integrator consumes this.
func AngularDrag(omega vecmath.Vec3, env Environment, body Body) vecmath.Vec3 {
	coef := 0.5 * env.AirDensity * body.DragCoef * body.CrossSection / (body.Mass + velocityEpsilon)
	return omega.Scale(-coef)
}

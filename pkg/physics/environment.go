package physics

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

const (
	// DefaultGravity is the gravitational acceleration along -Y in m/s^2.
	DefaultGravity float32 = 9.81
	// DefaultAirDensity is the density of air at sea level in kg/m^3.
	DefaultAirDensity float32 = 1.225
)

// Environment bundles the ambient conditions acting uniformly on a body
// during one integration step.
type Environment struct {
	Gravity    vecmath.Vec3
	Wind       vecmath.Vec3
	AirDensity float32
}

// DefaultEnvironment returns still air at sea level with standard gravity.
func DefaultEnvironment() Environment {
	return Environment{
		Gravity:    vecmath.Vec3{Y: -DefaultGravity},
		AirDensity: DefaultAirDensity,
	}
}

// Body holds the scalar properties of a particular rigid body.
// Mass must be positive; Restitution and Friction are in [0, 1].
type Body struct {
	Mass         float32
	DragCoef     float32
	CrossSection float32
	Restitution  float32
	Friction     float32
}

// DefaultBody returns a 1 kg sphere-like body with the drag coefficient of
// a sphere.
func DefaultBody() Body {
	return Body{
		Mass:         1.0,
		DragCoef:     0.47,
		CrossSection: 0.01,
		Restitution:  0.5,
		Friction:     0.1,
	}
}

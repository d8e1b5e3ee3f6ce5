// Package physics provides the rigid-body state records, the force model,
// and the numerical integration engine.
package physics

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// LinearState holds the translational state of a body at one instant.
// Acceleration is the last net acceleration computed for the body; the
// integrators that consume an acceleration model write it back after every
// step.
type LinearState struct {
	Position     vecmath.Vec3
	Velocity     vecmath.Vec3
	Acceleration vecmath.Vec3
}

// AngularState holds the rotational state of a body. Orientation is a unit
// quaternion mapping body frame to world frame.
type AngularState struct {
	Orientation         vecmath.Quat
	AngularVelocity     vecmath.Vec3
	AngularAcceleration vecmath.Vec3
}

// MotionState is the combined linear and angular state of a rigid body.
type MotionState struct {
	Linear  LinearState
	Angular AngularState
}

// NewMotionState returns a motion state at the origin with identity
// orientation.
func NewMotionState() MotionState {
	return MotionState{
		Angular: AngularState{Orientation: vecmath.QuatIdentity()},
	}
}

package vecmath

// Quat represents a rotation as a unit quaternion. W is the scalar part.
// Every rotation-producing operation returns a normalized result.
type Quat struct {
	W, X, Y, Z float32
}

// QuatIdentity returns the identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle creates a quaternion rotating by angle (radians) around
// the given axis. The axis does not need to be normalized; a zero axis
// yields the identity.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	n := axis.Normalize()
	if n.IsZero() {
		return QuatIdentity()
	}
	s := Sin(angle / 2)
	return Quat{
		W: Cos(angle / 2),
		X: n.X * s,
		Y: n.Y * s,
		Z: n.Z * s,
	}
}

// QuatFromAngularVelocity returns the rotation accumulated by spinning at
// omega (rad/s) for dt seconds: axis omega-hat, angle |omega|*dt. Angular
// speeds below 1e-6 produce the identity.
func QuatFromAngularVelocity(omega Vec3, dt float32) Quat {
	speed := omega.Length()
	if speed < 1e-6 {
		return QuatIdentity()
	}
	return QuatFromAxisAngle(omega, speed*dt)
}

// Mul returns the Hamilton product q*o, normalized. Composing a body-frame
// increment is q.Mul(dq): world-from-body order.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}.Normalize()
}

// Conjugate returns the quaternion with the vector part negated. For unit
// quaternions this is the inverse rotation.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Dot returns the four-component dot product of two quaternions.
func (q Quat) Dot(o Quat) float32 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

// Length returns the quaternion's magnitude.
func (q Quat) Length() float32 {
	return Sqrt(q.Dot(q))
}

// Normalize returns a unit quaternion. Degenerate near-zero quaternions
// normalize to the identity instead of producing NaN.
func (q Quat) Normalize() Quat {
	length := q.Length()
	if length < 1e-6 {
		return QuatIdentity()
	}
	inv := 1 / length
	return Quat{W: q.W * inv, X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv}
}

// Rotate applies the rotation to a vector: q v q*.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Slerp spherically interpolates between q and o by t in [0, 1], always
// taking the shorter arc. Nearly parallel quaternions fall back to
// normalized linear interpolation to avoid dividing by a vanishing sine.
func (q Quat) Slerp(o Quat, t float32) Quat {
	dot := q.Dot(o)
	if dot < 0 {
		o = Quat{W: -o.W, X: -o.X, Y: -o.Y, Z: -o.Z}
		dot = -dot
	}
	if dot > 0.9995 {
		return Quat{
			W: Lerp(q.W, o.W, t),
			X: Lerp(q.X, o.X, t),
			Y: Lerp(q.Y, o.Y, t),
			Z: Lerp(q.Z, o.Z, t),
		}.Normalize()
	}
	theta := Atan2(Sqrt(1-dot*dot), dot)
	sinTheta := Sin(theta)
	wa := Sin((1-t)*theta) / sinTheta
	wb := Sin(t*theta) / sinTheta
	return Quat{
		W: q.W*wa + o.W*wb,
		X: q.X*wa + o.X*wb,
		Y: q.Y*wa + o.Y*wb,
		Z: q.Z*wa + o.Z*wb,
	}.Normalize()
}

// ApproxEqual reports whether two quaternions represent rotations equal
// within tolerance. q and -q compare equal.
func (q Quat) ApproxEqual(o Quat) bool {
	return ApproxEqual(Abs(q.Dot(o)), 1)
}

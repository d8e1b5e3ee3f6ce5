package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	assert.Equal(t, Quat{W: 1}, q)

	v := NewVec3(1, 2, 3)
	assert.True(t, q.Rotate(v).ApproxEqual(v))
}

func TestQuatFromAxisAngle_RotateZByPi(t *testing.T) {
	// Rotating (1,0,0) by pi around Z lands on (-1,0,0).
	q := QuatFromAxisAngle(Vec3{Z: 1}, math.Pi)
	got := q.Rotate(Vec3{X: 1})
	assert.InDelta(t, -1.0, got.X, 1e-4)
	assert.InDelta(t, 0.0, got.Y, 1e-4)
	assert.InDelta(t, 0.0, got.Z, 1e-4)
}

func TestQuatFromAxisAngle_QuarterTurn(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Y: 1}, math.Pi/2)
	got := q.Rotate(Vec3{X: 1})
	assert.True(t, got.ApproxEqual(Vec3{Z: -1}), "got %+v", got)
}

func TestQuatFromAxisAngle_ZeroAxis(t *testing.T) {
	assert.Equal(t, QuatIdentity(), QuatFromAxisAngle(Vec3{}, 1.5))
}

func TestQuatMul_Normalized(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{X: 1}, 0.7)
	b := QuatFromAxisAngle(Vec3{Y: 1}, -1.3)
	q := a.Mul(b)
	assert.InDelta(t, 1.0, q.Length(), 1e-5)
}

func TestQuatMul_ComposesRotations(t *testing.T) {
	// Two quarter turns around the same axis equal a half turn.
	quarter := QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/2)
	half := QuatFromAxisAngle(Vec3{Z: 1}, math.Pi)
	assert.True(t, quarter.Mul(quarter).ApproxEqual(half))
}

func TestQuatNormalize_Degenerate(t *testing.T) {
	assert.Equal(t, QuatIdentity(), Quat{}.Normalize())
}

func TestQuatFromAngularVelocity(t *testing.T) {
	// Spinning at pi rad/s around Y for one second is a half turn.
	dq := QuatFromAngularVelocity(Vec3{Y: math.Pi}, 1)
	expected := QuatFromAxisAngle(Vec3{Y: 1}, math.Pi)
	assert.True(t, dq.ApproxEqual(expected))

	// Negligible angular speed yields the identity.
	assert.Equal(t, QuatIdentity(), QuatFromAngularVelocity(Vec3{Y: 1e-8}, 1))
}

func TestQuatSlerp(t *testing.T) {
	a := QuatIdentity()
	b := QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/2)

	assert.True(t, a.Slerp(b, 0).ApproxEqual(a))
	assert.True(t, a.Slerp(b, 1).ApproxEqual(b))

	mid := a.Slerp(b, 0.5)
	expected := QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/4)
	assert.True(t, mid.ApproxEqual(expected))
	assert.InDelta(t, 1.0, mid.Length(), 1e-5)
}

func TestQuatSlerp_NearlyParallel(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Z: 1}, 0.0001)
	b := QuatFromAxisAngle(Vec3{Z: 1}, 0.0002)
	mid := a.Slerp(b, 0.5)
	assert.InDelta(t, 1.0, mid.Length(), 1e-5)
}

func TestQuatConjugate_InvertsRotation(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 1, Y: 2, Z: -1}, 1.1)
	v := NewVec3(3, -2, 5)
	assert.True(t, q.Conjugate().Rotate(q.Rotate(v)).ApproxEqual(v))
}

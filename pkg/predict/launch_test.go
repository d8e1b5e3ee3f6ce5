package predict

import (
	"math"
	"testing"

	"github.com/ballisto/ballisto/pkg/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcLaunchParam_RoundTrip(t *testing.T) {
	// Forward-simulate a vacuum shot, then reconstruct the launch from the
	// impact point. The recovered direction must match within one degree.
	const (
		speed   = 20.0
		angle   = 30.0 * math.Pi / 180
		gravity = 9.8
		mass    = 1.0
	)
	launchDir := vecmath.Vec3{
		X: float32(math.Cos(angle)),
		Y: float32(math.Sin(angle)),
	}

	result := PredictProjectile(ProjectileConfig{
		StartVelocity: launchDir.Scale(speed),
		Gravity:       vecmath.Vec3{Y: -gravity},
		MaxTime:       10,
		DT:            0.001,
	})
	require.True(t, result.Valid)

	// The launch force that produces v0 over the observed range.
	rangeXZ := result.ImpactPosition.X
	force := float32(mass * speed * speed / (2 * float64(rangeXZ)))

	param, ok := CalcLaunchParam(vecmath.Vec3{}, result.ImpactPosition, force, mass, gravity)
	require.True(t, ok)

	cosAngle := param.Direction.Dot(launchDir)
	assert.Greater(t, cosAngle, float32(math.Cos(1.0*math.Pi/180)),
		"reconstructed direction off by more than 1 degree: %+v", param.Direction)
	assert.InDelta(t, result.ImpactTime, param.TimeToHit, 0.05)
}

func TestCalcLaunchParam_OutOfReach(t *testing.T) {
	// Far target, feeble force: the discriminant goes negative.
	_, ok := CalcLaunchParam(vecmath.Vec3{}, vecmath.Vec3{X: 1000}, 0.1, 1, 9.8)
	assert.False(t, ok)
}

func TestCalcLaunchParam_DegenerateInputs(t *testing.T) {
	target := vecmath.Vec3{X: 10}
	_, ok := CalcLaunchParam(vecmath.Vec3{}, target, 5, 0, 9.8)
	assert.False(t, ok, "non-positive mass")
	_, ok = CalcLaunchParam(vecmath.Vec3{}, target, 5, 1, 0)
	assert.False(t, ok, "no gravity")
	_, ok = CalcLaunchParam(vecmath.Vec3{}, vecmath.Vec3{Y: 3}, 5, 1, 9.8)
	assert.False(t, ok, "no horizontal range")
}

func TestCalcLaunchParam_DirectionIsUnitLowArc(t *testing.T) {
	param, ok := CalcLaunchParam(vecmath.Vec3{}, vecmath.Vec3{X: 30, Z: 40}, 10, 1, 9.8)
	require.True(t, ok)
	assert.InDelta(t, 1.0, param.Direction.Length(), 1e-5)
	assert.Greater(t, param.Direction.Y, float32(0))
	// Horizontal component points at the target.
	horizontal := vecmath.Vec3{X: param.Direction.X, Z: param.Direction.Z}.Normalize()
	assert.True(t, horizontal.ApproxEqual(vecmath.Vec3{X: 0.6, Z: 0.8}))
	assert.Greater(t, param.TimeToHit, float32(0))
}

func TestCalcLaunchParamWithEnv_TailwindShortensFlightTime(t *testing.T) {
	start := vecmath.Vec3{}
	target := vecmath.Vec3{X: 50}

	still, ok := CalcLaunchParam(start, target, 10, 1, 9.8)
	require.True(t, ok)
	windy, ok := CalcLaunchParamWithEnv(start, target, 10, 1, 9.8, vecmath.Vec3{X: 5})
	require.True(t, ok)

	assert.Less(t, windy.TimeToHit, still.TimeToHit)
	assert.True(t, windy.Direction.ApproxEqual(still.Direction))
}

func TestCalcLaunchParamAtTime(t *testing.T) {
	const hitTime = 2.0
	start := vecmath.Vec3{Y: 1}
	target := vecmath.Vec3{X: 20, Y: 1}
	gravity := vecmath.Vec3{Y: -9.8}

	param, ok := CalcLaunchParamAtTime(start, target, hitTime, 2, gravity, vecmath.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, hitTime, param.TimeToHit, 1e-6)
	assert.InDelta(t, 1.0, param.Direction.Length(), 1e-5)

	// Flying the returned velocity for hitTime lands on the target.
	velocity := param.Direction.Scale(param.Force / 2)
	landing := start.
		Add(velocity.Scale(hitTime)).
		Add(gravity.Scale(0.5 * hitTime * hitTime))
	assert.True(t, landing.ApproxEqual(target), "landed at %+v", landing)
}

func TestCalcLaunchParamAtTime_WindDrift(t *testing.T) {
	// The solution compensates for wind drift over the flight.
	wind := vecmath.Vec3{X: 3}
	param, ok := CalcLaunchParamAtTime(vecmath.Vec3{}, vecmath.Vec3{X: 10}, 2, 1, vecmath.Vec3{Y: -9.8}, wind)
	require.True(t, ok)

	velocity := param.Direction.Scale(param.Force)
	landing := velocity.Scale(2).
		Add(vecmath.Vec3{Y: -9.8}.Scale(0.5 * 4)).
		Add(wind.Scale(2))
	assert.InDelta(t, 10.0, landing.X, 1e-3)
	assert.InDelta(t, 0.0, landing.Y, 1e-3)
}

func TestCalcLaunchParamAtTime_InvalidInputs(t *testing.T) {
	_, ok := CalcLaunchParamAtTime(vecmath.Vec3{}, vecmath.Vec3{X: 1}, 0, 1, vecmath.Vec3{Y: -9.8}, vecmath.Vec3{})
	assert.False(t, ok, "zero hit time")
	_, ok = CalcLaunchParamAtTime(vecmath.Vec3{}, vecmath.Vec3{X: 1}, 1, 0, vecmath.Vec3{Y: -9.8}, vecmath.Vec3{})
	assert.False(t, ok, "zero mass")
}

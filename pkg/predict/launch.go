package predict

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// CalcLaunchParam inverts the ballistic equations: given a launch force,
// body mass, and gravity magnitude, it returns the lower-arc direction and
// flight time that land a projectile on the target. It fails when the
// geometry is degenerate or the force cannot reach the target (negative
// value under the square root).
func CalcLaunchParam(start, target vecmath.Vec3, force, mass, gravity float32) (LaunchParam, bool) {
	return calcLaunch(start, target, force, mass, gravity, 0)
}

// CalcLaunchParamWithEnv solves the same launch problem but folds the
// horizontal wind speed into the flight-time estimate.
func CalcLaunchParamWithEnv(start, target vecmath.Vec3, force, mass, gravity float32, wind vecmath.Vec3) (LaunchParam, bool) {
	windSpeed := vecmath.Vec3{X: wind.X, Z: wind.Z}.Length()
	return calcLaunch(start, target, force, mass, gravity, windSpeed)
}

func calcLaunch(start, target vecmath.Vec3, force, mass, gravity, horizontalWind float32) (LaunchParam, bool) {
	if mass <= 0 || gravity <= 0 || force <= 0 {
		return LaunchParam{}, false
	}
	delta := target.Sub(start)
	horizontal := vecmath.Vec3{X: delta.X, Z: delta.Z}
	rangeXZ := horizontal.Length()
	if rangeXZ < 1e-6 {
		return LaunchParam{}, false
	}
	deltaY := delta.Y

	// v0 from the work the launch force performs over the range.
	v0sq := 2 * force * rangeXZ / mass
	underSqrt := v0sq*v0sq - gravity*(gravity*rangeXZ*rangeXZ+2*deltaY*v0sq)
	if underSqrt < 0 {
		return LaunchParam{}, false
	}
	theta := vecmath.Atan((v0sq - vecmath.Sqrt(underSqrt)) / (gravity * rangeXZ))

	xzDir := horizontal.Normalize()
	direction := xzDir.Scale(vecmath.Cos(theta)).Add(vecmath.Vec3{Y: vecmath.Sin(theta)}).Normalize()

	v0 := vecmath.Sqrt(v0sq)
	denom := v0*vecmath.Cos(theta) + horizontalWind
	if denom <= 0 {
		return LaunchParam{}, false
	}
	return LaunchParam{
		Direction: direction,
		Force:     force,
		TimeToHit: rangeXZ / denom,
	}, true
}

// CalcLaunchParamAtTime solves for the launch that reaches the target at
// exactly hitTime: the required initial velocity cancels gravity and wind
// drift over the flight, and the force is the mass times its magnitude.
func CalcLaunchParamAtTime(start, target vecmath.Vec3, hitTime, mass float32, gravity, wind vecmath.Vec3) (LaunchParam, bool) {
	if hitTime <= 0 || mass <= 0 {
		return LaunchParam{}, false
	}
	delta := target.Sub(start)
	required := delta.
		Sub(gravity.Scale(0.5 * hitTime * hitTime)).
		Sub(wind.Scale(hitTime)).
		Scale(1 / hitTime)
	speed := required.Length()
	if speed < 1e-6 {
		return LaunchParam{}, false
	}
	return LaunchParam{
		Direction: required.Normalize(),
		Force:     mass * speed,
		TimeToHit: hitTime,
	}, true
}

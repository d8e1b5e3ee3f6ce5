// Package solve provides the closed-form and iterative solvers used to
// invert ballistic motion: quadratic roots, bisection, apex and
// time-of-flight queries.
package solve

import (
	"github.com/ballisto/ballisto/pkg/physics"
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// maxBisectIterations bounds the bisection loop.
const maxBisectIterations = 100

// timeScanSamples is the number of points used by the sampled time scans.
const timeScanSamples = 100

// Quadratic returns both real roots of a*x^2 + b*x + c = 0. It fails when
// a is zero or the discriminant is negative.
func Quadratic(a, b, c float32) (x1, x2 float32, ok bool) {
	if a == 0 {
		return 0, 0, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	root := vecmath.Sqrt(disc)
	return (-b + root) / (2 * a), (-b - root) / (2 * a), true
}

// Bisect finds a root of f in [a, b] by bisection. The bracket must
// straddle a sign change; it fails otherwise. Iteration stops when the
// function value or the bracket width drops below tol, bounded at 100
// iterations.
func Bisect(f func(float32) float32, a, b, tol float32) (float32, bool) {
	fa := f(a)
	fb := f(b)
	if fa*fb > 0 {
		return 0, false
	}
	mid := a
	for i := 0; i < maxBisectIterations; i++ {
		mid = (a + b) / 2
		fm := f(mid)
		if vecmath.Abs(fm) < tol || (b-a) < tol {
			return mid, true
		}
		if fa*fm <= 0 {
			b = mid
		} else {
			a = mid
			fa = fm
		}
	}
	return mid, true
}

// PositionAt evaluates the constant-acceleration position at time t:
// p + v*t + 0.5*a*t^2.
func PositionAt(l physics.LinearState, t float32) vecmath.Vec3 {
	return l.Position.
		Add(l.Velocity.Scale(t)).
		Add(l.Acceleration.Scale(0.5 * t * t))
}

// Apex returns the time and position of the vertical peak of a trajectory.
// It fails when the vertical acceleration is zero.
func Apex(l physics.LinearState) (t float32, pos vecmath.Vec3, ok bool) {
	if l.Acceleration.Y == 0 {
		return 0, vecmath.Vec3{}, false
	}
	t = -l.Velocity.Y / l.Acceleration.Y
	return t, PositionAt(l, t), true
}

// TimeForY returns the smallest non-negative time at which the trajectory
// reaches the given height, solving 0.5*ay*t^2 + vy*t + (py - targetY) = 0.
// With zero vertical acceleration the linear equation is solved instead.
func TimeForY(l physics.LinearState, targetY float32) (float32, bool) {
	offset := l.Position.Y - targetY
	if l.Acceleration.Y == 0 {
		if l.Velocity.Y == 0 {
			return 0, false
		}
		t := -offset / l.Velocity.Y
		if t < 0 {
			return 0, false
		}
		return t, true
	}
	x1, x2, ok := Quadratic(0.5*l.Acceleration.Y, l.Velocity.Y, offset)
	if !ok {
		return 0, false
	}
	return smallestNonNegative(x1, x2)
}

// TimeForPosition scans the interval [0, tMax] at 100 points and returns
// the time whose projected (x, z) position is closest to the target's,
// exiting early once the distance is within tol. It fails when tMax is not
// positive.
func TimeForPosition(l physics.LinearState, target vecmath.Vec3, tol, tMax float32) (float32, bool) {
	if tMax <= 0 {
		return 0, false
	}
	step := tMax / timeScanSamples
	bestTime := float32(0)
	bestDist := horizontalDistance(PositionAt(l, 0), target)
	for i := 1; i <= timeScanSamples; i++ {
		t := float32(i) * step
		dist := horizontalDistance(PositionAt(l, t), target)
		if dist < bestDist {
			bestDist = dist
			bestTime = t
		}
		if dist <= tol {
			return t, true
		}
	}
	return bestTime, true
}

// StopTime returns the time until the velocity reaches zero, assuming the
// acceleration opposes the velocity. It fails when the acceleration is
// zero.
func StopTime(l physics.LinearState) (float32, bool) {
	decel := l.Acceleration.Length()
	if decel == 0 {
		return 0, false
	}
	return l.Velocity.Length() / decel, true
}

// VelocityForRange returns the launch speed that covers the horizontal
// distance d at the optimal 45 degree angle under gravity g: sqrt(d*g).
func VelocityForRange(d, g float32) float32 {
	return vecmath.Sqrt(d * g)
}

// TimeToCollision returns the first time two constant-velocity points come
// within radius of each other. Diverging objects, or objects whose paths
// never close to within radius, fail.
func TimeToCollision(posA, velA, posB, velB vecmath.Vec3, radius float32) (float32, bool) {
	dp := posB.Sub(posA)
	dv := velB.Sub(velA)
	a := dv.LengthSquared()
	if a == 0 {
		if dp.Length() <= radius {
			return 0, true
		}
		return 0, false
	}
	x1, x2, ok := Quadratic(a, 2*dp.Dot(dv), dp.LengthSquared()-radius*radius)
	if !ok {
		return 0, false
	}
	return smallestNonNegative(x1, x2)
}

func smallestNonNegative(x1, x2 float32) (float32, bool) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if x1 >= 0 {
		return x1, true
	}
	if x2 >= 0 {
		return x2, true
	}
	return 0, false
}

func horizontalDistance(a, b vecmath.Vec3) float32 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return vecmath.Sqrt(dx*dx + dz*dz)
}

// Package control provides the feedback blocks used by the prediction
// layer: Kalman estimators and PID controllers.
package control

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// gainEpsilon guards the Kalman gain denominator. A degenerate covariance
// leaves the state unchanged instead of propagating NaN.
const gainEpsilon float32 = 1e-12

// ScalarKalman estimates a scalar under a constant model. P grows by Q on
// every time update and shrinks on every measurement update; with R > 0 the
// gain K stays inside [0, 1).
type ScalarKalman struct {
	X float32 // state estimate
	P float32 // estimate covariance
	Q float32 // process noise covariance
	R float32 // measurement noise covariance
	K float32 // gain of the last measurement update
}

// NewScalarKalman creates a scalar filter with the given initial estimate
// and covariances.
func NewScalarKalman(x, p, q, r float32) *ScalarKalman {
	return &ScalarKalman{X: x, P: p, Q: q, R: r}
}

// TimeUpdate projects the covariance forward: p <- p + q.
func (f *ScalarKalman) TimeUpdate() {
	f.P += f.Q
}

// MeasurementUpdate folds the measurement z into the estimate and returns
// the corrected estimate.
func (f *ScalarKalman) MeasurementUpdate(z float32) float32 {
	denom := f.P + f.R
	if denom < gainEpsilon {
		return f.X
	}
	f.K = f.P / denom
	f.X += f.K * (z - f.X)
	f.P *= 1 - f.K
	return f.X
}

// Vec3Kalman estimates a position under a constant-velocity model with a
// shared time step. Each axis carries the identical scalar dynamics.
type Vec3Kalman struct {
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	ErrorP   vecmath.Vec3
	Q        float32
	R        float32
	DT       float32
}

// NewVec3Kalman creates a constant-velocity filter starting at the given
// position with unit error covariance.
func NewVec3Kalman(position vecmath.Vec3, q, r, dt float32) *Vec3Kalman {
	return &Vec3Kalman{
		Position: position,
		ErrorP:   vecmath.Vec3{X: 1, Y: 1, Z: 1},
		Q:        q,
		R:        r,
		DT:       dt,
	}
}

// TimeUpdate projects the position forward by the estimated velocity and
// inflates the error covariance by the process noise.
func (f *Vec3Kalman) TimeUpdate() {
	f.Position = f.Position.Add(f.Velocity.Scale(f.DT))
	f.ErrorP = f.ErrorP.Add(vecmath.Vec3{X: f.Q, Y: f.Q, Z: f.Q})
}

// MeasurementUpdate folds a position measurement into the estimate, derives
// the velocity from the estimate's displacement, and returns the corrected
// position.
func (f *Vec3Kalman) MeasurementUpdate(z vecmath.Vec3) vecmath.Vec3 {
	gain := vecmath.Vec3{
		X: axisGain(f.ErrorP.X, f.R),
		Y: axisGain(f.ErrorP.Y, f.R),
		Z: axisGain(f.ErrorP.Z, f.R),
	}
	corrected := vecmath.Vec3{
		X: f.Position.X + gain.X*(z.X-f.Position.X),
		Y: f.Position.Y + gain.Y*(z.Y-f.Position.Y),
		Z: f.Position.Z + gain.Z*(z.Z-f.Position.Z),
	}
	if f.DT > 0 {
		f.Velocity = corrected.Sub(f.Position).Scale(1 / f.DT)
	}
	f.Position = corrected
	f.ErrorP = vecmath.Vec3{
		X: (1 - gain.X) * f.ErrorP.X,
		Y: (1 - gain.Y) * f.ErrorP.Y,
		Z: (1 - gain.Z) * f.ErrorP.Z,
	}
	return f.Position
}

// Project returns the position extrapolated by dt without mutating the
// filter.
func (f *Vec3Kalman) Project(dt float32) vecmath.Vec3 {
	return f.Position.Add(f.Velocity.Scale(dt))
}

func axisGain(p, r float32) float32 {
	denom := p + r
	if denom < gainEpsilon {
		return 0
	}
	return p / denom
}

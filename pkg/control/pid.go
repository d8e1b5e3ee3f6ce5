package control

import (
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// PID is a scalar proportional-integral-derivative controller with output
// clamping and integral anti-windup. OutputLimit of zero disables the
// clamp. With AntiWindup set, the integral accumulation is rolled back on
// any step whose output clamps, so the integral cannot wind up against the
// limit.
type PID struct {
	Kp          float32
	Ki          float32
	Kd          float32
	DT          float32
	OutputLimit float32
	AntiWindup  bool

	integral  float32
	prevError float32
}

// NewPID creates a controller with the given gains and time step.
func NewPID(kp, ki, kd, dt float32) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd, DT: dt}
}

// Update computes the control output for one step and advances the
// controller state.
func (p *PID) Update(target, measured float32) float32 {
	out, integral, err := p.compute(target, measured)
	p.integral = integral
	p.prevError = err
	return out
}

// Preview returns the output Update would produce without mutating the
// controller.
func (p *PID) Preview(target, measured float32) float32 {
	out, _, _ := p.compute(target, measured)
	return out
}

// Reset clears the integral accumulator and the stored error.
func (p *PID) Reset() {
	p.integral = 0
	p.prevError = 0
}

// compute evaluates one PID step and returns the clamped output along with
// the integral and error values the step would leave behind.
func (p *PID) compute(target, measured float32) (out, integral, err float32) {
	err = target - measured
	integral = p.integral + err*p.DT

	var derivative float32
	if p.DT > 0 {
		derivative = (err - p.prevError) / p.DT
	}

	raw := p.Kp*err + p.Ki*integral + p.Kd*derivative
	out = raw
	if p.OutputLimit > 0 {
		out = vecmath.Clamp(raw, -p.OutputLimit, p.OutputLimit)
	}
	if p.AntiWindup && out != raw {
		integral -= err * p.DT
	}
	return out, integral, err
}

// Vec3PID drives each axis with an independent scalar controller.
type Vec3PID struct {
	X PID
	Y PID
	Z PID
}

// NewVec3PID creates three identical scalar controllers, one per axis.
func NewVec3PID(kp, ki, kd, dt float32) *Vec3PID {
	return &Vec3PID{
		X: PID{Kp: kp, Ki: ki, Kd: kd, DT: dt},
		Y: PID{Kp: kp, Ki: ki, Kd: kd, DT: dt},
		Z: PID{Kp: kp, Ki: ki, Kd: kd, DT: dt},
	}
}

// SetOutputLimit applies the same clamp and anti-windup policy to all
// three axes.
func (p *Vec3PID) SetOutputLimit(limit float32, antiWindup bool) {
	for _, axis := range []*PID{&p.X, &p.Y, &p.Z} {
		axis.OutputLimit = limit
		axis.AntiWindup = antiWindup
	}
}

// Update computes the per-axis control outputs for one step.
func (p *Vec3PID) Update(target, measured vecmath.Vec3) vecmath.Vec3 {
	return vecmath.Vec3{
		X: p.X.Update(target.X, measured.X),
		Y: p.Y.Update(target.Y, measured.Y),
		Z: p.Z.Update(target.Z, measured.Z),
	}
}

// Preview returns the per-axis outputs without mutating any axis.
func (p *Vec3PID) Preview(target, measured vecmath.Vec3) vecmath.Vec3 {
	return vecmath.Vec3{
		X: p.X.Preview(target.X, measured.X),
		Y: p.Y.Preview(target.Y, measured.Y),
		Z: p.Z.Preview(target.Z, measured.Z),
	}
}

// Reset clears all three controllers.
func (p *Vec3PID) Reset() {
	p.X.Reset()
	p.Y.Reset()
	p.Z.Reset()
}

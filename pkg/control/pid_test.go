package control

import (
	"testing"

	"github.com/ballisto/ballisto/pkg/vecmath"
	"github.com/stretchr/testify/assert"
)

func TestPID_ProportionalOnly(t *testing.T) {
	pid := NewPID(1, 0, 0, 0.1)
	assert.InDelta(t, 3.0, pid.Update(5, 2), 1e-6)
}

func TestPID_IntegralAccumulates(t *testing.T) {
	pid := NewPID(0, 1, 0, 0.5)
	assert.InDelta(t, 1.0, pid.Update(2, 0), 1e-6) // integral = 1
	assert.InDelta(t, 2.0, pid.Update(2, 0), 1e-6) // integral = 2
}

func TestPID_DerivativeReactsToErrorChange(t *testing.T) {
	pid := NewPID(0, 0, 1, 0.5)
	assert.InDelta(t, 2.0, pid.Update(1, 0), 1e-6)  // (1-0)/0.5
	assert.InDelta(t, -2.0, pid.Update(0, 0), 1e-6) // (0-1)/0.5
}

func TestPID_PreviewMatchesUpdateWithoutMutation(t *testing.T) {
	pid := NewPID(2, 0.5, 0.1, 0.1)
	pid.Update(1, 0) // give the controller some history

	previewed := pid.Preview(3, 1)
	saved := *pid
	again := pid.Preview(3, 1)
	assert.Equal(t, saved, *pid, "Preview mutated the controller")
	assert.Equal(t, previewed, again)

	assert.InDelta(t, previewed, pid.Update(3, 1), 1e-6)
	assert.NotEqual(t, saved, *pid, "Update must advance the state")
}

func TestPID_OutputClamp(t *testing.T) {
	pid := NewPID(100, 0, 0, 0.1)
	pid.OutputLimit = 5

	tests := []struct {
		name     string
		target   float32
		measured float32
	}{
		{name: "large positive error", target: 1000, measured: 0},
		{name: "large negative error", target: -1000, measured: 0},
		{name: "small error", target: 0.01, measured: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := pid.Update(tt.target, tt.measured)
			assert.LessOrEqual(t, vecmath.Abs(out), float32(5))
		})
	}
}

func TestPID_AntiWindupRollsBackIntegral(t *testing.T) {
	windy := NewPID(0, 1, 0, 1)
	windy.OutputLimit = 1
	guarded := NewPID(0, 1, 0, 1)
	guarded.OutputLimit = 1
	guarded.AntiWindup = true

	// Drive both against the clamp for a while, then release the error.
	for i := 0; i < 10; i++ {
		windy.Update(10, 0)
		guarded.Update(10, 0)
	}
	// The guarded controller discarded the saturated accumulation and
	// recovers immediately; the unguarded one keeps pushing.
	assert.InDelta(t, 0.0, guarded.integral, 1e-6)
	assert.Greater(t, windy.integral, float32(9))
}

func TestPID_Reset(t *testing.T) {
	pid := NewPID(1, 1, 1, 0.1)
	pid.Update(5, 0)
	pid.Reset()
	assert.Equal(t, float32(0), pid.integral)
	assert.Equal(t, float32(0), pid.prevError)
}

func TestVec3PID_AxesAreIndependent(t *testing.T) {
	pid := NewVec3PID(1, 0, 0, 0.1)
	out := pid.Update(vecmath.Vec3{X: 5, Y: -2, Z: 1}, vecmath.Vec3{X: 2, Y: 0, Z: 1})
	assert.True(t, out.ApproxEqual(vecmath.Vec3{X: 3, Y: -2, Z: 0}), "got %+v", out)
}

func TestVec3PID_PreviewAndLimit(t *testing.T) {
	pid := NewVec3PID(100, 0, 0, 0.1)
	pid.SetOutputLimit(2, true)

	target := vecmath.Vec3{X: 50, Y: -50, Z: 0.001}
	previewed := pid.Preview(target, vecmath.Vec3{})
	updated := pid.Update(target, vecmath.Vec3{})
	assert.True(t, previewed.ApproxEqual(updated))
	assert.LessOrEqual(t, vecmath.Abs(updated.X), float32(2))
	assert.LessOrEqual(t, vecmath.Abs(updated.Y), float32(2))
}

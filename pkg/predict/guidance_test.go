package predict

import (
	"testing"

	"github.com/ballisto/ballisto/pkg/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoGuidance(t *testing.T) {
	_, ok := NoGuidance{}.Direction(ProjectileView{}, 0.1)
	assert.False(t, ok)
}

func TestToPoint(t *testing.T) {
	g := ToPoint{Target: vecmath.Vec3{X: 10, Y: 10}}
	dir, ok := g.Direction(ProjectileView{Position: vecmath.Vec3{X: 10}}, 0.1)
	require.True(t, ok)
	assert.True(t, dir.ApproxEqual(vecmath.Vec3{Y: 1}))
}

func TestToPoint_AtTarget(t *testing.T) {
	g := ToPoint{Target: vecmath.Vec3{X: 3}}
	_, ok := g.Direction(ProjectileView{Position: vecmath.Vec3{X: 3}}, 0.1)
	assert.False(t, ok)
}

func TestLead_AimsAheadOfMovingTarget(t *testing.T) {
	g := Lead{
		TargetPosition: vecmath.Vec3{X: 100},
		TargetVelocity: vecmath.Vec3{Z: 10},
	}
	view := ProjectileView{Velocity: vecmath.Vec3{X: 50}}
	dir, ok := g.Direction(view, 0.1)
	require.True(t, ok)

	// Separation 100 at own speed 50: two seconds of lead, so the aim
	// point is (100, 0, 20).
	expected := vecmath.Vec3{X: 100, Z: 20}.Normalize()
	assert.True(t, dir.ApproxEqual(expected), "got %+v", dir)
}

func TestLead_StationarySelfFallsBackToDirectAim(t *testing.T) {
	g := Lead{
		TargetPosition: vecmath.Vec3{X: 100},
		TargetVelocity: vecmath.Vec3{Z: 10},
	}
	dir, ok := g.Direction(ProjectileView{}, 0.1)
	require.True(t, ok)
	assert.True(t, dir.ApproxEqual(vecmath.Vec3{X: 1}))
}

func TestFromTrajectory_SamplesAhead(t *testing.T) {
	recorded := Trajectory{
		sampleAt(0, vecmath.Vec3{}, vecmath.Vec3{X: 1}, vecmath.Vec3{}),
		sampleAt(10, vecmath.Vec3{X: 10}, vecmath.Vec3{X: 1}, vecmath.Vec3{}),
	}
	g := &FromTrajectory{Trajectory: recorded, LeadTime: 1}
	g.setTime(4)

	// Clock 4 plus lead 1 samples the target at t=5: position (5,0,0).
	dir, ok := g.Direction(ProjectileView{Position: vecmath.Vec3{X: 5, Y: 5}}, 0.1)
	require.True(t, ok)
	assert.True(t, dir.ApproxEqual(vecmath.Vec3{Y: -1}), "got %+v", dir)
}

func TestFromTrajectory_EmptyTrajectory(t *testing.T) {
	g := &FromTrajectory{}
	_, ok := g.Direction(ProjectileView{}, 0.1)
	assert.False(t, ok)
}

func TestTrajectory_At(t *testing.T) {
	trajectory := Trajectory{
		sampleAt(0, vecmath.Vec3{}, vecmath.Vec3{X: 2}, vecmath.Vec3{}),
		sampleAt(1, vecmath.Vec3{X: 2}, vecmath.Vec3{X: 2}, vecmath.Vec3{}),
		sampleAt(2, vecmath.Vec3{X: 4}, vecmath.Vec3{X: 2}, vecmath.Vec3{}),
	}

	// Midpoint interpolation.
	mid := trajectory.At(0.5)
	assert.True(t, mid.Linear.Position.ApproxEqual(vecmath.Vec3{X: 1}))

	// Clamping at both ends.
	assert.True(t, trajectory.At(-1).Linear.Position.ApproxEqual(vecmath.Vec3{}))
	assert.True(t, trajectory.At(5).Linear.Position.ApproxEqual(vecmath.Vec3{X: 4}))

	assert.InDelta(t, 2.0, trajectory.Duration(), 1e-6)
	assert.Equal(t, float32(0), Trajectory{}.Duration())
}

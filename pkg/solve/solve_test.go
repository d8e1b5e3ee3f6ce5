package solve

import (
	"math"
	"testing"

	"github.com/ballisto/ballisto/pkg/physics"
	"github.com/ballisto/ballisto/pkg/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadratic(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c    float32
		wantRoots  []float32
		wantFailed bool
	}{
		{
			name:      "two distinct roots",
			a:         1, b: -3, c: 2,
			wantRoots: []float32{1, 2},
		},
		{
			name:      "repeated root",
			a:         1, b: -2, c: 1,
			wantRoots: []float32{1, 1},
		},
		{
			name:       "negative discriminant",
			a:          1, b: 0, c: 1,
			wantFailed: true,
		},
		{
			name:       "not quadratic",
			a:          0, b: 2, c: 1,
			wantFailed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x1, x2, ok := Quadratic(tt.a, tt.b, tt.c)
			if tt.wantFailed {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			if x1 > x2 {
				x1, x2 = x2, x1
			}
			assert.InDelta(t, tt.wantRoots[0], x1, 1e-5)
			assert.InDelta(t, tt.wantRoots[1], x2, 1e-5)
		})
	}
}

func TestBisect_FindsSineRoot(t *testing.T) {
	root, ok := Bisect(vecmath.Sin, 3.0, 3.5, 1e-5)
	require.True(t, ok)
	assert.InDelta(t, math.Pi, root, 1e-3)
}

func TestBisect_RequiresSignChange(t *testing.T) {
	_, ok := Bisect(func(x float32) float32 { return x*x + 1 }, -1, 1, 1e-5)
	assert.False(t, ok)
}

func TestApex(t *testing.T) {
	state := physics.LinearState{
		Velocity:     vecmath.Vec3{X: 2, Y: 10},
		Acceleration: vecmath.Vec3{Y: -9.8},
	}
	at, pos, ok := Apex(state)
	require.True(t, ok)
	assert.InDelta(t, 1.0204, at, 1e-3)
	assert.Greater(t, pos.Y, float32(5))
	// The apex is the vertical peak: velocity there is horizontal.
	assert.InDelta(t, 2*1.0204, pos.X, 1e-3)
}

func TestApex_FailsWithoutVerticalAcceleration(t *testing.T) {
	_, _, ok := Apex(physics.LinearState{Velocity: vecmath.Vec3{Y: 10}})
	assert.False(t, ok)
}

func TestTimeForY(t *testing.T) {
	// Dropped from 10 m: reaches the ground at sqrt(2*10/9.8).
	state := physics.LinearState{
		Position:     vecmath.Vec3{Y: 10},
		Acceleration: vecmath.Vec3{Y: -9.8},
	}
	at, ok := TimeForY(state, 0)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt(2*10/9.8), at, 1e-3)
}

func TestTimeForY_SmallestNonNegativeRoot(t *testing.T) {
	// Thrown up at 10 m/s, the height 3 m is reached twice; the first
	// crossing wins.
	state := physics.LinearState{
		Velocity:     vecmath.Vec3{Y: 10},
		Acceleration: vecmath.Vec3{Y: -9.8},
	}
	at, ok := TimeForY(state, 3)
	require.True(t, ok)
	expected := (10 - math.Sqrt(100-2*9.8*3)) / 9.8
	assert.InDelta(t, expected, at, 1e-3)
}

func TestTimeForY_LinearFallback(t *testing.T) {
	state := physics.LinearState{
		Position: vecmath.Vec3{Y: 4},
		Velocity: vecmath.Vec3{Y: -2},
	}
	at, ok := TimeForY(state, 0)
	require.True(t, ok)
	assert.InDelta(t, 2.0, at, 1e-5)

	// Unreachable height.
	_, ok = TimeForY(state, 10)
	assert.False(t, ok)
}

func TestTimeForPosition(t *testing.T) {
	state := physics.LinearState{Velocity: vecmath.Vec3{X: 1}}
	at, ok := TimeForPosition(state, vecmath.Vec3{X: 5}, 0.01, 10)
	require.True(t, ok)
	assert.InDelta(t, 5.0, at, 0.11)
}

func TestTimeForPosition_InvalidHorizon(t *testing.T) {
	_, ok := TimeForPosition(physics.LinearState{}, vecmath.Vec3{}, 0.01, 0)
	assert.False(t, ok)
}

func TestStopTime(t *testing.T) {
	state := physics.LinearState{
		Velocity:     vecmath.Vec3{X: 12},
		Acceleration: vecmath.Vec3{X: -4},
	}
	at, ok := StopTime(state)
	require.True(t, ok)
	assert.InDelta(t, 3.0, at, 1e-5)

	_, ok = StopTime(physics.LinearState{Velocity: vecmath.Vec3{X: 12}})
	assert.False(t, ok)
}

func TestVelocityForRange(t *testing.T) {
	// At 45 degrees the range is v^2/g, so v = sqrt(d*g).
	assert.InDelta(t, math.Sqrt(50*9.8), VelocityForRange(50, 9.8), 1e-4)
}

func TestTimeToCollision(t *testing.T) {
	// Head-on: gap 10, closing speed 2, contact at radius 1.
	at, ok := TimeToCollision(
		vecmath.Vec3{}, vecmath.Vec3{X: 1},
		vecmath.Vec3{X: 10}, vecmath.Vec3{X: -1},
		1,
	)
	require.True(t, ok)
	assert.InDelta(t, 4.5, at, 1e-4)
}

func TestTimeToCollision_Diverging(t *testing.T) {
	_, ok := TimeToCollision(
		vecmath.Vec3{}, vecmath.Vec3{X: -1},
		vecmath.Vec3{X: 10}, vecmath.Vec3{X: 1},
		1,
	)
	assert.False(t, ok)
}

func TestTimeToCollision_ParallelCourses(t *testing.T) {
	// Same velocity: relative motion is zero, contact only if already
	// overlapping.
	at, ok := TimeToCollision(
		vecmath.Vec3{}, vecmath.Vec3{X: 3},
		vecmath.Vec3{X: 0.5}, vecmath.Vec3{X: 3},
		1,
	)
	require.True(t, ok)
	assert.Equal(t, float32(0), at)

	_, ok = TimeToCollision(
		vecmath.Vec3{}, vecmath.Vec3{X: 3},
		vecmath.Vec3{X: 5}, vecmath.Vec3{X: 3},
		1,
	)
	assert.False(t, ok)
}

func TestPositionAt(t *testing.T) {
	state := physics.LinearState{
		Position:     vecmath.Vec3{X: 1},
		Velocity:     vecmath.Vec3{X: 2},
		Acceleration: vecmath.Vec3{X: 4},
	}
	pos := PositionAt(state, 2)
	assert.InDelta(t, 1+2*2+0.5*4*4, pos.X, 1e-5)
}

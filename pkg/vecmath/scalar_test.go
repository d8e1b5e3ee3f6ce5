package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(5, -1, 1))
	assert.Equal(t, float32(-1), Clamp(-5, -1, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, -1, 1))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(2), Lerp(2, 6, 0))
	assert.Equal(t, float32(6), Lerp(2, 6, 1))
	assert.Equal(t, float32(4), Lerp(2, 6, 0.5))
}

func TestDegreesRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, Deg2Rad(180), 1e-5)
	assert.InDelta(t, 90.0, Rad2Deg(math.Pi/2), 1e-4)
	assert.InDelta(t, 45.0, Rad2Deg(Deg2Rad(45)), 1e-4)
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, ApproxEqual(0, 1e-6))
	assert.True(t, ApproxEqual(1e6, 1e6+1))
	assert.False(t, ApproxEqual(1, 1.01))
}

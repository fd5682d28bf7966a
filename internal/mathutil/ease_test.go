package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBellWeightEndpoints(t *testing.T) {
	assert.InDelta(t, 0, BellWeight(0), 1e-12)
	assert.InDelta(t, 0, BellWeight(1), 1e-12)
	assert.InDelta(t, 1, BellWeight(0.5), 1e-12)
}

func TestBellWeightSymmetric(t *testing.T) {
	for p := 0.0; p <= 0.5; p += 0.05 {
		assert.InDelta(t, BellWeight(p), BellWeight(1-p), 1e-12, "p=%v", p)
	}
}

func TestBellWeightClamped(t *testing.T) {
	assert.InDelta(t, 0, BellWeight(-0.3), 1e-12)
	assert.InDelta(t, 0, BellWeight(1.7), 1e-12)
}

func TestEaseCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseCubic(0))
	assert.Equal(t, 1.0, EaseCubic(1))
	assert.InDelta(t, 0.5, EaseCubic(0.5), 1e-12)
	assert.Equal(t, 0.0, EaseCubic(-2))
	assert.Equal(t, 1.0, EaseCubic(3))

	// Monotonic over [0,1].
	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.01 {
		v := EaseCubic(p)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestDampFactor(t *testing.T) {
	// One time constant covers ~63% of the remaining distance.
	assert.InDelta(t, 1-1/math.E, DampFactor(0.25, 0.25), 1e-12)
	assert.Equal(t, 1.0, DampFactor(0.1, 0))
	assert.Equal(t, 1.0, DampFactor(0.1, -1))

	f := DampFactor(1.0/60, 0.2)
	assert.Greater(t, f, 0.0)
	assert.Less(t, f, 1.0)
}

func TestLerpClampSign(t *testing.T) {
	assert.Equal(t, 2.0, Lerp(2, 8, 0))
	assert.Equal(t, 8.0, Lerp(2, 8, 1))
	assert.Equal(t, 5.0, Lerp(2, 8, 0.5))
	assert.Equal(t, 4.0, Clamp(9, 0, 4))
	assert.Equal(t, 0.0, Clamp(-3, 0, 4))
	assert.Equal(t, -1.0, Sign(-0.2))
	assert.Equal(t, 1.0, Sign(7))
	assert.Equal(t, 0.0, Sign(0))
}

func TestRotZLifts(t *testing.T) {
	// A point on the negative X axis (the right page side) swings up
	// through +Y under a negative Z rotation.
	p := RotZ(-math.Pi / 2).MulVec3(Vec3{-1, 0, 0})
	assert.InDelta(t, 0, p[0], 1e-12)
	assert.InDelta(t, 1, p[1], 1e-12)

	p = RotZ(-math.Pi).MulVec3(Vec3{-1, 0, 0})
	assert.InDelta(t, 1, p[0], 1e-12)
	assert.InDelta(t, 0, p[1], 1e-12)
}

func TestQuatMatchesMat3(t *testing.T) {
	q := EulerToQuat(0.3, 0, -1.1)
	m := QuatToMat3(q)
	ref := Mat3Mul(Mat3Mul(RotZ(-1.1), RotY(0)), RotX(0.3))
	for i := 0; i < 9; i++ {
		assert.InDelta(t, ref[i], m[i], 1e-9, "element %d", i)
	}
}

package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
	assert.Equal(t, float32(0), x.Dot(y))
	assert.Equal(t, Vec3{1, 1, 0}, x.Add(y))
	assert.Equal(t, Vec3{2, -2, 0}, x.Sub(y).Scale(2))
	assert.Equal(t, float32(5), Vec3{3, 4, 0}.Distance(Vec3{}))
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{0, 3, 4}.Normalize()
	assert.InDelta(t, 1, n.Length(), eps)
	assert.InDelta(t, 0.6, n.Y, eps)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.True(t, Vec3{}.IsZero())
	assert.False(t, n.IsZero())
}

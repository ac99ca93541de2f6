package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-4

func assertPoint(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func assertMat(t *testing.T, want, got Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "element %d", i)
	}
}

func TestTranslateAndScale(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	assertPoint(t, [3]float32{12, 24, 36}, m.TransformPoint([3]float32{1, 2, 3}))
	assertMat(t, Translate(5, 6, 7), Translate(5, 6, 7).Mul(Identity()))
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/2), 2, 0.1, 100)
	assert.InDelta(t, 0.5, m[0], eps)
	assert.InDelta(t, 1, m[5], eps)
	assert.Equal(t, float32(-1), m[11])
	assert.Equal(t, float32(0), m[15])
}

func TestLookAtPutsTargetInFront(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	assertPoint(t, [3]float32{0, 0, 0}, view.TransformPoint([3]float32{0, 0, 5}))
	assertPoint(t, [3]float32{0, 0, -5}, view.TransformPoint([3]float32{0, 0, 0}))
	assertPoint(t, [3]float32{1, 0, -5}, view.TransformPoint([3]float32{1, 0, 0}))
}

func TestEulerAppliesXThenYThenZ(t *testing.T) {
	r := Vec3{X: 0.3, Y: -0.7, Z: 1.1}
	assert.Equal(t, RotateX(r.X).Mul(RotateY(r.Y)).Mul(RotateZ(r.Z)), Euler(r))

	// A quarter turn around Y maps +X onto -Z.
	assertPoint(t, [3]float32{0, 0, -1}, Euler(Vec3{Y: float32(math.Pi / 2)}).TransformPoint([3]float32{1, 0, 0}))
}

func TestComposeTranslatesAfterRotating(t *testing.T) {
	m := Compose(Vec3{X: 5, Y: -2}, Vec3{Z: float32(math.Pi / 2)})
	assertPoint(t, [3]float32{5, -1, 0}, m.TransformPoint([3]float32{1, 0, 0}))
}

func TestComposeChainsParentAndChild(t *testing.T) {
	// An arm hanging from a shoulder at (5, 2, 0) rotated a quarter turn forward.
	shoulder := Compose(Vec3{X: 5, Y: 2}, Vec3{X: float32(math.Pi / 2)})
	hand := shoulder.Mul(Translate(0, -6, 0))
	assertPoint(t, [3]float32{5, 2, -6}, hand.TransformPoint([3]float32{}))
}

func TestInverse(t *testing.T) {
	m := Compose(Vec3{1, 2, 3}, Vec3{0.3, -0.7, 1.1}).Mul(Scale(2, 3, 4))
	assertMat(t, Identity(), m.Mul(m.Inverse()))
	assert.Equal(t, Identity(), Scale(0, 1, 1).Inverse(), "singular matrices invert to identity")
}

func TestNormalMatrix(t *testing.T) {
	r := RotateY(0.8)
	n := r.NormalMatrix()
	want := [9]float32{r[0], r[1], r[2], r[4], r[5], r[6], r[8], r[9], r[10]}
	for i := range want {
		assert.InDelta(t, want[i], n[i], eps)
	}

	s := Scale(2, 4, 8).NormalMatrix()
	assert.InDelta(t, 0.5, s[0], eps)
	assert.InDelta(t, 0.25, s[4], eps)
	assert.InDelta(t, 0.125, s[8], eps)
}

func TestPtr(t *testing.T) {
	m := Translate(1, 2, 3)
	assert.Equal(t, &m[0], m.Ptr())
}

package lighting

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/skinview/pkg/math"
)

func TestNewRig(t *testing.T) {
	r := NewRig()
	ambient, _, point := r.Uniforms()
	assert.Equal(t, [3]float32{3, 3, 3}, ambient)
	assert.InDelta(t, 0.6, point[0], 1e-6)
}

func TestIrradiance(t *testing.T) {
	r := NewRig()
	r.Follow(math.Vec3{Z: 40})

	facing := r.Irradiance(math.Vec3{}, math.Vec3{Z: 1})
	away := r.Irradiance(math.Vec3{}, math.Vec3{Z: -1})
	side := r.Irradiance(math.Vec3{}, math.Vec3{X: 1})

	assert.InDelta(t, 3.6/gomath.Pi, facing[0], 1e-5)
	assert.InDelta(t, 3/gomath.Pi, away[0], 1e-5, "back faces get ambient only")
	assert.InDelta(t, 3/gomath.Pi, side[1], 1e-5)
}

func TestIrradianceAtLight(t *testing.T) {
	r := NewRig()
	got := r.Irradiance(math.Vec3{}, math.Vec3{Y: 1})
	assert.InDelta(t, 3/gomath.Pi, got[2], 1e-5)
}

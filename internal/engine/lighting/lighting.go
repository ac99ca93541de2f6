// Package lighting describes the light rig of the player scene: a uniform
// ambient light plus a point light that travels with the camera.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/skinview/pkg/math"
)

// Default light intensities.
const (
	DefaultAmbient = 3.0
	DefaultPoint   = 0.6
)

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
}

// PointLight is a light source at Position, uploaded to the model shader.
type PointLight struct {
	Position  math.Vec3
	Color     [3]float32
	Intensity float32
}

// Rig is the complete light setup of a frame.
type Rig struct {
	Ambient AmbientLight
	Camera  PointLight
}

var white = [3]float32{1, 1, 1}

// NewRig returns the default white rig.
func NewRig() *Rig {
	return &Rig{
		Ambient: AmbientLight{Color: white, Intensity: DefaultAmbient},
		Camera:  PointLight{Color: white, Intensity: DefaultPoint},
	}
}

// Follow moves the camera light to the camera position.
func (r *Rig) Follow(camera math.Vec3) {
	r.Camera.Position = camera
}

// Irradiance returns the light reaching a Lambertian surface at pos with the
// given normal, per channel. The shader applies the same formula; the
// albedo is divided by pi, so an ambient intensity of pi leaves the texture
// unchanged.
func (r *Rig) Irradiance(pos, normal math.Vec3) [3]float32 {
	var out [3]float32
	lambert := float32(0)
	if toLight := r.Camera.Position.Sub(pos); !toLight.IsZero() {
		lambert = float32(gomath.Max(0, float64(normal.Normalize().Dot(toLight.Normalize()))))
	}
	for i := range out {
		out[i] = (r.Ambient.Color[i]*r.Ambient.Intensity + r.Camera.Color[i]*r.Camera.Intensity*lambert) / gomath.Pi
	}
	return out
}

// Uniforms flattens the rig for upload: ambient rgb*intensity, light
// position, light rgb*intensity.
func (r *Rig) Uniforms() (ambient, position, point [3]float32) {
	for i := 0; i < 3; i++ {
		ambient[i] = r.Ambient.Color[i] * r.Ambient.Intensity
		point[i] = r.Camera.Color[i] * r.Camera.Intensity
	}
	p := r.Camera.Position
	return ambient, [3]float32{p.X, p.Y, p.Z}, point
}

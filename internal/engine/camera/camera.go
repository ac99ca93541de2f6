// Package camera provides the viewer's perspective camera and the orbit
// controls that move it around the player.
package camera

import (
	gomath "math"

	"github.com/Faultbox/skinview/pkg/math"
)

var up = math.Vec3{Y: 1}

// Perspective is a perspective camera looking at Target.
type Perspective struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
}

// NewPerspective returns a camera one unit in front of the origin.
func NewPerspective() *Perspective {
	return &Perspective{
		FOV:      50,
		Aspect:   1,
		Near:     0.1,
		Far:      2000,
		Position: math.Vec3{Z: 1},
	}
}

// Projection returns the projection matrix.
func (c *Perspective) Projection() math.Mat4 {
	fov := float32(float64(c.FOV) * gomath.Pi / 180)
	return math.Perspective(fov, c.Aspect, c.Near, c.Far)
}

// View returns the view matrix.
func (c *Perspective) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, up)
}

// Distance returns the distance between the camera and its target.
func (c *Perspective) Distance() float32 {
	return c.Position.Sub(c.Target).Length()
}

// SetDistance moves the camera along its current viewing ray.
func (c *Perspective) SetDistance(d float32) {
	offset := c.Position.Sub(c.Target)
	if offset.IsZero() {
		offset = math.Vec3{Z: 1}
	}
	c.Position = c.Target.Add(offset.Normalize().Scale(d))
}

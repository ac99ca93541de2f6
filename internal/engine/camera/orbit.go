package camera

import (
	gomath "math"

	"github.com/Faultbox/skinview/pkg/math"
)

const polarEpsilon = 1e-6

// OrbitControls rotates, zooms and pans a Perspective camera around its
// target in response to pointer input. Input is accumulated and applied in
// Update.
type OrbitControls struct {
	Camera *Perspective

	Enabled      bool
	EnableRotate bool
	EnableZoom   bool
	EnablePan    bool

	EnableDamping bool
	DampingFactor float64

	RotateSpeed float64
	ZoomSpeed   float64
	PanSpeed    float64

	MinDistance float64
	MaxDistance float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
	pan        math.Vec3

	target0   math.Vec3
	position0 math.Vec3
	disposed  bool
}

// NewOrbitControls attaches controls to cam and saves its current pose as the
// reset state. Rotation and zoom are enabled, panning is not.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	c := &OrbitControls{
		Camera:        cam,
		Enabled:       true,
		EnableRotate:  true,
		EnableZoom:    true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MaxDistance:   gomath.Inf(1),
		scale:         1,
	}
	c.SaveState()
	return c
}

// SaveState records the current camera pose for Reset.
func (c *OrbitControls) SaveState() {
	c.target0 = c.Camera.Target
	c.position0 = c.Camera.Position
}

// Reset restores the saved pose and drops pending input.
func (c *OrbitControls) Reset() {
	c.Camera.Target = c.target0
	c.Camera.Position = c.position0
	c.deltaTheta, c.deltaPhi = 0, 0
	c.scale = 1
	c.pan = math.Vec3{}
}

func (c *OrbitControls) active() bool { return c.Enabled && !c.disposed }

// Rotate handles a drag of dx, dy pixels in a viewport viewportHeight high.
func (c *OrbitControls) Rotate(dx, dy, viewportHeight float64) {
	if !c.active() || !c.EnableRotate || viewportHeight <= 0 {
		return
	}
	c.deltaTheta -= 2 * gomath.Pi * dx / viewportHeight * c.RotateSpeed
	c.deltaPhi -= 2 * gomath.Pi * dy / viewportHeight * c.RotateSpeed
}

// Zoom handles wheel input; positive steps move the camera closer.
func (c *OrbitControls) Zoom(steps float64) {
	if !c.active() || !c.EnableZoom || steps == 0 {
		return
	}
	c.scale *= gomath.Pow(0.95, c.ZoomSpeed*steps)
}

// Pan handles a drag of dx, dy pixels in a viewport viewportHeight high.
func (c *OrbitControls) Pan(dx, dy, viewportHeight float64) {
	if !c.active() || !c.EnablePan || viewportHeight <= 0 {
		return
	}
	cam := c.Camera
	dist := float64(cam.Distance()) * gomath.Tan(float64(cam.FOV)/2*gomath.Pi/180)
	forward := cam.Target.Sub(cam.Position).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	k := 2 * dist / viewportHeight * c.PanSpeed
	c.pan = c.pan.Add(right.Scale(float32(-dx * k))).Add(camUp.Scale(float32(dy * k)))
}

// Update applies accumulated input to the camera. It returns true when the
// camera moved.
func (c *OrbitControls) Update() bool {
	if c.disposed {
		return false
	}
	cam := c.Camera
	offset := cam.Position.Sub(cam.Target)

	radius := float64(offset.Length())
	var theta, phi float64
	if radius > 0 {
		theta = gomath.Atan2(float64(offset.X), float64(offset.Z))
		phi = gomath.Acos(clamp(float64(offset.Y)/radius, -1, 1))
	}

	if c.EnableDamping {
		theta += c.deltaTheta * c.DampingFactor
		phi += c.deltaPhi * c.DampingFactor
	} else {
		theta += c.deltaTheta
		phi += c.deltaPhi
	}
	phi = clamp(phi, polarEpsilon, gomath.Pi-polarEpsilon)
	radius = clamp(radius*c.scale, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		cam.Target = cam.Target.Add(c.pan.Scale(float32(c.DampingFactor)))
	} else {
		cam.Target = cam.Target.Add(c.pan)
	}

	sinPhi := gomath.Sin(phi)
	next := cam.Target.Add(math.Vec3{
		X: float32(radius * sinPhi * gomath.Sin(theta)),
		Y: float32(radius * gomath.Cos(phi)),
		Z: float32(radius * sinPhi * gomath.Cos(theta)),
	})
	moved := next.Distance(cam.Position) > 1e-6
	cam.Position = next

	if c.EnableDamping {
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
		c.pan = c.pan.Scale(float32(1 - c.DampingFactor))
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.pan = math.Vec3{}
	}
	c.scale = 1
	return moved
}

// Dispose detaches the controls; later input and updates are ignored.
func (c *OrbitControls) Dispose() { c.disposed = true }

func clamp(v, lo, hi float64) float64 {
	return gomath.Max(lo, gomath.Min(v, hi))
}

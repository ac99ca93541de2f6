// Package model provides the articulated player model the animations pose and
// the renderer draws: a fixed tree of named parts with position, rotation,
// visibility and texture fields.
package model

import (
	gomath "math"

	"github.com/Faultbox/skinview/pkg/math"
)

// Texture is a GPU texture bound to a part. The viewer owns its lifetime;
// parts only hold a reference.
type Texture interface {
	Dispose()
}

// ModelType selects the arm width of the skin.
type ModelType string

const (
	ModelDefault ModelType = "default" // 4px arms
	ModelSlim    ModelType = "slim"    // 3px arms
)

// BackEquipment is what is shown on the player's back.
type BackEquipment string

const (
	BackNone   BackEquipment = ""
	BackCape   BackEquipment = "cape"
	BackElytra BackEquipment = "elytra"
)

// Canonical rest pose constants.
const (
	capeRestPitch      = 10.8 * gomath.Pi / 180
	elytraWingRestRoll = 0.2617994
	elytraWingRestYaw  = 0.01
)

// Part is a node with a local transform. Rotation holds Euler angles in
// radians, applied in X, Y, Z order.
type Part struct {
	Position math.Vec3
	Rotation math.Vec3
	Visible  bool
}

// Local returns the part's transform relative to its parent.
func (p *Part) Local() math.Mat4 {
	return math.Compose(p.Position, p.Rotation)
}

// BodyPart is a skin limb with an inner layer and an inflated outer layer.
type BodyPart struct {
	Part
	InnerLayer bool
	OuterLayer bool
}

// Skin groups the six body parts that share the skin texture.
type Skin struct {
	Part
	Map       Texture
	ModelType ModelType

	Head     BodyPart
	Body     BodyPart
	RightArm BodyPart
	LeftArm  BodyPart
	RightLeg BodyPart
	LeftLeg  BodyPart
}

// Cape is the single cape panel.
type Cape struct {
	Part
	Map Texture
}

// Elytra is the pair of wings. It shares the cape texture.
type Elytra struct {
	Part
	LeftWing  Part
	RightWing Part
	Map       Texture
}

// UpdateRightWing mirrors the left wing's transform onto the right wing.
func (e *Elytra) UpdateRightWing() {
	e.RightWing.Position.X = -e.LeftWing.Position.X
	e.RightWing.Position.Y = e.LeftWing.Position.Y
	e.RightWing.Rotation.X = e.LeftWing.Rotation.X
	e.RightWing.Rotation.Y = -e.LeftWing.Rotation.Y
	e.RightWing.Rotation.Z = -e.LeftWing.Rotation.Z
}

// Ears are attached to the head and use their own texture.
type Ears struct {
	Part
	Map Texture
}

// Player is the full articulated model.
type Player struct {
	Position math.Vec3
	Rotation math.Vec3

	Skin   Skin
	Cape   Cape
	Elytra Elytra
	Ears   Ears

	meshes []Mesh
	built  ModelType
}

// New creates a player in its rest pose with the skin visible and all
// back equipment and ears hidden.
func New() *Player {
	p := &Player{}
	p.Skin.Visible = true
	p.Skin.ModelType = ModelDefault
	for _, bp := range p.bodyParts() {
		bp.Visible = true
		bp.InnerLayer = true
		bp.OuterLayer = true
	}
	p.Cape.Rotation.Y = gomath.Pi
	p.Elytra.Rotation.Y = gomath.Pi
	p.Elytra.LeftWing.Visible = true
	p.Elytra.RightWing.Visible = true
	p.Ears.Position.Y = 10
	p.ResetJoints()
	return p
}

func (p *Player) bodyParts() []*BodyPart {
	s := &p.Skin
	return []*BodyPart{&s.Head, &s.Body, &s.RightArm, &s.LeftArm, &s.RightLeg, &s.LeftLeg}
}

// ResetJoints restores every joint to the canonical rest pose. The player's
// own Position and Rotation are left alone.
func (p *Player) ResetJoints() {
	s := &p.Skin
	for _, bp := range p.bodyParts() {
		bp.Rotation = math.Vec3{}
	}
	s.Head.Position = math.Vec3{}
	s.Body.Position = math.Vec3{Y: -6}
	s.RightArm.Position = math.Vec3{X: -5, Y: -2}
	s.LeftArm.Position = math.Vec3{X: 5, Y: -2}
	s.RightLeg.Position = math.Vec3{X: -1.9, Y: -12, Z: -0.1}
	s.LeftLeg.Position = math.Vec3{X: 1.9, Y: -12, Z: -0.1}

	p.Cape.Position = math.Vec3{Y: 8, Z: -2}
	p.Cape.Rotation.X = capeRestPitch
	p.Cape.Rotation.Z = 0

	p.Elytra.Position = math.Vec3{Y: 8, Z: -2}
	p.Elytra.Rotation.X = 0
	p.Elytra.Rotation.Z = 0
	p.Elytra.LeftWing.Position = math.Vec3{X: 5}
	p.Elytra.LeftWing.Rotation = math.Vec3{X: elytraWingRestRoll, Y: elytraWingRestYaw, Z: elytraWingRestRoll}
	p.Elytra.UpdateRightWing()
}

// BackEquipment reports which of cape or elytra is shown.
func (p *Player) BackEquipment() BackEquipment {
	switch {
	case p.Cape.Visible:
		return BackCape
	case p.Elytra.Visible:
		return BackElytra
	default:
		return BackNone
	}
}

// SetBackEquipment shows the cape, the elytra or neither.
func (p *Player) SetBackEquipment(eq BackEquipment) {
	p.Cape.Visible = eq == BackCape
	p.Elytra.Visible = eq == BackElytra
}

// Root returns the player's transform relative to its wrapper.
func (p *Player) Root() math.Mat4 {
	return math.Compose(p.Position, p.Rotation)
}

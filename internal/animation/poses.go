package animation

import (
	"math"

	"github.com/Faultbox/skinview/internal/model"
)

// Func wraps a user pose function.
type Func struct {
	Base
	Fn func(p *model.Player, progress, delta float64)
}

// NewFunc returns an animation that calls fn on every tick.
func NewFunc(fn func(p *model.Player, progress, delta float64)) *Func {
	return &Func{Base: newBase(), Fn: fn}
}

func (a *Func) Update(p *model.Player, deltaTime float64) {
	a.step(p, deltaTime, func(p *model.Player, delta float64) {
		if a.Fn != nil {
			a.Fn(p, a.progress, delta)
		}
	})
}

// Idle sways the arms and cape.
type Idle struct{ Base }

func NewIdle() *Idle { return &Idle{Base: newBase()} }

func (a *Idle) Update(p *model.Player, deltaTime float64) { a.step(p, deltaTime, a.animate) }

func (a *Idle) animate(p *model.Player, _ float64) {
	t := a.progress * 2
	const armBias = pi * 0.02
	p.Skin.LeftArm.Rotation.Z = f32(math.Cos(t)*0.03 + armBias)
	p.Skin.RightArm.Rotation.Z = f32(math.Cos(t+pi)*0.03 - armBias)
	const capeBias = pi * 0.06
	p.Cape.Rotation.X = f32(math.Sin(t)*0.01 + capeBias)
}

// Walking swings arms and legs in opposition.
type Walking struct {
	Base
	HeadBobbing bool
}

func NewWalking() *Walking { return &Walking{Base: newBase(), HeadBobbing: true} }

func (a *Walking) Update(p *model.Player, deltaTime float64) { a.step(p, deltaTime, a.animate) }

func (a *Walking) animate(p *model.Player, _ float64) {
	s := &p.Skin
	t := a.progress * 8
	s.LeftLeg.Rotation.X = f32(math.Sin(t) * 0.5)
	s.RightLeg.Rotation.X = f32(math.Sin(t+pi) * 0.5)
	s.LeftArm.Rotation.X = f32(math.Sin(t+pi) * 0.5)
	s.RightArm.Rotation.X = f32(math.Sin(t) * 0.5)
	const armBias = pi * 0.02
	s.LeftArm.Rotation.Z = f32(math.Cos(t)*0.03 + armBias)
	s.RightArm.Rotation.Z = f32(math.Cos(t+pi)*0.03 - armBias)

	if a.HeadBobbing {
		s.Head.Rotation.Y = f32(math.Sin(t/4) * 0.2)
		s.Head.Rotation.X = f32(math.Sin(t/5) * 0.1)
	} else {
		s.Head.Rotation.Y = 0
		s.Head.Rotation.X = 0
	}

	const capeBias = pi * 0.06
	p.Cape.Rotation.X = f32(math.Sin(t/1.5)*0.06 + capeBias)
}

// Running is a faster walk that also bounces the whole player.
type Running struct{ Base }

func NewRunning() *Running { return &Running{Base: newBase()} }

func (a *Running) Update(p *model.Player, deltaTime float64) { a.step(p, deltaTime, a.animate) }

func (a *Running) animate(p *model.Player, _ float64) {
	s := &p.Skin
	t := a.progress*15 + pi*0.5
	s.LeftLeg.Rotation.X = f32(math.Cos(t+pi) * 1.3)
	s.RightLeg.Rotation.X = f32(math.Cos(t) * 1.3)
	s.LeftArm.Rotation.X = f32(math.Cos(t) * 1.5)
	s.RightArm.Rotation.X = f32(math.Cos(t+pi) * 1.5)
	const armBias = pi * 0.1
	s.LeftArm.Rotation.Z = f32(math.Cos(t)*0.1 + armBias)
	s.RightArm.Rotation.Z = f32(math.Cos(t+pi)*0.1 - armBias)

	p.Position.Y = f32(math.Cos(t * 2))
	p.Position.X = f32(math.Cos(t) * 0.15)
	p.Rotation.Z = f32(math.Cos(t+pi) * 0.01)

	const capeBias = pi * 0.3
	p.Cape.Rotation.X = f32(math.Sin(t*2)*0.1 + capeBias)
}

// Elytra wing angles in radians.
const (
	wingFoldedAngle   = 0.2617994
	wingSpreadPitch   = 0.34906584
	wingSpreadRoll    = pi / 2
	crouchBodyPitch   = 0.4537860552
	capeRestPitch     = 10.8 * pi / 180
	hitArmRollBias    = 0.01*pi + 0.06
	crouchWingFolded  = 0.26179944
	crouchWingSpread  = 0.72
	crouchWingTravel  = 0.4582006
	crouchDepthOffset = 3.4500310377
)

// Flying pitches the player forward and spreads the elytra.
type Flying struct{ Base }

func NewFlying() *Flying { return &Flying{Base: newBase()} }

func (a *Flying) Update(p *model.Player, deltaTime float64) { a.step(p, deltaTime, a.animate) }

func (a *Flying) animate(p *model.Player, _ float64) {
	var t float64
	if a.progress > 0 {
		t = a.progress * 20
	}
	ease := clamp(t*t/100, 0, 1)

	pitch := ease * pi / 2
	p.Rotation.X = f32(pitch)
	if ease > 0.5 {
		p.Skin.Head.Rotation.X = f32(pi/4 - pitch)
	} else {
		p.Skin.Head.Rotation.X = 0
	}

	armRoll := pi * 0.25 * ease
	p.Skin.LeftArm.Rotation.Z = f32(armRoll)
	p.Skin.RightArm.Rotation.Z = f32(-armRoll)

	k := math.Pow(0.9, t)
	wing := &p.Elytra.LeftWing
	wing.Rotation.X = f32(wingSpreadPitch + k*(wingFoldedAngle-wingSpreadPitch))
	wing.Rotation.Z = f32(wingSpreadRoll + k*(wingFoldedAngle-wingSpreadRoll))
	p.Elytra.UpdateRightWing()
}

// Arm selects a side of the player.
type Arm string

const (
	ArmLeft  Arm = "left"
	ArmRight Arm = "right"
)

// Wave raises one arm and waves it once per unit of progress.
type Wave struct {
	Base
	Arm Arm
}

func NewWave(arm Arm) *Wave {
	if arm != ArmRight {
		arm = ArmLeft
	}
	return &Wave{Base: newBase(), Arm: arm}
}

func (a *Wave) Update(p *model.Player, deltaTime float64) { a.step(p, deltaTime, a.animate) }

func (a *Wave) animate(p *model.Player, _ float64) {
	t := a.progress * pi
	arm := &p.Skin.LeftArm
	if a.Arm == ArmRight {
		arm = &p.Skin.RightArm
	}
	// 180 rad, not degrees; the raised pose depends on this exact value.
	arm.Rotation.X = 180
	arm.Rotation.Z = f32(math.Sin(t) * 0.5)
}

// Hit swings the right arm.
type Hit struct{ Base }

func NewHit() *Hit { return &Hit{Base: newBase()} }

func (a *Hit) Update(p *model.Player, deltaTime float64) { a.step(p, deltaTime, a.animate) }

func (a *Hit) animate(p *model.Player, _ float64) {
	s := &p.Skin
	t := a.progress * 18
	s.RightArm.Rotation.X = f32(-crouchBodyPitch*2 + 2*math.Sin(t+pi)*0.3)
	s.RightArm.Rotation.Z = f32(-math.Cos(t)*0.403 + hitArmRollBias)
	s.Body.Rotation.Y = f32(-math.Cos(t) * 0.06)
	s.LeftArm.Rotation.X = f32(math.Sin(t+pi) * 0.077)
	s.LeftArm.Rotation.Z = f32(-math.Cos(t)*0.015 + 0.13 - 0.05)
	s.LeftArm.Position.Z = f32(math.Cos(t) * 0.3)
	s.LeftArm.Position.X = f32(5 - math.Cos(t)*0.05)
}

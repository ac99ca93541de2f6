package animation

import (
	"math"

	"github.com/Faultbox/skinview/internal/model"
)

// crouchLatch remembers whether the previous tick was fully crouched.
type crouchLatch int

const (
	latchUnset crouchLatch = iota
	latchStanding
	latchCrouched
)

// Crouch lowers the player into a sneak. With ShowProgress off the pose snaps
// between standing and crouched; RunOnce stops after the first transition.
type Crouch struct {
	Base
	ShowProgress bool
	RunOnce      bool

	hit      bool
	hitSpeed float64
	// wing transition anchor, in unscaled progress
	erp   float64
	latch crouchLatch
}

func NewCrouch() *Crouch { return &Crouch{Base: newBase(), hitSpeed: 1} }

// AddHitAnimation overlays an arm swing running at speed.
func (a *Crouch) AddHitAnimation(speed float64) {
	a.hit = true
	a.hitSpeed = speed
}

// AddHitAnimationDefault overlays an arm swing at the crouch's own speed.
func (a *Crouch) AddHitAnimationDefault() { a.AddHitAnimation(a.Speed) }

// HasHitAnimation reports whether the hit overlay is active.
func (a *Crouch) HasHitAnimation() bool { return a.hit }

func (a *Crouch) Update(p *model.Player, deltaTime float64) { a.step(p, deltaTime, a.animate) }

func (a *Crouch) animate(p *model.Player, _ float64) {
	s := &p.Skin
	pr := a.progress * 8
	if pr == 0 {
		a.latch = latchUnset
	}
	if a.RunOnce {
		pr = clamp(pr, -1, 1)
	}
	if !a.ShowProgress {
		pr = math.Floor(pr)
	}

	k := math.Abs(math.Sin(pr * pi / 2))
	s.Body.Rotation.X = f32(crouchBodyPitch * k)
	s.Body.Position.Z = f32(1.3256181*k - crouchDepthOffset*k)
	s.Body.Position.Y = f32(-6 - 2.103677462*k)

	capeY := 8 - 1.851236166577372*k
	capeZ := -2 + 3.786619432*k - crouchDepthOffset*k
	capePitch := capeRestPitch + 0.294220265771*k
	p.Cape.Position.Y = f32(capeY)
	p.Cape.Position.Z = f32(capeZ)
	p.Cape.Rotation.X = f32(capePitch)
	p.Elytra.Position.X = p.Cape.Position.X
	p.Elytra.Position.Y = f32(capeY)
	p.Elytra.Position.Z = f32(capeZ)
	p.Elytra.Rotation.X = f32(capePitch - capeRestPitch)

	var pr1 float64
	if a.Speed != 0 {
		pr1 = a.progress / a.Speed
	}
	if k == 1 {
		if a.latch != latchCrouched {
			a.erp = pr1
		}
		a.latch = latchCrouched
		p.Elytra.LeftWing.Rotation.Z = f32(crouchWingFolded + crouchWingTravel*wingEase(pr1-a.erp))
		p.Elytra.UpdateRightWing()
	} else if a.latch != latchUnset {
		if a.latch == latchCrouched {
			a.erp = pr1
		}
		p.Elytra.LeftWing.Rotation.Z = f32(crouchWingSpread - crouchWingTravel*wingEase(pr1-a.erp))
		p.Elytra.UpdateRightWing()
		a.latch = latchStanding
	}

	s.Head.Position.Y = f32(-3.618325234674 * k)
	armZ := 3.618325234674*k - crouchDepthOffset*k
	s.LeftArm.Position.Z = f32(armZ)
	s.RightArm.Position.Z = f32(armZ)
	armPitch := 0.410367746202 * k
	s.LeftArm.Rotation.X = f32(armPitch)
	s.RightArm.Rotation.X = f32(armPitch)
	s.LeftArm.Rotation.Z = 0.1
	s.RightArm.Rotation.Z = -0.1
	armY := -2 - 2.53943318*k
	s.LeftArm.Position.Y = f32(armY)
	s.RightArm.Position.Y = f32(armY)
	legZ := -crouchDepthOffset * k
	s.RightLeg.Position.Z = f32(legZ)
	s.LeftLeg.Position.Z = f32(legZ)

	if a.hit {
		a.animateHit(p)
	}
}

func (a *Crouch) animateHit(p *model.Player) {
	s := &p.Skin
	var t float64
	if a.Speed != 0 {
		t = a.progress * 18 * a.hitSpeed / a.Speed
	}
	crouching := math.Abs(math.Sin(a.progress*pi/2)) == 1

	var (
		rightPitch = -crouchBodyPitch + 2*math.Sin(t+pi)*0.3
		leftPitch  = math.Sin(t+pi) * 0.077
		leftRoll   = -math.Cos(t)*0.015 + 0.13
	)
	if crouching {
		rightPitch -= crouchBodyPitch
		leftPitch += 0.47
	} else {
		leftRoll -= 0.05
	}
	s.RightArm.Rotation.X = f32(rightPitch)
	s.RightArm.Rotation.Z = f32(-math.Cos(t)*0.403 + hitArmRollBias)
	s.Body.Rotation.Y = f32(-math.Cos(t) * 0.06)
	s.LeftArm.Rotation.X = f32(leftPitch)
	s.LeftArm.Rotation.Z = f32(leftRoll)
	if !crouching {
		s.LeftArm.Position.Z = f32(math.Cos(t) * 0.3)
		s.LeftArm.Position.X = f32(5 - math.Cos(t)*0.05)
	}
}

// wingEase maps elapsed anchor time onto [0, 1] along a quarter sine.
func wingEase(elapsed float64) float64 {
	return math.Abs(math.Sin(math.Min(elapsed, 1) * pi / 2))
}

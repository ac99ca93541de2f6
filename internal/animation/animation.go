// Package animation implements the procedural player poses. Every pose is a
// pure function of its progress (plus a few flags) and writes joint transforms
// into a model.Player on each Update.
package animation

import (
	"fmt"
	"math"

	"github.com/Faultbox/skinview/internal/model"
)

// Animation is a pose driver attached to a viewer. The set of implementations
// is closed; custom motion goes through Func or secondary animations.
type Animation interface {
	// Update advances the animation by deltaTime seconds and poses the player.
	Update(p *model.Player, deltaTime float64)
	// Progress returns the accumulated, speed-scaled time.
	Progress() float64
	// SetProgress overrides the accumulated time.
	SetProgress(progress float64)
	// State exposes the shared playback controls.
	State() *Base
}

// SecondaryFunc is a motion layered on top of the primary pose. progress is
// measured from the moment the function was added.
type SecondaryFunc func(p *model.Player, progress float64, id int)

type slot struct {
	fn       SecondaryFunc
	baseline float64
	live     bool
}

// Base carries the playback state shared by every animation.
type Base struct {
	// Speed scales deltaTime. Zero freezes progress, negative runs backwards.
	Speed float64
	// Paused makes Update a no-op.
	Paused bool

	progress float64
	slots    []slot
}

func newBase() Base {
	return Base{Speed: 1}
}

// State returns b.
func (b *Base) State() *Base { return b }

// Progress returns the accumulated, speed-scaled time.
func (b *Base) Progress() float64 { return b.progress }

// SetProgress overrides the accumulated time.
func (b *Base) SetProgress(progress float64) { b.progress = progress }

// AddSecondary registers fn and returns its id. Ids start at 0 and are never
// reused.
func (b *Base) AddSecondary(fn SecondaryFunc) int {
	b.slots = append(b.slots, slot{fn: fn, baseline: b.progress, live: true})
	return len(b.slots) - 1
}

// RemoveSecondary drops the secondary animation with the given id. Unknown or
// already removed ids are ignored.
func (b *Base) RemoveSecondary(id int) {
	if id < 0 || id >= len(b.slots) {
		return
	}
	b.slots[id] = slot{}
}

// SecondaryCount returns the number of registered secondary animations.
func (b *Base) SecondaryCount() int {
	n := 0
	for _, s := range b.slots {
		if s.live {
			n++
		}
	}
	return n
}

// step runs one tick: the primary pose with the scaled delta, then each live
// secondary in id order, then the progress advance.
func (b *Base) step(p *model.Player, deltaTime float64, animate func(*model.Player, float64)) {
	if b.Paused {
		return
	}
	delta := deltaTime * b.Speed
	animate(p, delta)
	for id := 0; id < len(b.slots); id++ {
		s := b.slots[id]
		if !s.live {
			continue
		}
		s.fn(p, b.progress-s.baseline, id)
	}
	b.progress += delta
}

// Names lists the animations ByName understands.
func Names() []string {
	return []string{"idle", "walk", "run", "fly", "wave", "crouch", "hit"}
}

// ByName builds a fresh animation from its configuration name.
func ByName(name string) (Animation, error) {
	switch name {
	case "idle":
		return NewIdle(), nil
	case "walk", "walking":
		return NewWalking(), nil
	case "run", "running":
		return NewRunning(), nil
	case "fly", "flying":
		return NewFlying(), nil
	case "wave":
		return NewWave(ArmLeft), nil
	case "crouch":
		return NewCrouch(), nil
	case "hit":
		return NewHit(), nil
	}
	return nil, fmt.Errorf("unknown animation %q", name)
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v <= lo:
		return lo
	case v >= hi:
		return hi
	}
	return v
}

func f32(v float64) float32 { return float32(v) }

const pi = math.Pi

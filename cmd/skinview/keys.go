package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/skinview/internal/animation"
)

// Key bindings.
const (
	keyPause      = sdl.K_SPACE
	keyBobbing    = sdl.K_b
	keyReset      = sdl.K_r
	keyAutoRotate = sdl.K_a
	keyOpen       = sdl.K_o
	keyElytra     = sdl.K_e
	keyScreenshot = sdl.K_F12
	keyDebugLog   = sdl.K_d
	keySave       = sdl.K_s
	keyQuit       = sdl.K_ESCAPE
)

// animationForKey maps the number keys to animations in the order of
// animation.Names.
func animationForKey(key sdl.Keycode) (string, bool) {
	i := int(key) - int(sdl.K_1)
	names := animation.Names()
	if i < 0 || i >= len(names) {
		return "", false
	}
	return names[i], true
}

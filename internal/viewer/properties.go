package viewer

import (
	"image/color"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/animation"
	"github.com/Faultbox/skinview/internal/engine/camera"
	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/internal/nametag"
	"github.com/Faultbox/skinview/pkg/math"
)

// Camera distance limits.
const (
	minCameraDistance = 10
	maxCameraDistance = 256
)

// Player returns the posed model.
func (v *Viewer) Player() *model.Player { return v.player }

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *camera.Perspective { return v.camera }

// Controls returns the orbit controls.
func (v *Viewer) Controls() *camera.OrbitControls { return v.controls }

// Width returns the viewport width in logical pixels.
func (v *Viewer) Width() int { return v.width }

// Height returns the viewport height in logical pixels.
func (v *Viewer) Height() int { return v.height }

// SetSize resizes the viewport.
func (v *Viewer) SetSize(width, height int) {
	if v.disposed || width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
	v.camera.Aspect = float32(width) / float32(height)
	v.backend.SetSize(width, height)
}

// SetWidth changes the width only.
func (v *Viewer) SetWidth(width int) { v.SetSize(width, v.height) }

// SetHeight changes the height only.
func (v *Viewer) SetHeight(height int) { v.SetSize(v.width, height) }

// FOV returns the vertical field of view in degrees.
func (v *Viewer) FOV() float64 { return float64(v.camera.FOV) }

// SetFOV changes the field of view and moves the camera to keep the player
// framed.
func (v *Viewer) SetFOV(fov float64) {
	v.camera.FOV = float32(fov)
	v.AdjustCameraDistance()
}

// Zoom returns the zoom ratio.
func (v *Viewer) Zoom() float64 { return v.zoom }

// SetZoom changes the zoom ratio.
func (v *Viewer) SetZoom(zoom float64) {
	v.zoom = zoom
	v.AdjustCameraDistance()
}

// CameraDistance returns the distance that frames the player for fov
// degrees and zoom.
func CameraDistance(fov, zoom float64) float64 {
	d := 4.5 + 16.5/gomath.Tan(fov/180*gomath.Pi/2)/zoom
	return gomath.Max(minCameraDistance, gomath.Min(d, maxCameraDistance))
}

// AdjustCameraDistance moves the camera along its viewing ray to the distance
// derived from FOV and Zoom.
func (v *Viewer) AdjustCameraDistance() {
	v.camera.SetDistance(float32(CameraDistance(v.FOV(), v.zoom)))
}

// ResetCameraPose puts the camera back in front of the player.
func (v *Viewer) ResetCameraPose() {
	v.camera.Position = math.Vec3{Z: 1}
	v.AdjustCameraDistance()
}

// ResetModelRotation undoes auto rotation and orbiting.
func (v *Viewer) ResetModelRotation() {
	v.wrapper = math.Vec3{}
	v.controls.Reset()
}

// WrapperRotation returns the rotation of the group holding the player.
func (v *Viewer) WrapperRotation() math.Vec3 { return v.wrapper }

// PixelRatio returns the effective pixel ratio.
func (v *Viewer) PixelRatio() float64 {
	if v.pixelRatio == 0 {
		return v.display.DevicePixelRatio()
	}
	return v.pixelRatio
}

// MatchesDevice reports whether the pixel ratio follows the display.
func (v *Viewer) MatchesDevice() bool { return v.pixelRatio == 0 }

// SetPixelRatio fixes the pixel ratio. A ratio <= 0 follows the display and
// keeps following it across changes.
func (v *Viewer) SetPixelRatio(ratio float64) {
	if v.disposed {
		return
	}
	if ratio <= 0 {
		if v.pixelRatio != 0 {
			v.pixelRatio = 0
			v.onDeviceRatioChange()
		}
		return
	}
	if v.unwatch != nil {
		v.unwatch()
		v.unwatch = nil
	}
	v.pixelRatio = ratio
	v.backend.SetPixelRatio(ratio)
	v.backend.SetSize(v.width, v.height)
}

// onDeviceRatioChange applies the display ratio and re-arms the watch while
// the viewer follows the display.
func (v *Viewer) onDeviceRatioChange() {
	v.unwatch = nil
	if v.disposed {
		return
	}
	ratio := v.display.DevicePixelRatio()
	v.backend.SetPixelRatio(ratio)
	if v.width > 0 && v.height > 0 {
		v.backend.SetSize(v.width, v.height)
	}
	if v.pixelRatio == 0 {
		v.unwatch = v.display.WatchRatio(ratio, v.onDeviceRatioChange)
	}
	v.log.Debug("device pixel ratio applied", zap.Float64("ratio", ratio))
}

// AutoRotate reports whether the player spins on its own.
func (v *Viewer) AutoRotate() bool { return v.autoRotate }

// SetAutoRotate toggles auto rotation.
func (v *Viewer) SetAutoRotate(on bool) { v.autoRotate = on }

// AutoRotateSpeed returns the auto rotation speed in radians per second.
func (v *Viewer) AutoRotateSpeed() float64 { return v.autoRotateSpeed }

// SetAutoRotateSpeed sets the auto rotation speed in radians per second.
func (v *Viewer) SetAutoRotateSpeed(speed float64) { v.autoRotateSpeed = speed }

// Animation returns the playing animation, or nil.
func (v *Viewer) Animation() animation.Animation { return v.anim }

// SetAnimation replaces the playing animation. A different animation starts
// from the rest pose with the player at the origin; the same animation only
// restarts. nil stops animating and leaves the rest pose.
func (v *Viewer) SetAnimation(a animation.Animation) {
	if v.anim != a {
		v.player.ResetJoints()
		v.player.Position = math.Vec3{}
		v.player.Rotation = math.Vec3{}
		v.clock.Stop()
		v.clock.AutoStart = true
	}
	if a != nil {
		a.SetProgress(0)
	}
	v.anim = a
}

// NameTag returns the displayed tag, or nil.
func (v *Viewer) NameTag() *nametag.Tag { return v.nameTag }

// SetNameTagText shows a tag with the default style.
func (v *Viewer) SetNameTagText(text string) { v.SetNameTag(nametag.New(text)) }

// SetNameTag shows tag above the player; nil removes it.
func (v *Viewer) SetNameTag(tag *nametag.Tag) {
	if v.disposed {
		return
	}
	if tag == nil {
		v.clearNameTag()
		return
	}
	img := tag.Rasterize()
	tex, err := v.replaceTexture(ChannelNameTag, img, KindPixelArt)
	if err != nil {
		v.log.Warn("name tag texture failed", zap.String("text", tag.Text), zap.Error(err))
		return
	}
	w, h := tag.Size(img.Bounds())
	v.nameTag = tag
	v.nameSprite = &NameTagSprite{Texture: tex, Width: w, Height: h, OffsetY: nametag.OffsetY}
}

func (v *Viewer) clearNameTag() {
	v.nameTag = nil
	v.nameSprite = nil
	v.disposeTexture(ChannelNameTag)
}

// Background returns the current background.
func (v *Viewer) Background() Background {
	if tex := v.textures[ChannelBackground]; tex != nil {
		return Background{Texture: tex, Mapping: v.bgMapping}
	}
	return Background{Color: v.bgColor}
}

// SetBackground clears to c, nil for transparent, and releases any loaded
// background texture.
func (v *Viewer) SetBackground(c color.Color) {
	if v.disposed {
		return
	}
	v.seq[ChannelBackground]++
	v.clearBackground()
	v.bgColor = c
}

func (v *Viewer) clearBackground() {
	v.bgColor = nil
	v.disposeTexture(ChannelBackground)
}

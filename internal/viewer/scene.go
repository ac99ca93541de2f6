package viewer

import (
	"github.com/Faultbox/skinview/internal/engine/camera"
	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/pkg/math"
)

// Scene is the snapshot a Backend draws for one frame. It references the
// viewer's live objects and is only valid during Render.
type Scene struct {
	Player *model.Player
	// Wrapper is the auto-rotated group holding the player and name tag.
	Wrapper    math.Vec3
	Camera     *camera.Perspective
	Background Background
	NameTag    *NameTagSprite
}

// NameTagSprite is a camera-facing quad above the player.
type NameTagSprite struct {
	Texture model.Texture
	Width   float32
	Height  float32
	OffsetY float32
}

// WrapperMatrix returns the rotation of the player wrapper group.
func (s *Scene) WrapperMatrix() math.Mat4 {
	return math.Euler(s.Wrapper)
}

package viewer

import (
	"image"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/animation"
	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/model"
)

// Channel is one of the viewer's texture slots.
type Channel int

const (
	ChannelSkin Channel = iota
	ChannelCape
	ChannelEars
	ChannelBackground
	ChannelNameTag
	numChannels
)

func (c Channel) String() string {
	switch c {
	case ChannelSkin:
		return "skin"
	case ChannelCape:
		return "cape"
	case ChannelEars:
		return "ears"
	case ChannelBackground:
		return "background"
	case ChannelNameTag:
		return "nametag"
	}
	return "unknown"
}

// TextureKind tells the backend how to sample a texture.
type TextureKind int

const (
	// KindPixelArt textures are sampled with nearest filtering.
	KindPixelArt TextureKind = iota
	// KindBackground textures are sampled with linear filtering.
	KindBackground
)

// Mapping selects how a background texture is projected.
type Mapping int

const (
	// MappingScreen stretches the texture over the viewport.
	MappingScreen Mapping = iota
	// MappingEquirectangular wraps a panorama around the camera.
	MappingEquirectangular
)

// Background is what the scene is cleared to. A nil Color with no Texture
// is transparent.
type Background struct {
	Color   color.Color
	Texture model.Texture
	Mapping Mapping
}

// Backend draws scenes and owns GPU resources.
type Backend interface {
	NewTexture(img *image.RGBA, kind TextureKind) (model.Texture, error)
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
	SetClearColor(c color.Color)
	IsContextLost() bool
	Render(s *Scene)
	Dispose()
}

// AutoDetect infers the model type from the skin.
const AutoDetect model.ModelType = "auto-detect"

// EarsMode controls the ears drawn on a skin.
type EarsMode string

const (
	EarsNone     EarsMode = ""
	EarsShow     EarsMode = "show"
	EarsLoadOnly EarsMode = "load-only"
)

// SkinLoadOptions controls LoadSkin.
type SkinLoadOptions struct {
	// Model is default, slim, or AutoDetect (also the zero value).
	Model model.ModelType
	Ears  EarsMode
	// Hidden loads the texture without making the skin visible.
	Hidden bool
}

// CapeLoadOptions controls LoadCape.
type CapeLoadOptions struct {
	// BackEquipment is shown after loading; empty means cape.
	BackEquipment model.BackEquipment
	Hidden        bool
}

// EarsTextureType is the layout of an ears source.
type EarsTextureType string

const (
	EarsStandalone EarsTextureType = "standalone"
	EarsFromSkin   EarsTextureType = "skin"
)

// EarsLoadOptions controls LoadEars.
type EarsLoadOptions struct {
	TextureType EarsTextureType
	Hidden      bool
}

// EarsOption picks the initial ears: either the ones drawn on the initial
// skin, or a separate source.
type EarsOption struct {
	CurrentSkin bool
	Source      *texture.Source
	TextureType EarsTextureType
}

// Options configures New. Start from DefaultOptions.
type Options struct {
	Backend   Backend
	Scheduler Scheduler
	Display   Display
	Decoder   texture.Decoder
	Logger    *zap.Logger
	Now       func() time.Time

	Width, Height int
	// PixelRatio 0 follows the display.
	PixelRatio float64

	Skin     *texture.Source
	Model    model.ModelType
	Cape     *texture.Source
	Ears     *EarsOption
	Panorama *texture.Source
	// Background colour; nil is transparent. Panorama takes precedence.
	Background color.Color

	FOV  float64
	Zoom float64

	EnableControls bool
	EnableRotate   bool
	EnableZoom     bool
	EnablePan      bool

	Animation    animation.Animation
	NameTag      string
	RenderPaused bool
}

// DefaultOptions returns the default configuration without a backend.
func DefaultOptions() Options {
	return Options{
		Width:          300,
		Height:         300,
		FOV:            50,
		Zoom:           0.9,
		EnableControls: true,
		EnableRotate:   true,
		EnableZoom:     true,
	}
}

// Package renderer is the OpenGL backend of the viewer. It owns every GL
// object: textures, box meshes, shader programs and the scene target that
// is resolved to the screen through an FXAA pass.
package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/engine/framebuffer"
	"github.com/Faultbox/skinview/internal/engine/lighting"
	"github.com/Faultbox/skinview/internal/engine/renderer/shaders"
	"github.com/Faultbox/skinview/internal/engine/shader"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/internal/viewer"
)

// Config holds renderer configuration.
type Config struct {
	Logger *zap.Logger
	// FXAA smooths edges in the resolve pass.
	FXAA bool
}

// Backend implements viewer.Backend.
type Backend struct {
	log *zap.Logger
	cfg Config

	model      *shader.Program
	background *shader.Program
	panorama   *shader.Program
	resolve    *shader.Program
	sprite     *shader.Program
	emptyVAO   uint32

	meshes   map[model.Box]*meshBuffer
	textures map[*Texture]struct{}
	target   *framebuffer.Framebuffer
	lights   *lighting.Rig

	width, height int
	ratio         float64
	clear         [4]float32

	lost     bool
	disposed bool
}

var _ viewer.Backend = (*Backend)(nil)

// New creates the backend.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	b := &Backend{
		log:      cfg.Logger,
		cfg:      cfg,
		textures: make(map[*Texture]struct{}),
		lights:   lighting.NewRig(),
		width:    1,
		height:   1,
		ratio:    1,
	}
	if b.log == nil {
		b.log = logger.Named("renderer")
	}
	b.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	if err := b.createResources(); err != nil {
		b.destroyResources()
		return nil, err
	}
	return b, nil
}

func (b *Backend) createResources() error {
	var err error
	if b.model, err = shader.New("model", shaders.ModelVertexShader, shaders.ModelFragmentShader); err != nil {
		return err
	}
	if b.background, err = shader.New("background", shaders.QuadVertexShader, shaders.BackgroundFragmentShader); err != nil {
		return err
	}
	if b.panorama, err = shader.New("panorama", shaders.QuadVertexShader, shaders.PanoramaFragmentShader); err != nil {
		return err
	}
	if b.resolve, err = shader.New("fxaa", shaders.QuadVertexShader, shaders.FXAAFragmentShader); err != nil {
		return err
	}
	if b.sprite, err = shader.New("sprite", shaders.SpriteVertexShader, shaders.SpriteFragmentShader); err != nil {
		return err
	}
	// core profile needs a bound VAO even for attribute-less draws
	gl.GenVertexArrays(1, &b.emptyVAO)

	w, h := b.DrawableSize()
	if b.target, err = framebuffer.New(int32(w), int32(h)); err != nil {
		return err
	}
	b.meshes = make(map[model.Box]*meshBuffer)
	return nil
}

func (b *Backend) destroyResources() {
	for _, p := range []*shader.Program{b.model, b.background, b.panorama, b.resolve, b.sprite} {
		if p != nil {
			p.Delete()
		}
	}
	b.model, b.background, b.panorama, b.resolve, b.sprite = nil, nil, nil, nil, nil
	if b.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &b.emptyVAO)
		b.emptyVAO = 0
	}
	for k, m := range b.meshes {
		m.destroy()
		delete(b.meshes, k)
	}
	if b.target != nil {
		b.target.Destroy()
		b.target = nil
	}
}

// SetSize implements viewer.Backend. Sizes are logical pixels.
func (b *Backend) SetSize(width, height int) {
	b.width, b.height = width, height
	b.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetPixelRatio implements viewer.Backend.
func (b *Backend) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	b.ratio = ratio
}

// DrawableSize returns the framebuffer size in physical pixels.
func (b *Backend) DrawableSize() (int, int) {
	return drawableSize(b.width, b.height, b.ratio)
}

func drawableSize(width, height int, ratio float64) (int, int) {
	w := int(float64(width)*ratio + 0.5)
	h := int(float64(height)*ratio + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// SetClearColor implements viewer.Backend.
func (b *Backend) SetClearColor(c color.Color) {
	b.clear = glColor(c)
}

// glColor converts c to straight alpha floats; nil is transparent.
func glColor(c color.Color) [4]float32 {
	if c == nil {
		return [4]float32{}
	}
	r, g, bl, a := c.RGBA()
	if a == 0 {
		return [4]float32{}
	}
	fa := float32(a)
	return [4]float32{float32(r) / fa, float32(g) / fa, float32(bl) / fa, fa / 0xffff}
}

// IsContextLost implements viewer.Backend.
func (b *Backend) IsContextLost() bool { return b.lost }

// LoseContext marks the GL context as gone. Rendering is skipped until
// Restore.
func (b *Backend) LoseContext() {
	b.lost = true
	b.log.Warn("GL context lost")
}

// Restore rebuilds every GL object after a context loss and uploads the live
// textures again from their retained images.
func (b *Backend) Restore() error {
	if b.disposed {
		return viewer.ErrDisposed
	}
	b.destroyResources()
	if err := b.createResources(); err != nil {
		return fmt.Errorf("restoring GL resources: %w", err)
	}
	for t := range b.textures {
		t.id = upload(t.img, t.kind)
	}
	b.lost = false
	b.log.Info("GL context restored", zap.Int("textures", len(b.textures)))
	return nil
}

// ReadPixels returns the last rendered scene before the resolve pass.
func (b *Backend) ReadPixels() (*image.RGBA, error) {
	if b.disposed || b.target == nil {
		return nil, viewer.ErrDisposed
	}
	return b.target.ReadImage(), nil
}

// Dispose implements viewer.Backend. Textures still alive are released too.
func (b *Backend) Dispose() {
	if b.disposed {
		return
	}
	for t := range b.textures {
		t.Dispose()
	}
	b.destroyResources()
	b.disposed = true
	b.log.Info("closing renderer")
}

// Package viewer drives a skin viewer: the frame loop, the texture channels
// and the state machine tying them to a rendering backend.
//
// A Viewer is single threaded. Every method must be called from the thread
// running the host's main loop, which also calls FrameLoop.Tick and
// ProcessPending. Remote texture loads decode on background goroutines and
// hand their results back through ProcessPending.
package viewer

import (
	"context"
	"image"
	"image/color"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/animation"
	"github.com/Faultbox/skinview/internal/engine/camera"
	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/internal/nametag"
	"github.com/Faultbox/skinview/pkg/math"
)

const pendingQueueSize = 16

// Viewer renders one player.
type Viewer struct {
	log     *zap.Logger
	backend Backend
	sched   Scheduler
	display Display
	decoder texture.Decoder

	player   *model.Player
	wrapper  math.Vec3
	camera   *camera.Perspective
	controls *camera.OrbitControls
	clock    *Clock

	width, height int
	pixelRatio    float64 // 0 follows the display
	unwatch       func()
	zoom          float64

	anim            animation.Animation
	autoRotate      bool
	autoRotateSpeed float64
	userRotating    bool

	frame       FrameID
	scheduled   bool
	paused      bool
	contextLost bool
	disposed    bool

	skinCanvas *image.RGBA
	capeCanvas *image.RGBA
	earsCanvas *image.RGBA

	textures   [numChannels]model.Texture
	seq        [numChannels]uint64
	bgColor    color.Color
	bgMapping  Mapping
	nameTag    *nametag.Tag
	nameSprite *NameTagSprite

	ctx    context.Context
	cancel context.CancelFunc
	tasks  chan func()
	wg     sync.WaitGroup
}

// New builds a viewer, applies the initial options and, unless
// RenderPaused is set, schedules the first frame.
func New(opts Options) (*Viewer, error) {
	if opts.Backend == nil {
		return nil, ErrMissingTarget
	}
	defaults := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}
	if opts.FOV <= 0 {
		opts.FOV = defaults.FOV
	}
	if opts.Zoom <= 0 {
		opts.Zoom = defaults.Zoom
	}

	v := &Viewer{
		log:             opts.Logger,
		backend:         opts.Backend,
		sched:           opts.Scheduler,
		display:         opts.Display,
		decoder:         opts.Decoder,
		player:          model.New(),
		camera:          camera.NewPerspective(),
		clock:           NewClock(opts.Now),
		autoRotateSpeed: 1,
		tasks:           make(chan func(), pendingQueueSize),
	}
	if v.log == nil {
		v.log = logger.Named("viewer")
	}
	if v.sched == nil {
		v.sched = NewFrameLoop()
	}
	if v.display == nil {
		v.display = fixedDisplay(1)
	}
	if v.decoder == nil {
		v.decoder = &texture.DefaultDecoder{}
	}
	v.ctx, v.cancel = context.WithCancel(context.Background())

	v.pixelRatio = opts.PixelRatio
	if v.pixelRatio <= 0 {
		v.pixelRatio = 0
		v.onDeviceRatioChange()
	} else {
		v.backend.SetPixelRatio(v.pixelRatio)
	}
	v.backend.SetClearColor(color.Transparent)

	v.player.Skin.Visible = false
	v.player.Cape.Visible = false

	v.controls = camera.NewOrbitControls(v.camera)
	v.controls.Enabled = opts.EnableControls
	v.controls.EnableRotate = opts.EnableRotate
	v.controls.EnableZoom = opts.EnableZoom
	v.controls.EnablePan = opts.EnablePan

	if opts.Skin != nil {
		ears := EarsNone
		if opts.Ears != nil && opts.Ears.CurrentSkin {
			ears = EarsShow
		}
		v.LoadSkin(opts.Skin, SkinLoadOptions{Model: opts.Model, Ears: ears})
	}
	if opts.Cape != nil {
		v.LoadCape(opts.Cape, CapeLoadOptions{})
	}
	if opts.Ears != nil && !opts.Ears.CurrentSkin && opts.Ears.Source != nil {
		v.LoadEars(opts.Ears.Source, EarsLoadOptions{TextureType: opts.Ears.TextureType})
	}
	v.SetSize(opts.Width, opts.Height)
	if opts.Background != nil {
		v.SetBackground(opts.Background)
	}
	if opts.Panorama != nil {
		v.LoadPanorama(opts.Panorama)
	}
	if opts.NameTag != "" {
		v.SetNameTagText(opts.NameTag)
	}

	v.camera.Position = math.Vec3{Z: 1}
	v.zoom = opts.Zoom
	v.SetFOV(opts.FOV)
	v.controls.SaveState()

	v.anim = opts.Animation

	if opts.RenderPaused {
		v.paused = true
	} else {
		v.schedule()
	}
	v.log.Debug("viewer created",
		zap.Int("width", v.width),
		zap.Int("height", v.height),
		zap.Float64("pixel_ratio", v.PixelRatio()),
		zap.Bool("paused", v.paused))
	return v, nil
}

func (v *Viewer) schedule() {
	if v.scheduled {
		return
	}
	v.frame = v.sched.RequestFrame(v.draw)
	v.scheduled = true
}

func (v *Viewer) cancelFrame() {
	if !v.scheduled {
		return
	}
	v.sched.CancelFrame(v.frame)
	v.scheduled = false
}

// draw is one iteration of the render loop.
func (v *Viewer) draw() {
	v.scheduled = false
	dt := v.clock.Delta()
	if v.anim != nil {
		v.anim.Update(v.player, dt)
	}
	if v.autoRotate && !(v.controls.EnableRotate && v.userRotating) {
		v.wrapper.Y += float32(dt * v.autoRotateSpeed)
	}
	v.controls.Update()
	v.Render()
	if !v.disposed && !v.paused {
		v.schedule()
	}
}

// Render draws one frame without advancing the animation.
func (v *Viewer) Render() {
	if v.disposed {
		return
	}
	v.backend.Render(&Scene{
		Player:     v.player,
		Wrapper:    v.wrapper,
		Camera:     v.camera,
		Background: v.Background(),
		NameTag:    v.nameSprite,
	})
}

// ProcessPending applies finished remote loads. It returns the number of
// loads handled.
func (v *Viewer) ProcessPending() int {
	n := 0
	for {
		select {
		case fn := <-v.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}

// RenderPaused reports whether the render loop is paused.
func (v *Viewer) RenderPaused() bool { return v.paused }

// SetRenderPaused pauses or resumes the render loop. Pausing freezes the
// clock so resuming does not apply the paused time as one large delta.
func (v *Viewer) SetRenderPaused(paused bool) {
	v.paused = paused
	if paused {
		v.cancelFrame()
		v.clock.Stop()
		v.clock.AutoStart = true
		return
	}
	if !v.disposed && !v.isContextLost() && !v.scheduled {
		v.schedule()
	}
}

func (v *Viewer) isContextLost() bool {
	return v.contextLost || v.backend.IsContextLost()
}

// HandleContextLost suspends the loop until the graphics context returns.
func (v *Viewer) HandleContextLost() {
	if v.disposed {
		return
	}
	v.contextLost = true
	v.cancelFrame()
	v.log.Info("graphics context lost")
}

// HandleContextRestored resumes the loop unless paused.
func (v *Viewer) HandleContextRestored() {
	if v.disposed {
		return
	}
	v.contextLost = false
	v.backend.SetClearColor(color.Transparent)
	if !v.paused && !v.scheduled {
		v.schedule()
	}
	v.log.Info("graphics context restored")
}

// Scheduled reports whether a frame is pending.
func (v *Viewer) Scheduled() bool { return v.scheduled }

// Disposed reports whether Dispose was called.
func (v *Viewer) Disposed() bool { return v.disposed }

// Dispose releases every texture and the backend. It cancels in-flight
// loads and waits for their goroutines; decoders must honour the context.
// Calling Dispose again is a no-op.
func (v *Viewer) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	if v.unwatch != nil {
		v.unwatch()
		v.unwatch = nil
	}
	v.cancelFrame()
	v.cancel()
	v.wg.Wait()
	v.ProcessPending()

	v.controls.Dispose()
	v.resetSkin()
	v.resetCape()
	v.resetEars()
	v.clearBackground()
	v.clearNameTag()
	v.backend.Dispose()
	v.log.Debug("viewer disposed")
}

// SetUserRotating records whether the user is dragging the model. Auto
// rotation holds still meanwhile when rotation by controls is enabled.
func (v *Viewer) SetUserRotating(rotating bool) { v.userRotating = rotating }

// HandlePointerDown marks the start of a drag.
func (v *Viewer) HandlePointerDown() { v.userRotating = true }

// HandlePointerUp marks the end of a drag.
func (v *Viewer) HandlePointerUp() { v.userRotating = false }

// HandleTouchMove treats a single-finger move as a drag.
func (v *Viewer) HandleTouchMove(touches int) { v.userRotating = touches == 1 }

// HandleTouchEnd ends a touch drag.
func (v *Viewer) HandleTouchEnd() { v.userRotating = false }

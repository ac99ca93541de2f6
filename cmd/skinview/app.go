package main

import (
	"fmt"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/skinview/internal/animation"
	"github.com/Faultbox/skinview/internal/config"
	"github.com/Faultbox/skinview/internal/engine/debug"
	"github.com/Faultbox/skinview/internal/engine/input"
	"github.com/Faultbox/skinview/internal/engine/renderer"
	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/engine/window"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/internal/viewer"
)

// idleDelay is how long the loop sleeps when no frame was drawn, in ms.
const idleDelay = 10

// App owns the window and drives the viewer from the SDL main loop.
type App struct {
	cfg *config.Config
	log *zap.Logger

	win     *window.Window
	input   *input.Input
	backend *renderer.Backend
	loop    *viewer.FrameLoop
	display *viewer.RatioNotifier
	viewer  *viewer.Viewer
	shots   *debug.ScreenshotCapture

	animName string
	loads    []pendingLoad
	picked   chan string

	dragging bool
	panning  bool
}

type pendingLoad struct {
	what string
	c    *viewer.Completion
}

// NewApp creates the window, the GL backend and the viewer.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:      cfg,
		log:      logger.Named("app"),
		input:    input.New(),
		loop:     viewer.NewFrameLoop(),
		shots:    debug.NewScreenshotCapture(cfg.Screenshots.Dir, "skinview"),
		animName: cfg.Animation.Name,
		picked:   make(chan string, 1),
	}

	opts, err := viewerOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("viewer options: %w", err)
	}

	a.win, err = window.New(window.Config{
		Title:  "skinview",
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, err
	}

	a.backend, err = renderer.New(renderer.Config{Logger: logger.Named("renderer"), FXAA: true})
	if err != nil {
		a.win.Close()
		return nil, err
	}

	a.display = viewer.NewRatioNotifier(a.win.PixelRatio)
	opts.Backend = a.backend
	opts.Scheduler = a.loop
	opts.Display = a.display
	opts.Logger = logger.Named("viewer")
	opts.Width, opts.Height = a.win.Size()

	a.viewer, err = viewer.New(opts)
	if err != nil {
		a.backend.Dispose()
		a.win.Close()
		return nil, err
	}
	a.viewer.SetAutoRotate(cfg.Viewer.AutoRotate)
	a.viewer.SetAutoRotateSpeed(cfg.Viewer.AutoRotateSpeed)

	tc := cfg.Textures
	if backEquipment(tc.BackEquipment) == model.BackElytra && tc.Cape != "" {
		a.track("cape", a.viewer.LoadCape(texture.FromRef(tc.Cape), viewer.CapeLoadOptions{BackEquipment: model.BackElytra}))
	}
	a.updateTitle()
	return a, nil
}

// Run processes events and frames until the window closes.
func (a *App) Run() error {
	for {
		if a.input.Update() {
			return nil
		}
		for _, e := range a.input.Events() {
			if a.handle(e) {
				return nil
			}
		}
		a.openPicked()

		a.viewer.ProcessPending()
		a.reportLoads()

		if a.loop.Tick() > 0 {
			a.win.SwapBuffers()
		} else {
			sdl.Delay(idleDelay)
		}
	}
}

// handle applies one event. It returns true to quit.
func (a *App) handle(e input.Event) bool {
	v := a.viewer
	_, height := a.win.Size()
	switch e.Type {
	case input.EventQuit:
		return true

	case input.EventResize:
		v.SetSize(e.Width, e.Height)
		a.display.Check()

	case input.EventDisplayChanged:
		a.display.Check()

	case input.EventKeyDown:
		return a.handleKey(e.Key)

	case input.EventMouseDown:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			a.dragging = true
			v.HandlePointerDown()
		case sdl.BUTTON_RIGHT:
			a.panning = true
		}

	case input.EventMouseUp:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			a.dragging = false
			v.HandlePointerUp()
		case sdl.BUTTON_RIGHT:
			a.panning = false
		}

	case input.EventMouseMove:
		if a.dragging {
			v.Controls().Rotate(float64(e.DX), float64(e.DY), float64(height))
		}
		if a.panning {
			v.Controls().Pan(float64(e.DX), float64(e.DY), float64(height))
		}

	case input.EventWheel:
		v.Controls().Zoom(float64(e.Wheel))

	case input.EventTouchDown:
		v.HandleTouchMove(e.Touches)

	case input.EventTouchMove:
		v.HandleTouchMove(e.Touches)
		if e.Touches == 1 {
			width, _ := a.win.Size()
			v.Controls().Rotate(float64(e.DX)*float64(width), float64(e.DY)*float64(height), float64(height))
		}

	case input.EventTouchUp:
		if e.Touches == 0 {
			v.HandleTouchEnd()
		}

	case input.EventContextLost:
		a.backend.LoseContext()
		v.HandleContextLost()

	case input.EventContextRestored:
		if a.backend.IsContextLost() {
			if err := a.backend.Restore(); err != nil {
				a.log.Error("failed to restore GL context", zap.Error(err))
				return false
			}
		}
		v.HandleContextRestored()
	}
	return false
}

func (a *App) handleKey(key sdl.Keycode) bool {
	v := a.viewer
	if name, ok := animationForKey(key); ok {
		a.setAnimation(name)
		return false
	}
	switch key {
	case keyQuit:
		return true
	case keyPause:
		v.SetRenderPaused(!v.RenderPaused())
		a.log.Debug("render paused", zap.Bool("paused", v.RenderPaused()))
	case keyBobbing:
		if w, ok := v.Animation().(*animation.Walking); ok {
			w.HeadBobbing = !w.HeadBobbing
		}
	case keyReset:
		v.ResetModelRotation()
		v.ResetCameraPose()
	case keyAutoRotate:
		v.SetAutoRotate(!v.AutoRotate())
	case keyElytra:
		p := v.Player()
		switch p.BackEquipment() {
		case model.BackCape:
			p.SetBackEquipment(model.BackElytra)
		case model.BackElytra:
			p.SetBackEquipment(model.BackCape)
		}
	case keyOpen:
		a.openFileDialog()
	case keyScreenshot:
		a.screenshot()
	case keyDebugLog:
		a.toggleDebugLog()
	case keySave:
		a.saveSettings()
	}
	return false
}

// saveSettings stores the current view state as the new start-up config.
func (a *App) saveSettings() {
	v := a.viewer
	cfg := a.cfg
	cfg.Viewer.FOV = v.FOV()
	cfg.Viewer.Zoom = v.Zoom()
	cfg.Viewer.AutoRotate = v.AutoRotate()
	cfg.Viewer.AutoRotateSpeed = v.AutoRotateSpeed()
	cfg.Animation.Name = a.animName
	if w, ok := v.Animation().(*animation.Walking); ok {
		cfg.Animation.HeadBobbing = w.HeadBobbing
	}
	if eq := v.Player().BackEquipment(); eq != model.BackNone {
		cfg.Textures.BackEquipment = string(eq)
	}
	if tag := v.NameTag(); tag != nil {
		cfg.NameTag = tag.Text
	} else {
		cfg.NameTag = ""
	}

	path, err := cfg.Save()
	if err != nil {
		a.log.Warn("failed to save settings", zap.Error(err))
		return
	}
	a.log.Info("settings saved", zap.String("path", path))
}

func (a *App) toggleDebugLog() {
	lvl := "debug"
	if logger.Level() == zapcore.DebugLevel {
		lvl = a.cfg.Logging.Level
		if lvl == "debug" {
			lvl = "info"
		}
	}
	if err := logger.SetLevel(lvl); err != nil {
		a.log.Warn("failed to change log level", zap.Error(err))
		return
	}
	a.log.Info("log level changed", zap.String("level", logger.Level().String()))
}

func (a *App) setAnimation(name string) {
	anim, err := buildAnimation(name, a.cfg.Animation)
	if err != nil {
		a.log.Warn("unknown animation", zap.String("name", name), zap.Error(err))
		return
	}
	a.viewer.SetAnimation(anim)
	a.animName = name
	a.updateTitle()
	a.log.Debug("animation replaced", zap.String("name", name))
}

func (a *App) updateTitle() {
	name := a.animName
	if name == "" {
		name = "none"
	}
	a.win.SetTitle(fmt.Sprintf("skinview - %s", name))
}

// openFileDialog asks for a skin without blocking the loop; the choice is
// picked up by openPicked on the main thread.
func (a *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Skin images", "png", "jpg", "jpeg", "gif", "bmp", "webp", "tga").
			Filter("All Files", "*").
			Title("Open Skin").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				a.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case a.picked <- filename:
		default:
		}
	}()
}

func (a *App) openPicked() {
	select {
	case path := <-a.picked:
		opts := viewer.SkinLoadOptions{Model: viewer.AutoDetect}
		if a.cfg.Textures.EarsType == "current-skin" {
			opts.Ears = viewer.EarsShow
		}
		a.track("skin", a.viewer.LoadSkin(texture.FromRef(path), opts))
	default:
	}
}

// track logs the outcome of a load once it resolves.
func (a *App) track(what string, c *viewer.Completion) {
	a.loads = append(a.loads, pendingLoad{what: what, c: c})
	a.reportLoads()
}

func (a *App) reportLoads() {
	kept := a.loads[:0]
	for _, l := range a.loads {
		if !l.c.Resolved() {
			kept = append(kept, l)
			continue
		}
		if err := l.c.Err(); err != nil {
			a.log.Warn("texture load failed", zap.String("texture", l.what), zap.Error(err))
		} else {
			a.log.Info("texture loaded", zap.String("texture", l.what))
		}
	}
	a.loads = kept
}

func (a *App) screenshot() {
	img, err := a.backend.ReadPixels()
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	name, err := a.shots.Capture(img)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases the viewer, the backend and the window.
func (a *App) Close() {
	a.viewer.Dispose()
	a.win.Close()
}

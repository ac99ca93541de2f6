package main

import (
	"github.com/Faultbox/skinview/internal/animation"
	"github.com/Faultbox/skinview/internal/config"
	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/internal/viewer"
)

// source returns nil for an empty reference.
func source(ref string) *texture.Source {
	if ref == "" {
		return nil
	}
	return texture.FromRef(ref)
}

// viewerOptions maps the configuration onto viewer options. The backend and
// host hooks are left for the caller.
func viewerOptions(cfg *config.Config) (viewer.Options, error) {
	opts := viewer.DefaultOptions()
	vc := cfg.Viewer
	opts.Width, opts.Height = vc.Width, vc.Height
	opts.PixelRatio = vc.PixelRatio
	opts.FOV, opts.Zoom = vc.FOV, vc.Zoom
	opts.EnableRotate = vc.EnableRotate
	opts.EnableZoom = vc.EnableZoom
	opts.EnablePan = vc.EnablePan
	opts.RenderPaused = vc.RenderPaused
	opts.NameTag = cfg.NameTag

	bg, err := cfg.BackgroundColor()
	if err != nil {
		return opts, err
	}
	opts.Background = bg

	tc := cfg.Textures
	opts.Skin = source(tc.Skin)
	opts.Model = modelType(tc.Model)
	if backEquipment(tc.BackEquipment) == model.BackCape {
		opts.Cape = source(tc.Cape)
	}
	opts.Panorama = source(tc.Panorama)
	switch {
	case tc.EarsType == "current-skin":
		opts.Ears = &viewer.EarsOption{CurrentSkin: true}
	case tc.Ears != "":
		opts.Ears = &viewer.EarsOption{Source: source(tc.Ears), TextureType: earsType(tc.EarsType)}
	}

	if cfg.Animation.Name != "" {
		if opts.Animation, err = buildAnimation(cfg.Animation.Name, cfg.Animation); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func modelType(s string) model.ModelType {
	switch s {
	case "default":
		return model.ModelDefault
	case "slim":
		return model.ModelSlim
	}
	return viewer.AutoDetect
}

func backEquipment(s string) model.BackEquipment {
	if s == "elytra" {
		return model.BackElytra
	}
	return model.BackCape
}

func earsType(s string) viewer.EarsTextureType {
	if s == "skin" {
		return viewer.EarsFromSkin
	}
	return viewer.EarsStandalone
}

// buildAnimation creates the animation called name, tuned by ac.
func buildAnimation(name string, ac config.AnimationConfig) (animation.Animation, error) {
	a, err := animation.ByName(name)
	if err != nil {
		return nil, err
	}
	switch a := a.(type) {
	case *animation.Walking:
		a.HeadBobbing = ac.HeadBobbing
	case *animation.Wave:
		a.Arm = animation.NewWave(animation.Arm(ac.WaveArm)).Arm
	case *animation.Crouch:
		a.ShowProgress = ac.CrouchShowProgress
		a.RunOnce = ac.CrouchRunOnce
		if ac.CrouchHitSpeed > 0 {
			a.AddHitAnimation(ac.CrouchHitSpeed)
		}
	}
	st := a.State()
	st.Speed = ac.Speed
	st.Paused = ac.Paused
	return a, nil
}

package viewer

import (
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/model"
)

// replaceTexture uploads img and swaps it into ch. The previous texture is
// released only once the new one exists, so a failed upload leaves the
// channel untouched.
func (v *Viewer) replaceTexture(ch Channel, img *image.RGBA, kind TextureKind) (model.Texture, error) {
	tex, err := v.backend.NewTexture(img, kind)
	if err != nil {
		return nil, err
	}
	v.installTexture(ch, tex, img)
	return tex, nil
}

// installTexture makes tex the texture of ch and releases the one it replaces.
func (v *Viewer) installTexture(ch Channel, tex model.Texture, img *image.RGBA) {
	old := v.textures[ch]
	v.textures[ch] = tex
	if old != nil {
		old.Dispose()
	}
	b := img.Bounds()
	v.log.Debug("texture created", zap.Stringer("channel", ch), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
}

func (v *Viewer) disposeTexture(ch Channel) {
	if tex := v.textures[ch]; tex != nil {
		v.textures[ch] = nil
		tex.Dispose()
		v.log.Debug("texture disposed", zap.Stringer("channel", ch))
	}
}

// load runs apply now for a ready source, or after decoding for a remote
// one. Only the latest request on ch is applied.
func (v *Viewer) load(ch Channel, src *texture.Source, apply func(image.Image) error) *Completion {
	if v.disposed {
		return resolved(ErrDisposed)
	}
	v.seq[ch]++
	if src.IsReady() {
		return resolved(v.applyLoad(ch, src.String(), src.Image(), apply))
	}

	seq := v.seq[ch]
	ref := src.Ref()
	c := newCompletion()
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		img, err := v.decoder.Decode(v.ctx, ref)
		task := func() {
			switch {
			case v.disposed:
				c.resolve(ErrDisposed)
			case v.seq[ch] != seq:
				v.log.Debug("stale load dropped", zap.Stringer("channel", ch), zap.String("source", ref))
				c.resolve(ErrSuperseded)
			case err != nil:
				lerr := &LoadError{Channel: ch, Source: ref, Err: err}
				v.log.Warn("texture load failed", zap.Error(lerr))
				c.resolve(lerr)
			default:
				c.resolve(v.applyLoad(ch, ref, img, apply))
			}
		}
		select {
		case v.tasks <- task:
		case <-v.ctx.Done():
			c.resolve(ErrDisposed)
		}
	}()
	return c
}

func (v *Viewer) applyLoad(ch Channel, ref string, img image.Image, apply func(image.Image) error) error {
	if err := apply(img); err != nil {
		lerr := &LoadError{Channel: ch, Source: ref, Err: err}
		v.log.Warn("texture load failed", zap.Error(lerr))
		return lerr
	}
	return nil
}

// LoadSkin loads a skin; nil hides the skin and releases its texture.
func (v *Viewer) LoadSkin(src *texture.Source, opts SkinLoadOptions) *Completion {
	if src == nil {
		if v.disposed {
			return resolved(ErrDisposed)
		}
		v.seq[ChannelSkin]++
		v.resetSkin()
		return resolved(nil)
	}
	earsSeq := v.seq[ChannelEars]
	if opts.Ears != EarsNone && !v.disposed {
		earsSeq++
		v.seq[ChannelEars] = earsSeq
	}
	return v.load(ChannelSkin, src, func(img image.Image) error {
		return v.applySkin(img, opts, earsSeq)
	})
}

func (v *Viewer) applySkin(img image.Image, opts SkinLoadOptions, earsSeq uint64) error {
	canvas, err := texture.LoadSkinToCanvas(img)
	if err != nil {
		return err
	}
	withEars := opts.Ears != EarsNone && v.seq[ChannelEars] == earsSeq
	var ears *image.RGBA
	if withEars {
		if ears, err = texture.LoadEarsToCanvasFromSkin(img); err != nil {
			return err
		}
	}

	// Both textures exist before either channel changes.
	tex, err := v.backend.NewTexture(canvas, KindPixelArt)
	if err != nil {
		return err
	}
	var earsTex model.Texture
	if withEars {
		if earsTex, err = v.backend.NewTexture(ears, KindPixelArt); err != nil {
			tex.Dispose()
			return err
		}
	}

	v.installTexture(ChannelSkin, tex, canvas)
	v.skinCanvas = canvas
	skin := &v.player.Skin
	skin.Map = tex
	if opts.Model == "" || opts.Model == AutoDetect {
		skin.ModelType = texture.InferModelType(canvas)
	} else {
		skin.ModelType = opts.Model
	}
	if !opts.Hidden {
		skin.Visible = true
	}

	if withEars {
		v.installTexture(ChannelEars, earsTex, ears)
		v.earsCanvas = ears
		v.player.Ears.Map = earsTex
		if opts.Ears == EarsShow {
			v.player.Ears.Visible = true
		}
	}
	return nil
}

func (v *Viewer) resetSkin() {
	v.player.Skin.Visible = false
	v.player.Skin.Map = nil
	v.skinCanvas = nil
	v.disposeTexture(ChannelSkin)
}

// LoadCape loads a cape, which also textures the elytra; nil hides both and
// releases the texture.
func (v *Viewer) LoadCape(src *texture.Source, opts CapeLoadOptions) *Completion {
	if src == nil {
		if v.disposed {
			return resolved(ErrDisposed)
		}
		v.seq[ChannelCape]++
		v.resetCape()
		return resolved(nil)
	}
	return v.load(ChannelCape, src, func(img image.Image) error {
		canvas, err := texture.LoadCapeToCanvas(img)
		if err != nil {
			return err
		}
		tex, err := v.replaceTexture(ChannelCape, canvas, KindPixelArt)
		if err != nil {
			return err
		}
		v.capeCanvas = canvas
		v.player.Cape.Map = tex
		v.player.Elytra.Map = tex
		if !opts.Hidden {
			eq := opts.BackEquipment
			if eq == model.BackNone {
				eq = model.BackCape
			}
			v.player.SetBackEquipment(eq)
		}
		return nil
	})
}

func (v *Viewer) resetCape() {
	v.player.SetBackEquipment(model.BackNone)
	v.player.Cape.Map = nil
	v.player.Elytra.Map = nil
	v.capeCanvas = nil
	v.disposeTexture(ChannelCape)
}

// LoadEars loads ears from a standalone 14x7 image or from a skin; nil hides
// the ears and releases their texture.
func (v *Viewer) LoadEars(src *texture.Source, opts EarsLoadOptions) *Completion {
	if src == nil {
		if v.disposed {
			return resolved(ErrDisposed)
		}
		v.seq[ChannelEars]++
		v.resetEars()
		return resolved(nil)
	}
	return v.load(ChannelEars, src, func(img image.Image) error {
		var (
			canvas *image.RGBA
			err    error
		)
		if opts.TextureType == EarsFromSkin {
			canvas, err = texture.LoadEarsToCanvasFromSkin(img)
		} else {
			canvas, err = texture.LoadEarsToCanvas(img)
		}
		if err != nil {
			return err
		}
		if err := v.setEars(canvas); err != nil {
			return err
		}
		if !opts.Hidden {
			v.player.Ears.Visible = true
		}
		return nil
	})
}

func (v *Viewer) setEars(canvas *image.RGBA) error {
	tex, err := v.replaceTexture(ChannelEars, canvas, KindPixelArt)
	if err != nil {
		return err
	}
	v.earsCanvas = canvas
	v.player.Ears.Map = tex
	return nil
}

func (v *Viewer) resetEars() {
	v.player.Ears.Visible = false
	v.player.Ears.Map = nil
	v.earsCanvas = nil
	v.disposeTexture(ChannelEars)
}

// LoadBackground loads a background image with the given mapping.
func (v *Viewer) LoadBackground(src *texture.Source, mapping Mapping) *Completion {
	if src == nil {
		if v.disposed {
			return resolved(ErrDisposed)
		}
		v.SetBackground(nil)
		return resolved(nil)
	}
	return v.load(ChannelBackground, src, func(img image.Image) error {
		if _, err := v.replaceTexture(ChannelBackground, texture.ToRGBA(img), KindBackground); err != nil {
			return err
		}
		v.bgMapping = mapping
		return nil
	})
}

// LoadPanorama loads an equirectangular panorama as the background.
func (v *Viewer) LoadPanorama(src *texture.Source) *Completion {
	return v.LoadBackground(src, MappingEquirectangular)
}

// SkinCanvas returns the laid out skin, or nil.
func (v *Viewer) SkinCanvas() *image.RGBA { return v.skinCanvas }

// CapeCanvas returns the laid out cape, or nil.
func (v *Viewer) CapeCanvas() *image.RGBA { return v.capeCanvas }

// EarsCanvas returns the laid out ears, or nil.
func (v *Viewer) EarsCanvas() *image.RGBA { return v.earsCanvas }

// Texture returns the texture bound to ch, or nil.
func (v *Viewer) Texture(ch Channel) model.Texture { return v.textures[ch] }

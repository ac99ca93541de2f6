package renderer

import (
	"errors"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/skinview/internal/model"
	"github.com/Faultbox/skinview/internal/viewer"
)

// Texture is a GL texture. The source image is kept so the texture survives
// a context loss.
type Texture struct {
	id   uint32
	img  *image.RGBA
	kind viewer.TextureKind
	b    *Backend
}

var errEmptyImage = errors.New("empty image")

// NewTexture implements viewer.Backend.
func (b *Backend) NewTexture(img *image.RGBA, kind viewer.TextureKind) (model.Texture, error) {
	if b.disposed {
		return nil, viewer.ErrDisposed
	}
	if img == nil || img.Bounds().Empty() {
		return nil, errEmptyImage
	}
	img = tightRGBA(img)
	t := &Texture{img: img, kind: kind, b: b}
	if !b.lost {
		t.id = upload(img, kind)
	}
	b.textures[t] = struct{}{}
	return t, nil
}

// Dispose releases the GL texture. Calling it again is a no-op.
func (t *Texture) Dispose() {
	if t.b == nil {
		return
	}
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	delete(t.b.textures, t)
	t.b = nil
	t.img = nil
}

// Size returns the texture size in pixels.
func (t *Texture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	return t.img.Rect.Dx(), t.img.Rect.Dy()
}

// tightRGBA returns img with a zero origin and no row padding.
func tightRGBA(img *image.RGBA) *image.RGBA {
	r := img.Bounds()
	if r.Min == (image.Point{}) && img.Stride == r.Dx()*4 {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		src := img.PixOffset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], img.Pix[src:src+r.Dx()*4])
	}
	return out
}

func filterFor(kind viewer.TextureKind) int32 {
	if kind == viewer.KindBackground {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func upload(img *image.RGBA, kind viewer.TextureKind) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	filter := filterFor(kind)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	wrap := int32(gl.CLAMP_TO_EDGE)
	if kind == viewer.KindBackground {
		// panoramas wrap around horizontally
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func bindTexture(unit uint32, t *Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

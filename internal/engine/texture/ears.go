package texture

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// LoadEarsToCanvas lays out a standalone 14x7 ears image.
func LoadEarsToCanvas(src image.Image) (*image.RGBA, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || w%14 != 0 || h*2 != w {
		return nil, fmt.Errorf("%w: ears %dx%d", ErrBadSize, w, h)
	}
	return ToRGBA(src), nil
}

// LoadEarsToCanvasFromSkin cuts the ears out of a skin, where they live in
// the 14x7 area at (24, 0).
func LoadEarsToCanvasFromSkin(src image.Image) (*image.RGBA, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (w != h && w != 2*h) || w < 64 || w%64 != 0 {
		return nil, fmt.Errorf("%w: skin %dx%d", ErrBadSize, w, h)
	}
	scale := skinScale(w)
	canvas := image.NewRGBA(image.Rect(0, 0, 14*scale, 7*scale))
	draw.Draw(canvas, canvas.Bounds(), src, b.Min.Add(image.Pt(24*scale, 0)), draw.Src)
	return canvas, nil
}

package texture

import (
	"fmt"
	"image"
)

// capeScale returns the pixel scale of a cape image relative to the 64x32
// layout, along with the canvas size.
func capeScale(w, h int) (image.Rectangle, error) {
	switch {
	case w == 2*h && w >= 64 && w%64 == 0:
		s := w / 64
		return image.Rect(0, 0, 64*s, 32*s), nil
	case w*17 == h*22 && w%22 == 0:
		// legacy 22x17
		s := w / 22
		return image.Rect(0, 0, 64*s, 32*s), nil
	case w*11 == h*23 && w%46 == 0:
		// legacy 46x22
		s := w / 46
		return image.Rect(0, 0, 64*s, 32*s), nil
	}
	return image.Rectangle{}, fmt.Errorf("%w: cape %dx%d", ErrBadSize, w, h)
}

// LoadCapeToCanvas lays out a cape image on the 64x32 cape canvas. The
// canvas also carries the elytra.
func LoadCapeToCanvas(src image.Image) (*image.RGBA, error) {
	b := src.Bounds()
	r, err := capeScale(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	canvas := image.NewRGBA(r)
	copyInto(canvas, src)
	return canvas, nil
}

package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToRGBA copies img into a new RGBA image anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// hasTransparency reports whether any pixel in r is not fully opaque.
func hasTransparency(img *image.RGBA, r image.Rectangle) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0xff {
				return true
			}
		}
	}
	return false
}

// isAreaColor reports whether every pixel in r equals c.
func isAreaColor(img *image.RGBA, r image.Rectangle, c color.RGBA) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != c {
				return false
			}
		}
	}
	return true
}

// copyInto draws src at the canvas origin.
func copyInto(canvas *image.RGBA, src image.Image) {
	b := src.Bounds()
	draw.Draw(canvas, image.Rect(0, 0, b.Dx(), b.Dy()), src, b.Min, draw.Src)
}

func clearRect(img *image.RGBA, r image.Rectangle) {
	draw.Draw(img, r, image.Transparent, image.Point{}, draw.Src)
}

// copyRect copies src to dst inside img, optionally mirrored horizontally.
func copyRect(img *image.RGBA, src image.Rectangle, dst image.Point, flip bool) {
	tmp := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(tmp, tmp.Bounds(), img, src.Min, draw.Src)
	for y := 0; y < src.Dy(); y++ {
		for x := 0; x < src.Dx(); x++ {
			sx := x
			if flip {
				sx = src.Dx() - 1 - x
			}
			img.SetRGBA(dst.X+x, dst.Y+y, tmp.RGBAAt(sx, y))
		}
	}
}

// rect builds a rectangle in texture units multiplied by scale.
func rect(x, y, w, h, scale int) image.Rectangle {
	return image.Rect(x*scale, y*scale, (x+w)*scale, (y+h)*scale)
}

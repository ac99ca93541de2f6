// Package nametag renders the text label shown above the player.
package nametag

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default appearance.
var (
	DefaultMargin     = [4]int{5, 10, 5, 10} // top, right, bottom, left
	DefaultText       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	DefaultBackground = color.RGBA{A: 0x40}
)

// DefaultHeight is the tag height in model units.
const DefaultHeight = 4.0

// OffsetY is where the tag sits above the player's origin.
const OffsetY = 20.0

// Tag is a text label with a background box.
type Tag struct {
	Text       string
	Face       font.Face
	Margin     [4]int
	Color      color.Color
	Background color.Color
	// Height of the tag in model units; width follows the aspect ratio.
	Height float32
}

// New returns a tag with the default style.
func New(text string) *Tag {
	return &Tag{
		Text:       text,
		Face:       basicfont.Face7x13,
		Margin:     DefaultMargin,
		Color:      DefaultText,
		Background: DefaultBackground,
		Height:     DefaultHeight,
	}
}

func (t *Tag) face() font.Face {
	if t.Face == nil {
		return basicfont.Face7x13
	}
	return t.Face
}

// Rasterize draws the tag into a new image sized to fit the text plus margins.
func (t *Tag) Rasterize() *image.RGBA {
	face := t.face()
	bounds, _ := font.BoundString(face, t.Text)
	left := (-bounds.Min.X).Ceil()
	ascent := (-bounds.Min.Y).Ceil()
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if textH == 0 {
		textH = face.Metrics().Height.Ceil()
		ascent = face.Metrics().Ascent.Ceil()
	}

	m := t.Margin
	w := m[3] + textW + m[1]
	h := m[0] + textH + m[2]
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(t.Background), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(t.Color),
		Face: face,
		Dot:  fixed.P(m[3]+left, m[0]+ascent),
	}
	d.DrawString(t.Text)
	return img
}

// Size returns the tag's world width and height for an image of the given
// pixel size.
func (t *Tag) Size(img image.Rectangle) (w, h float32) {
	if img.Dy() == 0 {
		return 0, t.Height
	}
	return float32(img.Dx()) / float32(img.Dy()) * t.Height, t.Height
}

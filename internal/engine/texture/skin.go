package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/Faultbox/skinview/internal/model"
)

// ErrBadSize is returned when an image does not match any known layout.
var ErrBadSize = errors.New("bad texture size")

func skinScale(width int) int { return width / 64 }

// LoadSkinToCanvas lays out a skin image on a square canvas. Legacy 64x32
// skins are converted to the 64x64 layout by mirroring the right limbs into
// the left limb slots.
func LoadSkinToCanvas(src image.Image) (*image.RGBA, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	legacy := false
	switch {
	case w == h:
	case w == 2*h:
		legacy = true
	default:
		return nil, fmt.Errorf("%w: skin %dx%d", ErrBadSize, w, h)
	}
	if w < 64 || w%64 != 0 {
		return nil, fmt.Errorf("%w: skin %dx%d", ErrBadSize, w, h)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, w))
	copyInto(canvas, src)
	if legacy {
		convertLegacySkin(canvas)
		fixOpaqueSkin(canvas, false)
	} else {
		fixOpaqueSkin(canvas, true)
	}
	return canvas, nil
}

// legacyCopies maps right-limb faces of a 64x32 skin to the left-limb slots.
var legacyCopies = [][6]int{
	{4, 16, 4, 4, 20, 48},   // leg top
	{8, 16, 4, 4, 24, 48},   // leg bottom
	{0, 20, 4, 12, 24, 52},  // leg outer
	{4, 20, 4, 12, 20, 52},  // leg front
	{8, 20, 4, 12, 16, 52},  // leg inner
	{12, 20, 4, 12, 28, 52}, // leg back
	{44, 16, 4, 4, 36, 48},  // arm top
	{48, 16, 4, 4, 40, 48},  // arm bottom
	{40, 20, 4, 12, 40, 52}, // arm outer
	{44, 20, 4, 12, 36, 52}, // arm front
	{48, 20, 4, 12, 32, 52}, // arm inner
	{52, 20, 4, 12, 44, 52}, // arm back
}

func convertLegacySkin(canvas *image.RGBA) {
	scale := skinScale(canvas.Bounds().Dx())
	for _, c := range legacyCopies {
		copyRect(canvas, rect(c[0], c[1], c[2], c[3], scale), image.Pt(c[4]*scale, c[5]*scale), true)
	}
}

var (
	hatAreas = [][4]int{
		{40, 0, 8, 8}, {48, 0, 8, 8},
		{32, 8, 8, 8}, {40, 8, 8, 8}, {48, 8, 8, 8}, {56, 8, 8, 8},
	}
	outerLayerAreas = [][4]int{
		{4, 32, 4, 4}, {8, 32, 4, 4}, {0, 36, 16, 12}, // right leg
		{20, 32, 8, 4}, {28, 32, 8, 4}, {16, 36, 24, 12}, // body
		{44, 32, 4, 4}, {48, 32, 4, 4}, {40, 36, 24, 12}, // right arm
		{4, 48, 4, 4}, {8, 48, 4, 4}, {0, 52, 16, 12}, // left leg
		{52, 48, 4, 4}, {56, 48, 4, 4}, {48, 52, 16, 12}, // left arm
	}
)

// fixOpaqueSkin clears the overlay areas of skins without any transparency.
// Old skins often fill the background with black, which would cover the
// inner layer.
func fixOpaqueSkin(canvas *image.RGBA, modern bool) {
	w := canvas.Bounds().Dx()
	checked := image.Rect(0, 0, w, w/2)
	if modern {
		checked = canvas.Bounds()
	}
	if hasTransparency(canvas, checked) {
		return
	}
	scale := skinScale(w)
	for _, a := range hatAreas {
		clearRect(canvas, rect(a[0], a[1], a[2], a[3], scale))
	}
	if !modern {
		return
	}
	for _, a := range outerLayerAreas {
		clearRect(canvas, rect(a[0], a[1], a[2], a[3], scale))
	}
}

// slimPadding lists the columns a slim skin leaves unused next to each arm.
var slimPadding = [][4]int{
	{50, 16, 2, 4},
	{54, 20, 2, 12},
	{42, 48, 2, 4},
	{46, 52, 2, 12},
}

// InferModelType guesses the arm width from a 64x64 skin canvas: a slim skin
// leaves the arm padding transparent, all black or all white.
func InferModelType(canvas *image.RGBA) model.ModelType {
	scale := skinScale(canvas.Bounds().Dx())
	if scale == 0 {
		return model.ModelDefault
	}
	areas := make([]image.Rectangle, len(slimPadding))
	for i, a := range slimPadding {
		areas[i] = rect(a[0], a[1], a[2], a[3], scale)
	}

	for _, r := range areas {
		if hasTransparency(canvas, r) {
			return model.ModelSlim
		}
	}
	for _, c := range []color.RGBA{{A: 0xff}, {R: 0xff, G: 0xff, B: 0xff, A: 0xff}} {
		all := true
		for _, r := range areas {
			if !isAreaColor(canvas, r, c) {
				all = false
				break
			}
		}
		if all {
			return model.ModelSlim
		}
	}
	return model.ModelDefault
}

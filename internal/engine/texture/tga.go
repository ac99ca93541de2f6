package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

var errTGATruncated = errors.New("tga: data truncated")

type tgaReader struct {
	img         *image.RGBA
	width       int
	height      int
	bpp         int
	topToBottom bool
	n           int // pixels written
}

func (r *tgaReader) pixel(data []byte) color.RGBA {
	c := color.RGBA{R: data[2], G: data[1], B: data[0], A: 0xff}
	if r.bpp == 4 {
		c.A = data[3]
	}
	return c
}

func (r *tgaReader) put(c color.RGBA) {
	x, y := r.n%r.width, r.n/r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.n++
}

func (r *tgaReader) done() bool { return r.n >= r.width*r.height }

// DecodeTGA decodes uncompressed and RLE true-colour TGA images with 24 or 32
// bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, errTGATruncated
	}
	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bits := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bits != 24 && bits != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bits)
	}
	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	pix := data[offset:]

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         bits / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(pix) < width*height*r.bpp {
			return nil, errTGATruncated
		}
		for i := 0; !r.done(); i += r.bpp {
			r.put(r.pixel(pix[i:]))
		}
		return r.img, nil
	}

	i := 0
	for !r.done() && i < len(pix) {
		packet := pix[i]
		i++
		count := int(packet&0x7f) + 1
		if packet&0x80 != 0 {
			if i+r.bpp > len(pix) {
				break
			}
			c := r.pixel(pix[i:])
			i += r.bpp
			for ; count > 0 && !r.done(); count-- {
				r.put(c)
			}
			continue
		}
		for ; count > 0 && !r.done(); count-- {
			if i+r.bpp > len(pix) {
				break
			}
			r.put(r.pixel(pix[i:]))
			i += r.bpp
		}
	}
	return r.img, nil
}

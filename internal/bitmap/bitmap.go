// Package bitmap provides CPU-side RGBA pixel buffers for glyph and
// surface storage.
package bitmap

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Image is a rectangular pixel buffer in straight-alpha RGBA format,
// 4 bytes per pixel, rows packed top to bottom.
type Image struct {
	width  int
	height int
	data   []uint8
}

// New creates a zeroed image with the given dimensions.
func New(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// FromRGBA wraps raw RGBA pixel data. The data is copied row by row using
// the supplied stride, so the caller may reuse its buffer afterwards.
func FromRGBA(width, height, stride int, data []uint8) *Image {
	img := New(width, height)
	rowBytes := width * 4
	for y := 0; y < height; y++ {
		src := data[y*stride : y*stride+rowBytes]
		copy(img.data[y*rowBytes:], src)
	}
	return img
}

// Width returns the width of the image in pixels.
func (p *Image) Width() int { return p.width }

// Height returns the height of the image in pixels.
func (p *Image) Height() int { return p.height }

// Data returns the raw pixel data (RGBA, straight alpha).
func (p *Image) Data() []uint8 { return p.data }

// Empty reports whether the image has no pixels.
func (p *Image) Empty() bool { return p.width == 0 || p.height == 0 }

// SetPixel sets one pixel. Out-of-bounds writes are ignored.
func (p *Image) SetPixel(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// Pixel returns one pixel. Out-of-bounds reads return transparent black.
func (p *Image) Pixel(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
}

// Fill sets every pixel to the given color.
func (p *Image) Fill(r, g, b, a uint8) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// CopyFrom copies src into this image with its top-left corner at (x, y).
// Pixels falling outside the destination are clipped.
func (p *Image) CopyFrom(src *Image, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= p.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= p.width {
				continue
			}
			si := (sy*src.width + sx) * 4
			di := (dy*p.width + dx) * 4
			copy(p.data[di:di+4], src.data[si:si+4])
		}
	}
}

// ScaleBy resamples the image by the given factor using bilinear
// interpolation. Factors <= 0 yield an empty image.
func (p *Image) ScaleBy(scale float64) *Image {
	if scale <= 0 {
		return New(0, 0)
	}
	w := int(float64(p.width) * scale)
	h := int(float64(p.height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), p.toNRGBA(), p.bounds(), xdraw.Src, nil)
	return FromRGBA(w, h, dst.Stride, dst.Pix)
}

// ToNRGBA converts the image to a standard library image.NRGBA.
func (p *Image) ToNRGBA() *image.NRGBA {
	return p.toNRGBA()
}

func (p *Image) toNRGBA() *image.NRGBA {
	img := image.NewNRGBA(p.bounds())
	copy(img.Pix, p.data)
	return img
}

func (p *Image) bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

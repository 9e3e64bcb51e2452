package window

import (
	"image"

	"github.com/fanzeyi/wezterm/internal/bitmap"
)

// SoftwareSurface is a CPU-backed PaintContext over a bitmap image.
// Offscreen rendering and the test suite paint into it; a platform layer
// without GPU support can present its pixels directly.
type SoftwareSurface struct {
	img *bitmap.Image
}

// NewSoftwareSurface creates a software paint surface of the given pixel
// size.
func NewSoftwareSurface(width, height int) *SoftwareSurface {
	return &SoftwareSurface{img: bitmap.New(width, height)}
}

// Image returns the backing image.
func (s *SoftwareSurface) Image() *bitmap.Image { return s.img }

// Width implements Surface.
func (s *SoftwareSurface) Width() int { return s.img.Width() }

// Height implements Surface.
func (s *SoftwareSurface) Height() int { return s.img.Height() }

// ClearRect implements PaintContext.
func (s *SoftwareSurface) ClearRect(r image.Rectangle, c Color) {
	r = r.Intersect(image.Rect(0, 0, s.img.Width(), s.img.Height()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.img.SetPixel(x, y, c.R, c.G, c.B, 0xff)
		}
	}
}

// DrawLine implements PaintContext with a DDA walk. Cell decorations are
// horizontal, but arbitrary lines keep the surface generally useful.
func (s *SoftwareSurface) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		s.blendPixel(x0, y0, c.R, c.G, c.B, c.A)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		s.blendPixel(x, y, c.R, c.G, c.B, c.A)
	}
}

// DrawImage implements PaintContext.
func (s *SoftwareSurface) DrawImage(dstX, dstY int, src image.Rectangle, img ImageSource, op CompositeOp) {
	src = src.Intersect(image.Rect(0, 0, img.Width(), img.Height()))
	for sy := src.Min.Y; sy < src.Max.Y; sy++ {
		for sx := src.Min.X; sx < src.Max.X; sx++ {
			r, g, b, a := img.Pixel(sx, sy)
			if a == 0 {
				continue
			}
			if op.Mode == CompositeTintedOver {
				r = mul255(r, op.Tint.R)
				g = mul255(g, op.Tint.G)
				b = mul255(b, op.Tint.B)
			}
			s.blendPixel(dstX+sx-src.Min.X, dstY+sy-src.Min.Y, r, g, b, a)
		}
	}
}

// blendPixel composites one straight-alpha source pixel over the surface.
func (s *SoftwareSurface) blendPixel(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= s.img.Width() || y < 0 || y >= s.img.Height() {
		return
	}
	if a == 0xff {
		s.img.SetPixel(x, y, r, g, b, 0xff)
		return
	}
	dr, dg, db, _ := s.img.Pixel(x, y)
	inv := 0xff - a
	s.img.SetPixel(x, y,
		mul255(r, a)+mul255(dr, inv),
		mul255(g, a)+mul255(dg, inv),
		mul255(b, a)+mul255(db, inv),
		0xff)
}

// mul255 multiplies two 8-bit values as fractions of 255.
func mul255(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

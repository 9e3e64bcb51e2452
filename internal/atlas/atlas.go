// Package atlas packs rasterized glyph bitmaps into a single fixed-size
// texture surface.
//
// An Atlas hands out Sprite handles pointing into its surface. When no free
// rectangle fits an incoming bitmap the allocation fails with
// *OutOfTextureSpaceError carrying the surface size that would have satisfied
// the request; the caller rebuilds the atlas at that size and discards every
// cache that references the old sprites.
package atlas

import (
	"fmt"

	"github.com/fanzeyi/wezterm/internal/bitmap"
)

// padding is the pixel gap kept between allocated sprites so that scaled
// sampling never bleeds into a neighbor.
const padding = 1

// OutOfTextureSpaceError reports that the atlas surface is exhausted.
// RequiredSize is the minimum side length that would have satisfied the
// failed request.
type OutOfTextureSpaceError struct {
	RequiredSize int
}

func (e *OutOfTextureSpaceError) Error() string {
	return fmt.Sprintf("atlas: out of texture space, need %d", e.RequiredSize)
}

// Sprite is an allocated rectangular region of an atlas surface.
// A Sprite is only meaningful for the atlas generation that issued it;
// after Rebuild all previously issued sprites are stale.
type Sprite struct {
	// X, Y, Width, Height locate the sprite on the atlas surface.
	X, Y, Width, Height int

	// Generation identifies the surface the sprite belongs to.
	Generation uint64

	surface *bitmap.Image
}

// Surface returns the atlas surface holding the sprite's pixels.
func (s *Sprite) Surface() *bitmap.Image { return s.surface }

// Atlas owns one square surface and the allocation bookkeeping for it.
// It is not safe for concurrent use; the owning window confines it to the
// GUI thread.
type Atlas struct {
	surface    *bitmap.Image
	size       int
	generation uint64
	allocator  *shelfAllocator
}

// New creates an atlas with a side length of size pixels.
func New(size int) (*Atlas, error) {
	if size <= 0 {
		return nil, fmt.Errorf("atlas: invalid size %d", size)
	}
	return &Atlas{
		surface:   bitmap.New(size, size),
		size:      size,
		allocator: newShelfAllocator(size, size, padding),
	}, nil
}

// Size returns the side length of the current surface.
func (a *Atlas) Size() int { return a.size }

// Generation returns the current surface generation. It increments on
// every Rebuild.
func (a *Atlas) Generation() uint64 { return a.generation }

// Surface returns the backing surface of the current generation.
func (a *Atlas) Surface() *bitmap.Image { return a.surface }

// Utilization returns the fraction of the surface in use.
func (a *Atlas) Utilization() float64 { return a.allocator.utilization() }

// Allocate copies img into free space on the surface and returns a sprite
// for it. Regions issued within one generation never overlap.
//
// On exhaustion it returns *OutOfTextureSpaceError; the caller must Rebuild
// with at least RequiredSize and drop every cached sprite before retrying.
func (a *Atlas) Allocate(img *bitmap.Image) (Sprite, error) {
	w, h := img.Width(), img.Height()
	x, y, ok := a.allocator.allocate(w, h)
	if !ok {
		return Sprite{}, &OutOfTextureSpaceError{RequiredSize: a.requiredSize(w, h)}
	}
	a.surface.CopyFrom(img, x, y)
	return Sprite{
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Generation: a.generation,
		surface:    a.surface,
	}, nil
}

// Rebuild replaces the surface with a fresh one of at least size pixels per
// side. Every previously issued sprite becomes invalid.
func (a *Atlas) Rebuild(size int) error {
	if size < a.size {
		size = a.size
	}
	a.surface = bitmap.New(size, size)
	a.size = size
	a.generation++
	a.allocator.reset(size, size)
	return nil
}

// requiredSize picks the replacement surface size for a failed w×h request:
// double the current size, or more if the request alone would not fit,
// rounded up to a power of two.
func (a *Atlas) requiredSize(w, h int) int {
	need := a.size * 2
	if w+2*padding > need {
		need = w + 2*padding
	}
	if h+2*padding > need {
		need = h + 2*padding
	}
	return nextPowerOfTwo(need)
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

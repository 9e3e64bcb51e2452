package font

import (
	"fmt"
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// RasterizeGlyph implements Font. It renders the glyph's cluster text to
// an alpha mask through x/image/font/opentype and expands it to white
// RGBA; the renderer tints it with the resolved foreground at blit time.
//
// Whitespace and other ink-free glyphs come back with zero dimensions and
// no pixel data.
//
// Rasterization is keyed on the cluster's first rune, not the shaped
// glyph id, because opentype.Face only draws by rune. Multi-rune
// clusters and ligature substitutions therefore render as their first
// character. Rendering by glyph id needs typesetting's outline data and
// a scan converter.
func (f *styledFont) RasterizeGlyph(info GlyphInfo) (*RasterizedGlyph, error) {
	r := firstRune(info.Text)
	if r == 0 {
		return &RasterizedGlyph{}, nil
	}

	face, err := opentype.NewFace(f.otFont, &opentype.FaceOptions{
		Size:    f.pointSize,
		DPI:     f.dpi,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	defer func() {
		_ = face.Close()
	}()

	bounds, _, ok := face.GlyphBounds(r)
	if !ok {
		return nil, fmt.Errorf("%w: no glyph for %q", ErrRasterize, r)
	}

	width := (bounds.Max.X - bounds.Min.X).Ceil()
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if width <= 0 || height <= 0 {
		// Whitespace glyph: positioning metrics only, no bitmap.
		return &RasterizedGlyph{
			BearingX: fixedToFloat(bounds.Min.X),
			BearingY: -fixedToFloat(bounds.Min.Y),
		}, nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	drawer := &xfont.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(r))

	// Expand the alpha mask to white straight-alpha RGBA.
	data := make([]uint8, width*height*4)
	for i, a := range mask.Pix {
		data[i*4+0] = 0xff
		data[i*4+1] = 0xff
		data[i*4+2] = 0xff
		data[i*4+3] = a
	}

	return &RasterizedGlyph{
		Data:     data,
		Width:    width,
		Height:   height,
		BearingX: fixedToFloat(bounds.Min.X),
		BearingY: -fixedToFloat(bounds.Min.Y),
		HasColor: false,
	}, nil
}

// computeMetrics derives the cell metrics from the face at the current
// size. The cell width is the advance of '0', a conventional reference
// for monospace fonts.
func (f *styledFont) computeMetrics() error {
	face, err := opentype.NewFace(f.otFont, &opentype.FaceOptions{
		Size:    f.pointSize,
		DPI:     f.dpi,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return ErrNoMetrics
	}
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	advance, ok := face.GlyphAdvance('0')
	if !ok {
		return ErrNoMetrics
	}

	f.metrics = Metrics{
		CellWidth:  fixedToFloat(advance),
		CellHeight: fixedToFloat(m.Ascent + m.Descent),
		Descender:  -fixedToFloat(m.Descent),
	}
	if f.metrics.CellWidth <= 0 || f.metrics.CellHeight <= 0 {
		return ErrNoMetrics
	}
	return nil
}

// firstRune returns the first rune of s, or 0 when s is empty.
func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// Package font provides the shaping and rasterization capability consumed
// by the renderer: it maps a text style to a font resource, shapes cluster
// text into positioned glyphs, and rasterizes single glyphs to RGBA
// bitmaps with metrics.
//
// Shaping is done with go-text/typesetting's HarfBuzz implementation;
// rasterization with golang.org/x/image/font/opentype.
package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrNoMetrics is returned when font metrics cannot be computed.
	ErrNoMetrics = errors.New("font: failed to compute metrics")

	// ErrRasterize is returned when a glyph cannot be rasterized.
	ErrRasterize = errors.New("font: failed to rasterize glyph")
)

// Style selects a rendered variant of the configured font family.
// It is comparable and is embedded in glyph cache keys.
type Style struct {
	// Family names the font family. Empty selects the default family.
	Family string
	Bold   bool
	Italic bool
}

// Metrics are the font-wide cell metrics at the current scale.
type Metrics struct {
	// CellWidth is the advance of a reference glyph in pixels.
	CellWidth float64

	// CellHeight is ascent plus descent in pixels.
	CellHeight float64

	// Descender is the baseline-relative descent in pixels. It is
	// negative: baseline + (-Descender) is the cell bottom.
	Descender float64
}

// GlyphInfo is one positioned glyph produced by shaping a cluster.
type GlyphInfo struct {
	// Text is the source text of the glyph's grapheme cluster.
	Text string

	// FontIdx is the index of the font (in a fallback list) that
	// provided the glyph.
	FontIdx int

	// GlyphPos is the glyph index within that font.
	GlyphPos uint32

	// Cluster is the byte offset of the glyph's cluster in the shaped
	// text.
	Cluster int

	// NumCells is the number of terminal columns the glyph spans.
	// Always >= 1; ligatures and wide glyphs span more.
	NumCells int

	// XAdvance, YAdvance are the pen advances in pixels.
	XAdvance float64
	YAdvance float64

	// XOffset, YOffset are fine positioning adjustments in pixels.
	XOffset float64
	YOffset float64
}

// RasterizedGlyph is one glyph rendered to a straight-alpha RGBA bitmap.
type RasterizedGlyph struct {
	// Data is RGBA pixel data, Width*Height*4 bytes.
	Data []uint8

	Width  int
	Height int

	// BearingX is the horizontal distance from the pen position to the
	// left edge of the bitmap.
	BearingX float64

	// BearingY is the vertical distance from the baseline up to the top
	// edge of the bitmap.
	BearingY float64

	// HasColor marks color (emoji style) glyphs, which are composited
	// as-is instead of being tinted with the foreground color.
	HasColor bool
}

// Font is one shaped/rasterizable font resource at a fixed scale.
type Font interface {
	// Shape converts cluster text into positioned glyphs.
	Shape(text string) ([]GlyphInfo, error)

	// RasterizeGlyph renders one shaped glyph to a bitmap.
	RasterizeGlyph(info GlyphInfo) (*RasterizedGlyph, error)

	// Metrics returns the cell metrics of the font.
	Metrics() Metrics

	// HasColor reports whether the font carries color glyphs.
	HasColor() bool
}

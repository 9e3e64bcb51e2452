// Package glyphcache memoizes rasterized glyphs and their atlas sprites.
//
// Rasterization is expensive, so each (font, glyph, style) variant is
// rendered at most once per cache generation. A generation ends when the
// bound atlas is rebuilt: sprite coordinates are only meaningful relative
// to one atlas surface, so the cache is always invalidated wholesale via
// Clear, never partially.
package glyphcache

import (
	"github.com/fanzeyi/wezterm/internal/atlas"
	"github.com/fanzeyi/wezterm/internal/bitmap"
	"github.com/fanzeyi/wezterm/internal/font"
)

// Key uniquely identifies one rasterized visual variant of a glyph.
type Key struct {
	FontIdx  int
	GlyphPos uint32
	Style    font.Style
}

// CachedGlyph is one memoized glyph. Immutable after creation.
// Sprite is nil for zero-size (whitespace) glyphs.
type CachedGlyph struct {
	HasColor bool
	XOffset  float64
	YOffset  float64
	BearingX float64
	BearingY float64
	Scale    float64
	Sprite   *atlas.Sprite
}

// RasterizeFunc produces the bitmap for a cache miss.
type RasterizeFunc func() (*font.RasterizedGlyph, error)

// Cache memoizes glyphs against one atlas. It is confined to the GUI
// thread together with its window.
type Cache struct {
	entries    map[Key]*CachedGlyph
	atlas      *atlas.Atlas
	cellWidth  float64
	cellHeight float64

	hits   uint64
	misses uint64
}

// New creates a cache bound to an atlas, with cell metrics used by the
// fit-scale rule.
func New(a *atlas.Atlas, metrics font.Metrics) *Cache {
	return &Cache{
		entries:    make(map[Key]*CachedGlyph),
		atlas:      a,
		cellWidth:  metrics.CellWidth,
		cellHeight: metrics.CellHeight,
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int { return len(c.entries) }

// Stats returns hit and miss counts since creation or the last Clear.
func (c *Cache) Stats() (hits, misses uint64) { return c.hits, c.misses }

// Clear drops every entry. Must be called whenever the bound atlas is
// rebuilt, and when cell metrics change meaning (the owner recreates the
// cache in that case).
func (c *Cache) Clear() {
	c.entries = make(map[Key]*CachedGlyph)
	c.hits = 0
	c.misses = 0
}

// GetOrCreate returns the memoized glyph for key, or rasterizes, scales
// and uploads it on first use. rasterize is invoked at most once per key
// per generation.
//
// Atlas exhaustion propagates unchanged as *atlas.OutOfTextureSpaceError;
// the renderer owns the rebuild-and-retry protocol.
func (c *Cache) GetOrCreate(key Key, info font.GlyphInfo, rasterize RasterizeFunc) (*CachedGlyph, error) {
	if entry, ok := c.entries[key]; ok {
		c.hits++
		return entry, nil
	}
	c.misses++

	raw, err := rasterize()
	if err != nil {
		return nil, err
	}

	entry, err := c.load(info, raw)
	if err != nil {
		return nil, err
	}
	c.entries[key] = entry
	return entry, nil
}

// load applies the fit-scale rule and allocates the bitmap into the atlas.
//
// Fit-scale: glyphs whose advance overflows their cell span are shrunk
// proportionally to fit; otherwise glyphs taller than the cell are shrunk
// to the cell height; otherwise the glyph is used as-is.
func (c *Cache) load(info font.GlyphInfo, raw *font.RasterizedGlyph) (*CachedGlyph, error) {
	numCells := float64(info.NumCells)

	scale := 1.0
	switch {
	case info.XAdvance/numCells > c.cellWidth:
		scale = numCells * (c.cellWidth / info.XAdvance)
	case float64(raw.Height) > c.cellHeight:
		scale = c.cellHeight / float64(raw.Height)
	}

	xOffset, yOffset := info.XOffset, info.YOffset
	if scale != 1.0 {
		xOffset *= scale
		yOffset *= scale
	}

	if raw.Width == 0 || raw.Height == 0 {
		// Whitespace: no bitmap, keep the computed scale.
		return &CachedGlyph{
			HasColor: raw.HasColor,
			XOffset:  xOffset,
			YOffset:  yOffset,
			Scale:    scale,
		}, nil
	}

	img := bitmap.FromRGBA(raw.Width, raw.Height, raw.Width*4, raw.Data)
	bearingX := raw.BearingX * scale
	bearingY := raw.BearingY * scale
	if scale != 1.0 {
		// Resampling bakes the scale into the bitmap, so the stored
		// scale resets to one.
		img = img.ScaleBy(scale)
		scale = 1.0
	}

	sprite, err := c.atlas.Allocate(img)
	if err != nil {
		return nil, err
	}

	return &CachedGlyph{
		HasColor: raw.HasColor,
		XOffset:  xOffset,
		YOffset:  yOffset,
		BearingX: bearingX,
		BearingY: bearingY,
		Scale:    scale,
		Sprite:   &sprite,
	}, nil
}

package font

import (
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/opentype"
)

// DefaultPointSize is the font size used when the caller does not
// specify one.
const DefaultPointSize = 11.0

// baseDPI is the nominal display density; dpiScale multiplies it.
const baseDPI = 96.0

// Configuration owns the loaded font data and the current scaling state
// (font-scale factor and DPI scale). Fonts handed out by CachedFont are
// valid until the next ChangeScaling call, which drops them; callers
// re-request fonts per frame, so no explicit invalidation protocol is
// needed beyond the renderer's own cache clear.
//
// Configuration is confined to the GUI thread.
type Configuration struct {
	data      []byte
	pointSize float64
	fontScale float64
	dpiScale  float64

	gtFont *gtfont.Font
	otFont *opentype.Font

	fonts map[Style]*styledFont
}

// NewConfiguration parses TTF data and prepares fonts at pointSize
// (points at 96 dpi). Pass pointSize <= 0 for the default size.
func NewConfiguration(ttf []byte, pointSize float64) (*Configuration, error) {
	if len(ttf) == 0 {
		return nil, ErrEmptyFontData
	}
	if pointSize <= 0 {
		pointSize = DefaultPointSize
	}

	gtFace, err := gtfont.ParseTTF(bytesReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("font: parsing for shaping: %w", err)
	}
	otFont, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("font: parsing for rasterization: %w", err)
	}

	return &Configuration{
		data:      ttf,
		pointSize: pointSize,
		fontScale: 1.0,
		dpiScale:  1.0,
		gtFont:    gtFace.Font,
		otFont:    otFont,
		fonts:     make(map[Style]*styledFont),
	}, nil
}

// FontScale returns the current font-scale factor.
func (c *Configuration) FontScale() float64 { return c.fontScale }

// DPI returns the current effective dots per inch.
func (c *Configuration) DPI() float64 { return baseDPI * c.dpiScale }

// ChangeScaling updates the font-scale factor and DPI scale and drops all
// cached fonts so they are rebuilt at the new size. The caller is
// responsible for clearing any glyph cache keyed on the old scale.
func (c *Configuration) ChangeScaling(fontScale, dpiScale float64) {
	if fontScale <= 0 {
		fontScale = 1.0
	}
	if dpiScale <= 0 {
		dpiScale = 1.0
	}
	c.fontScale = fontScale
	c.dpiScale = dpiScale
	c.fonts = make(map[Style]*styledFont)
}

// CachedFont returns the font for a style at the current scale, creating
// it on first use.
func (c *Configuration) CachedFont(style Style) (Font, error) {
	if f, ok := c.fonts[style]; ok {
		return f, nil
	}
	f, err := c.newStyledFont(style)
	if err != nil {
		return nil, err
	}
	c.fonts[style] = f
	return f, nil
}

// DefaultFontMetrics returns the metrics of the default style at the
// current scale.
func (c *Configuration) DefaultFontMetrics() (Metrics, error) {
	f, err := c.CachedFont(Style{})
	if err != nil {
		return Metrics{}, err
	}
	return f.Metrics(), nil
}

// ppem returns the pixel size of the configured point size at the current
// scale.
func (c *Configuration) ppem() float64 {
	return c.pointSize * c.fontScale * c.DPI() / 72.0
}

func (c *Configuration) newStyledFont(style Style) (*styledFont, error) {
	f := &styledFont{
		style:     style,
		gtFont:    c.gtFont,
		gtFace:    gtfont.NewFace(c.gtFont),
		otFont:    c.otFont,
		pointSize: c.pointSize * c.fontScale,
		dpi:       c.DPI(),
		ppem:      c.ppem(),
		shaper:    &shaping.HarfbuzzShaper{},
	}
	if err := f.computeMetrics(); err != nil {
		return nil, err
	}
	return f, nil
}

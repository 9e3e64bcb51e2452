package term

import colorful "github.com/lucasb-eyer/go-colorful"

// Palette holds every color the renderer can resolve: the defaults, the
// cursor and selection overrides, and the 256 indexed slots.
type Palette struct {
	Foreground  RGBColor
	Background  RGBColor
	CursorFg    RGBColor
	CursorBg    RGBColor
	SelectionFg RGBColor
	SelectionBg RGBColor
	Colors      [256]RGBColor
}

// ResolveFg resolves a foreground color attribute against the palette.
// Palette brightening for bold cells is applied by the renderer before
// calling this, not here.
func (p *Palette) ResolveFg(attr ColorAttribute) RGBColor {
	return p.resolve(attr, p.Foreground)
}

// ResolveBg resolves a background color attribute against the palette.
func (p *Palette) ResolveBg(attr ColorAttribute) RGBColor {
	return p.resolve(attr, p.Background)
}

func (p *Palette) resolve(attr ColorAttribute, def RGBColor) RGBColor {
	if idx, ok := attr.PaletteIdx(); ok {
		return p.Colors[idx]
	}
	if attr.kind == colorAttrTrueColor {
		return attr.rgb
	}
	return def
}

// ansi16 is the classic xterm rendition of the 16 base colors.
var ansi16 = [16]RGBColor{
	{0x00, 0x00, 0x00}, // black
	{0xcc, 0x55, 0x55}, // red
	{0x55, 0xcc, 0x55}, // green
	{0xcd, 0xcd, 0x55}, // yellow
	{0x54, 0x55, 0xcb}, // blue
	{0xcc, 0x55, 0xcc}, // magenta
	{0x7a, 0xca, 0xca}, // cyan
	{0xcc, 0xcc, 0xcc}, // white
	{0x55, 0x55, 0x55}, // bright black
	{0xff, 0x55, 0x55}, // bright red
	{0x55, 0xff, 0x55}, // bright green
	{0xff, 0xff, 0x55}, // bright yellow
	{0x55, 0x55, 0xff}, // bright blue
	{0xff, 0x55, 0xff}, // bright magenta
	{0x55, 0xff, 0xff}, // bright cyan
	{0xff, 0xff, 0xff}, // bright white
}

// DefaultPalette builds the default palette: the 16 ANSI colors, the
// 6×6×6 color cube, and the 24-step gray ramp.
func DefaultPalette() *Palette {
	p := &Palette{
		Foreground:  ansi16[7],
		Background:  ansi16[0],
		CursorBg:    RGBColor{0x52, 0xad, 0x70},
		CursorFg:    ansi16[0],
		SelectionBg: RGBColor{0xff, 0xfa, 0xcd},
		SelectionFg: ansi16[0],
	}

	copy(p.Colors[:16], ansi16[:])

	// 6x6x6 color cube (indices 16..231). Channel levels follow the xterm
	// ramp: 0 then 95 + 40*(n-1).
	level := func(n int) float64 {
		if n == 0 {
			return 0
		}
		return float64(95+40*(n-1)) / 255
	}
	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				c := colorful.Color{R: level(r), G: level(g), B: level(b)}
				cr, cg, cb := c.Clamped().RGB255()
				p.Colors[idx] = RGBColor{cr, cg, cb}
				idx++
			}
		}
	}

	// Gray ramp (indices 232..255), 24 even steps between black and white.
	black := colorful.Color{}
	white := colorful.Color{R: 1, G: 1, B: 1}
	for i := 0; i < 24; i++ {
		c := black.BlendRgb(white, (float64(i)*10+8)/255)
		cr, cg, cb := c.Clamped().RGB255()
		p.Colors[idx] = RGBColor{cr, cg, cb}
		idx++
	}

	return p
}

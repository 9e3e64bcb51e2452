package term

// RGBColor is a fully resolved 24-bit color.
type RGBColor struct {
	R, G, B uint8
}

// colorAttrKind discriminates the ColorAttribute variants.
type colorAttrKind uint8

const (
	colorAttrDefault colorAttrKind = iota
	colorAttrPaletteIndex
	colorAttrTrueColor
)

// ColorAttribute is a cell color as specified by the terminal: either the
// default color, an indexed palette entry, or a direct 24-bit color.
// The zero value is the default color.
type ColorAttribute struct {
	kind  colorAttrKind
	index uint8
	rgb   RGBColor
}

// DefaultColor returns the "use the palette default" attribute.
func DefaultColor() ColorAttribute {
	return ColorAttribute{}
}

// PaletteIndex returns an attribute referencing one of the 256 palette slots.
func PaletteIndex(idx uint8) ColorAttribute {
	return ColorAttribute{kind: colorAttrPaletteIndex, index: idx}
}

// TrueColor returns a direct 24-bit color attribute.
func TrueColor(r, g, b uint8) ColorAttribute {
	return ColorAttribute{kind: colorAttrTrueColor, rgb: RGBColor{R: r, G: g, B: b}}
}

// IsDefault reports whether the attribute is the default color.
func (c ColorAttribute) IsDefault() bool {
	return c.kind == colorAttrDefault
}

// PaletteIdx returns the palette index and true when the attribute is an
// indexed color.
func (c ColorAttribute) PaletteIdx() (uint8, bool) {
	return c.index, c.kind == colorAttrPaletteIndex
}

package term

// Intensity is the weight attribute of a cell.
type Intensity uint8

const (
	// IntensityNormal is the default weight.
	IntensityNormal Intensity = iota
	// IntensityBold selects the bold variant and triggers palette
	// brightening for low indexed foreground colors.
	IntensityBold
	// IntensityHalf selects the faint variant.
	IntensityHalf
)

// Underline is the underline attribute of a cell.
type Underline uint8

const (
	// UnderlineNone draws no underline.
	UnderlineNone Underline = iota
	// UnderlineSingle draws one line at the descender+1 row.
	UnderlineSingle
	// UnderlineDouble draws lines at the descender and descender+2 rows.
	UnderlineDouble
)

// Hyperlink is an OSC 8 style explicit hyperlink attached to cells.
type Hyperlink struct {
	// URI is the link target.
	URI string
	// ID groups cells belonging to one logical link.
	ID string
}

// Equal reports whether two hyperlinks refer to the same logical link.
func (h *Hyperlink) Equal(other *Hyperlink) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.URI == other.URI && h.ID == other.ID
}

// CellAttributes is the styling state of one cell.
type CellAttributes struct {
	Foreground    ColorAttribute
	Background    ColorAttribute
	Intensity     Intensity
	Underline     Underline
	Italic        bool
	Strikethrough bool
	Reverse       bool
	Hyperlink     *Hyperlink
}

// SameStyle reports whether two attribute sets render identically, which is
// the clustering criterion for shaping runs.
func (a *CellAttributes) SameStyle(other *CellAttributes) bool {
	return a.Foreground == other.Foreground &&
		a.Background == other.Background &&
		a.Intensity == other.Intensity &&
		a.Underline == other.Underline &&
		a.Italic == other.Italic &&
		a.Strikethrough == other.Strikethrough &&
		a.Reverse == other.Reverse &&
		a.Hyperlink.Equal(other.Hyperlink)
}

// Cell is one grid position: its text (a full grapheme cluster) and
// attributes. Wide graphemes occupy Width columns; the columns after the
// first hold continuation cells with empty text and Width 0.
type Cell struct {
	Text  string
	Width int
	Attrs CellAttributes
}

// IsContinuation reports whether the cell is the trailing part of a wide
// grapheme in the preceding cell.
func (c *Cell) IsContinuation() bool {
	return c.Width == 0 && c.Text == ""
}

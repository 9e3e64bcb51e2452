package term

// CursorPosition is the cursor location in grid coordinates.
type CursorPosition struct {
	X int
	Y int
}

// Range is a half-open column interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Contains reports whether idx falls inside the range.
func (r Range) Contains(idx int) bool {
	return idx >= r.Start && idx < r.End
}

// Empty reports whether the range covers no columns.
func (r Range) Empty() bool { return r.End <= r.Start }

// DirtyLine describes one stale row pulled from the terminal model.
type DirtyLine struct {
	// Index is the physical row number.
	Index int
	// Line is the row content, read once per frame.
	Line *Line
	// Selection is the selected column range on this row.
	Selection Range
}

// Renderable is the read surface of the terminal model consumed by the
// renderer. The model is owned and mutated elsewhere; the renderer only
// takes point-in-time dirty snapshots through this interface and must not
// assume consistency across the whole grid within one frame.
type Renderable interface {
	// PhysicalDimensions returns the grid size in rows and columns.
	PhysicalDimensions() (rows, cols int)

	// DirtyLines returns a snapshot of the rows that need repainting.
	DirtyLines() []DirtyLine

	// CleanDirtyLines marks every reported row clean.
	CleanDirtyLines()

	// HasDirtyLines reports whether any row needs repainting.
	HasDirtyLines() bool

	// MakeAllLinesDirty marks the whole grid stale. The renderer uses it
	// when the glyph cache is invalidated and every row must be redrawn.
	MakeAllLinesDirty()

	// CursorPosition returns the cursor location.
	CursorPosition() CursorPosition

	// CurrentHighlight returns the hyperlink under the mouse, if any.
	CurrentHighlight() *Hyperlink

	// Resize informs the model of a new grid and pixel size.
	Resize(rows, cols, pixelWidth, pixelHeight int)
}

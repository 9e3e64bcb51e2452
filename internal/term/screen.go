package term

// Screen is a plain grid implementation of Renderable. It holds lines,
// per-row dirty flags, a cursor and a selection, and nothing else — the
// escape-sequence state machine that would normally feed it lives outside
// this module.
//
// Screen methods are not synchronized; the owner serializes access.
type Screen struct {
	rows, cols  int
	pixelWidth  int
	pixelHeight int
	lines       []*Line
	dirty       []bool
	cursor      CursorPosition
	selection   Range
	selRow      int
	highlight   *Hyperlink
}

// NewScreen creates a blank rows×cols screen with every line dirty.
func NewScreen(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols}
	s.lines = make([]*Line, rows)
	s.dirty = make([]bool, rows)
	for i := range s.lines {
		s.lines[i] = NewLine(cols)
		s.dirty[i] = true
	}
	return s
}

// SetLine replaces row idx and marks it dirty.
func (s *Screen) SetLine(idx int, line *Line) {
	if idx < 0 || idx >= s.rows {
		return
	}
	s.lines[idx] = line
	s.dirty[idx] = true
}

// Line returns row idx, or nil when out of range.
func (s *Screen) Line(idx int) *Line {
	if idx < 0 || idx >= s.rows {
		return nil
	}
	return s.lines[idx]
}

// SetCursor moves the cursor and marks the affected rows dirty.
func (s *Screen) SetCursor(x, y int) {
	if s.cursor.Y >= 0 && s.cursor.Y < s.rows {
		s.dirty[s.cursor.Y] = true
	}
	s.cursor = CursorPosition{X: x, Y: y}
	if y >= 0 && y < s.rows {
		s.dirty[y] = true
	}
}

// SetSelection sets the selected column range on one row.
func (s *Screen) SetSelection(row int, sel Range) {
	if s.selRow >= 0 && s.selRow < s.rows {
		s.dirty[s.selRow] = true
	}
	s.selRow = row
	s.selection = sel
	if row >= 0 && row < s.rows {
		s.dirty[row] = true
	}
}

// SetHighlight sets the hovered hyperlink.
func (s *Screen) SetHighlight(link *Hyperlink) {
	s.highlight = link
}

// PhysicalDimensions implements Renderable.
func (s *Screen) PhysicalDimensions() (rows, cols int) {
	return s.rows, s.cols
}

// DirtyLines implements Renderable.
func (s *Screen) DirtyLines() []DirtyLine {
	var out []DirtyLine
	for i, d := range s.dirty {
		if !d {
			continue
		}
		dl := DirtyLine{Index: i, Line: s.lines[i]}
		if i == s.selRow {
			dl.Selection = s.selection
		}
		out = append(out, dl)
	}
	return out
}

// CleanDirtyLines implements Renderable.
func (s *Screen) CleanDirtyLines() {
	for i := range s.dirty {
		s.dirty[i] = false
	}
}

// HasDirtyLines implements Renderable.
func (s *Screen) HasDirtyLines() bool {
	for _, d := range s.dirty {
		if d {
			return true
		}
	}
	return false
}

// MakeAllLinesDirty implements Renderable.
func (s *Screen) MakeAllLinesDirty() {
	for i := range s.dirty {
		s.dirty[i] = true
	}
}

// CursorPosition implements Renderable.
func (s *Screen) CursorPosition() CursorPosition { return s.cursor }

// CurrentHighlight implements Renderable.
func (s *Screen) CurrentHighlight() *Hyperlink { return s.highlight }

// Resize implements Renderable. Content is clipped or padded with blank
// lines; every surviving row is marked dirty.
func (s *Screen) Resize(rows, cols, pixelWidth, pixelHeight int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	lines := make([]*Line, rows)
	dirty := make([]bool, rows)
	for i := range lines {
		if i < len(s.lines) && s.lines[i].Len() == cols {
			lines[i] = s.lines[i]
		} else {
			lines[i] = NewLine(cols)
		}
		dirty[i] = true
	}
	s.rows, s.cols = rows, cols
	s.pixelWidth, s.pixelHeight = pixelWidth, pixelHeight
	s.lines, s.dirty = lines, dirty
}

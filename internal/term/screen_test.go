package term

import "testing"

func TestNewScreenStartsFullyDirty(t *testing.T) {
	s := NewScreen(4, 10)
	if got := len(s.DirtyLines()); got != 4 {
		t.Fatalf("dirty lines = %d, want 4", got)
	}
	s.CleanDirtyLines()
	if s.HasDirtyLines() {
		t.Fatal("still dirty after CleanDirtyLines")
	}
}

func TestSetLineMarksRowDirty(t *testing.T) {
	s := NewScreen(4, 10)
	s.CleanDirtyLines()

	s.SetLine(2, LineFromText("hi", CellAttributes{}, 10))
	dirty := s.DirtyLines()
	if len(dirty) != 1 || dirty[0].Index != 2 {
		t.Fatalf("dirty = %v, want only row 2", dirty)
	}
}

func TestSetCursorDirtiesOldAndNewRows(t *testing.T) {
	s := NewScreen(4, 10)
	s.SetCursor(0, 1)
	s.CleanDirtyLines()

	s.SetCursor(3, 2)
	dirty := s.DirtyLines()
	if len(dirty) != 2 || dirty[0].Index != 1 || dirty[1].Index != 2 {
		t.Fatalf("dirty rows = %v, want 1 and 2", dirty)
	}
}

func TestSelectionReportedOnItsRow(t *testing.T) {
	s := NewScreen(4, 10)
	s.SetSelection(1, Range{Start: 2, End: 6})

	for _, dl := range s.DirtyLines() {
		if dl.Index == 1 {
			if dl.Selection != (Range{Start: 2, End: 6}) {
				t.Fatalf("row 1 selection = %v", dl.Selection)
			}
		} else if !dl.Selection.Empty() {
			t.Fatalf("row %d carries a selection", dl.Index)
		}
	}
}

func TestMakeAllLinesDirty(t *testing.T) {
	s := NewScreen(3, 5)
	s.CleanDirtyLines()
	s.MakeAllLinesDirty()
	if got := len(s.DirtyLines()); got != 3 {
		t.Fatalf("dirty lines = %d, want 3", got)
	}
}

func TestResizeKeepsMatchingRows(t *testing.T) {
	s := NewScreen(2, 5)
	s.SetLine(0, LineFromText("abcde", CellAttributes{}, 5))

	s.Resize(3, 5, 40, 48)
	rows, cols := s.PhysicalDimensions()
	if rows != 3 || cols != 5 {
		t.Fatalf("dimensions = %dx%d, want 3x5", rows, cols)
	}
	if got := s.Line(0).Cell(0).Text; got != "a" {
		t.Fatalf("row 0 lost its content: %q", got)
	}
	if got := len(s.DirtyLines()); got != 3 {
		t.Fatalf("dirty lines after resize = %d, want all 3", got)
	}

	// A width change drops the old content.
	s.Resize(3, 8, 64, 48)
	if got := s.Line(0).Cell(0).Text; got != " " {
		t.Fatalf("row 0 kept stale content after width change: %q", got)
	}
}

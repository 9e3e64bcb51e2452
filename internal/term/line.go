package term

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Line is one terminal row.
type Line struct {
	cells []Cell
}

// NewLine creates a line of cols blank cells with default attributes.
func NewLine(cols int) *Line {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i] = Cell{Text: " ", Width: 1}
	}
	return &Line{cells: cells}
}

// LineFromText builds a line from a string, segmenting it into grapheme
// clusters and assigning each its display width. Wide graphemes are
// followed by continuation cells. The line is padded with blanks to cols;
// text beyond cols is truncated.
func LineFromText(text string, attrs CellAttributes, cols int) *Line {
	line := NewLine(cols)
	for i := range line.cells {
		line.cells[i].Attrs = attrs
	}

	col := 0
	state := -1
	remaining := text
	for len(remaining) > 0 && col < cols {
		var cluster string
		cluster, remaining, _, state = uniseg.StepString(remaining, state)
		width := runewidth.StringWidth(cluster)
		if width < 1 {
			// Zero-width cluster (combining mark on its own); attach
			// to the previous cell if there is one.
			if col > 0 {
				line.cells[col-1].Text += cluster
			}
			continue
		}
		if col+width > cols {
			break
		}
		line.cells[col] = Cell{Text: cluster, Width: width, Attrs: attrs}
		for i := 1; i < width; i++ {
			line.cells[col+i] = Cell{Attrs: attrs}
		}
		col += width
	}
	return line
}

// Len returns the number of columns in the line.
func (l *Line) Len() int { return len(l.cells) }

// Cell returns the cell at column idx, or nil when out of range.
func (l *Line) Cell(idx int) *Cell {
	if idx < 0 || idx >= len(l.cells) {
		return nil
	}
	return &l.cells[idx]
}

// SetCell replaces the cell at column idx.
func (l *Line) SetCell(idx int, cell Cell) {
	if idx < 0 || idx >= len(l.cells) {
		return
	}
	l.cells[idx] = cell
}

// CellCluster is a maximal run of adjacent cells with identical attributes.
// It is the unit handed to text shaping.
type CellCluster struct {
	// Attrs is the attribute set shared by every cell of the cluster.
	Attrs CellAttributes

	// Text is the concatenated cell text of the cluster.
	Text string

	// FirstCellIdx is the column of the first cell in the cluster.
	FirstCellIdx int

	// ByteToCellIdx maps each byte offset of Text to the column of the
	// cell that produced it. Shaped glyphs carry byte cluster offsets;
	// this mapping turns them back into columns.
	ByteToCellIdx []int
}

// Cluster partitions the line into maximal attribute runs.
// Continuation cells of wide graphemes are folded into the cluster of
// their leading cell and produce no text of their own.
func (l *Line) Cluster() []CellCluster {
	var clusters []CellCluster
	var cur *CellCluster

	for idx := range l.cells {
		cell := &l.cells[idx]
		if cell.IsContinuation() {
			continue
		}
		if cur == nil || !cur.Attrs.SameStyle(&cell.Attrs) {
			clusters = append(clusters, CellCluster{
				Attrs:        cell.Attrs,
				FirstCellIdx: idx,
			})
			cur = &clusters[len(clusters)-1]
		}
		for i := 0; i < len(cell.Text); i++ {
			cur.ByteToCellIdx = append(cur.ByteToCellIdx, idx)
		}
		cur.Text += cell.Text
	}
	return clusters
}

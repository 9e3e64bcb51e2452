package atlas

// shelfAllocator packs rectangles into horizontal "shelves".
// Each shelf has a fixed height (the tallest item placed so far).
// New items are placed left-to-right on a shelf until no space remains,
// then a new shelf is started below.
type shelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

// shelf is a horizontal strip of the atlas surface.
type shelf struct {
	y      int // y position of the shelf top
	height int // shelf height (tallest item so far)
	x      int // next free x position
}

func newShelfAllocator(width, height, padding int) *shelfAllocator {
	return &shelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a w×h rectangle.
// Returns the position and true, or -1, -1, false if nothing fits.
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + a.padding
	paddedH := h + a.padding

	for i := range a.shelves {
		shelf := &a.shelves[i]

		if shelf.x+paddedW > a.width {
			continue
		}

		if h > shelf.height {
			// Item is taller than the shelf. The last shelf may grow
			// downward if there is still room below it.
			if i == len(a.shelves)-1 && shelf.y+paddedH <= a.height {
				shelf.height = h
				x, y = shelf.x, shelf.y
				shelf.x += paddedW
				a.usedArea += w * h
				return x, y, true
			}
			continue
		}

		x, y = shelf.x, shelf.y
		shelf.x += paddedW
		a.usedArea += w * h
		return x, y, true
	}

	// No existing shelf works; open a new one below the last.
	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height + a.padding
	}
	if newY+paddedH > a.height {
		return -1, -1, false
	}

	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: paddedW})
	a.usedArea += w * h
	return 0, newY, true
}

// reset clears all allocations, keeping shelf capacity for reuse.
func (a *shelfAllocator) reset(width, height int) {
	a.width = width
	a.height = height
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// utilization returns the fraction of the surface area in use (0.0 to 1.0).
func (a *shelfAllocator) utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}

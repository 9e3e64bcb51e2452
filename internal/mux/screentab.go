package mux

import (
	"io"

	"github.com/google/uuid"

	"github.com/fanzeyi/wezterm/internal/term"
)

// ScreenTab is a tab over an in-process term.Screen, with input captured
// into a writer. Offscreen rendering and tests use it in place of a
// PTY-backed tab.
type ScreenTab struct {
	id       TabID
	title    string
	domainID DomainID
	screen   *term.Screen
	input    io.Writer
	palette  *term.Palette
}

// NewScreenTab creates a tab over screen. Input bytes are written to
// input; pass io.Discard when they are of no interest.
func NewScreenTab(title string, screen *term.Screen, input io.Writer) *ScreenTab {
	return &ScreenTab{
		id:      uuid.New(),
		title:   title,
		screen:  screen,
		input:   input,
		palette: term.DefaultPalette(),
	}
}

// SetPalette replaces the tab's palette.
func (t *ScreenTab) SetPalette(p *term.Palette) { t.palette = p }

// Screen returns the underlying screen for direct mutation.
func (t *ScreenTab) Screen() *term.Screen { return t.screen }

// ID implements Tab.
func (t *ScreenTab) ID() TabID { return t.id }

// Title implements Tab.
func (t *ScreenTab) Title() string { return t.title }

// Renderer implements Tab.
func (t *ScreenTab) Renderer() term.Renderable { return t.screen }

// Writer implements Tab.
func (t *ScreenTab) Writer() io.Writer { return t.input }

// Resize implements Tab.
func (t *ScreenTab) Resize(size PtySize) error {
	t.screen.Resize(int(size.Rows), int(size.Cols), int(size.PixelWidth), int(size.PixelHeight))
	return nil
}

// Palette implements Tab.
func (t *ScreenTab) Palette() *term.Palette { return t.palette }

// DomainID implements Tab.
func (t *ScreenTab) DomainID() DomainID { return t.domainID }

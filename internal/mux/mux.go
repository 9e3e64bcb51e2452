// Package mux is the session layer: it tracks windows, the tabs attached
// to them, and the domains tabs are spawned in. The renderer core holds a
// reference to the Mux but never owns tabs or their transports.
//
// The Mux is confined to the GUI thread; only tab transports and terminal
// models see traffic from other goroutines, under their own
// synchronization.
package mux

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/fanzeyi/wezterm/internal/term"
)

// WindowID identifies a GUI window within the session.
type WindowID int

// TabID identifies a tab for its whole lifetime.
type TabID = uuid.UUID

// DomainID identifies a spawn domain.
type DomainID int

// PtySize is the terminal size handed to transports on spawn and resize.
type PtySize struct {
	Rows        uint16
	Cols        uint16
	PixelWidth  uint16
	PixelHeight uint16
}

// Tab is one terminal session: a renderable model plus its input
// transport.
type Tab interface {
	ID() TabID
	Title() string

	// Renderer returns the tab's terminal model read surface.
	Renderer() term.Renderable

	// Writer returns the input side of the tab's transport. Writes are
	// fire-and-forget; backpressure is the transport's concern.
	Writer() io.Writer

	// Resize propagates a new size to the transport and model.
	Resize(size PtySize) error

	// Palette returns the tab's color palette.
	Palette() *term.Palette

	// DomainID names the domain the tab was spawned in.
	DomainID() DomainID
}

// Domain spawns tabs.
type Domain interface {
	ID() DomainID
	Name() string
	Spawn(size PtySize, command []string, windowID WindowID) (Tab, error)
}

// Errors returned by session lookups.
var (
	ErrNoSuchWindow = errors.New("mux: no such window")
	ErrNoSuchDomain = errors.New("mux: no such domain")
	ErrNoTabs       = errors.New("mux: window has no tabs")
)

// Window is the ordered tab list of one GUI window.
type Window struct {
	id     WindowID
	tabs   []Tab
	active int
}

// ID returns the window identifier.
func (w *Window) ID() WindowID { return w.id }

// Len returns the number of tabs.
func (w *Window) Len() int { return len(w.tabs) }

// IsEmpty reports whether the window has no tabs.
func (w *Window) IsEmpty() bool { return len(w.tabs) == 0 }

// Get returns the tab at idx, or nil when out of range.
func (w *Window) Get(idx int) Tab {
	if idx < 0 || idx >= len(w.tabs) {
		return nil
	}
	return w.tabs[idx]
}

// GetActive returns the active tab, or nil for an empty window.
func (w *Window) GetActive() Tab { return w.Get(w.active) }

// GetActiveIdx returns the index of the active tab.
func (w *Window) GetActiveIdx() int { return w.active }

// SetActive makes the tab at idx active.
func (w *Window) SetActive(idx int) {
	if idx >= 0 && idx < len(w.tabs) {
		w.active = idx
	}
}

// Push appends a tab.
func (w *Window) Push(tab Tab) { w.tabs = append(w.tabs, tab) }

// RemoveByID removes the tab with the given id, keeping the active index
// on a valid tab when any remain.
func (w *Window) RemoveByID(id TabID) bool {
	for i, tab := range w.tabs {
		if tab.ID() == id {
			w.tabs = append(w.tabs[:i], w.tabs[i+1:]...)
			if w.active >= len(w.tabs) && w.active > 0 {
				w.active = len(w.tabs) - 1
			}
			return true
		}
	}
	return false
}

// Tabs returns the tab list in order.
func (w *Window) Tabs() []Tab { return w.tabs }

// Mux is the session registry.
type Mux struct {
	windows       map[WindowID]*Window
	tabs          map[TabID]Tab
	domains       map[DomainID]Domain
	domainsByName map[string]Domain
	defaultDomain Domain
	nextWindow    WindowID
}

// New creates an empty session.
func New() *Mux {
	return &Mux{
		windows:       make(map[WindowID]*Window),
		tabs:          make(map[TabID]Tab),
		domains:       make(map[DomainID]Domain),
		domainsByName: make(map[string]Domain),
	}
}

// AddDomain registers a domain; the first registered domain becomes the
// default.
func (m *Mux) AddDomain(d Domain) {
	m.domains[d.ID()] = d
	m.domainsByName[d.Name()] = d
	if m.defaultDomain == nil {
		m.defaultDomain = d
	}
}

// DefaultDomain returns the default spawn domain, or nil when none is
// registered.
func (m *Mux) DefaultDomain() Domain { return m.defaultDomain }

// GetDomain looks a domain up by id.
func (m *Mux) GetDomain(id DomainID) (Domain, error) {
	d, ok := m.domains[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNoSuchDomain, id)
	}
	return d, nil
}

// GetDomainByName looks a domain up by name.
func (m *Mux) GetDomainByName(name string) (Domain, error) {
	d, ok := m.domainsByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchDomain, name)
	}
	return d, nil
}

// NewEmptyWindow allocates a window with no tabs.
func (m *Mux) NewEmptyWindow() WindowID {
	id := m.nextWindow
	m.nextWindow++
	m.windows[id] = &Window{id: id}
	return id
}

// GetWindow returns the window for id, or nil.
func (m *Mux) GetWindow(id WindowID) *Window { return m.windows[id] }

// AddTab attaches a tab to a window and registers it with the session.
func (m *Mux) AddTab(windowID WindowID, tab Tab) error {
	win := m.windows[windowID]
	if win == nil {
		return fmt.Errorf("%w: id %d", ErrNoSuchWindow, windowID)
	}
	win.Push(tab)
	m.tabs[tab.ID()] = tab
	return nil
}

// GetActiveTabForWindow returns the active tab of a window, or nil when
// the window is missing or empty.
func (m *Mux) GetActiveTabForWindow(id WindowID) Tab {
	win := m.windows[id]
	if win == nil {
		return nil
	}
	return win.GetActive()
}

// RemoveTab unregisters a tab from the session. The owning window's tab
// list is updated separately by the caller, mirroring the close protocol
// of the window layer.
func (m *Mux) RemoveTab(id TabID) {
	delete(m.tabs, id)
}

// RemoveWindow drops a window from the session.
func (m *Mux) RemoveWindow(id WindowID) {
	delete(m.windows, id)
}

// Package termwindow is the rendering core of the terminal: it owns one
// GUI window, its glyph cache and texture atlas, translates OS events
// into terminal input or bound actions, and repaints dirty lines on
// demand.
//
// All state in this package is confined to the GUI thread. The terminal
// model behind each tab is fed concurrently elsewhere; this core only
// reads per-frame dirty snapshots from it.
package termwindow

import (
	"errors"
	"fmt"
	"math"

	"github.com/fanzeyi/wezterm/internal/atlas"
	"github.com/fanzeyi/wezterm/internal/clipboard"
	"github.com/fanzeyi/wezterm/internal/font"
	"github.com/fanzeyi/wezterm/internal/glyphcache"
	"github.com/fanzeyi/wezterm/internal/input"
	"github.com/fanzeyi/wezterm/internal/logging"
	"github.com/fanzeyi/wezterm/internal/mux"
	"github.com/fanzeyi/wezterm/internal/term"
	"github.com/fanzeyi/wezterm/internal/window"
)

// fontScaleStep is the multiplicative step of the font size bindings.
const fontScaleStep = 1.1

// FontSource is the slice of the font layer the window needs: styled
// fonts at the current scale, the default metrics, and scale control.
// *font.Configuration satisfies it.
type FontSource interface {
	CachedFont(style font.Style) (font.Font, error)
	DefaultFontMetrics() (font.Metrics, error)
	FontScale() float64
	ChangeScaling(fontScale, dpiScale float64)
}

// TermWindow drives one GUI window over the tabs of one mux window.
type TermWindow struct {
	cfg      Config
	session  *mux.Mux
	platform window.Platform
	fonts    FontSource
	mapper   *input.Mapper
	clip     clipboard.Clipboard

	muxWindowID mux.WindowID

	ops         window.Ops
	cancelTimer func()
	closing     bool

	dims       window.Dimensions
	cellWidth  int
	cellHeight int

	// Decoration rows, derived from the descender and clamped to the
	// cell height.
	descender        float64
	descenderRow     int
	descenderPlusOne int
	descenderPlusTwo int
	strikeRow        int

	atlas  *atlas.Atlas
	glyphs *glyphcache.Cache
}

// New creates the window for a mux window whose first tab is already
// attached, computes the initial cell metrics at 96 dpi, allocates the
// atlas and cache, and opens the platform window. Failure of any of
// these is fatal: the error propagates and no window exists.
func New(
	cfg Config,
	session *mux.Mux,
	platform window.Platform,
	fonts FontSource,
	clip clipboard.Clipboard,
	muxWindowID mux.WindowID,
) (*TermWindow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tab := session.GetActiveTabForWindow(muxWindowID)
	if tab == nil {
		return nil, mux.ErrNoTabs
	}
	rows, cols := tab.Renderer().PhysicalDimensions()

	metrics, err := fonts.DefaultFontMetrics()
	if err != nil {
		return nil, fmt.Errorf("termwindow: initial font metrics: %w", err)
	}
	cellWidth := int(math.Ceil(metrics.CellWidth))
	cellHeight := int(math.Ceil(metrics.CellHeight))

	a, err := atlas.New(cfg.AtlasSize)
	if err != nil {
		return nil, fmt.Errorf("termwindow: initial atlas: %w", err)
	}

	w := &TermWindow{
		cfg:         cfg,
		session:     session,
		platform:    platform,
		fonts:       fonts,
		mapper:      input.NewMapper(input.NewKeyMap()),
		clip:        clip,
		muxWindowID: muxWindowID,
		dims: window.Dimensions{
			PixelWidth:  cellWidth * cols,
			PixelHeight: cellHeight * rows,
			// Default density; a resize event reports the true DPI
			// if it differs.
			DPI: 96,
		},
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		atlas:      a,
		glyphs:     glyphcache.New(a, metrics),
	}
	w.computeDecorationRows(metrics)

	ops, err := platform.NewWindow(cfg.Title, w.dims.PixelWidth, w.dims.PixelHeight, w.DispatchEvent)
	if err != nil {
		return nil, fmt.Errorf("termwindow: opening window: %w", err)
	}
	ops.Show()
	return w, nil
}

// computeDecorationRows derives the underline and strikethrough rows from
// the descender, clamped so they stay inside the cell.
func (w *TermWindow) computeDecorationRows(metrics font.Metrics) {
	w.descender = metrics.Descender
	w.descenderRow = int(float64(w.cellHeight) + metrics.Descender)
	w.descenderPlusOne = min(w.descenderRow+1, w.cellHeight-1)
	w.descenderPlusTwo = min(w.descenderRow+2, w.cellHeight-1)
	w.strikeRow = w.descenderRow / 2
}

// DispatchEvent is the single entry point for platform events.
func (w *TermWindow) DispatchEvent(ev window.Event) window.EventResult {
	switch ev.Kind {
	case window.EventCreated:
		w.created(ev.Ops)
	case window.EventResize:
		w.scalingChanged(ev.Dimensions, w.fonts.FontScale())
	case window.EventKey:
		return window.EventResult{KeyHandled: w.keyEvent(ev.Key)}
	case window.EventMouse:
		w.mouseEvent(ev.Mouse)
	case window.EventPaint:
		w.paint(ev.Paint)
	case window.EventCanClose:
		return window.EventResult{CanClose: w.canClose()}
	}
	return window.EventResult{}
}

// created stores the window handle and starts the periodic dirty poll.
// The poll coalesces through Ops.Invalidate: however many firings happen
// before the next paint, one EventPaint results.
func (w *TermWindow) created(ops window.Ops) {
	w.ops = ops
	w.cancelTimer = w.platform.ScheduleTimer(w.cfg.TimerInterval, func() {
		if w.closing {
			return
		}
		tab := w.session.GetActiveTabForWindow(w.muxWindowID)
		if tab == nil {
			w.ops.Close()
			return
		}
		if tab.Renderer().HasDirtyLines() {
			w.ops.Invalidate()
		}
	})
	logging.Logger().Info("window created",
		"width", w.dims.PixelWidth, "height", w.dims.PixelHeight,
		"cell_width", w.cellWidth, "cell_height", w.cellHeight)
}

// canClose implements the close protocol: closing the window first
// closes the active tab. Only when removing it leaves the window empty
// (or no tab exists at all) may the window close, and teardown happens
// before we answer so no further paint can touch freed state.
func (w *TermWindow) canClose() bool {
	tab := w.session.GetActiveTabForWindow(w.muxWindowID)
	if tab == nil {
		w.teardown()
		return true
	}
	w.session.RemoveTab(tab.ID())
	if win := w.session.GetWindow(w.muxWindowID); win != nil {
		win.RemoveByID(tab.ID())
		if win.IsEmpty() {
			w.teardown()
			return true
		}
		return false
	}
	w.teardown()
	return true
}

// teardown cancels the timer and releases the atlas and cache. Paints
// arriving afterwards are ignored.
func (w *TermWindow) teardown() {
	if w.closing {
		return
	}
	w.closing = true
	if w.cancelTimer != nil {
		w.cancelTimer()
		w.cancelTimer = nil
	}
	w.glyphs.Clear()
	w.atlas = nil
	w.glyphs = nil
	w.session.RemoveWindow(w.muxWindowID)
}

// keyEvent maps a key event and applies its outcome. Key-up never has
// effects.
func (w *TermWindow) keyEvent(ev *window.KeyEvent) bool {
	tab := w.session.GetActiveTabForWindow(w.muxWindowID)
	if tab == nil {
		return false
	}

	action := w.mapper.MapKey(ev)
	switch action.Kind {
	case input.KeyComposed, input.KeyForward:
		if _, err := tab.Writer().Write(action.Bytes); err != nil {
			logging.Logger().Warn("writing key input", "error", err)
		}
		return true
	case input.KeyAssigned:
		if err := w.performAssignment(tab, action.Assignment); err != nil {
			logging.Logger().Error("key assignment failed", "error", err)
		}
		return true
	default:
		return false
	}
}

// mouseEvent translates the pointer into grid coordinates, hands it to
// the tab's model when it accepts mouse input, and keeps the pointer
// shape in sync with hyperlink hover.
func (w *TermWindow) mouseEvent(ev *window.MouseEvent) {
	tab := w.session.GetActiveTabForWindow(w.muxWindowID)
	if tab == nil {
		return
	}

	termEvent := input.TranslateMouse(ev, w.cellWidth, w.cellHeight)
	if receiver, ok := tab.(input.MouseReceiver); ok {
		if err := receiver.MouseEvent(termEvent); err != nil {
			logging.Logger().Warn("mouse event rejected", "error", err)
		}
	}

	if ev.Kind == window.MouseDown && ev.Press == window.MousePressLeft {
		if link := tab.Renderer().CurrentHighlight(); link != nil {
			w.openLink(link)
		}
	}

	if ev.Kind != window.MouseMove {
		w.ops.Invalidate()
	}

	if tab.Renderer().CurrentHighlight() != nil {
		w.ops.SetMouseCursor(window.CursorHand)
	} else {
		w.ops.SetMouseCursor(window.CursorText)
	}
}

// openLink hands a clicked hyperlink to the configured opener. Opening
// is best effort; failure only logs.
func (w *TermWindow) openLink(link *term.Hyperlink) {
	if w.cfg.OnOpenLink == nil {
		logging.Logger().Warn("link clicked but no opener configured", "uri", link.URI)
		return
	}
	logging.Logger().Info("opening link", "uri", link.URI)
	if err := w.cfg.OnOpenLink(link.URI); err != nil {
		logging.Logger().Error("failed to open link", "uri", link.URI, "error", err)
	}
}

// scalingChanged rebuilds the scale-derived state when the DPI or font
// scale actually changed, then propagates the new grid size to every tab
// of the window. Same-scale resizes skip the rebuild and only resize
// tabs.
func (w *TermWindow) scalingChanged(dims window.Dimensions, fontScale float64) {
	win := w.session.GetWindow(w.muxWindowID)
	if win == nil {
		return
	}

	if dims.DPI != w.dims.DPI || fontScale != w.fonts.FontScale() {
		w.fonts.ChangeScaling(fontScale, float64(dims.DPI)/96)
		metrics, err := w.fonts.DefaultFontMetrics()
		if err != nil {
			logging.Logger().Error("font metrics after rescale", "error", err)
			return
		}

		w.cellWidth = int(math.Ceil(metrics.CellWidth))
		w.cellHeight = int(math.Ceil(metrics.CellHeight))

		// Sprite geometry is scale-dependent, so the whole cache
		// generation dies with the old scale.
		if err := w.recreateTextureAtlas(w.atlas.Size(), metrics); err != nil {
			logging.Logger().Error("atlas rebuild after rescale", "error", err)
			return
		}
		w.computeDecorationRows(metrics)
	}

	w.dims = dims

	size := mux.PtySize{
		Rows:        uint16(dims.PixelHeight / w.cellHeight),
		Cols:        uint16(dims.PixelWidth / w.cellWidth),
		PixelWidth:  uint16(dims.PixelWidth),
		PixelHeight: uint16(dims.PixelHeight),
	}
	for _, tab := range win.Tabs() {
		if err := tab.Resize(size); err != nil {
			logging.Logger().Warn("tab resize", "tab", tab.ID(), "error", err)
		}
	}
}

// recreateTextureAtlas replaces the atlas surface and starts a fresh
// cache generation against it.
func (w *TermWindow) recreateTextureAtlas(size int, metrics font.Metrics) error {
	if err := w.atlas.Rebuild(size); err != nil {
		return err
	}
	w.glyphs = glyphcache.New(w.atlas, metrics)
	return nil
}

// updateTitle reflects the active tab's title on the window, prefixed
// with the tab position when several tabs exist.
func (w *TermWindow) updateTitle() {
	win := w.session.GetWindow(w.muxWindowID)
	if win == nil || win.Len() == 0 || w.ops == nil {
		return
	}
	tab := win.GetActive()
	if tab == nil {
		return
	}
	if win.Len() == 1 {
		w.ops.SetTitle(tab.Title())
	} else {
		w.ops.SetTitle(fmt.Sprintf("[%d/%d] %s", win.GetActiveIdx()+1, win.Len(), tab.Title()))
	}
}

func (w *TermWindow) activateTab(idx int) error {
	win := w.session.GetWindow(w.muxWindowID)
	if win == nil {
		return mux.ErrNoSuchWindow
	}
	if idx >= 0 && idx < win.Len() {
		win.SetActive(idx)
		w.updateTitle()
	}
	return nil
}

func (w *TermWindow) activateTabRelative(delta int) error {
	win := w.session.GetWindow(w.muxWindowID)
	if win == nil {
		return mux.ErrNoSuchWindow
	}
	n := win.Len()
	if n == 0 {
		return mux.ErrNoTabs
	}
	idx := (win.GetActiveIdx() + delta) % n
	if idx < 0 {
		idx += n
	}
	return w.activateTab(idx)
}

// spawnTab creates a tab in the resolved domain, sized like the window,
// attaches it and activates it.
func (w *TermWindow) spawnTab(domain input.SpawnTabDomain) (mux.TabID, error) {
	size := mux.PtySize{
		Rows:        uint16((w.dims.PixelHeight + 1) / w.cellHeight),
		Cols:        uint16((w.dims.PixelWidth + 1) / w.cellWidth),
		PixelWidth:  uint16(w.dims.PixelWidth),
		PixelHeight: uint16(w.dims.PixelHeight),
	}

	d, err := w.resolveSpawnDomain(domain)
	if err != nil {
		return mux.TabID{}, err
	}

	tab, err := d.Spawn(size, nil, w.muxWindowID)
	if err != nil {
		return mux.TabID{}, err
	}
	if err := w.session.AddTab(w.muxWindowID, tab); err != nil {
		return mux.TabID{}, err
	}

	win := w.session.GetWindow(w.muxWindowID)
	if err := w.activateTab(win.Len() - 1); err != nil {
		return mux.TabID{}, err
	}
	return tab.ID(), nil
}

func (w *TermWindow) resolveSpawnDomain(domain input.SpawnTabDomain) (mux.Domain, error) {
	switch domain.Kind {
	case input.SpawnCurrentTabDomain:
		tab := w.session.GetActiveTabForWindow(w.muxWindowID)
		if tab == nil {
			return nil, mux.ErrNoTabs
		}
		return w.session.GetDomain(tab.DomainID())
	case input.SpawnDomainID:
		return w.session.GetDomain(domain.ID)
	case input.SpawnDomainName:
		return w.session.GetDomainByName(domain.Name)
	default:
		d := w.session.DefaultDomain()
		if d == nil {
			return nil, mux.ErrNoSuchDomain
		}
		return d, nil
	}
}

// performAssignment executes a bound action. Failures surface to the
// caller; the window stays usable either way.
func (w *TermWindow) performAssignment(tab mux.Tab, a input.Assignment) error {
	switch assignment := a.(type) {
	case input.SpawnTab:
		_, err := w.spawnTab(assignment.Domain)
		return err
	case input.SpawnWindow:
		if w.cfg.OnSpawnWindow == nil {
			logging.Logger().Warn("spawn window requested but no handler configured")
			return nil
		}
		return w.cfg.OnSpawnWindow()
	case input.ToggleFullScreen:
		// Not supported by the platform contract yet.
		return nil
	case input.Copy:
		// Selection is published to the clipboard when made; nothing
		// to do here.
		return nil
	case input.Paste:
		text, err := w.clip.GetContents()
		if err != nil {
			logging.Logger().Warn("clipboard read failed", "error", err)
			return nil
		}
		_, err = tab.Writer().Write([]byte(text))
		return err
	case input.ActivateTab:
		return w.activateTab(assignment.Index)
	case input.ActivateTabRelative:
		return w.activateTabRelative(assignment.Delta)
	case input.IncreaseFontSize:
		w.scalingChanged(w.dims, w.fonts.FontScale()*fontScaleStep)
		return nil
	case input.DecreaseFontSize:
		w.scalingChanged(w.dims, w.fonts.FontScale()/fontScaleStep)
		return nil
	case input.ResetFontSize:
		w.scalingChanged(w.dims, 1.0)
		return nil
	case input.SendString:
		_, err := tab.Writer().Write([]byte(assignment.Text))
		return err
	case input.SendBytes:
		_, err := tab.Writer().Write(assignment.Bytes)
		return err
	case input.Hide:
		w.ops.Hide()
		return nil
	case input.Show:
		w.ops.Show()
		return nil
	case input.CloseCurrentTab:
		w.closeCurrentTab()
		return nil
	case input.Nop:
		return nil
	default:
		return errors.New("termwindow: unknown assignment")
	}
}

// closeCurrentTab removes the active tab; the dirty poll closes the
// window once no tabs remain.
func (w *TermWindow) closeCurrentTab() {
	tab := w.session.GetActiveTabForWindow(w.muxWindowID)
	if tab == nil {
		return
	}
	w.session.RemoveTab(tab.ID())
	if win := w.session.GetWindow(w.muxWindowID); win != nil {
		win.RemoveByID(tab.ID())
	}
	if err := w.activateTabRelative(0); err != nil && !errors.Is(err, mux.ErrNoTabs) {
		logging.Logger().Warn("activating tab after close", "error", err)
	}
}

// CellSize returns the current cell dimensions in pixels.
func (w *TermWindow) CellSize() (width, height int) {
	return w.cellWidth, w.cellHeight
}

// Dimensions returns the current window geometry.
func (w *TermWindow) Dimensions() window.Dimensions { return w.dims }

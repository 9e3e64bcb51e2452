package window

import "time"

// Headless is an offscreen Platform. Windows paint into software surfaces
// and every event is delivered synchronously by whoever drives the
// platform, so there is no event loop to race with. Offscreen rendering
// and the test suite run on it.
type Headless struct {
	windows []*HeadlessWindow
	timers  []*headlessTimer
}

type headlessTimer struct {
	interval time.Duration
	fn       func()
	stopped  bool
}

// NewHeadless creates an empty headless platform.
func NewHeadless() *Headless { return &Headless{} }

// ScheduleTimer implements Connection. Headless timers never fire on
// their own; Tick fires them.
func (h *Headless) ScheduleTimer(interval time.Duration, fn func()) func() {
	t := &headlessTimer{interval: interval, fn: fn}
	h.timers = append(h.timers, t)
	return func() { t.stopped = true }
}

// Tick fires every live timer once, simulating one timer period.
func (h *Headless) Tick() {
	for _, t := range h.timers {
		if !t.stopped {
			t.fn()
		}
	}
}

// NewWindow implements Platform. The window exists immediately and
// EventCreated is dispatched before NewWindow returns.
func (h *Headless) NewWindow(title string, width, height int, dispatch func(Event) EventResult) (Ops, error) {
	hw := &HeadlessWindow{
		title:    title,
		surface:  NewSoftwareSurface(width, height),
		dispatch: dispatch,
		dpi:      96,
	}
	h.windows = append(h.windows, hw)
	dispatch(Event{Kind: EventCreated, Ops: hw})
	return hw, nil
}

// Window returns the idx-th window opened on the platform, or nil.
func (h *Headless) Window(idx int) *HeadlessWindow {
	if idx < 0 || idx >= len(h.windows) {
		return nil
	}
	return h.windows[idx]
}

// HeadlessWindow is one offscreen window. The methods beyond Ops inject
// events the way a real platform loop would.
type HeadlessWindow struct {
	title       string
	surface     *SoftwareSurface
	dispatch    func(Event) EventResult
	dpi         int
	visible     bool
	closed      bool
	invalidated bool
	cursor      MouseCursor
}

// Show implements Ops.
func (w *HeadlessWindow) Show() { w.visible = true }

// Hide implements Ops.
func (w *HeadlessWindow) Hide() { w.visible = false }

// Close implements Ops. The close request goes through the can-close
// protocol like an OS close button would.
func (w *HeadlessWindow) Close() { w.RequestClose() }

// SetTitle implements Ops.
func (w *HeadlessWindow) SetTitle(title string) { w.title = title }

// Invalidate implements Ops. The paint is deferred until Paint, matching
// the coalescing contract.
func (w *HeadlessWindow) Invalidate() { w.invalidated = true }

// SetMouseCursor implements Ops.
func (w *HeadlessWindow) SetMouseCursor(cursor MouseCursor) { w.cursor = cursor }

// Title returns the current window title.
func (w *HeadlessWindow) Title() string { return w.title }

// Visible reports whether the window is shown.
func (w *HeadlessWindow) Visible() bool { return w.visible }

// Closed reports whether the window has closed.
func (w *HeadlessWindow) Closed() bool { return w.closed }

// Invalidated reports whether a paint is pending.
func (w *HeadlessWindow) Invalidated() bool { return w.invalidated }

// Cursor returns the current pointer shape.
func (w *HeadlessWindow) Cursor() MouseCursor { return w.cursor }

// Surface returns the paint surface.
func (w *HeadlessWindow) Surface() *SoftwareSurface { return w.surface }

// Paint delivers one paint event into the window surface and clears the
// pending-invalidate flag.
func (w *HeadlessWindow) Paint() {
	if w.closed {
		return
	}
	w.invalidated = false
	w.dispatch(Event{Kind: EventPaint, Paint: w.surface})
}

// Resize replaces the surface and reports the new geometry.
func (w *HeadlessWindow) Resize(width, height, dpi int) {
	w.surface = NewSoftwareSurface(width, height)
	w.dpi = dpi
	w.dispatch(Event{Kind: EventResize, Dimensions: Dimensions{
		PixelWidth:  width,
		PixelHeight: height,
		DPI:         dpi,
	}})
}

// SendKey delivers a keyboard event.
func (w *HeadlessWindow) SendKey(ev KeyEvent) EventResult {
	return w.dispatch(Event{Kind: EventKey, Key: &ev})
}

// SendMouse delivers a pointer event.
func (w *HeadlessWindow) SendMouse(ev MouseEvent) EventResult {
	return w.dispatch(Event{Kind: EventMouse, Mouse: &ev})
}

// RequestClose runs the can-close protocol and closes the window when it
// answers yes.
func (w *HeadlessWindow) RequestClose() bool {
	if w.closed {
		return true
	}
	res := w.dispatch(Event{Kind: EventCanClose})
	if res.CanClose {
		w.closed = true
	}
	return res.CanClose
}

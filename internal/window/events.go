// Package window defines the contract between the renderer core and the
// OS windowing layer: the event surface delivered by the platform, the
// operations the core may invoke on a window, and the paint context a
// window surface exposes during a paint event.
//
// The platform layer itself lives outside this module; a software
// implementation of the paint surface is provided for offscreen rendering
// and tests.
package window

import "time"

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

// Contains reports whether all modifiers in m are held.
func (ms Modifiers) Contains(m Modifiers) bool { return ms&m == m }

// KeyKind discriminates the KeyCode variants.
type KeyKind uint8

const (
	KeyNone KeyKind = iota
	KeyChar
	KeyFunction
	KeyLeftArrow
	KeyRightArrow
	KeyUpArrow
	KeyDownArrow
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEscape
	KeyEnter
	KeyTab
)

// KeyCode identifies a pressed key. It is comparable and usable as a map
// key in binding tables.
type KeyCode struct {
	Kind KeyKind
	// Char is set for KeyChar.
	Char rune
	// Function is set for KeyFunction (F1 = 1).
	Function int
}

// CharKey returns the key code for a printable character.
func CharKey(r rune) KeyCode { return KeyCode{Kind: KeyChar, Char: r} }

// FunctionKey returns the key code for function key n (F1 = 1).
func FunctionKey(n int) KeyCode { return KeyCode{Kind: KeyFunction, Function: n} }

// KeyEvent is a keyboard event from the platform.
type KeyEvent struct {
	Key KeyCode

	// Composed carries IME/dead-key composed text. When non-empty it
	// bypasses the binding table and is written to the transport as-is.
	Composed string

	Modifiers Modifiers

	// KeyDown distinguishes presses from releases. Only presses have
	// effects.
	KeyDown bool
}

// MousePress identifies a mouse button in press/release events.
type MousePress uint8

const (
	MousePressNone MousePress = iota
	MousePressLeft
	MousePressRight
	MousePressMiddle
)

// MouseButtons is a bitmask of currently held buttons, reported with
// move events.
type MouseButtons uint8

const (
	MouseButtonLeft MouseButtons = 1 << iota
	MouseButtonRight
	MouseButtonMiddle
)

// MouseEventKind discriminates mouse events.
type MouseEventKind uint8

const (
	MouseMove MouseEventKind = iota
	MouseDown
	MouseUp
	MouseDoubleClick
	MouseVertWheel
	MouseHorzWheel
)

// MouseEvent is a pointer event from the platform, in window pixel
// coordinates.
type MouseEvent struct {
	Kind MouseEventKind
	X, Y int

	// Press is the button for MouseDown/MouseUp/MouseDoubleClick.
	Press MousePress

	// Buttons is the held-button set for MouseMove.
	Buttons MouseButtons

	// WheelDelta is the signed magnitude for wheel events; positive is
	// up (or right for horizontal wheels).
	WheelDelta int

	Modifiers Modifiers
}

// Dimensions is the pixel geometry and density of a window surface.
type Dimensions struct {
	PixelWidth  int
	PixelHeight int
	DPI         int
}

// EventKind discriminates the Event variants.
type EventKind uint8

const (
	// EventCreated delivers the window handle after the platform window
	// exists.
	EventCreated EventKind = iota
	// EventResize reports new surface dimensions or DPI.
	EventResize
	// EventKey is a keyboard event.
	EventKey
	// EventMouse is a pointer event.
	EventMouse
	// EventPaint asks the core to repaint into the supplied context.
	EventPaint
	// EventCanClose asks whether the window may close now.
	EventCanClose
)

// Event is the single tagged variant type delivered by the platform
// layer. Exactly the fields relevant to Kind are populated.
type Event struct {
	Kind       EventKind
	Ops        Ops          // EventCreated
	Dimensions Dimensions   // EventResize
	Key        *KeyEvent    // EventKey
	Mouse      *MouseEvent  // EventMouse
	Paint      PaintContext // EventPaint
}

// EventResult carries the per-event answers back to the platform layer.
type EventResult struct {
	// KeyHandled is meaningful for EventKey.
	KeyHandled bool
	// CanClose is meaningful for EventCanClose.
	CanClose bool
}

// Connection is the slice of the platform event loop the core needs:
// periodic timers for the dirty-line poll. The returned cancel function
// tears the timer down; it must be safe to call once during window
// teardown.
type Connection interface {
	ScheduleTimer(interval time.Duration, fn func()) (cancel func())
}

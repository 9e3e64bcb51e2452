package input

import "github.com/fanzeyi/wezterm/internal/window"

// TermMouseEventKind is the event kind as seen by the terminal model.
type TermMouseEventKind uint8

const (
	TermMouseMove TermMouseEventKind = iota
	TermMousePress
	TermMouseRelease
)

// TermMouseButtonKind discriminates terminal mouse buttons.
type TermMouseButtonKind uint8

const (
	TermButtonNone TermMouseButtonKind = iota
	TermButtonLeft
	TermButtonRight
	TermButtonMiddle
	TermButtonWheelUp
	TermButtonWheelDown
)

// TermMouseButton is a terminal mouse button; wheel buttons carry the
// scroll magnitude.
type TermMouseButton struct {
	Kind   TermMouseButtonKind
	Amount int
}

// TermMouseEvent is a pointer event in grid coordinates, ready for the
// terminal model.
type TermMouseEvent struct {
	Kind      TermMouseEventKind
	Button    TermMouseButton
	X         int // column
	Y         int // row
	Modifiers window.Modifiers
}

// MouseReceiver is implemented by tabs whose terminal model consumes
// mouse events (for mouse reporting modes and selection).
type MouseReceiver interface {
	MouseEvent(ev TermMouseEvent) error
}

// TranslateMouse converts a window pointer event into grid coordinates.
// cellWidth and cellHeight are the current cell pixel dimensions.
func TranslateMouse(ev *window.MouseEvent, cellWidth, cellHeight int) TermMouseEvent {
	out := TermMouseEvent{
		X:         ev.X / cellWidth,
		Y:         ev.Y / cellHeight,
		Modifiers: ev.Modifiers,
	}

	switch ev.Kind {
	case window.MouseMove:
		out.Kind = TermMouseMove
		out.Button = moveButton(ev.Buttons)
	case window.MouseUp:
		out.Kind = TermMouseRelease
		out.Button = pressButton(ev.Press)
	case window.MouseDown, window.MouseDoubleClick:
		out.Kind = TermMousePress
		out.Button = pressButton(ev.Press)
	case window.MouseVertWheel:
		out.Kind = TermMousePress
		if ev.WheelDelta > 0 {
			out.Button = TermMouseButton{Kind: TermButtonWheelUp, Amount: ev.WheelDelta}
		} else {
			out.Button = TermMouseButton{Kind: TermButtonWheelDown, Amount: -ev.WheelDelta}
		}
	case window.MouseHorzWheel:
		// Horizontal wheels are unmapped.
		out.Kind = TermMousePress
		out.Button = TermMouseButton{Kind: TermButtonNone}
	}
	return out
}

// moveButton picks the button reported with a chorded move.
// Precedence is left, then right, then middle, then none.
func moveButton(held window.MouseButtons) TermMouseButton {
	switch {
	case held&window.MouseButtonLeft != 0:
		return TermMouseButton{Kind: TermButtonLeft}
	case held&window.MouseButtonRight != 0:
		return TermMouseButton{Kind: TermButtonRight}
	case held&window.MouseButtonMiddle != 0:
		return TermMouseButton{Kind: TermButtonMiddle}
	default:
		return TermMouseButton{Kind: TermButtonNone}
	}
}

func pressButton(p window.MousePress) TermMouseButton {
	switch p {
	case window.MousePressLeft:
		return TermMouseButton{Kind: TermButtonLeft}
	case window.MousePressRight:
		return TermMouseButton{Kind: TermButtonRight}
	case window.MousePressMiddle:
		return TermMouseButton{Kind: TermButtonMiddle}
	default:
		return TermMouseButton{Kind: TermButtonNone}
	}
}

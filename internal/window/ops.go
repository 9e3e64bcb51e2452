package window

import "image"

// MouseCursor selects the pointer shape over the window.
type MouseCursor uint8

const (
	// CursorText is the I-beam shown over ordinary cells.
	CursorText MouseCursor = iota
	// CursorHand is shown while hovering a hyperlink.
	CursorHand
)

// Ops are the operations the core may invoke on a platform window.
// All calls are fire-and-forget from the core's perspective.
type Ops interface {
	Show()
	Hide()
	Close()
	SetTitle(title string)

	// Invalidate requests a paint. Multiple requests before the next
	// paint coalesce into one EventPaint.
	Invalidate()

	SetMouseCursor(cursor MouseCursor)
}

// Color is a straight-alpha RGBA color in window/surface space.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xff} }

// CompositeMode selects how DrawImage combines source and destination.
type CompositeMode uint8

const (
	// CompositeOver is straight-alpha source-over, used for color
	// glyphs so selection never masks their own colors.
	CompositeOver CompositeMode = iota
	// CompositeTintedOver multiplies the source by a tint color before
	// source-over. Monochrome glyph masks are tinted with the resolved
	// foreground this way.
	CompositeTintedOver
)

// CompositeOp is a compositing operator, optionally carrying a tint.
type CompositeOp struct {
	Mode CompositeMode
	Tint Color
}

// OpOver returns the plain source-over operator.
func OpOver() CompositeOp { return CompositeOp{Mode: CompositeOver} }

// OpTinted returns the foreground-multiplied source-over operator.
func OpTinted(tint Color) CompositeOp {
	return CompositeOp{Mode: CompositeTintedOver, Tint: tint}
}

// Surface is the read side of a paintable image, implemented by the
// platform (or the software surface here).
type Surface interface {
	// Width and Height of the paintable area in pixels.
	Width() int
	Height() int
}

// PaintContext is the draw surface handed to the core for one paint
// event. Coordinates are window pixels with the origin at the top left.
type PaintContext interface {
	Surface

	// ClearRect fills a rectangle with an opaque color.
	ClearRect(r image.Rectangle, c Color)

	// DrawLine draws a one-pixel line between two points using
	// source-over.
	DrawLine(x0, y0, x1, y1 int, c Color)

	// DrawImage composites the src sub-rectangle of img with its top
	// left corner at (dstX, dstY).
	DrawImage(dstX, dstY int, src image.Rectangle, img ImageSource, op CompositeOp)
}

// ImageSource is the pixel source for DrawImage; the atlas surface
// satisfies it.
type ImageSource interface {
	Width() int
	Height() int
	Pixel(x, y int) (r, g, b, a uint8)
}

// Platform opens windows and runs timers. The returned Ops is also
// delivered through an EventCreated once the window exists; dispatch is
// invoked for every subsequent event on the GUI thread.
type Platform interface {
	Connection
	NewWindow(title string, width, height int, dispatch func(Event) EventResult) (Ops, error)
}

package window

import (
	"testing"
	"time"
)

func TestHeadlessDeliversCreatedBeforeReturn(t *testing.T) {
	h := NewHeadless()

	var createdOps Ops
	ops, err := h.NewWindow("t", 32, 32, func(ev Event) EventResult {
		if ev.Kind == EventCreated {
			createdOps = ev.Ops
		}
		return EventResult{}
	})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if createdOps == nil {
		t.Fatal("EventCreated not delivered")
	}
	if createdOps != ops {
		t.Fatal("EventCreated carried a different Ops than NewWindow returned")
	}
}

func TestHeadlessInvalidateCoalescesIntoPaint(t *testing.T) {
	h := NewHeadless()

	paints := 0
	_, err := h.NewWindow("t", 32, 32, func(ev Event) EventResult {
		if ev.Kind == EventPaint {
			paints++
			if ev.Paint == nil {
				t.Fatal("paint event without a context")
			}
		}
		return EventResult{}
	})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	win := h.Window(0)
	win.Invalidate()
	win.Invalidate()
	if !win.Invalidated() {
		t.Fatal("Invalidate did not mark the window")
	}
	win.Paint()
	if paints != 1 {
		t.Fatalf("paints = %d, want 1", paints)
	}
	if win.Invalidated() {
		t.Fatal("paint did not clear the pending flag")
	}
}

func TestHeadlessTimers(t *testing.T) {
	h := NewHeadless()

	fired := 0
	cancel := h.ScheduleTimer(time.Millisecond, func() { fired++ })
	h.Tick()
	h.Tick()
	if fired != 2 {
		t.Fatalf("fired = %d, want 2", fired)
	}
	cancel()
	h.Tick()
	if fired != 2 {
		t.Fatal("cancelled timer still fired")
	}
}

func TestHeadlessCloseProtocol(t *testing.T) {
	h := NewHeadless()

	allow := false
	_, err := h.NewWindow("t", 16, 16, func(ev Event) EventResult {
		if ev.Kind == EventCanClose {
			return EventResult{CanClose: allow}
		}
		return EventResult{}
	})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	win := h.Window(0)
	if win.RequestClose() {
		t.Fatal("close allowed despite refusal")
	}
	if win.Closed() {
		t.Fatal("window closed despite refusal")
	}

	allow = true
	if !win.RequestClose() {
		t.Fatal("close refused despite permission")
	}
	if !win.Closed() {
		t.Fatal("window not closed")
	}
}

func TestHeadlessResizeReplacesSurface(t *testing.T) {
	h := NewHeadless()

	var dims Dimensions
	_, err := h.NewWindow("t", 16, 16, func(ev Event) EventResult {
		if ev.Kind == EventResize {
			dims = ev.Dimensions
		}
		return EventResult{}
	})
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}

	win := h.Window(0)
	win.Resize(64, 48, 192)
	if dims != (Dimensions{PixelWidth: 64, PixelHeight: 48, DPI: 192}) {
		t.Fatalf("dims = %+v", dims)
	}
	if win.Surface().Width() != 64 || win.Surface().Height() != 48 {
		t.Fatalf("surface = %dx%d", win.Surface().Width(), win.Surface().Height())
	}
}

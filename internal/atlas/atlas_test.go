package atlas

import (
	"errors"
	"testing"

	"github.com/fanzeyi/wezterm/internal/bitmap"
)

func solidImage(w, h int, r, g, b, a uint8) *bitmap.Image {
	img := bitmap.New(w, h)
	img.Fill(r, g, b, a)
	return img
}

func TestAllocateReturnsDistinctRegions(t *testing.T) {
	a, err := New(64)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	type rect struct{ x0, y0, x1, y1 int }
	var seen []rect
	for i := 0; i < 8; i++ {
		s, err := a.Allocate(solidImage(10, 12, 0xff, 0, 0, 0xff))
		if err != nil {
			t.Fatalf("Allocate %d: %v", i, err)
		}
		r := rect{s.X, s.Y, s.X + s.Width, s.Y + s.Height}
		for _, prev := range seen {
			if r.x0 < prev.x1 && prev.x0 < r.x1 && r.y0 < prev.y1 && prev.y0 < r.y1 {
				t.Fatalf("sprite %v overlaps %v", r, prev)
			}
		}
		seen = append(seen, r)
	}
}

func TestAllocateCopiesPixels(t *testing.T) {
	a, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := a.Allocate(solidImage(4, 4, 0x10, 0x20, 0x30, 0xff))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	r, g, b, al := s.Surface().Pixel(s.X+2, s.Y+2)
	if r != 0x10 || g != 0x20 || b != 0x30 || al != 0xff {
		t.Fatalf("pixel = %d,%d,%d,%d", r, g, b, al)
	}
}

func TestAllocateExhaustionReportsRequiredSize(t *testing.T) {
	a, err := New(16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = a.Allocate(solidImage(64, 64, 0, 0, 0, 0xff))
	var exhausted *OutOfTextureSpaceError
	if !errors.As(err, &exhausted) {
		t.Fatalf("err = %v, want OutOfTextureSpaceError", err)
	}
	// 64 plus padding does not fit in twice the current size; the report
	// must cover the request itself, rounded to a power of two.
	if exhausted.RequiredSize < 64+2*padding {
		t.Fatalf("RequiredSize = %d, too small for the request", exhausted.RequiredSize)
	}
	if exhausted.RequiredSize&(exhausted.RequiredSize-1) != 0 {
		t.Fatalf("RequiredSize = %d, not a power of two", exhausted.RequiredSize)
	}
}

func TestExhaustionByAccumulation(t *testing.T) {
	a, err := New(16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var exhausted *OutOfTextureSpaceError
	for i := 0; i < 100; i++ {
		if _, err := a.Allocate(solidImage(8, 8, 0, 0, 0, 0xff)); err != nil {
			if !errors.As(err, &exhausted) {
				t.Fatalf("err = %v, want OutOfTextureSpaceError", err)
			}
			if exhausted.RequiredSize != 32 {
				t.Fatalf("RequiredSize = %d, want doubled size 32", exhausted.RequiredSize)
			}
			return
		}
	}
	t.Fatal("atlas never ran out of space")
}

func TestRebuildBumpsGenerationAndFreesSpace(t *testing.T) {
	a, err := New(16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	old, err := a.Allocate(solidImage(8, 8, 0, 0, 0, 0xff))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if err := a.Rebuild(64); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if a.Generation() != old.Generation+1 {
		t.Fatalf("Generation = %d, want %d", a.Generation(), old.Generation+1)
	}
	if a.Size() != 64 {
		t.Fatalf("Size = %d, want 64", a.Size())
	}

	s, err := a.Allocate(solidImage(8, 8, 0, 0, 0, 0xff))
	if err != nil {
		t.Fatalf("Allocate after rebuild: %v", err)
	}
	if s.Generation != a.Generation() {
		t.Fatalf("sprite generation = %d, want %d", s.Generation, a.Generation())
	}
}

func TestRebuildNeverShrinks(t *testing.T) {
	a, err := New(128)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Rebuild(16); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if a.Size() != 128 {
		t.Fatalf("Size = %d, want 128", a.Size())
	}
}

func TestUtilizationGrows(t *testing.T) {
	a, err := New(64)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if u := a.Utilization(); u != 0 {
		t.Fatalf("empty utilization = %v", u)
	}
	if _, err := a.Allocate(solidImage(16, 16, 0, 0, 0, 0xff)); err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if u := a.Utilization(); u <= 0 || u > 1 {
		t.Fatalf("utilization = %v, want in (0, 1]", u)
	}
}

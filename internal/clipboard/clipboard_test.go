package clipboard

import "testing"

func TestInMemoryRoundTrip(t *testing.T) {
	c := NewInMemory()

	got, err := c.GetContents()
	if err != nil {
		t.Fatalf("GetContents: %v", err)
	}
	if got != "" {
		t.Fatalf("fresh clipboard = %q", got)
	}

	if err := c.SetContents("copied"); err != nil {
		t.Fatalf("SetContents: %v", err)
	}
	got, err = c.GetContents()
	if err != nil {
		t.Fatalf("GetContents: %v", err)
	}
	if got != "copied" {
		t.Fatalf("contents = %q", got)
	}
}

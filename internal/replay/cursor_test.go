package replay

import "testing"

func enabledCursor(length int) *Cursor {
	c := NewCursor()
	c.Reset(length)
	c.Enable()
	return c
}

func TestCursor_DisabledRejectsEverything(t *testing.T) {
	c := NewCursor()
	c.Reset(10)
	ops := []struct {
		name string
		op   func() bool
	}{
		{"GoTo", func() bool { return c.GoTo(3) }},
		{"GoToStart", c.GoToStart},
		{"GoToEnd", c.GoToEnd},
		{"GoToNext", c.GoToNext},
		{"GoToPrevious", c.GoToPrevious},
	}
	for _, tc := range ops {
		if tc.op() {
			t.Fatalf("%s succeeded on disabled cursor", tc.name)
		}
	}
	if c.Index() != -1 {
		t.Fatalf("disabled cursor moved to %d", c.Index())
	}
}

func TestCursor_Bounds(t *testing.T) {
	c := enabledCursor(4)

	if c.GoTo(-2) || c.GoTo(4) {
		t.Fatalf("out-of-bounds GoTo accepted")
	}
	if c.Index() != -1 {
		t.Fatalf("rejected GoTo moved cursor to %d", c.Index())
	}

	if !c.GoTo(2) || c.Index() != 2 {
		t.Fatalf("GoTo(2) failed, index=%d", c.Index())
	}
	if !c.GoToEnd() || c.Index() != 3 {
		t.Fatalf("GoToEnd index=%d, want 3", c.Index())
	}
	if c.GoToNext() {
		t.Fatalf("GoToNext at last index should clamp")
	}
	if c.Index() != 3 {
		t.Fatalf("clamped GoToNext moved cursor to %d", c.Index())
	}

	if !c.GoToStart() || c.Index() != -1 {
		t.Fatalf("GoToStart index=%d, want -1", c.Index())
	}
	if c.GoToPrevious() {
		t.Fatalf("GoToPrevious at -1 should clamp")
	}
	if c.Index() != -1 {
		t.Fatalf("clamped GoToPrevious moved cursor to %d", c.Index())
	}
}

func TestCursor_StaysBoundedUnderRandomWalk(t *testing.T) {
	c := enabledCursor(7)
	ops := []func() bool{c.GoToNext, c.GoToNext, c.GoToPrevious, c.GoToEnd, c.GoToNext, c.GoToStart, c.GoToPrevious}
	for round := 0; round < 50; round++ {
		ops[round%len(ops)]()
		if c.Index() < -1 || c.Index() > 6 {
			t.Fatalf("cursor escaped bounds: %d", c.Index())
		}
	}
}

func TestCursor_EmptyTimeline(t *testing.T) {
	c := enabledCursor(0)
	if c.GoToNext() || c.GoTo(0) {
		t.Fatalf("cursor moved on empty timeline")
	}
	if !c.GoToStart() {
		t.Fatalf("GoToStart should succeed on empty timeline")
	}
}

package timeline

import (
	"errors"
	"testing"

	"github.com/san-kum/pixelanim/internal/pixel"
)

func TestNewTimeline(t *testing.T) {
	tl := New()
	if tl.Len() != 1 {
		t.Fatalf("expected 1 frame, got %d", tl.Len())
	}
	if tl.Index() != 0 {
		t.Errorf("expected cursor 0, got %d", tl.Index())
	}
	if tl.Current().Canvas().Len() != 0 {
		t.Error("initial frame should be empty")
	}
	if tl.Label() != "Frame: 1 of 1" {
		t.Errorf("unexpected label %q", tl.Label())
	}
}

func TestAddEmptyFrame(t *testing.T) {
	tl := New()
	tl.Current().Canvas().Set(pixel.Coord{X: 1, Y: 1}, pixel.Black)

	f := tl.Add(false)
	if f.Canvas().Len() != 0 {
		t.Errorf("expected empty canvas, got %d cells", f.Canvas().Len())
	}
	if tl.Index() != 1 || tl.Current() != f {
		t.Error("cursor should move to the new frame")
	}
}

func TestAddCopiedFrameIsIndependent(t *testing.T) {
	tl := New()
	src := tl.Current()
	src.Canvas().Set(pixel.Coord{X: 0, Y: 0}, pixel.Black)
	src.Canvas().Set(pixel.Coord{X: 3, Y: -2}, pixel.Transparent)

	f := tl.Add(true)
	if !f.Canvas().Equal(src.Canvas()) {
		t.Fatal("copied frame should match the source")
	}
	if f.ID == src.ID {
		t.Error("frames must have distinct ids")
	}

	f.Canvas().Set(pixel.Coord{X: 9, Y: 9}, pixel.White)
	src.Canvas().Remove(pixel.Coord{X: 0, Y: 0})

	if src.Canvas().Len() != 1 {
		t.Errorf("source changed through copy: %d cells", src.Canvas().Len())
	}
	if _, ok := f.Canvas().Get(pixel.Coord{X: 0, Y: 0}); !ok {
		t.Error("copy changed through source")
	}
}

func TestSetOutOfRange(t *testing.T) {
	tl := New()
	tl.Add(false)
	tl.Add(false)
	tl.Set(1)
	tl.Current().Canvas().Set(pixel.Coord{X: 2, Y: 2}, pixel.Black)

	for _, idx := range []int{-1, 3, 100} {
		err := tl.Set(idx)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("index %d: expected ErrOutOfRange, got %v", idx, err)
		}
		var re *RangeError
		if !errors.As(err, &re) || re.Index != idx || re.Len != 3 {
			t.Errorf("index %d: expected RangeError, got %#v", idx, err)
		}
		if tl.Index() != 1 {
			t.Errorf("cursor moved to %d after failed set", tl.Index())
		}
		if tl.Current().Canvas().Len() != 1 {
			t.Error("frame contents changed after failed set")
		}
	}

	if err := tl.Set(2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if tl.Label() != "Frame: 3 of 3" {
		t.Errorf("unexpected label %q", tl.Label())
	}
}

func TestRemove(t *testing.T) {
	tl := New()

	if _, err := tl.Remove(0); !errors.Is(err, ErrLastFrame) {
		t.Errorf("expected ErrLastFrame, got %v", err)
	}

	second := tl.Add(false)
	third := tl.Add(false)

	removed, err := tl.Remove(2)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if removed != third {
		t.Error("removed wrong frame")
	}
	if tl.Current() != second {
		t.Error("cursor should clamp to the new last frame")
	}

	tl.Set(1)
	if _, err := tl.Remove(0); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if tl.Current() != second || tl.Index() != 0 {
		t.Error("cursor should follow its frame when an earlier one is removed")
	}
	if _, err := tl.Frame(0); err != nil || tl.Len() != 1 {
		t.Errorf("expected a single frame left, got %d", tl.Len())
	}
	if _, err := tl.Remove(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestNextPrevWrap(t *testing.T) {
	tl := New()
	tl.Add(false)
	tl.Add(false)
	tl.Set(0)

	if tl.Prev() != 2 {
		t.Errorf("expected wrap to 2, got %d", tl.Index())
	}
	if tl.Next() != 0 {
		t.Errorf("expected wrap to 0, got %d", tl.Index())
	}
	if tl.Next() != 1 {
		t.Errorf("expected 1, got %d", tl.Index())
	}
}

func TestReplaceAndCanvases(t *testing.T) {
	tl := New()
	c := pixel.NewCanvas()
	c.Set(pixel.Coord{X: 4, Y: 4}, pixel.White)
	tl.Current().Replace(c)

	cs := tl.Canvases()
	if len(cs) != 1 || cs[0] != c {
		t.Error("expected replaced canvas")
	}

	tl.Current().Replace(nil)
	if tl.Current().Canvas() == nil || tl.Current().Canvas().Len() != 0 {
		t.Error("replacing with nil should install an empty canvas")
	}
}

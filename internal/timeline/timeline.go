package timeline

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/san-kum/pixelanim/internal/pixel"
)

// Frame is one step of the animation. It owns its canvas exclusively.
type Frame struct {
	ID     string
	canvas *pixel.Canvas
}

func newFrame(c *pixel.Canvas) *Frame {
	return &Frame{ID: uuid.NewString(), canvas: c}
}

func (f *Frame) Canvas() *pixel.Canvas { return f.canvas }

// Replace swaps in a new canvas, discarding the old one.
func (f *Frame) Replace(c *pixel.Canvas) {
	if c == nil {
		c = pixel.NewCanvas()
	}
	f.canvas = c
}

// Timeline is the ordered frame sequence plus the current-frame cursor.
// It always holds at least one frame.
type Timeline struct {
	frames []*Frame
	cursor int
}

// New returns a timeline holding a single empty frame.
func New() *Timeline {
	return &Timeline{frames: []*Frame{newFrame(pixel.NewCanvas())}}
}

// Add appends a frame and moves the cursor to it. With copyPrevious the
// new canvas is a clone of the current one, otherwise it starts empty.
func (t *Timeline) Add(copyPrevious bool) *Frame {
	c := pixel.NewCanvas()
	if copyPrevious && len(t.frames) > 0 {
		c = t.Current().Canvas().Clone()
	}
	f := newFrame(c)
	t.frames = append(t.frames, f)
	t.cursor = len(t.frames) - 1
	return f
}

// Set moves the cursor. Out-of-range indices leave the timeline untouched.
func (t *Timeline) Set(index int) error {
	if err := t.check(index); err != nil {
		return err
	}
	t.cursor = index
	return nil
}

// Remove deletes the frame at index. The cursor stays on the same frame
// when possible and is clamped otherwise.
func (t *Timeline) Remove(index int) (*Frame, error) {
	if err := t.check(index); err != nil {
		return nil, err
	}
	if len(t.frames) == 1 {
		return nil, ErrLastFrame
	}
	removed := t.frames[index]
	t.frames = append(t.frames[:index], t.frames[index+1:]...)
	if t.cursor > index || t.cursor >= len(t.frames) {
		t.cursor--
	}
	return removed, nil
}

func (t *Timeline) Current() *Frame { return t.frames[t.cursor] }
func (t *Timeline) Index() int      { return t.cursor }
func (t *Timeline) Len() int        { return len(t.frames) }

func (t *Timeline) Frame(index int) (*Frame, error) {
	if err := t.check(index); err != nil {
		return nil, err
	}
	return t.frames[index], nil
}

// Frames returns the sequence in playback order. The slice is a copy.
func (t *Timeline) Frames() []*Frame {
	out := make([]*Frame, len(t.frames))
	copy(out, t.frames)
	return out
}

// Canvases returns each frame's canvas in playback order.
func (t *Timeline) Canvases() []*pixel.Canvas {
	out := make([]*pixel.Canvas, len(t.frames))
	for i, f := range t.frames {
		out[i] = f.canvas
	}
	return out
}

// Next advances the cursor, wrapping to the first frame.
func (t *Timeline) Next() int {
	t.cursor = (t.cursor + 1) % len(t.frames)
	return t.cursor
}

// Prev moves the cursor back, wrapping to the last frame.
func (t *Timeline) Prev() int {
	t.cursor = (t.cursor - 1 + len(t.frames)) % len(t.frames)
	return t.cursor
}

// Label is the user-facing 1-based frame indicator.
func (t *Timeline) Label() string {
	return fmt.Sprintf("Frame: %d of %d", t.cursor+1, len(t.frames))
}

func (t *Timeline) check(index int) error {
	if index < 0 || index >= len(t.frames) {
		return &RangeError{Index: index, Len: len(t.frames)}
	}
	return nil
}

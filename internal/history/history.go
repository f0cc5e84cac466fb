// Package history implements linear undo/redo over whole-canvas snapshots.
//
// Every entry on either stack is an independent deep copy, so editing the
// live canvas after a save never reaches back into stored history.
package history

import "github.com/san-kum/pixelanim/internal/pixel"

// History holds the undo and redo stacks for one editing scope.
type History struct {
	undo  []*pixel.Canvas
	redo  []*pixel.Canvas
	limit int
}

// New returns an empty history. A limit of zero or less means unbounded;
// otherwise each stack keeps at most limit entries, dropping the oldest.
func New(limit int) *History {
	if limit < 0 {
		limit = 0
	}
	return &History{limit: limit}
}

// Save records the state of c just before it is mutated and invalidates
// any redo branch.
func (h *History) Save(c *pixel.Canvas) {
	h.undo = h.push(h.undo, c.Clone())
	clear(h.redo)
	h.redo = h.redo[:0]
}

// Undo returns the previous state. ok is false when there is nothing to
// undo, in which case the caller keeps its current canvas.
func (h *History) Undo(current *pixel.Canvas) (*pixel.Canvas, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	h.redo = h.push(h.redo, current.Clone())
	prev := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current *pixel.Canvas) (*pixel.Canvas, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	h.undo = h.push(h.undo, current.Clone())
	next := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	return next, true
}

func (h *History) Clear() {
	clear(h.undo)
	clear(h.redo)
	h.undo = h.undo[:0]
	h.redo = h.redo[:0]
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth reports the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.undo), len(h.redo) }

func (h *History) Limit() int { return h.limit }

func (h *History) push(stack []*pixel.Canvas, c *pixel.Canvas) []*pixel.Canvas {
	stack = append(stack, c)
	if h.limit > 0 && len(stack) > h.limit {
		drop := len(stack) - h.limit
		clear(stack[:drop])
		stack = stack[drop:]
	}
	return stack
}

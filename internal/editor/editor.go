// Package editor exposes the editing commands a front-end invokes: strokes,
// frame management, undo and redo. It owns the timeline and decides which
// history stack each command talks to.
package editor

import (
	"fmt"

	"github.com/san-kum/pixelanim/internal/history"
	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/paint"
	"github.com/san-kum/pixelanim/internal/pixel"
	"github.com/san-kum/pixelanim/internal/timeline"
)

// Scope selects how undo history relates to frames.
type Scope string

const (
	// ScopeFrame gives every frame its own undo/redo stacks.
	ScopeFrame Scope = "frame"
	// ScopeSession shares one history across frames and clears it when a
	// frame is added. Switching frames keeps it.
	ScopeSession Scope = "session"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeFrame, ScopeSession:
		return Scope(s), nil
	case "":
		return ScopeFrame, nil
	}
	return "", fmt.Errorf("editor: unknown history scope %q", s)
}

type Options struct {
	Scope Scope
	// Depth caps each undo/redo stack; zero means unbounded.
	Depth int
}

// Editor is not safe for concurrent use.
type Editor struct {
	tl       *timeline.Timeline
	opts     Options
	session  *history.History
	perFrame map[string]*history.History
}

func New(opts Options) *Editor {
	if opts.Scope == "" {
		opts.Scope = ScopeFrame
	}
	return &Editor{
		tl:       timeline.New(),
		opts:     opts,
		session:  history.New(opts.Depth),
		perFrame: make(map[string]*history.History),
	}
}

func (e *Editor) Scope() Scope { return e.opts.Scope }

// History returns the stack that undo and redo currently act on.
func (e *Editor) History() *history.History {
	if e.opts.Scope == ScopeSession {
		return e.session
	}
	id := e.tl.Current().ID
	h, ok := e.perFrame[id]
	if !ok {
		h = history.New(e.opts.Depth)
		e.perFrame[id] = h
	}
	return h
}

// ApplyStroke stamps the brush at center as one undo step.
func (e *Editor) ApplyStroke(b paint.Brush, center pixel.Coord) {
	paint.Stroke(e.Canvas(), e.History(), b, center)
	logging.Logger().Debug("stroke", "mode", b.Mode, "size", b.Size, "x", center.X, "y", center.Y)
}

// ApplyLine stamps the brush from one cell to another as one undo step.
func (e *Editor) ApplyLine(b paint.Brush, from, to pixel.Coord) {
	paint.Line(e.Canvas(), e.History(), b, from, to)
	logging.Logger().Debug("line", "mode", b.Mode, "from", from, "to", to)
}

// ApplyPoints stamps the brush at each center as one undo step.
func (e *Editor) ApplyPoints(b paint.Brush, centers []pixel.Coord) {
	paint.Points(e.Canvas(), e.History(), b, centers)
	logging.Logger().Debug("points", "mode", b.Mode, "count", len(centers))
}

// AddFrame appends a frame, selects it and starts a fresh undo history.
func (e *Editor) AddFrame(copyPrevious bool) *timeline.Frame {
	f := e.tl.Add(copyPrevious)
	if e.opts.Scope == ScopeSession {
		e.session.Clear()
	} else {
		e.perFrame[f.ID] = history.New(e.opts.Depth)
	}
	logging.Logger().Debug("frame added", "index", e.tl.Index(), "copy", copyPrevious, "frames", e.tl.Len())
	return f
}

// SelectFrame moves the cursor. It fails with timeline.ErrOutOfRange and
// changes nothing when index is invalid.
func (e *Editor) SelectFrame(index int) error {
	if err := e.tl.Set(index); err != nil {
		return err
	}
	logging.Logger().Debug("frame selected", "index", index)
	return nil
}

func (e *Editor) NextFrame() int { return e.tl.Next() }
func (e *Editor) PrevFrame() int { return e.tl.Prev() }

// RemoveFrame deletes a frame along with its history. A session-scoped
// history is cleared, since its snapshots may belong to the removed frame.
func (e *Editor) RemoveFrame(index int) error {
	f, err := e.tl.Remove(index)
	if err != nil {
		return err
	}
	if e.opts.Scope == ScopeSession {
		e.session.Clear()
	} else {
		delete(e.perFrame, f.ID)
	}
	logging.Logger().Debug("frame removed", "index", index, "frames", e.tl.Len())
	return nil
}

// Undo replaces the current canvas with the previous state. It reports
// false when there is nothing to undo.
func (e *Editor) Undo() bool {
	f := e.tl.Current()
	prev, ok := e.History().Undo(f.Canvas())
	if !ok {
		return false
	}
	f.Replace(prev)
	logging.Logger().Debug("undo", "frame", e.tl.Index())
	return true
}

func (e *Editor) Redo() bool {
	f := e.tl.Current()
	next, ok := e.History().Redo(f.Canvas())
	if !ok {
		return false
	}
	f.Replace(next)
	logging.Logger().Debug("redo", "frame", e.tl.Index())
	return true
}

func (e *Editor) CanUndo() bool { return e.History().CanUndo() }
func (e *Editor) CanRedo() bool { return e.History().CanRedo() }

func (e *Editor) Current() *timeline.Frame  { return e.tl.Current() }
func (e *Editor) Canvas() *pixel.Canvas     { return e.tl.Current().Canvas() }
func (e *Editor) Index() int                { return e.tl.Index() }
func (e *Editor) Len() int                  { return e.tl.Len() }
func (e *Editor) Label() string             { return e.tl.Label() }
func (e *Editor) Frames() []*timeline.Frame { return e.tl.Frames() }

// Sources returns every frame's canvas, in order, for read-only consumers.
func (e *Editor) Sources() []pixel.Source {
	cs := e.tl.Canvases()
	out := make([]pixel.Source, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

package editor

import (
	"context"
	"time"

	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/timeline"
)

// DefaultInterval is the pause between frames during playback.
const DefaultInterval = 300 * time.Millisecond

// Playback walks the timeline one frame per Step. Event loops call Step
// from their own timer so input stays responsive; Stop ends it early.
// Playback never touches undo history.
type Playback struct {
	e       *Editor
	next    int
	playing bool
	Loop    bool
}

func (e *Editor) NewPlayback() *Playback {
	return &Playback{e: e}
}

// Start rewinds to the first frame and enters the playing state.
func (p *Playback) Start() {
	p.next = 0
	p.playing = true
}

func (p *Playback) Stop() { p.playing = false }

func (p *Playback) Playing() bool { return p.playing }

// Step makes the next frame current and returns it. ok is false once the
// pass is over (or Stop was called). Without Loop, playing turns false as
// soon as the last frame is shown.
func (p *Playback) Step() (index int, f *timeline.Frame, ok bool) {
	if !p.playing {
		return -1, nil, false
	}
	n := p.e.tl.Len()
	if p.next >= n {
		if !p.Loop {
			p.playing = false
			return -1, nil, false
		}
		p.next = 0
	}
	index = p.next
	if err := p.e.tl.Set(index); err != nil {
		p.playing = false
		return -1, nil, false
	}
	p.next++
	if p.next >= n && !p.Loop {
		p.playing = false
	}
	return index, p.e.tl.Current(), true
}

// Play runs one pass over every frame, calling visit after each frame
// becomes current and waiting interval between frames. Cancelling ctx
// stops playback and returns ctx.Err(); the cursor stays on the last
// visited frame.
func (e *Editor) Play(ctx context.Context, interval time.Duration, visit func(index int, f *timeline.Frame)) error {
	p := e.NewPlayback()
	p.Start()
	logging.Logger().Debug("playback started", "frames", e.tl.Len(), "interval", interval)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		index, f, ok := p.Step()
		if !ok {
			return nil
		}
		if visit != nil {
			visit(index, f)
		}
		if !p.Playing() {
			logging.Logger().Debug("playback finished", "index", index)
			return nil
		}

		if timer == nil {
			timer = time.NewTimer(interval)
		} else {
			timer.Reset(interval)
		}
		select {
		case <-ctx.Done():
			p.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

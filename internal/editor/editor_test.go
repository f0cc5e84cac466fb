package editor_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pixelanim/internal/editor"
	"github.com/san-kum/pixelanim/internal/paint"
	"github.com/san-kum/pixelanim/internal/pixel"
	"github.com/san-kum/pixelanim/internal/timeline"
)

var (
	red  = pixel.RGB(255, 0, 0)
	blue = pixel.RGB(0, 0, 255)
)

func dot(col pixel.Color) paint.Brush {
	return paint.Brush{Size: 1, Mode: paint.Paint, Color: col}
}

var _ = Describe("Editor", func() {
	var ed *editor.Editor

	BeforeEach(func() {
		ed = editor.New(editor.Options{})
	})

	It("starts with one empty frame and frame-scoped history", func() {
		Expect(ed.Len()).To(Equal(1))
		Expect(ed.Index()).To(Equal(0))
		Expect(ed.Canvas().Len()).To(BeZero())
		Expect(ed.Scope()).To(Equal(editor.ScopeFrame))
		Expect(ed.Undo()).To(BeFalse())
		Expect(ed.Redo()).To(BeFalse())
	})

	It("undoes a whole brush stroke in one step", func() {
		ed.ApplyStroke(paint.Brush{Size: 3, Color: red}, pixel.Coord{X: 10, Y: 10})
		Expect(ed.Canvas().Len()).To(Equal(9))

		Expect(ed.Undo()).To(BeTrue())
		Expect(ed.Canvas().Len()).To(BeZero())
		Expect(ed.Redo()).To(BeTrue())
		Expect(ed.Canvas().Len()).To(Equal(9))
	})

	It("undoes a line as one step", func() {
		ed.ApplyLine(dot(red), pixel.Coord{X: 0, Y: 0}, pixel.Coord{X: 9, Y: 0})
		Expect(ed.Canvas().Len()).To(Equal(10))
		Expect(ed.Undo()).To(BeTrue())
		Expect(ed.Canvas().Len()).To(BeZero())
		Expect(ed.CanUndo()).To(BeFalse())
		Expect(ed.CanRedo()).To(BeTrue())
	})

	It("invalidates redo after a fresh stroke", func() {
		ed.ApplyStroke(dot(red), pixel.Coord{X: 1, Y: 1})
		Expect(ed.Undo()).To(BeTrue())
		ed.ApplyStroke(dot(blue), pixel.Coord{X: 2, Y: 2})
		Expect(ed.Redo()).To(BeFalse())
	})

	Describe("AddFrame", func() {
		BeforeEach(func() {
			ed.ApplyStroke(dot(red), pixel.Coord{X: 1, Y: 1})
			ed.ApplyStroke(dot(pixel.Transparent), pixel.Coord{X: 2, Y: 1})
		})

		It("creates an empty frame without copy", func() {
			f := ed.AddFrame(false)
			Expect(ed.Current()).To(BeIdenticalTo(f))
			Expect(f.Canvas().Len()).To(BeZero())
			Expect(ed.Label()).To(Equal("Frame: 2 of 2"))
		})

		It("copies the current frame by value", func() {
			src := ed.Canvas()
			f := ed.AddFrame(true)
			Expect(f.Canvas().Equal(src)).To(BeTrue())

			ed.ApplyStroke(dot(blue), pixel.Coord{X: 1, Y: 1})
			got, _ := src.Get(pixel.Coord{X: 1, Y: 1})
			Expect(got).To(Equal(red))
		})

		It("starts the new frame with no undo history", func() {
			ed.AddFrame(true)
			Expect(ed.Undo()).To(BeFalse())
		})
	})

	Describe("frame-scoped history", func() {
		It("keeps each frame's stacks separate across switches", func() {
			ed.ApplyStroke(dot(red), pixel.Coord{X: 0, Y: 0})
			ed.AddFrame(false)
			ed.ApplyStroke(dot(blue), pixel.Coord{X: 5, Y: 5})

			Expect(ed.SelectFrame(0)).To(Succeed())
			Expect(ed.Undo()).To(BeTrue())
			Expect(ed.Canvas().Len()).To(BeZero())

			Expect(ed.SelectFrame(1)).To(Succeed())
			Expect(ed.Canvas().Len()).To(Equal(1))
			Expect(ed.Undo()).To(BeTrue())
			Expect(ed.Canvas().Len()).To(BeZero())
			Expect(ed.Undo()).To(BeFalse())
		})

		It("forgets a removed frame's history", func() {
			ed.AddFrame(false)
			ed.ApplyStroke(dot(red), pixel.Coord{X: 0, Y: 0})
			Expect(ed.RemoveFrame(1)).To(Succeed())
			Expect(ed.Len()).To(Equal(1))
			Expect(ed.Undo()).To(BeFalse())
		})
	})

	Describe("session-scoped history", func() {
		BeforeEach(func() {
			ed = editor.New(editor.Options{Scope: editor.ScopeSession})
		})

		It("clears on AddFrame", func() {
			ed.ApplyStroke(dot(red), pixel.Coord{X: 0, Y: 0})
			ed.AddFrame(true)
			Expect(ed.Undo()).To(BeFalse())
		})

		It("keeps the shared stack across SelectFrame", func() {
			ed.AddFrame(false)
			ed.ApplyStroke(dot(red), pixel.Coord{X: 3, Y: 3})
			Expect(ed.SelectFrame(0)).To(Succeed())
			Expect(ed.CanUndo()).To(BeTrue())
		})

		It("clears on RemoveFrame so undo cannot touch another frame", func() {
			ed.ApplyStroke(dot(blue), pixel.Coord{X: 1, Y: 1})
			ed.AddFrame(false)
			ed.ApplyStroke(dot(red), pixel.Coord{X: 3, Y: 3})
			Expect(ed.CanUndo()).To(BeTrue())

			Expect(ed.RemoveFrame(1)).To(Succeed())
			Expect(ed.Index()).To(Equal(0))
			Expect(ed.CanUndo()).To(BeFalse())
			Expect(ed.Undo()).To(BeFalse())

			c, ok := ed.Canvas().Get(pixel.Coord{X: 1, Y: 1})
			Expect(ok).To(BeTrue())
			Expect(c).To(Equal(blue))
			Expect(ed.Canvas().Len()).To(Equal(1))
		})
	})

	Describe("SelectFrame", func() {
		It("rejects out of range indices without side effects", func() {
			ed.AddFrame(false)
			ed.ApplyStroke(dot(red), pixel.Coord{X: 0, Y: 0})

			for _, idx := range []int{-1, 2} {
				err := ed.SelectFrame(idx)
				Expect(err).To(MatchError(timeline.ErrOutOfRange))
				Expect(ed.Index()).To(Equal(1))
				Expect(ed.Canvas().Len()).To(Equal(1))
			}
		})
	})

	Describe("Play", func() {
		var colors []pixel.Color

		BeforeEach(func() {
			colors = []pixel.Color{red, pixel.RGB(0, 255, 0), blue}
			ed.ApplyStroke(dot(colors[0]), pixel.Coord{})
			ed.AddFrame(false)
			ed.ApplyStroke(dot(colors[1]), pixel.Coord{})
			ed.AddFrame(false)
			ed.ApplyStroke(dot(colors[2]), pixel.Coord{})
			Expect(ed.SelectFrame(1)).To(Succeed())
		})

		It("visits every frame once in order and ends on the last", func() {
			var seen []pixel.Color
			var indices []int
			err := ed.Play(context.Background(), time.Millisecond, func(i int, f *timeline.Frame) {
				indices = append(indices, i)
				c, _ := f.Canvas().Get(pixel.Coord{})
				seen = append(seen, c)
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(indices).To(Equal([]int{0, 1, 2}))
			Expect(seen).To(Equal(colors))
			Expect(ed.Index()).To(Equal(2))
		})

		It("shows the first frame without waiting", func() {
			single := editor.New(editor.Options{})
			start := time.Now()
			visits := 0
			Expect(single.Play(context.Background(), time.Hour, func(int, *timeline.Frame) {
				visits++
			})).To(Succeed())
			Expect(visits).To(Equal(1))
			Expect(time.Since(start)).To(BeNumerically("<", time.Second))
		})

		It("leaves history alone", func() {
			undoBefore, _ := ed.History().Depth()
			Expect(ed.Play(context.Background(), 0, nil)).To(Succeed())
			Expect(ed.SelectFrame(1)).To(Succeed())
			undoAfter, _ := ed.History().Depth()
			Expect(undoAfter).To(Equal(undoBefore))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			visits := 0
			err := ed.Play(ctx, time.Hour, func(i int, f *timeline.Frame) {
				visits++
				cancel()
			})
			Expect(err).To(MatchError(context.Canceled))
			Expect(visits).To(Equal(1))
			Expect(ed.Index()).To(Equal(0))
		})
	})

	Describe("Playback", func() {
		BeforeEach(func() {
			ed.AddFrame(false)
		})

		It("steps through once and stops", func() {
			p := ed.NewPlayback()
			p.Start()
			Expect(p.Playing()).To(BeTrue())

			i, _, ok := p.Step()
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(0))
			i, _, ok = p.Step()
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(1))
			Expect(p.Playing()).To(BeFalse())

			_, _, ok = p.Step()
			Expect(ok).To(BeFalse())
		})

		It("wraps when looping until stopped", func() {
			p := ed.NewPlayback()
			p.Loop = true
			p.Start()
			var got []int
			for n := 0; n < 5; n++ {
				i, _, ok := p.Step()
				Expect(ok).To(BeTrue())
				got = append(got, i)
			}
			Expect(got).To(Equal([]int{0, 1, 0, 1, 0}))

			p.Stop()
			_, _, ok := p.Step()
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("ParseScope", func() {
	DescribeTable("accepts known scopes",
		func(in string, want editor.Scope) {
			got, err := editor.ParseScope(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("frame", "frame", editor.ScopeFrame),
		Entry("session", "session", editor.ScopeSession),
		Entry("empty defaults to frame", "", editor.ScopeFrame),
	)

	It("rejects anything else", func() {
		_, err := editor.ParseScope("global")
		Expect(err).To(HaveOccurred())
	})
})

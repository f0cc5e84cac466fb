package history_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pixelanim/internal/history"
	"github.com/san-kum/pixelanim/internal/pixel"
)

// edit mimics a stroke: snapshot first, then mutate in place.
func edit(h *history.History, c *pixel.Canvas, at pixel.Coord, col pixel.Color) {
	h.Save(c)
	c.Set(at, col)
}

var _ = Describe("History", func() {
	var (
		h      *history.History
		canvas *pixel.Canvas
	)

	BeforeEach(func() {
		h = history.New(0)
		canvas = pixel.NewCanvas()
	})

	Context("when empty", func() {
		It("reports nothing to undo or redo", func() {
			got, ok := h.Undo(canvas)
			Expect(ok).To(BeFalse())
			Expect(got).To(BeNil())

			got, ok = h.Redo(canvas)
			Expect(ok).To(BeFalse())
			Expect(got).To(BeNil())
			Expect(h.CanUndo()).To(BeFalse())
			Expect(h.CanRedo()).To(BeFalse())
		})
	})

	DescribeTable("round-trips a single stroke",
		func(prior *pixel.Color, col pixel.Color) {
			at := pixel.Coord{X: -7, Y: 12}
			if prior != nil {
				canvas.Set(at, *prior)
			}
			before := canvas.Clone()

			edit(h, canvas, at, col)
			restored, ok := h.Undo(canvas)
			Expect(ok).To(BeTrue())
			Expect(restored.Equal(before)).To(BeTrue())

			got, painted := restored.Get(at)
			Expect(painted).To(Equal(prior != nil))
			if prior != nil {
				Expect(got).To(Equal(*prior))
			}
		},
		Entry("unpainted to opaque", nil, pixel.RGB(200, 10, 10)),
		Entry("unpainted to transparent", nil, pixel.Transparent),
		Entry("transparent to opaque", &pixel.Transparent, pixel.Black),
		Entry("opaque to transparent", &pixel.White, pixel.Transparent),
	)

	It("does not let later edits leak into a stored snapshot", func() {
		canvas.Set(pixel.Coord{X: 1, Y: 1}, pixel.White)
		h.Save(canvas)
		canvas.Set(pixel.Coord{X: 1, Y: 1}, pixel.Black)
		canvas.Set(pixel.Coord{X: 2, Y: 2}, pixel.Black)

		prev, ok := h.Undo(canvas)
		Expect(ok).To(BeTrue())
		Expect(prev.Len()).To(Equal(1))
		got, _ := prev.Get(pixel.Coord{X: 1, Y: 1})
		Expect(got).To(Equal(pixel.White))
	})

	It("treats undo and redo as exact inverses over a stroke sequence", func() {
		const n = 6
		states := []*pixel.Canvas{canvas.Clone()}
		for i := 0; i < n; i++ {
			edit(h, canvas, pixel.Coord{X: i, Y: i % 2}, pixel.RGB(uint8(i*40), 0, 0))
			states = append(states, canvas.Clone())
		}

		current := canvas
		for i := n - 1; i >= 0; i-- {
			prev, ok := h.Undo(current)
			Expect(ok).To(BeTrue())
			Expect(prev.Equal(states[i])).To(BeTrue(), "undo step to state %d", i)
			current = prev
		}
		_, ok := h.Undo(current)
		Expect(ok).To(BeFalse())

		for i := 1; i <= n; i++ {
			next, ok := h.Redo(current)
			Expect(ok).To(BeTrue())
			Expect(next.Equal(states[i])).To(BeTrue(), "redo step to state %d", i)
			current = next
		}
		_, ok = h.Redo(current)
		Expect(ok).To(BeFalse())
	})

	It("drops the redo branch on a new edit", func() {
		edit(h, canvas, pixel.Coord{X: 0, Y: 0}, pixel.Black)
		edit(h, canvas, pixel.Coord{X: 1, Y: 0}, pixel.Black)

		prev, ok := h.Undo(canvas)
		Expect(ok).To(BeTrue())
		Expect(h.CanRedo()).To(BeTrue())

		canvas = prev
		edit(h, canvas, pixel.Coord{X: 5, Y: 5}, pixel.White)

		_, ok = h.Redo(canvas)
		Expect(ok).To(BeFalse())
	})

	It("clears both stacks", func() {
		edit(h, canvas, pixel.Coord{X: 0, Y: 0}, pixel.Black)
		edit(h, canvas, pixel.Coord{X: 1, Y: 0}, pixel.Black)
		prev, _ := h.Undo(canvas)

		h.Clear()
		undo, redo := h.Depth()
		Expect(undo).To(BeZero())
		Expect(redo).To(BeZero())
		_, ok := h.Redo(prev)
		Expect(ok).To(BeFalse())
	})

	Context("with a depth limit", func() {
		BeforeEach(func() {
			h = history.New(3)
		})

		It("keeps only the most recent snapshots", func() {
			for i := 0; i < 5; i++ {
				edit(h, canvas, pixel.Coord{X: i, Y: 0}, pixel.Black)
			}
			undo, _ := h.Depth()
			Expect(undo).To(Equal(3))

			current := canvas
			for i := 0; i < 3; i++ {
				prev, ok := h.Undo(current)
				Expect(ok).To(BeTrue())
				current = prev
			}
			// the oldest reachable state still holds the first two strokes
			Expect(current.Len()).To(Equal(2))
			_, ok := h.Undo(current)
			Expect(ok).To(BeFalse())
		})

		It("normalises negative limits to unbounded", func() {
			Expect(history.New(-4).Limit()).To(BeZero())
		})
	})
})

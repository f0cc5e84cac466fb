package gui

import "github.com/san-kum/pixelanim/internal/pixel"

const (
	topBar    = 48
	bottomBar = 72
	margin    = 16
	swatchPx  = 24
)

// layout maps between window pixels and canvas cells.
type layout struct {
	region pixel.Rect
	cellPx int
	// originX and originY are the window position of region.Min.
	originX, originY int
}

func newLayout(region pixel.Rect, cellPx int) layout {
	if cellPx < 1 {
		cellPx = 1
	}
	return layout{region: region, cellPx: cellPx, originX: margin, originY: topBar}
}

func (l layout) windowSize() (w, h int) {
	w = 2*margin + l.region.Dx()*l.cellPx
	h = topBar + l.region.Dy()*l.cellPx + bottomBar
	return w, h
}

// cellAt returns the cell under window point (x, y).
func (l layout) cellAt(x, y float32) (pixel.Coord, bool) {
	dx, dy := int(x)-l.originX, int(y)-l.originY
	if dx < 0 || dy < 0 {
		return pixel.Coord{}, false
	}
	c := pixel.Coord{X: l.region.Min.X + dx/l.cellPx, Y: l.region.Min.Y + dy/l.cellPx}
	return c, l.region.Contains(c)
}

// cellRect is the window rectangle of a cell.
func (l layout) cellRect(c pixel.Coord) (x, y, w, h int32) {
	return int32(l.originX + (c.X-l.region.Min.X)*l.cellPx),
		int32(l.originY + (c.Y-l.region.Min.Y)*l.cellPx),
		int32(l.cellPx), int32(l.cellPx)
}

func (l layout) paletteY() int {
	return l.originY + l.region.Dy()*l.cellPx + 12
}

// swatchAt returns the palette entry under (x, y), if any.
func (l layout) swatchAt(x, y float32, n int) (int, bool) {
	top := l.paletteY()
	if int(y) < top || int(y) >= top+swatchPx || int(x) < margin {
		return 0, false
	}
	i := (int(x) - margin) / (swatchPx + 4)
	if i >= n {
		return 0, false
	}
	return i, true
}

func (l layout) swatchRect(i int) (x, y, w, h int32) {
	return int32(margin + i*(swatchPx+4)), int32(l.paletteY()), swatchPx, swatchPx
}

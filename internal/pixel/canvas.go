package pixel

import (
	"math"
	"sort"
)

// Coord is a grid position. The grid has no bounds.
type Coord struct {
	X, Y int
}

func (c Coord) Add(dx, dy int) Coord { return Coord{c.X + dx, c.Y + dy} }

// Cell is one painted position.
type Cell struct {
	At    Coord
	Color Color
}

// Rect is a half-open cell rectangle [Min, Max).
type Rect struct {
	Min, Max Coord
}

func NewRect(x, y, w, h int) Rect {
	return Rect{Min: Coord{x, y}, Max: Coord{x + w, y + h}}
}

func (r Rect) Dx() int { return r.Max.X - r.Min.X }
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

func (r Rect) Empty() bool { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }

func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Min.X && c.X < r.Max.X && c.Y >= r.Min.Y && c.Y < r.Max.Y
}

func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Min: Coord{min(r.Min.X, o.Min.X), min(r.Min.Y, o.Min.Y)},
		Max: Coord{max(r.Max.X, o.Max.X), max(r.Max.Y, o.Max.Y)},
	}
}

// Source is the read path used by renderers and exporters.
type Source interface {
	Cells() []Cell
	Bounds() (Rect, bool)
}

// Canvas maps coordinates to colors. A coordinate with no entry is
// unpainted; an entry holding Transparent is still painted.
type Canvas struct {
	cells map[Coord]Color
}

func NewCanvas() *Canvas {
	return &Canvas{cells: make(map[Coord]Color)}
}

func (c *Canvas) Get(at Coord) (Color, bool) {
	col, ok := c.cells[at]
	return col, ok
}

func (c *Canvas) Set(at Coord, col Color) {
	if c.cells == nil {
		c.cells = make(map[Coord]Color)
	}
	c.cells[at] = col
}

// Remove deletes the entry at at. Missing entries are ignored.
func (c *Canvas) Remove(at Coord) {
	delete(c.cells, at)
}

func (c *Canvas) Len() int { return len(c.cells) }

func (c *Canvas) Clear() {
	clear(c.cells)
}

// Cells returns every painted cell in row-major order (Y, then X).
func (c *Canvas) Cells() []Cell {
	out := make([]Cell, 0, len(c.cells))
	for at, col := range c.cells {
		out = append(out, Cell{At: at, Color: col})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Y != out[j].At.Y {
			return out[i].At.Y < out[j].At.Y
		}
		return out[i].At.X < out[j].At.X
	})
	return out
}

// Bounds returns the smallest rectangle holding every painted cell.
// ok is false for an empty canvas. Max saturates at math.MaxInt, so cells
// on that row or column fall outside the rectangle.
func (c *Canvas) Bounds() (r Rect, ok bool) {
	for at := range c.cells {
		if !ok {
			r = Rect{Min: at, Max: Coord{after(at.X), after(at.Y)}}
			ok = true
			continue
		}
		r.Min.X = min(r.Min.X, at.X)
		r.Min.Y = min(r.Min.Y, at.Y)
		r.Max.X = max(r.Max.X, after(at.X))
		r.Max.Y = max(r.Max.Y, after(at.Y))
	}
	return r, ok
}

func after(v int) int {
	if v == math.MaxInt {
		return v
	}
	return v + 1
}

// Clone returns a deep copy that shares no storage with c.
func (c *Canvas) Clone() *Canvas {
	cp := make(map[Coord]Color, len(c.cells))
	for at, col := range c.cells {
		cp[at] = col
	}
	return &Canvas{cells: cp}
}

// Equal reports whether both canvases hold the same cell set.
func (c *Canvas) Equal(o *Canvas) bool {
	if c.Len() != o.Len() {
		return false
	}
	for at, col := range c.cells {
		if oc, ok := o.cells[at]; !ok || oc != col {
			return false
		}
	}
	return true
}

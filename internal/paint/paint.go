// Package paint turns brush input into canvas mutations. Each call is a
// single undo unit: the canvas is snapshotted once, before anything changes.
package paint

import (
	"fmt"

	"github.com/san-kum/pixelanim/internal/pixel"
)

type Mode int

const (
	Paint Mode = iota
	Erase
)

func (m Mode) String() string {
	switch m {
	case Paint:
		return "paint"
	case Erase:
		return "erase"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Snapshotter receives the pre-mutation canvas state.
type Snapshotter interface {
	Save(c *pixel.Canvas)
}

// Brush is a square stamp. Size N covers offsets -N/2..N/2 on both axes,
// so even sizes behave like the next odd size and N <= 1 is a single cell.
type Brush struct {
	Size  int
	Mode  Mode
	Color pixel.Color
}

func (b Brush) radius() int {
	// truncating division keeps negative sizes at radius 0
	r := b.Size / 2
	if r < 0 {
		return 0
	}
	return r
}

// Footprint lists the cells the brush touches when centered on at.
func (b Brush) Footprint(at pixel.Coord) []pixel.Coord {
	r := b.radius()
	out := make([]pixel.Coord, 0, (2*r+1)*(2*r+1))
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			out = append(out, at.Add(dx, dy))
		}
	}
	return out
}

// Stroke applies the brush once at center.
func Stroke(c *pixel.Canvas, s Snapshotter, b Brush, center pixel.Coord) {
	if s != nil {
		s.Save(c)
	}
	b.stamp(c, center)
}

// Line stamps the brush along a Bresenham line from a to b inclusive.
// The whole line is one undo unit.
func Line(c *pixel.Canvas, s Snapshotter, b Brush, from, to pixel.Coord) {
	Points(c, s, b, LinePoints(from, to))
}

// Points stamps the brush at every center as a single undo unit.
func Points(c *pixel.Canvas, s Snapshotter, b Brush, centers []pixel.Coord) {
	if s != nil {
		s.Save(c)
	}
	for _, at := range centers {
		b.stamp(c, at)
	}
}

func (b Brush) stamp(c *pixel.Canvas, center pixel.Coord) {
	for _, at := range b.Footprint(center) {
		if b.Mode == Erase {
			c.Remove(at)
		} else {
			c.Set(at, b.Color)
		}
	}
}

// LinePoints walks the integer line between two cells.
func LinePoints(from, to pixel.Coord) []pixel.Coord {
	x0, y0, x1, y1 := from.X, from.Y, to.X, to.Y
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	pts := make([]pixel.Coord, 0, max(dx, dy)+1)
	for {
		pts = append(pts, pixel.Coord{X: x0, Y: y0})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
	return pts
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

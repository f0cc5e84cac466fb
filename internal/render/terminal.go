package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pixelanim/internal/pixel"
)

// Braille dot bits for a 2x4 cell, indexed [row][col].
var brailleMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Terminal draws region with the upper half block, two cells per character
// row. When showCursor is set the cell under cursor is drawn in mark.
func Terminal(src pixel.Source, region pixel.Rect, bg pixel.Color, cursor pixel.Coord, showCursor bool, mark pixel.Color) string {
	if region.Empty() {
		return ""
	}
	bg.A = 255
	lookup := make(map[pixel.Coord]pixel.Color)
	for _, cell := range src.Cells() {
		if region.Contains(cell.At) {
			lookup[cell.At] = Over(cell.Color, bg)
		}
	}
	at := func(c pixel.Coord) pixel.Color {
		if showCursor && c == cursor {
			return mark
		}
		if col, ok := lookup[c]; ok {
			return col
		}
		return bg
	}

	var b strings.Builder
	for y := region.Min.Y; y < region.Max.Y; y += 2 {
		for x := region.Min.X; x < region.Max.X; x++ {
			top := at(pixel.Coord{X: x, Y: y})
			bottom := bg
			if y+1 < region.Max.Y {
				bottom = at(pixel.Coord{X: x, Y: y + 1})
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(solid(top))).
				Background(lipgloss.Color(solid(bottom)))
			b.WriteString(style.Render("▀"))
		}
		if y+2 < region.Max.Y {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Braille draws a monochrome thumbnail of region, eight cells per
// character. Any painted cell sets its dot.
func Braille(src pixel.Source, region pixel.Rect) string {
	if region.Empty() {
		return ""
	}
	w := (region.Dx() + 1) / 2
	h := (region.Dy() + 3) / 4
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(rune(brailleBase)), w))
	}
	for _, cell := range src.Cells() {
		if !region.Contains(cell.At) {
			continue
		}
		x := cell.At.X - region.Min.X
		y := cell.At.Y - region.Min.Y
		grid[y/4][x/2] |= brailleMap[y%4][x%2]
	}

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func solid(c pixel.Color) string {
	c.A = 255
	return c.Hex()[:7]
}

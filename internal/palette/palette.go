// Package palette builds the swatches offered by the editors.
package palette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pixelanim/internal/pixel"
)

// Generate returns n fully saturated colors with evenly spaced hues,
// starting at red.
func Generate(n int) []pixel.Color {
	if n <= 0 {
		return nil
	}
	out := make([]pixel.Color, n)
	step := 360.0 / float64(n)
	for i := range out {
		r, g, b := colorful.Hsv(float64(i)*step, 1, 1).RGB255()
		out[i] = pixel.RGB(r, g, b)
	}
	return out
}

// Default is black and white followed by n generated hues.
func Default(n int) []pixel.Color {
	return append([]pixel.Color{pixel.Black, pixel.White}, Generate(n)...)
}

// Lighten blends c toward white by t in CIE L*a*b* space. Alpha is kept.
func Lighten(c pixel.Color, t float64) pixel.Color {
	return blend(c, pixel.White, t)
}

// Darken blends c toward black by t in CIE L*a*b* space. Alpha is kept.
func Darken(c pixel.Color, t float64) pixel.Color {
	return blend(c, pixel.Black, t)
}

func blend(c, to pixel.Color, t float64) pixel.Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return pixel.RGBA(to.R, to.G, to.B, c.A)
	}
	from, _ := colorful.MakeColor(opaque(c))
	target, _ := colorful.MakeColor(opaque(to))
	r, g, b := from.BlendLab(target, t).Clamped().RGB255()
	return pixel.RGBA(r, g, b, c.A)
}

func opaque(c pixel.Color) color.NRGBA {
	n := c.NRGBA()
	n.A = 255
	return n
}

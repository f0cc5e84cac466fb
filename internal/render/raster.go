// Package render turns frame sources into images and terminal text.
package render

import (
	"image"
	"image/draw"

	"github.com/san-kum/pixelanim/internal/pixel"
	xdraw "golang.org/x/image/draw"
)

// Over composites c onto an opaque background.
func Over(c, bg pixel.Color) pixel.Color {
	if c.A == 255 {
		return c
	}
	a := uint32(c.A)
	mix := func(f, b uint8) uint8 {
		return uint8((uint32(f)*a + uint32(b)*(255-a) + 127) / 255)
	}
	return pixel.RGB(mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B))
}

// Region picks the area to render: r itself when it is non-empty, otherwise
// the union of the sources' bounds. ok is false when nothing is painted and
// no region was given.
func Region(r pixel.Rect, sources ...pixel.Source) (pixel.Rect, bool) {
	if !r.Empty() {
		return r, true
	}
	var (
		out   pixel.Rect
		found bool
	)
	for _, s := range sources {
		b, ok := s.Bounds()
		if !ok {
			continue
		}
		if !found {
			out, found = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, found
}

// Rasterize draws region of src at scale device pixels per cell on an
// opaque bg. Cells outside the region are skipped.
func Rasterize(src pixel.Source, region pixel.Rect, scale int, bg pixel.Color) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := max(region.Dx(), 0), max(region.Dy(), 0)
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	bgOpaque := bg
	bgOpaque.A = 255
	draw.Draw(small, small.Bounds(), image.NewUniform(bgOpaque.NRGBA()), image.Point{}, draw.Src)

	for _, cell := range src.Cells() {
		if !region.Contains(cell.At) {
			continue
		}
		c := Over(cell.Color, bgOpaque)
		small.Set(cell.At.X-region.Min.X, cell.At.Y-region.Min.Y, c.NRGBA())
	}
	if scale == 1 {
		return small
	}

	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return dst
}

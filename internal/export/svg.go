package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/pixelanim/internal/pixel"
)

// SVG renders one frame as a grid of rects, one per painted cell inside the
// region. Translucent cells keep their alpha as fill-opacity.
func SVG(src pixel.Source, o Options) (string, error) {
	o = o.withDefaults()
	region, err := frameRegion(o, src)
	if err != nil {
		return "", err
	}
	s := o.Scale
	width, height := region.Dx()*s, region.Dy()*s

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, o.Background.Hex()))

	for _, c := range src.Cells() {
		if !region.Contains(c.At) {
			continue
		}
		x := (c.At.X - region.Min.X) * s
		y := (c.At.Y - region.Min.Y) * s
		fill := c.Color
		fill.A = 255
		if c.Color.A == 255 {
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x, y, s, s, fill.Hex()))
			continue
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" fill-opacity="%.3f"/>
`, x, y, s, s, fill.Hex(), float64(c.Color.A)/255))
	}

	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

func WriteSVG(path string, src pixel.Source, o Options) error {
	doc, err := SVG(src, o)
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, doc)
		return err
	})
}

package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/pixel"
)

// GIF encodes the sources as a looping animation, one frame each.
func GIF(ctx context.Context, w io.Writer, sources []pixel.Source, o Options) error {
	o = o.withDefaults()
	images, region, err := Rasterize(ctx, sources, o)
	if err != nil {
		return err
	}

	pal, exact := buildPalette(images)
	delay := int(o.Delay.Milliseconds() / 10)
	anim := gif.GIF{LoopCount: 0}
	for _, img := range images {
		p := image.NewPaletted(img.Bounds(), pal)
		if exact {
			draw.Draw(p, p.Bounds(), img, image.Point{}, draw.Src)
		} else {
			draw.FloydSteinberg.Draw(p, p.Bounds(), img, image.Point{})
		}
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("export: encode gif: %w", err)
	}
	logging.Logger().Info("gif exported", "frames", len(images), "region", fmt.Sprint(region), "scale", o.Scale, "exact_palette", exact)
	return nil
}

// WriteGIF creates path and writes the animation to it.
func WriteGIF(ctx context.Context, path string, sources []pixel.Source, o Options) error {
	return writeFile(path, func(w io.Writer) error {
		return GIF(ctx, w, sources, o)
	})
}

// buildPalette collects the distinct colors of all images. When there are
// more than a GIF can hold it falls back to Plan 9 with dithering.
func buildPalette(images []*image.RGBA) (color.Palette, bool) {
	seen := make(map[color.RGBA]struct{})
	var pal color.Palette
	for _, img := range images {
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := img.RGBAAt(x, y)
				if _, ok := seen[c]; ok {
					continue
				}
				if len(seen) == 256 {
					return palette.Plan9, false
				}
				seen[c] = struct{}{}
				pal = append(pal, c)
			}
		}
	}
	return pal, true
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

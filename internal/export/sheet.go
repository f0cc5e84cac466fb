package export

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/pixel"
)

// SpriteSheet lays the frames out left to right, top to bottom, in a grid
// of columns and encodes it as PNG. columns <= 0 puts every frame on one row.
func SpriteSheet(ctx context.Context, w io.Writer, sources []pixel.Source, columns int, o Options) error {
	images, _, err := Rasterize(ctx, sources, o)
	if err != nil {
		return err
	}
	sheet := Sheet(images, columns)
	if err := png.Encode(w, sheet); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	b := sheet.Bounds()
	logging.Logger().Info("sprite sheet exported", "frames", len(images), "width", b.Dx(), "height", b.Dy())
	return nil
}

func WriteSpriteSheet(ctx context.Context, path string, sources []pixel.Source, columns int, o Options) error {
	return writeFile(path, func(w io.Writer) error {
		return SpriteSheet(ctx, w, sources, columns, o)
	})
}

// Sheet tiles equally sized images into one.
func Sheet(images []*image.RGBA, columns int) *image.RGBA {
	if len(images) == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	if columns <= 0 || columns > len(images) {
		columns = len(images)
	}
	rows := (len(images) + columns - 1) / columns
	fw, fh := images[0].Bounds().Dx(), images[0].Bounds().Dy()

	out := image.NewRGBA(image.Rect(0, 0, fw*columns, fh*rows))
	for i, img := range images {
		x, y := (i%columns)*fw, (i/columns)*fh
		draw.Draw(out, image.Rect(x, y, x+fw, y+fh), img, img.Bounds().Min, draw.Src)
	}
	return out
}

// Package export writes frame sequences to image and document formats.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/san-kum/pixelanim/internal/pixel"
	"github.com/san-kum/pixelanim/internal/render"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultScale = 5
	DefaultDelay = 300 * time.Millisecond

	// MaxPixels caps one rasterized frame, in device pixels.
	MaxPixels = 1 << 26
)

var (
	ErrNoFrames = errors.New("export: no frames")
	ErrEmpty    = errors.New("export: nothing painted and no region given")
	ErrTooLarge = errors.New("export: frame too large")
)

// Options control how frames are rasterized. The zero value exports the
// painted bounds of all frames at DefaultScale on white.
type Options struct {
	// Region limits the exported area. Empty means the union of the
	// frames' painted bounds.
	Region     pixel.Rect
	Scale      int
	Background pixel.Color
	Delay      time.Duration
	// Workers bounds parallel rasterization; zero uses GOMAXPROCS.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Background == (pixel.Color{}) {
		o.Background = pixel.White
	}
	o.Background.A = 255
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Rasterize renders every source in order. Frames are drawn concurrently;
// the sources must not be mutated until it returns.
func Rasterize(ctx context.Context, sources []pixel.Source, o Options) ([]*image.RGBA, pixel.Rect, error) {
	if len(sources) == 0 {
		return nil, pixel.Rect{}, ErrNoFrames
	}
	o = o.withDefaults()
	region, err := frameRegion(o, sources...)
	if err != nil {
		return nil, pixel.Rect{}, err
	}

	images := make([]*image.RGBA, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			images[i] = render.Rasterize(src, region, o.Scale, o.Background)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, pixel.Rect{}, err
	}
	return images, region, nil
}

// frameRegion resolves the exported area and rejects frames too large to
// rasterize at o.Scale. o must already have its defaults applied.
func frameRegion(o Options, sources ...pixel.Source) (pixel.Rect, error) {
	region, ok := render.Region(o.Region, sources...)
	if !ok {
		return pixel.Rect{}, ErrEmpty
	}
	// Painted bounds collapse when cells sit on the last int row or column.
	if region.Empty() {
		return pixel.Rect{}, fmt.Errorf("%w: cells at the edge of the coordinate range", ErrTooLarge)
	}
	w := span(region.Min.X, region.Max.X)
	h := span(region.Min.Y, region.Max.Y)
	s := uint64(o.Scale)
	if w > MaxPixels || h > MaxPixels || s > MaxPixels || w*h > MaxPixels/(s*s) {
		return pixel.Rect{}, fmt.Errorf("%w: %dx%d cells at scale %d", ErrTooLarge, w, h, o.Scale)
	}
	return region, nil
}

// span is hi-lo for hi >= lo without overflowing.
func span(lo, hi int) uint64 {
	return uint64(hi) - uint64(lo)
}

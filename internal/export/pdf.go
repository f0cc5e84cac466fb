package export

import (
	"context"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/pixel"
	"github.com/san-kum/pixelanim/internal/render"
)

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	pageMargin = 15.0
)

// PDF writes a flipbook to path: one A4 page per frame, each cell drawn as
// a filled square scaled to fit the page.
func PDF(ctx context.Context, path string, sources []pixel.Source, o Options) error {
	if len(sources) == 0 {
		return ErrNoFrames
	}
	o = o.withDefaults()
	region, err := frameRegion(o, sources...)
	if err != nil {
		return err
	}

	cell := math.Min(
		(pageWidth-2*pageMargin)/float64(region.Dx()),
		(pageHeight-3*pageMargin)/float64(region.Dy()),
	)
	w, h := cell*float64(region.Dx()), cell*float64(region.Dy())
	x0 := (pageWidth - w) / 2
	y0 := 2 * pageMargin

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetFont("Helvetica", "", 11)
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.AddPage()
		p.SetTextColor(0, 0, 0)
		p.Text(pageMargin, pageMargin, fmt.Sprintf("Frame: %d of %d", i+1, len(sources)))

		bg := o.Background
		p.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		p.Rect(x0, y0, w, h, "F")
		for _, c := range src.Cells() {
			if !region.Contains(c.At) {
				continue
			}
			col := render.Over(c.Color, bg)
			p.SetFillColor(int(col.R), int(col.G), int(col.B))
			p.Rect(
				x0+float64(c.At.X-region.Min.X)*cell,
				y0+float64(c.At.Y-region.Min.Y)*cell,
				cell, cell, "F",
			)
		}
		p.SetDrawColor(160, 160, 160)
		p.SetLineWidth(0.2)
		p.Rect(x0, y0, w, h, "D")
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	logging.Logger().Info("pdf exported", "path", path, "pages", len(sources))
	return nil
}

package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/pixelanim/internal/pixel"
)

func TestOver(t *testing.T) {
	red := pixel.RGB(255, 0, 0)
	if got := Over(red, pixel.White); got != red {
		t.Errorf("opaque color changed: %v", got)
	}
	if got := Over(pixel.Transparent, pixel.White); got != pixel.White {
		t.Errorf("transparent over white: got %v", got)
	}
	half := Over(pixel.RGBA(0, 0, 0, 128), pixel.White)
	if half.R < 120 || half.R > 130 || !half.Opaque() {
		t.Errorf("half black over white: got %v", half)
	}
}

func TestRegion(t *testing.T) {
	c := pixel.NewCanvas()
	c.Set(pixel.Coord{X: 2, Y: 3}, pixel.Black)
	d := pixel.NewCanvas()
	d.Set(pixel.Coord{X: 5, Y: 1}, pixel.Black)

	given := pixel.NewRect(0, 0, 4, 4)
	if r, ok := Region(given, c); !ok || r != given {
		t.Errorf("explicit region: got %v %v", r, ok)
	}
	r, ok := Region(pixel.Rect{}, c, d)
	if !ok {
		t.Fatal("expected bounds")
	}
	if r != (pixel.Rect{Min: pixel.Coord{X: 2, Y: 1}, Max: pixel.Coord{X: 6, Y: 4}}) {
		t.Errorf("union bounds: got %v", r)
	}
	if _, ok := Region(pixel.Rect{}, pixel.NewCanvas()); ok {
		t.Error("empty canvas should have no region")
	}
}

func TestRasterize(t *testing.T) {
	c := pixel.NewCanvas()
	c.Set(pixel.Coord{X: 1, Y: 0}, pixel.RGB(255, 0, 0))
	c.Set(pixel.Coord{X: 9, Y: 9}, pixel.RGB(0, 0, 255))

	img := Rasterize(c, pixel.NewRect(0, 0, 2, 2), 5, pixel.White)
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("expected 10x10, got %v", b)
	}
	red := color.RGBA{255, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	if got := img.RGBAAt(5, 0); got != red {
		t.Errorf("(5,0): expected red, got %v", got)
	}
	if got := img.RGBAAt(9, 4); got != red {
		t.Errorf("(9,4): expected red, got %v", got)
	}
	if got := img.RGBAAt(4, 0); got != white {
		t.Errorf("(4,0): expected white, got %v", got)
	}
	if got := img.RGBAAt(9, 9); got != white {
		t.Errorf("cell outside region leaked: %v", got)
	}
}

func TestRasterizeScaleOne(t *testing.T) {
	c := pixel.NewCanvas()
	c.Set(pixel.Coord{X: 0, Y: 0}, pixel.Transparent)
	img := Rasterize(c, pixel.NewRect(0, 0, 1, 1), 0, pixel.Black)
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("expected 1x1, got %v", b)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("transparent cell should show background, got %v", got)
	}
}

func TestTerminal(t *testing.T) {
	c := pixel.NewCanvas()
	c.Set(pixel.Coord{X: 0, Y: 0}, pixel.Black)

	out := Terminal(c, pixel.NewRect(0, 0, 3, 3), pixel.White, pixel.Coord{}, false, pixel.Black)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if n := strings.Count(l, "▀"); n != 3 {
			t.Errorf("expected 3 blocks per row, got %d in %q", n, l)
		}
	}
	if Terminal(c, pixel.Rect{}, pixel.White, pixel.Coord{}, false, pixel.Black) != "" {
		t.Error("empty region should render nothing")
	}
}

func TestBraille(t *testing.T) {
	c := pixel.NewCanvas()
	c.Set(pixel.Coord{X: 0, Y: 0}, pixel.Black)
	c.Set(pixel.Coord{X: 3, Y: 7}, pixel.Black)

	out := Braille(c, pixel.NewRect(0, 0, 4, 8))
	rows := strings.Split(out, "\n")
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	top := []rune(rows[0])
	bottom := []rune(rows[1])
	if top[0] != brailleBase+0x1 || top[1] != brailleBase {
		t.Errorf("unexpected top row %q", rows[0])
	}
	if bottom[0] != brailleBase || bottom[1] != brailleBase+0x80 {
		t.Errorf("unexpected bottom row %q", rows[1])
	}
}

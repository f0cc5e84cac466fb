// Package gui is the desktop front-end, drawn with raylib.
package gui

import (
	"context"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pixelanim/internal/config"
	"github.com/san-kum/pixelanim/internal/editor"
	"github.com/san-kum/pixelanim/internal/export"
	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/paint"
	"github.com/san-kum/pixelanim/internal/palette"
	"github.com/san-kum/pixelanim/internal/pixel"
	"github.com/san-kum/pixelanim/internal/render"
	"github.com/san-kum/pixelanim/internal/theme"
)

const maxBrush = 15

type App struct {
	Editor *editor.Editor
	cfg    *config.Config
	layout layout

	colors   []pixel.Color
	colorIdx int
	brush    paint.Brush
	last     *pixel.Coord

	pb      *editor.Playback
	elapsed time.Duration
	loop    bool

	status   string
	showGrid bool

	colBg, colGrid, colText, colDim, colAccent, colCanvas rl.Color
}

func toRL(c pixel.Color) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

func NewApp(cfg *config.Config, ed *editor.Editor) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if ed == nil {
		ed = editor.New(cfg.EditorOptions())
	}
	t := theme.Get(cfg.Theme)
	colors := palette.Default(cfg.PaletteSize)
	size := max(cfg.BrushSize, 1)
	return &App{
		Editor:    ed,
		cfg:       cfg,
		layout:    newLayout(cfg.Region(), max(cfg.PixelSize*2, 6)),
		colors:    colors,
		brush:     paint.Brush{Size: size, Mode: paint.Paint, Color: colors[0]},
		loop:      cfg.Loop,
		showGrid:  true,
		colBg:     toRL(theme.RGB(t.Background)),
		colGrid:   toRL(theme.RGB(t.Grid)),
		colText:   toRL(theme.RGB(t.Text)),
		colDim:    toRL(theme.RGB(t.Muted)),
		colAccent: toRL(theme.RGB(t.Accent)),
		colCanvas: toRL(cfg.Background),
	}
}

// Run opens the window and blocks until it is closed. The editor is
// returned so callers can export the result.
func Run(cfg *config.Config, ed *editor.Editor) *editor.Editor {
	app := NewApp(cfg, ed)
	w, h := app.layout.windowSize()
	rl.InitWindow(int32(max(w, 640)), int32(h), "pixelanim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	defer rl.CloseWindow()

	app.RunLoop()
	return app.Editor
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles one frame of input. It returns false when the user quits.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.togglePlay()
	}
	if a.playing() {
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.pb.Stop()
			a.status = "stopped"
		}
		a.tick(time.Duration(rl.GetFrameTime() * float32(time.Second)))
		return true
	}

	a.updateMouse()
	a.updateKeys()
	return true
}

func (a *App) updateMouse() {
	pos := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if i, ok := a.layout.swatchAt(pos.X, pos.Y, len(a.colors)); ok {
			a.selectColor(i)
			return
		}
	}
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.last = nil
		return
	}
	at, ok := a.layout.cellAt(pos.X, pos.Y)
	if !ok {
		return
	}
	switch {
	case a.last == nil:
		a.Editor.ApplyStroke(a.brush, at)
	case *a.last != at:
		a.Editor.ApplyLine(a.brush, *a.last, at)
	default:
		return
	}
	a.last = &at
}

func (a *App) updateKeys() {
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	switch {
	case rl.IsKeyPressed(rl.KeyZ) && ctrl, rl.IsKeyPressed(rl.KeyU):
		if !a.Editor.Undo() {
			a.status = "nothing to undo"
		}
	case rl.IsKeyPressed(rl.KeyY) && ctrl, rl.IsKeyPressed(rl.KeyR):
		if !a.Editor.Redo() {
			a.status = "nothing to redo"
		}
	case rl.IsKeyPressed(rl.KeyS):
		a.save()
	case rl.IsKeyPressed(rl.KeyN):
		a.Editor.AddFrame(!shift)
		a.status = "added " + a.Editor.Label()
	case rl.IsKeyPressed(rl.KeyX):
		if err := a.Editor.RemoveFrame(a.Editor.Index()); err != nil {
			a.status = err.Error()
		}
	case rl.IsKeyPressed(rl.KeyComma), rl.IsKeyPressed(rl.KeyLeft):
		a.Editor.PrevFrame()
	case rl.IsKeyPressed(rl.KeyPeriod), rl.IsKeyPressed(rl.KeyRight):
		a.Editor.NextFrame()
	case rl.IsKeyPressed(rl.KeyE):
		if a.brush.Mode == paint.Erase {
			a.brush.Mode = paint.Paint
		} else {
			a.brush.Mode = paint.Erase
		}
		a.status = "tool: " + a.brush.Mode.String()
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.brush.Size = max(a.brush.Size-1, 1)
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.brush.Size = min(a.brush.Size+1, maxBrush)
	case rl.IsKeyPressed(rl.KeyTab):
		if shift {
			a.selectColor(a.colorIdx - 1)
		} else {
			a.selectColor(a.colorIdx + 1)
		}
	case rl.IsKeyPressed(rl.KeyG):
		a.showGrid = !a.showGrid
	case rl.IsKeyPressed(rl.KeyL):
		a.loop = !a.loop
		a.status = fmt.Sprintf("loop: %v", a.loop)
	}
}

func (a *App) selectColor(i int) {
	n := len(a.colors)
	a.colorIdx = ((i % n) + n) % n
	a.brush.Color = a.colors[a.colorIdx]
	a.brush.Mode = paint.Paint
}

func (a *App) delay() time.Duration {
	if a.cfg.FrameDelayMs <= 0 {
		return editor.DefaultInterval
	}
	return time.Duration(a.cfg.FrameDelayMs) * time.Millisecond
}

func (a *App) playing() bool { return a.pb != nil && a.pb.Playing() }

func (a *App) togglePlay() {
	if a.playing() {
		a.pb.Stop()
		a.status = "stopped"
		return
	}
	a.pb = a.Editor.NewPlayback()
	a.pb.Loop = a.loop
	a.pb.Start()
	a.pb.Step()
	a.elapsed = 0
	a.last = nil
	a.status = "playing"
}

// tick advances playback once a full frame delay has accumulated.
func (a *App) tick(dt time.Duration) {
	a.elapsed += dt
	if a.elapsed < a.delay() {
		return
	}
	a.elapsed = 0
	if _, _, ok := a.pb.Step(); !ok || !a.pb.Playing() {
		a.status = "playback done"
	}
}

func (a *App) save() {
	opts := export.Options{
		Region:     a.cfg.Region(),
		Scale:      a.cfg.PixelSize,
		Background: a.cfg.Background,
		Delay:      a.delay(),
	}
	if err := export.WriteGIF(context.Background(), a.cfg.Output, a.Editor.Sources(), opts); err != nil {
		logging.Logger().Error("save failed", "err", err)
		a.status = "save failed: " + err.Error()
		return
	}
	a.status = "saved " + a.cfg.Output
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.colBg)

	a.drawCanvas()
	a.drawPalette()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawCanvas() {
	l := a.layout
	r := l.region
	x, y, _, _ := l.cellRect(r.Min)
	bg := a.cfg.Background
	bg.A = 255
	rl.DrawRectangle(x, y, int32(r.Dx()*l.cellPx), int32(r.Dy()*l.cellPx), toRL(bg))

	for _, c := range a.Editor.Canvas().Cells() {
		if !r.Contains(c.At) {
			continue
		}
		cx, cy, cw, ch := l.cellRect(c.At)
		rl.DrawRectangle(cx, cy, cw, ch, toRL(render.Over(c.Color, bg)))
	}

	if a.showGrid && l.cellPx >= 6 {
		w, h := int32(r.Dx()*l.cellPx), int32(r.Dy()*l.cellPx)
		for i := 0; i <= r.Dx(); i++ {
			gx := x + int32(i*l.cellPx)
			rl.DrawLine(gx, y, gx, y+h, a.colGrid)
		}
		for j := 0; j <= r.Dy(); j++ {
			gy := y + int32(j*l.cellPx)
			rl.DrawLine(x, gy, x+w, gy, a.colGrid)
		}
	}

	if !a.playing() {
		pos := rl.GetMousePosition()
		if at, ok := l.cellAt(pos.X, pos.Y); ok {
			for _, fp := range a.brush.Footprint(at) {
				if r.Contains(fp) {
					fx, fy, fw, fh := l.cellRect(fp)
					rl.DrawRectangleLines(fx, fy, fw, fh, a.colAccent)
				}
			}
		}
	}
}

func (a *App) drawPalette() {
	for i, c := range a.colors {
		x, y, w, h := a.layout.swatchRect(i)
		rl.DrawRectangle(x, y, w, h, toRL(c))
		if i == a.colorIdx && a.brush.Mode == paint.Paint {
			rl.DrawRectangleLines(x-2, y-2, w+4, h+4, a.colAccent)
		}
	}
}

func (a *App) drawHUD() {
	rl.DrawText("pixelanim", margin, 14, 20, a.colText)
	rl.DrawText(a.Editor.Label(), 140, 18, 16, a.colAccent)

	tool := fmt.Sprintf("%s  size %d", a.brush.Mode, a.brush.Size)
	rl.DrawText(tool, 280, 18, 16, a.colDim)
	if a.playing() {
		rl.DrawText("PLAYING", 420, 18, 16, a.colAccent)
	}

	_, h := a.layout.windowSize()
	rl.DrawText(a.status, margin, int32(h-28), 14, a.colDim)
	rl.DrawText("[P] PLAY  [N] FRAME  [,.] SWITCH  [E] ERASER  [U/R] UNDO/REDO  [S] SAVE  [Q] QUIT", 220, int32(h-28), 12, a.colDim)
}

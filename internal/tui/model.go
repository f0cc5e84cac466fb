// Package tui is the terminal front-end: a bubbletea program that paints
// with the keyboard or mouse and plays the animation back in place.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pixelanim/internal/config"
	"github.com/san-kum/pixelanim/internal/editor"
	"github.com/san-kum/pixelanim/internal/export"
	"github.com/san-kum/pixelanim/internal/paint"
	"github.com/san-kum/pixelanim/internal/palette"
	"github.com/san-kum/pixelanim/internal/pixel"
	"github.com/san-kum/pixelanim/internal/render"
	"github.com/san-kum/pixelanim/internal/theme"
)

// Screen position of the canvas' top-left character.
const (
	canvasLeft = 1
	canvasTop  = 2
)

const maxBrush = 15

type playMsg struct{ gen int }

type savedMsg struct {
	path string
	err  error
}

type Model struct {
	ed     *editor.Editor
	cfg    *config.Config
	theme  theme.Theme
	styles styles
	region pixel.Rect

	colors   []pixel.Color
	colorIdx int
	brush    paint.Brush
	cursor   pixel.Coord
	drag     *pixel.Coord

	pb      *editor.Playback
	playGen int
	loop    bool

	showHelp  bool
	showStats bool
	status    string
	failed    bool

	width, height int
}

// New builds a model around ed. A nil ed starts a fresh editor using the
// history settings from cfg.
func New(cfg *config.Config, ed *editor.Editor) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if ed == nil {
		ed = editor.New(cfg.EditorOptions())
	}
	t := theme.Get(cfg.Theme)
	colors := palette.Default(cfg.PaletteSize)
	size := cfg.BrushSize
	if size < 1 {
		size = 1
	}
	return Model{
		ed:     ed,
		cfg:    cfg,
		theme:  t,
		styles: newStyles(t),
		region: cfg.Region(),
		colors: colors,
		brush:  paint.Brush{Size: size, Mode: paint.Paint, Color: colors[0]},
		loop:   cfg.Loop,
		width:  80,
		height: 24,
	}
}

func (m Model) Editor() *editor.Editor { return m.ed }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case playMsg:
		return m.advance(msg)
	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("save failed: %v", msg.err))
		} else {
			m.setStatus("saved " + msg.path)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		return m.togglePlay()
	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.playing() {
		if key == "esc" {
			m.stop()
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case " ", "enter":
		m.ed.ApplyStroke(m.brush, m.cursor)
	case "e":
		if m.brush.Mode == paint.Erase {
			m.brush.Mode = paint.Paint
		} else {
			m.brush.Mode = paint.Erase
		}
		m.setStatus("tool: " + m.brush.Mode.String())
	case "tab":
		m.selectColor(m.colorIdx + 1)
	case "shift+tab":
		m.selectColor(m.colorIdx - 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.selectColor(int(key[0] - '1'))
	case "[":
		if m.brush.Size > 1 {
			m.brush.Size--
		}
	case "]":
		if m.brush.Size < maxBrush {
			m.brush.Size++
		}
	case "n":
		m.ed.AddFrame(true)
		m.setStatus("added " + m.ed.Label())
	case "N":
		m.ed.AddFrame(false)
		m.setStatus("added blank " + m.ed.Label())
	case "x":
		if err := m.ed.RemoveFrame(m.ed.Index()); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus("removed frame")
		}
	case ",", "<":
		m.ed.PrevFrame()
	case ".", ">":
		m.ed.NextFrame()
	case "u", "ctrl+z":
		if !m.ed.Undo() {
			m.setStatus("nothing to undo")
		}
	case "r", "ctrl+y":
		if !m.ed.Redo() {
			m.setStatus("nothing to redo")
		}
	case "L":
		m.loop = !m.loop
		m.setStatus(fmt.Sprintf("loop: %v", m.loop))
	case "g":
		m.showStats = !m.showStats
	case "s":
		m.setStatus("saving " + m.cfg.Output + "...")
		return m, m.save()
	}
	return m, nil
}

// handleMouse paints on left press and extends the stroke with a line on
// drag. Each event is its own undo step. A character row holds two cells;
// the pointer addresses the upper one.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.playing() || msg.Button != tea.MouseButtonLeft {
		if msg.Action == tea.MouseActionRelease {
			m.drag = nil
		}
		return m
	}
	at, ok := m.cellAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if !ok {
			return m
		}
		m.ed.ApplyStroke(m.brush, at)
		m.cursor, m.drag = at, &at
	case tea.MouseActionMotion:
		if !ok {
			return m
		}
		if m.drag == nil {
			m.ed.ApplyStroke(m.brush, at)
		} else if *m.drag != at {
			m.ed.ApplyLine(m.brush, *m.drag, at)
		}
		m.cursor, m.drag = at, &at
	case tea.MouseActionRelease:
		m.drag = nil
	}
	return m
}

func (m Model) cellAt(x, y int) (pixel.Coord, bool) {
	c := pixel.Coord{X: m.region.Min.X + x - canvasLeft, Y: m.region.Min.Y + (y-canvasTop)*2}
	return c, m.region.Contains(c)
}

func (m *Model) moveCursor(dx, dy int) {
	next := m.cursor.Add(dx, dy)
	if m.region.Contains(next) {
		m.cursor = next
	}
}

// selectColor wraps i into the palette and switches back to painting.
func (m *Model) selectColor(i int) {
	n := len(m.colors)
	m.colorIdx = ((i % n) + n) % n
	m.brush.Color = m.colors[m.colorIdx]
	m.brush.Mode = paint.Paint
}

func (m *Model) setStatus(s string) { m.status, m.failed = s, false }
func (m *Model) setError(s string)  { m.status, m.failed = s, true }

func (m Model) delay() time.Duration {
	if m.cfg.FrameDelayMs <= 0 {
		return editor.DefaultInterval
	}
	return time.Duration(m.cfg.FrameDelayMs) * time.Millisecond
}

func (m Model) playing() bool { return m.pb != nil && m.pb.Playing() }

func (m *Model) stop() {
	if m.pb != nil {
		m.pb.Stop()
	}
	m.playGen++
	m.setStatus("stopped")
}

func (m Model) togglePlay() (Model, tea.Cmd) {
	if m.playing() {
		m.stop()
		return m, nil
	}
	m.pb = m.ed.NewPlayback()
	m.pb.Loop = m.loop
	m.pb.Start()
	m.playGen++
	m.drag = nil
	m.setStatus("playing")
	return m.advance(playMsg{gen: m.playGen})
}

// advance shows the next frame and schedules the one after. Ticks from an
// earlier run are dropped.
func (m Model) advance(msg playMsg) (Model, tea.Cmd) {
	if msg.gen != m.playGen || !m.playing() {
		return m, nil
	}
	if _, _, ok := m.pb.Step(); !ok || !m.pb.Playing() {
		m.setStatus("playback done")
		return m, nil
	}
	gen := m.playGen
	return m, tea.Tick(m.delay(), func(time.Time) tea.Msg { return playMsg{gen: gen} })
}

// save exports a snapshot of every frame so editing can continue while
// the file is written.
func (m Model) save() tea.Cmd {
	frames := m.ed.Frames()
	sources := make([]pixel.Source, len(frames))
	for i, f := range frames {
		sources[i] = f.Canvas().Clone()
	}
	path := m.cfg.Output
	opts := export.Options{
		Region:     m.region,
		Scale:      m.cfg.PixelSize,
		Background: m.cfg.Background,
		Delay:      m.delay(),
	}
	return func() tea.Msg {
		err := export.WriteGIF(context.Background(), path, sources, opts)
		return savedMsg{path: path, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder
	s := m.styles

	mode := s.value.Render(m.brush.Mode.String())
	if m.brush.Mode == paint.Erase {
		mode = s.warn.Render("erase")
	}
	header := fmt.Sprintf("%s  %s  %s %s  %s %d  %s",
		s.title.Render("pixelanim"),
		s.accent.Render(m.ed.Label()),
		s.label.Render("tool"), mode,
		s.label.Render("size"), m.brush.Size,
		swatch(m.brush.Color, "  "),
	)
	if m.playing() {
		header += "  " + s.playing.Render("▶ playing")
	}
	b.WriteString(" " + header + "\n\n")

	canvas := render.Terminal(m.ed.Canvas(), m.region, theme.RGB(m.theme.Background), m.cursor, !m.playing(), m.cursorColor())
	for _, line := range strings.Split(canvas, "\n") {
		b.WriteString(strings.Repeat(" ", canvasLeft) + line + "\n")
	}
	b.WriteString("\n " + m.viewPalette() + "\n")

	info := fmt.Sprintf("%s %d,%d  %s %v  %s %v",
		s.label.Render("cursor"), m.cursor.X, m.cursor.Y,
		s.label.Render("undo"), m.ed.CanUndo(),
		s.label.Render("redo"), m.ed.CanRedo(),
	)
	b.WriteString(" " + info + "\n")
	if m.status != "" {
		style := s.dim
		if m.failed {
			style = s.err
		}
		b.WriteString(" " + style.Render(m.status) + "\n")
	}

	if m.showStats {
		b.WriteString(s.panel.Render(m.viewStats()) + "\n")
	}
	if m.showHelp {
		b.WriteString(s.panel.Render(helpText) + "\n")
	} else {
		b.WriteString(s.dim.Render(" space paint  e eraser  tab color  [] size  n frame  ,. switch  u/r undo/redo  p play  s save  ? help  q quit") + "\n")
	}
	return b.String()
}

func (m Model) cursorColor() pixel.Color {
	if m.brush.Mode == paint.Erase {
		return theme.RGB(m.theme.Warning)
	}
	return theme.RGB(m.theme.Accent)
}

func (m Model) viewPalette() string {
	var b strings.Builder
	for i, c := range m.colors {
		if i == m.colorIdx && m.brush.Mode == paint.Paint {
			b.WriteString(m.styles.accent.Render("[") + swatch(c, " ") + m.styles.accent.Render("]"))
			continue
		}
		b.WriteString(" " + swatch(c, " ") + " ")
	}
	return b.String()
}

// viewStats plots painted cells per frame.
func (m Model) viewStats() string {
	frames := m.ed.Frames()
	counts := make([]float64, len(frames))
	for i, f := range frames {
		counts[i] = float64(f.Canvas().Len())
	}
	if len(counts) == 1 {
		counts = append(counts, counts[0])
	}
	return asciigraph.Plot(counts,
		asciigraph.Height(5),
		asciigraph.Width(40),
		asciigraph.Caption("cells per frame"),
	)
}

func swatch(c pixel.Color, text string) string {
	c.A = 255
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(text)
}

const helpText = `move        arrows / hjkl     paint       space / mouse
eraser      e                 color       tab, shift+tab, 1-9
brush size  [ ]               undo/redo   u, ctrl+z / r, ctrl+y
add frame   n (copy), N       remove      x
frames      , .               play/stop   p   (loop L)
save gif    s                 stats       g
quit        q`

// Run starts the terminal editor and blocks until it quits. It returns the
// final editor so callers can export what was drawn.
func Run(cfg *config.Config, ed *editor.Editor) (*editor.Editor, error) {
	p := tea.NewProgram(New(cfg, ed), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).Editor(), nil
}

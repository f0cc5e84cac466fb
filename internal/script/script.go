// Package script replays YAML-described editing sessions against an editor.
package script

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/san-kum/pixelanim/internal/editor"
	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/paint"
	"github.com/san-kum/pixelanim/internal/pixel"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownOp    = errors.New("script: unknown op")
	ErrMissingField = errors.New("script: missing field")
)

type Op string

const (
	OpPaint       Op = "paint"
	OpErase       Op = "erase"
	OpLine        Op = "line"
	OpSpray       Op = "spray"
	OpAddFrame    Op = "add_frame"
	OpSelect      Op = "select"
	OpRemoveFrame Op = "remove_frame"
	OpUndo        Op = "undo"
	OpRedo        Op = "redo"
)

// Script is a named sequence of editing steps.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p Point) Coord() pixel.Coord { return pixel.Coord{X: p.X, Y: p.Y} }

// Step is one command. Color and Size stick: once set they apply to later
// steps until changed.
type Step struct {
	Op    Op           `yaml:"op"`
	At    *Point       `yaml:"at,omitempty"`
	From  *Point       `yaml:"from,omitempty"`
	To    *Point       `yaml:"to,omitempty"`
	Color *pixel.Color `yaml:"color,omitempty"`
	Size  int          `yaml:"size,omitempty"`
	Frame *int         `yaml:"frame,omitempty"`
	// Copy makes add_frame start from the current frame's cells.
	Copy  bool  `yaml:"copy,omitempty"`
	Count int   `yaml:"count,omitempty"`
	Seed  int64 `yaml:"seed,omitempty"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run applies every step to ed in order and stops at the first failure.
func Run(ctx context.Context, s *Script, ed *editor.Editor) error {
	brush := paint.Brush{Size: 1, Mode: paint.Paint, Color: pixel.Black}
	log := logging.Logger()

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		log.Debug("script step", "script", s.Name, "step", i+1, "of", len(s.Steps), "op", string(step.Op))
		if err := apply(ed, &brush, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	log.Info("script finished", "script", s.Name, "steps", len(s.Steps), "frames", ed.Len())
	return nil
}

func apply(ed *editor.Editor, brush *paint.Brush, step Step) error {
	if step.Color != nil {
		brush.Color = *step.Color
	}
	if step.Size > 0 {
		brush.Size = step.Size
	}

	switch step.Op {
	case OpPaint, OpErase:
		if step.At == nil {
			return fmt.Errorf("%w: %s needs at", ErrMissingField, step.Op)
		}
		ed.ApplyStroke(withMode(*brush, step.Op), step.At.Coord())
	case OpLine:
		if step.From == nil || step.To == nil {
			return fmt.Errorf("%w: line needs from and to", ErrMissingField)
		}
		ed.ApplyLine(*brush, step.From.Coord(), step.To.Coord())
	case OpSpray:
		if step.At == nil {
			return fmt.Errorf("%w: spray needs at", ErrMissingField)
		}
		ed.ApplyPoints(paint.Brush{Size: 1, Color: brush.Color}, Spray(*brush, step.At.Coord(), step.Count, step.Seed))
	case OpAddFrame:
		ed.AddFrame(step.Copy)
	case OpSelect:
		if step.Frame == nil {
			return fmt.Errorf("%w: select needs frame", ErrMissingField)
		}
		return ed.SelectFrame(*step.Frame)
	case OpRemoveFrame:
		idx := ed.Index()
		if step.Frame != nil {
			idx = *step.Frame
		}
		return ed.RemoveFrame(idx)
	case OpUndo:
		ed.Undo()
	case OpRedo:
		ed.Redo()
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}
	return nil
}

func withMode(b paint.Brush, op Op) paint.Brush {
	b.Mode = paint.Paint
	if op == OpErase {
		b.Mode = paint.Erase
	}
	return b
}

// Spray picks count cells within the brush footprint around at. The same
// seed gives the same pattern; cells may repeat.
func Spray(b paint.Brush, at pixel.Coord, count int, seed int64) []pixel.Coord {
	if count <= 0 {
		count = b.Size * b.Size
	}
	area := b.Footprint(at)
	rng := rand.New(rand.NewSource(seed))
	out := make([]pixel.Coord, count)
	for i := range out {
		out[i] = area[rng.Intn(len(area))]
	}
	return out
}

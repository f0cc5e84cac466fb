package config

import (
	"fmt"
	"os"

	"github.com/san-kum/pixelanim/internal/editor"
	"github.com/san-kum/pixelanim/internal/pixel"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 64
	DefaultHeight       = 48
	DefaultPixelSize    = 5
	DefaultFrameDelayMs = 300
	DefaultPaletteSize  = 24
	DefaultBrushSize    = 1
	DefaultHistoryDepth = 100
	DefaultTheme        = "minimal"
	DefaultOutput       = "animation.gif"

	MaxCanvasSide = 4096
	MaxPixelSize  = 64
)

type Config struct {
	Canvas       CanvasConfig  `yaml:"canvas"`
	PixelSize    int           `yaml:"pixel_size"`
	FrameDelayMs int           `yaml:"frame_delay_ms"`
	PaletteSize  int           `yaml:"palette_size"`
	BrushSize    int           `yaml:"brush_size"`
	Background   pixel.Color   `yaml:"background"`
	History      HistoryConfig `yaml:"history"`
	Theme        string        `yaml:"theme"`
	Output       string        `yaml:"output"`
	Loop         bool          `yaml:"loop"`
}

// CanvasConfig is the visible and exported area, in cells.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type HistoryConfig struct {
	Scope string `yaml:"scope"`
	Depth int    `yaml:"depth"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas:       CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		PixelSize:    DefaultPixelSize,
		FrameDelayMs: DefaultFrameDelayMs,
		PaletteSize:  DefaultPaletteSize,
		BrushSize:    DefaultBrushSize,
		Background:   pixel.White,
		History: HistoryConfig{
			Scope: string(editor.ScopeFrame),
			Depth: DefaultHistoryDepth,
		},
		Theme:  DefaultTheme,
		Output: DefaultOutput,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values. base is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	*cfg = *base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Canvas.Width > MaxCanvasSide || c.Canvas.Height > MaxCanvasSide {
		return fmt.Errorf("canvas side must not exceed %d, got %dx%d", MaxCanvasSide, c.Canvas.Width, c.Canvas.Height)
	}
	if c.PixelSize <= 0 {
		return fmt.Errorf("pixel_size must be positive, got %d", c.PixelSize)
	}
	if c.PixelSize > MaxPixelSize {
		return fmt.Errorf("pixel_size must not exceed %d, got %d", MaxPixelSize, c.PixelSize)
	}
	if c.FrameDelayMs < 0 {
		return fmt.Errorf("frame_delay_ms must not be negative, got %d", c.FrameDelayMs)
	}
	if c.PaletteSize <= 0 {
		return fmt.Errorf("palette_size must be positive, got %d", c.PaletteSize)
	}
	if c.History.Depth < 0 {
		return fmt.Errorf("history depth must not be negative, got %d", c.History.Depth)
	}
	if _, err := editor.ParseScope(c.History.Scope); err != nil {
		return err
	}
	return nil
}

// EditorOptions maps the history section onto editor options.
func (c *Config) EditorOptions() editor.Options {
	scope, err := editor.ParseScope(c.History.Scope)
	if err != nil {
		scope = editor.ScopeFrame
	}
	return editor.Options{Scope: scope, Depth: c.History.Depth}
}

func (c *Config) Region() pixel.Rect {
	return pixel.NewRect(0, 0, c.Canvas.Width, c.Canvas.Height)
}

package config

import "sort"

var Presets = map[string]*Config{
	"icon": {
		Canvas: CanvasConfig{Width: 16, Height: 16}, PixelSize: 16, FrameDelayMs: 200,
		PaletteSize: 16, BrushSize: 1, Theme: "minimal",
	},
	"sprite": {
		Canvas: CanvasConfig{Width: 32, Height: 32}, PixelSize: 8, FrameDelayMs: 120,
		PaletteSize: 24, BrushSize: 1, Theme: "retro",
	},
	"handheld": {
		Canvas: CanvasConfig{Width: 160, Height: 144}, PixelSize: 3, FrameDelayMs: 100,
		PaletteSize: 4, BrushSize: 1, Theme: "retro",
	},
	"banner": {
		Canvas: CanvasConfig{Width: 128, Height: 32}, PixelSize: 4, FrameDelayMs: 300,
		PaletteSize: 32, BrushSize: 3, Theme: "sunset",
	},
}

// GetPreset returns a full config with the preset applied over the
// defaults, or nil for an unknown name.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Canvas = p.Canvas
	cfg.PixelSize = p.PixelSize
	cfg.FrameDelayMs = p.FrameDelayMs
	cfg.PaletteSize = p.PaletteSize
	cfg.BrushSize = p.BrushSize
	cfg.Theme = p.Theme
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

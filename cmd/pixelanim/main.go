package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pixelanim/internal/config"
	"github.com/san-kum/pixelanim/internal/editor"
	"github.com/san-kum/pixelanim/internal/export"
	"github.com/san-kum/pixelanim/internal/gui"
	"github.com/san-kum/pixelanim/internal/logging"
	"github.com/san-kum/pixelanim/internal/palette"
	"github.com/san-kum/pixelanim/internal/pixel"
	"github.com/san-kum/pixelanim/internal/render"
	"github.com/san-kum/pixelanim/internal/script"
	"github.com/san-kum/pixelanim/internal/theme"
	"github.com/san-kum/pixelanim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	logFile    string
	debug      bool
	// Overrides for config fields
	width     int
	height    int
	scale     int
	delayMs   int
	scope     string
	themeName string
	// render
	format  string
	output  string
	columns int
	frameNo int
	fit     bool

	logCloser io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "pixelanim",
		Short:             "pixel-art animation editor",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		Args: cobra.MaximumNArgs(1),
		RunE: runEdit,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.BoolVar(&debug, "debug", false, "debug logging (stderr unless --log-file)")
	pf.IntVar(&width, "width", config.DefaultWidth, "canvas width in cells")
	pf.IntVar(&height, "height", config.DefaultHeight, "canvas height in cells")
	pf.IntVar(&scale, "scale", config.DefaultPixelSize, "export pixels per cell")
	pf.IntVar(&delayMs, "delay", config.DefaultFrameDelayMs, "frame delay in milliseconds")
	pf.StringVar(&scope, "history", "frame", "undo history scope (frame|session)")
	pf.StringVar(&themeName, "theme", config.DefaultTheme, "color theme ("+strings.Join(theme.Names(), "|")+")")

	editCmd := &cobra.Command{
		Use:   "edit [script]",
		Short: "terminal editor, optionally preloaded from a script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEdit,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [script]",
		Short: "desktop editor window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	renderCmd := &cobra.Command{
		Use:   "render [script]",
		Short: "run a script headlessly and export the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&format, "format", "f", "", "gif, pdf, png or svg (default from -o extension, else gif)")
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	renderCmd.Flags().IntVar(&columns, "columns", 0, "sprite sheet columns (png)")
	renderCmd.Flags().IntVar(&frameNo, "frame", -1, "frame to export (svg, default current)")
	renderCmd.Flags().BoolVar(&fit, "fit", false, "crop to painted cells instead of the canvas size")

	statsCmd := &cobra.Command{
		Use:   "stats [script]",
		Short: "per-frame cell counts for a script",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "print the editor palette",
		RunE:  runPalette,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCANVAS\tPIXEL\tDELAY\tPALETTE\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%dms\t%d\t%s\n",
					name, p.Canvas.Width, p.Canvas.Height, p.PixelSize, p.FrameDelayMs, p.PaletteSize, p.Theme)
			}
			w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "pixelanim.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(editCmd, guiCmd, renderCmd, statsCmd, paletteCmd, presetsCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logCloser = f
		logging.SetLogger(logging.NewText(f, debug))
	case debug:
		logging.SetLogger(logging.NewText(os.Stderr, true))
	}
	return nil
}

// loadConfig layers defaults, preset, config file and explicit flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if flags.Changed("scale") {
		cfg.PixelSize = scale
	}
	if flags.Changed("delay") {
		cfg.FrameDelayMs = delayMs
	}
	if flags.Changed("history") {
		cfg.History.Scope = scope
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// prepare builds the editor, replaying the script in args if there is one.
func prepare(cmd *cobra.Command, args []string) (*config.Config, *editor.Editor, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	ed := editor.New(cfg.EditorOptions())
	if len(args) == 0 {
		return cfg, ed, nil
	}
	s, err := script.Load(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load script: %w", err)
	}
	if err := script.Run(cmd.Context(), s, ed); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return cfg, ed, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, ed, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	_, err = tui.Run(cfg, ed)
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, ed, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	gui.Run(cfg, ed)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, ed, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	f := strings.ToLower(format)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	if f == "" {
		f = "gif"
	}
	path := output
	if path == "" {
		path = strings.TrimSuffix(cfg.Output, filepath.Ext(cfg.Output)) + "." + f
	}

	opts := export.Options{
		Region:     cfg.Region(),
		Scale:      cfg.PixelSize,
		Background: cfg.Background,
		Delay:      time.Duration(cfg.FrameDelayMs) * time.Millisecond,
	}
	if fit {
		opts.Region = pixel.Rect{}
	}

	ctx := cmd.Context()
	switch f {
	case "gif":
		err = export.WriteGIF(ctx, path, ed.Sources(), opts)
	case "pdf":
		err = export.PDF(ctx, path, ed.Sources(), opts)
	case "png":
		err = export.WriteSpriteSheet(ctx, path, ed.Sources(), columns, opts)
	case "svg":
		idx := ed.Index()
		if frameNo >= 0 {
			idx = frameNo
		}
		if err := ed.SelectFrame(idx); err != nil {
			return err
		}
		err = export.WriteSVG(path, ed.Canvas(), opts)
	default:
		return fmt.Errorf("unknown format: %s (want gif, pdf, png or svg)", f)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", path, ed.Len())
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	_, ed, err := prepare(cmd, args)
	if err != nil {
		return err
	}

	frames := ed.Frames()
	counts := make([]float64, len(frames))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAME\tID\tCELLS\tBOUNDS")
	for i, f := range frames {
		c := f.Canvas()
		counts[i] = float64(c.Len())
		bounds := "-"
		if b, ok := c.Bounds(); ok {
			bounds = fmt.Sprintf("(%d,%d)-(%d,%d)", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, f.ID[:8], c.Len(), bounds)
	}
	w.Flush()

	if len(counts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(counts,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("cells per frame"),
		))
	}

	region, ok := render.Region(pixel.Rect{}, ed.Sources()...)
	if ok {
		fmt.Println()
		fmt.Println(render.Braille(ed.Canvas(), region))
	}
	return nil
}

func runPalette(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	for i, c := range palette.Default(cfg.PaletteSize) {
		sw := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
		fmt.Printf("%3d  %s  %s\n", i+1, sw, c.Hex())
	}
	return nil
}

// Package config loads and saves grapher.yaml.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"

	"grapher/pkg/api"
	"grapher/pkg/font"
	"grapher/pkg/graphics"
	"grapher/pkg/raster"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "grapher.yaml"

// Config represents grapher.yaml.
type Config struct {
	// Expression plotted on startup
	Expression string `yaml:"expression"`

	Window WindowConfig `yaml:"window"`
	Size   SizeConfig   `yaml:"size"`
	Style  StyleConfig  `yaml:"style"`
	Grid   GridConfig   `yaml:"grid"`
	Zoom   ZoomConfig   `yaml:"zoom"`
	Serve  ServeConfig  `yaml:"serve"`

	// Output is the image written by render and watch
	Output string `yaml:"output"`
}

// WindowConfig is the initial world rectangle.
type WindowConfig struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

// SizeConfig is the surface size in pixels.
type SizeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StyleConfig holds colors as "#rrggbb" or names, and widths in pixels.
type StyleConfig struct {
	Background     string  `yaml:"background"`
	GridColor      string  `yaml:"grid_color"`
	GridWidth      float64 `yaml:"grid_width"`
	AxisColor      string  `yaml:"axis_color"`
	AxisWidth      float64 `yaml:"axis_width"`
	CurveColor     string  `yaml:"curve_color"`
	CurveWidth     float64 `yaml:"curve_width"`
	LabelColor     string  `yaml:"label_color"`
	LabelFont      string  `yaml:"label_font"`
	LabelPrecision int     `yaml:"label_precision"`
}

// GridConfig tunes grid spacing.
type GridConfig struct {
	Divisions int `yaml:"divisions"`
}

// ZoomConfig tunes wheel zoom.
type ZoomConfig struct {
	Factor float64 `yaml:"factor"`
}

// ServeConfig configures the live server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Expression: "sin(x)",
		Window:     WindowConfig{XMin: -10, XMax: 10, YMin: -10, YMax: 10},
		Size:       SizeConfig{Width: 500, Height: 500},
		Style: StyleConfig{
			Background:     "white",
			GridColor:      "#e0e0e0",
			GridWidth:      1,
			AxisColor:      "#000000",
			AxisWidth:      2,
			CurveColor:     "blue",
			CurveWidth:     2,
			LabelColor:     "#000000",
			LabelFont:      font.Default.String(),
			LabelPrecision: 2,
		},
		Grid:   GridConfig{Divisions: 10},
		Zoom:   ZoomConfig{Factor: 1.1},
		Serve:  ServeConfig{Addr: "localhost:8080"},
		Output: "plot.png",
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// keys absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Write encodes cfg as YAML to w.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// applyDefaults fills values an explicit empty key would leave unusable.
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Size.Width <= 0 {
		cfg.Size.Width = defaults.Size.Width
	}
	if cfg.Size.Height <= 0 {
		cfg.Size.Height = defaults.Size.Height
	}
	if cfg.Grid.Divisions <= 0 {
		cfg.Grid.Divisions = defaults.Grid.Divisions
	}
	if cfg.Zoom.Factor == 0 {
		cfg.Zoom.Factor = defaults.Zoom.Factor
	}
	if cfg.Style.LabelFont == "" {
		cfg.Style.LabelFont = defaults.Style.LabelFont
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = defaults.Serve.Addr
	}
	if cfg.Output == "" {
		cfg.Output = defaults.Output
	}
}

// Options converts the config into plot options. Empty colors keep the
// built-in defaults.
func (c *Config) Options() ([]api.Option, error) {
	opts := []api.Option{
		api.Size(c.Size.Width, c.Size.Height),
		api.Window(c.Window.XMin, c.Window.XMax, c.Window.YMin, c.Window.YMax),
		api.LineWidths(c.Style.GridWidth, c.Style.AxisWidth, c.Style.CurveWidth),
		api.LabelPrecision(c.Style.LabelPrecision),
		api.Divisions(c.Grid.Divisions),
		api.ZoomFactor(c.Zoom.Factor),
	}

	colors := []struct {
		key   string
		value string
		opt   func(color.Color) api.Option
	}{
		{"background", c.Style.Background, api.Background},
		{"grid_color", c.Style.GridColor, api.GridColor},
		{"axis_color", c.Style.AxisColor, api.AxisColor},
		{"curve_color", c.Style.CurveColor, api.CurveColor},
		{"label_color", c.Style.LabelColor, api.LabelColor},
	}
	for _, col := range colors {
		if col.value == "" {
			continue
		}
		parsed, err := graphics.ParseColor(col.value)
		if err != nil {
			return nil, fmt.Errorf("style.%s: %w", col.key, err)
		}
		opts = append(opts, col.opt(parsed))
	}

	spec, err := font.ParseSpec(c.Style.LabelFont)
	if err != nil {
		return nil, fmt.Errorf("style.label_font: %w", err)
	}
	opts = append(opts, api.LabelFont(spec))

	if c.Output != "" {
		if f, err := raster.FormatFromPath(c.Output); err == nil {
			opts = append(opts, api.Format(f))
		}
	}
	return opts, nil
}

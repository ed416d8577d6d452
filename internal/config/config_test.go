package config

import (
	"os"
	"path/filepath"
	"testing"

	"grapher/pkg/api"
	"grapher/pkg/font"
	"grapher/pkg/graphics"
	"grapher/pkg/raster"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Expression != "sin(x)" || cfg.Size.Width != 500 || cfg.Zoom.Factor != 1.1 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	data := `expression: "x^2 - 3"
window:
  xmin: -2
  xmax: 2
  ymin: -5
  ymax: 5
style:
  curve_color: "#ff0000"
  label_precision: 0
output: out.gif
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Expression != "x^2 - 3" || cfg.Window.XMax != 2 || cfg.Window.YMin != -5 {
		t.Errorf("loaded = %+v", cfg)
	}
	if cfg.Style.LabelPrecision != 0 {
		t.Errorf("label_precision = %d, want explicit 0", cfg.Style.LabelPrecision)
	}
	if cfg.Style.GridColor != "#e0e0e0" || cfg.Size.Height != 500 {
		t.Error("absent keys lost their defaults")
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatal(err)
	}
	o := api.NewOptions(opts...)
	if o.Style.CurveColor != graphics.MustParseColor("#ff0000") {
		t.Errorf("curve color = %v", o.Style.CurveColor)
	}
	if o.Export.Format != raster.GIF {
		t.Errorf("export format = %q, want gif", o.Export.Format)
	}
	if o.Window.XMin != -2 || o.Style.LabelPrecision != 0 {
		t.Errorf("options = %+v", o)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("window: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := DefaultConfig()
	cfg.Expression = "1/x"
	cfg.Serve.Addr = ":9000"
	if err := Save(cfg, path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Expression != "1/x" || got.Serve.Addr != ":9000" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad color", func(c *Config) { c.Style.AxisColor = "not-a-color" }},
		{"bad font", func(c *Config) { c.Style.LabelFont = "big sans" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if _, err := cfg.Options(); err == nil {
				t.Error("Options() accepted invalid config")
			}
		})
	}
}

func TestDefaultOptionsMatchBuiltins(t *testing.T) {
	opts, err := DefaultConfig().Options()
	if err != nil {
		t.Fatal(err)
	}
	o := api.NewOptions(opts...)
	d := api.Defaults()
	if o.Style.LabelFont != font.Default || o.Window != d.Window || o.Width != d.Width {
		t.Errorf("default config options = %+v", o)
	}
	if graphics.Hex(o.Style.GridColor) != graphics.Hex(d.Style.GridColor) {
		t.Errorf("grid color = %s", graphics.Hex(o.Style.GridColor))
	}
}

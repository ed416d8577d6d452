package api

import (
	"fmt"
	"image/color"

	"grapher/pkg/font"
	"grapher/pkg/plot"
	"grapher/pkg/raster"
)

// Options configures a Plot.
type Options struct {
	// Width and Height set the canvas size in pixels.
	// Default: 500x500
	Width, Height int

	// Window is the initial world rectangle. Reset returns to it.
	// Default: [-10, 10] x [-10, 10]
	Window plot.Viewport

	// Style holds colors, line widths and label settings.
	Style plot.Style

	// ZoomFactor is the per-notch wheel zoom.
	// Default: 1.1
	ZoomFactor float64

	// Background is the color ClearRect paints.
	// Default: white
	Background color.Color

	// Export selects the encoding used by Export and Save.
	// Default: PNG
	Export raster.ExportOptions
}

// Defaults returns the options of a 500x500 plot of [-10, 10]².
func Defaults() Options {
	return Options{
		Width:      500,
		Height:     500,
		Window:     *plot.DefaultViewport(),
		Style:      plot.DefaultStyle(),
		ZoomFactor: plot.DefaultZoomFactor,
		Background: color.White,
		Export:     raster.DefaultExportOptions(),
	}
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates options from functional options.
func NewOptions(opts ...Option) Options {
	o := Defaults()
	o.Apply(opts...)
	return o
}

// Apply applies functional options to existing options.
func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// Validate checks the size, window and zoom factor.
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if _, err := plot.NewViewport(o.Window.XMin, o.Window.XMax, o.Window.YMin, o.Window.YMax); err != nil {
		return err
	}
	if !(o.ZoomFactor > 1) {
		return fmt.Errorf("%w: %v (must be > 1)", plot.ErrInvalidZoom, o.ZoomFactor)
	}
	return nil
}

// Size sets the canvas size.
func Size(width, height int) Option {
	return func(o *Options) {
		o.Width, o.Height = width, height
	}
}

// Window sets the initial world rectangle.
func Window(xMin, xMax, yMin, yMax float64) Option {
	return func(o *Options) {
		o.Window = plot.Viewport{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	}
}

// GridColor sets the gridline color.
func GridColor(c color.Color) Option {
	return func(o *Options) {
		o.Style.GridColor = c
	}
}

// AxisColor sets the axis color.
func AxisColor(c color.Color) Option {
	return func(o *Options) {
		o.Style.AxisColor = c
	}
}

// CurveColor sets the curve color.
func CurveColor(c color.Color) Option {
	return func(o *Options) {
		o.Style.CurveColor = c
	}
}

// LabelColor sets the label text color.
func LabelColor(c color.Color) Option {
	return func(o *Options) {
		o.Style.LabelColor = c
	}
}

// LineWidths sets the grid, axis and curve widths. Zero keeps a width.
func LineWidths(grid, axis, curve float64) Option {
	return func(o *Options) {
		if grid > 0 {
			o.Style.GridWidth = grid
		}
		if axis > 0 {
			o.Style.AxisWidth = axis
		}
		if curve > 0 {
			o.Style.CurveWidth = curve
		}
	}
}

// LabelFont sets the label font.
func LabelFont(spec font.Spec) Option {
	return func(o *Options) {
		o.Style.LabelFont = spec
	}
}

// LabelPrecision sets the number of decimals on labels.
func LabelPrecision(decimals int) Option {
	return func(o *Options) {
		if decimals >= 0 {
			o.Style.LabelPrecision = decimals
		}
	}
}

// Divisions sets the target number of grid intervals per axis.
func Divisions(n int) Option {
	return func(o *Options) {
		o.Style.Divisions = n
	}
}

// ZoomFactor sets the per-notch zoom.
func ZoomFactor(f float64) Option {
	return func(o *Options) {
		o.ZoomFactor = f
	}
}

// Background sets the background color.
func Background(c color.Color) Option {
	return func(o *Options) {
		o.Background = c
	}
}

// Transparent clears to a transparent background.
func Transparent() Option {
	return func(o *Options) {
		o.Background = color.Transparent
	}
}

// Format sets the export format.
func Format(f raster.Format) Option {
	return func(o *Options) {
		o.Export.Format = f
	}
}

// JPEGQuality sets the JPEG quality, clamped to 1-100.
func JPEGQuality(quality int) Option {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	return func(o *Options) {
		o.Export.Quality = quality
	}
}

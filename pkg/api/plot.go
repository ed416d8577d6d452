// Package api is the public entry point: a Plot bundles a viewport, a
// renderer, an image canvas and an input controller.
package api

import (
	"errors"
	"fmt"
	"image"
	"io"

	"grapher/pkg/expression"
	"grapher/pkg/plot"
	"grapher/pkg/raster"
)

// Plot is one interactive plot session. It is not safe for concurrent use.
type Plot struct {
	opts Options

	viewport   *plot.Viewport
	renderer   *plot.Renderer
	canvas     *raster.Canvas
	controller *plot.Controller

	source string
}

// New creates a plot from functional options.
func New(opts ...Option) (*Plot, error) {
	o := NewOptions(opts...)
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create plot: %w", err)
	}

	v := o.Window
	p := &Plot{
		opts:     o,
		viewport: &v,
		renderer: &plot.Renderer{Style: o.Style},
		canvas:   raster.NewCanvas(o.Width, o.Height),
	}
	p.canvas.SetBackground(o.Background)
	p.canvas.Clear()

	p.controller = plot.NewController(p.viewport, p.renderer, p.canvas, p.Source)
	p.controller.ZoomFactor = o.ZoomFactor
	return p, nil
}

// Render sets the expression text and redraws. On a compile error the
// previous image and expression are kept, so later zooms and pans keep
// redrawing the last good plot, and the *expression.CompileError is
// returned.
func (p *Plot) Render(source string) (*plot.Trace, error) {
	prev := p.source
	p.source = source
	trace, err := p.Redraw()
	var ce *expression.CompileError
	if errors.As(err, &ce) {
		p.source = prev
	}
	return trace, err
}

// Redraw renders the current expression again.
func (p *Plot) Redraw() (*plot.Trace, error) {
	if err := p.controller.Redraw(); err != nil {
		return nil, err
	}
	return p.controller.LastTrace(), nil
}

// Source returns the current expression text.
func (p *Plot) Source() string {
	return p.source
}

// SetSource replaces the expression text without rendering.
func (p *Plot) SetSource(source string) {
	p.source = source
}

// Resize changes the canvas size and redraws when an expression is set.
func (p *Plot) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	p.canvas.Resize(width, height)
	if p.source == "" {
		return nil
	}
	_, err := p.Redraw()
	return err
}

// Image returns the rendered image.
func (p *Plot) Image() *image.RGBA {
	return p.canvas.Image()
}

// Export encodes the current image to w.
func (p *Plot) Export(w io.Writer) error {
	return raster.Encode(w, p.canvas.Image(), p.opts.Export)
}

// Save writes the current image to filename. A known extension selects
// the format; otherwise the configured one is used.
func (p *Plot) Save(filename string) error {
	opts := p.opts.Export
	if f, err := raster.FormatFromPath(filename); err == nil {
		opts.Format = f
	}
	return p.canvas.Save(filename, opts)
}

// Controller returns the input controller driving this plot.
func (p *Plot) Controller() *plot.Controller {
	return p.controller
}

// Viewport returns the live viewport.
func (p *Plot) Viewport() *plot.Viewport {
	return p.viewport
}

// Options returns the options the plot was created with.
func (p *Plot) Options() Options {
	return p.opts
}

// Close releases font resources.
func (p *Plot) Close() error {
	return p.canvas.Close()
}

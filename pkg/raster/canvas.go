// Package raster draws plots into in-memory RGBA images.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"grapher/pkg/font"
	"grapher/pkg/graphics"
	pathpkg "grapher/pkg/path"
	"grapher/pkg/plot"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas is a plot.Surface backed by an *image.RGBA. It is not safe for
// concurrent use.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int

	background color.Color

	state *graphics.State
	path  *graphics.Path

	fontSpec font.Spec
	face     xfont.Face

	rasterizer *vector.Rasterizer
}

var _ plot.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas with a white background.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		background: color.White,
		state:      graphics.NewState(),
		path:       graphics.NewPath(),
		rasterizer: &vector.Rasterizer{},
	}
	// square caps close the gaps between per-segment stroke quads
	c.state.LineCap = graphics.LineCapSquare
	c.Resize(width, height)
	return c
}

// Resize replaces the backing image. The new image is cleared to the
// background color.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.Clear()
}

// Image returns the underlying RGBA image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills the canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// SetBackground sets the color ClearRect paints with.
func (c *Canvas) SetBackground(col color.Color) {
	c.background = col
}

// ClearRect resets a rectangle to the background color.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(x), int(y), int(x+w+0.5), int(y+h+0.5)).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, &image.Uniform{c.background}, image.Point{}, draw.Src)
}

// BeginPath discards the current path.
func (c *Canvas) BeginPath() {
	c.path = graphics.NewPath()
}

// MoveTo starts a new subpath.
func (c *Canvas) MoveTo(x, y float64) {
	c.path.MoveTo(x, y)
}

// LineTo extends the current subpath.
func (c *Canvas) LineTo(x, y float64) {
	c.path.LineTo(x, y)
}

// Stroke outlines the current path with the current pen. The path is kept,
// so a second Stroke draws it again.
func (c *Canvas) Stroke() {
	c.StrokePath(c.path, c.state.StrokeColor, c.state.LineWidth, c.state.LineCap)
}

// SetStrokeColor sets the pen color.
func (c *Canvas) SetStrokeColor(col color.Color) {
	c.state.StrokeColor = col
}

// SetLineWidth sets the pen width in pixels.
func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 {
		c.state.LineWidth = w
	}
}

// SetFillColor sets the text color.
func (c *Canvas) SetFillColor(col color.Color) {
	c.state.FillColor = col
}

// SetFont switches the label face. The previous face is closed.
func (c *Canvas) SetFont(spec font.Spec) {
	if c.face != nil && spec == c.fontSpec {
		return
	}
	face, err := font.NewFace(spec)
	if err != nil {
		plot.Logger().Warn("font fallback", "font", spec.String(), "err", err)
	}
	if c.face != nil {
		c.face.Close()
	}
	c.face, c.fontSpec = face, spec
}

// FillText draws text with its alphabetic baseline starting at (x, y).
func (c *Canvas) FillText(text string, x, y float64) {
	if c.face == nil {
		c.SetFont(font.Default)
	}
	d := &xfont.Drawer{
		Dst:  c.img,
		Src:  &image.Uniform{c.state.FillColor},
		Face: c.face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(text)
}

// Fill fills a closed outline with col under the non-zero rule. Outlines
// entirely off the canvas are skipped.
func (c *Canvas) Fill(p *graphics.Path, col color.Color) {
	if p.IsEmpty() || c.width == 0 || c.height == 0 {
		return
	}
	if b := p.Bounds(); b.X > float64(c.width) || b.Y > float64(c.height) ||
		b.X+b.Width < 0 || b.Y+b.Height < 0 {
		return
	}
	c.rasterizer.Reset(c.width, c.height)
	c.rasterizer.DrawOp = draw.Over
	pathpkg.ToVector(p, c.rasterizer)
	c.rasterizer.Draw(c.img, c.img.Bounds(), &image.Uniform{col}, image.Point{})
}

// StrokePath outlines p with the given pen. Segments entirely off the
// canvas are skipped.
func (c *Canvas) StrokePath(p *graphics.Path, col color.Color, width float64, lineCap graphics.LineCap) {
	if p.IsEmpty() {
		return
	}
	s := pathpkg.Stroker{
		Width:  width,
		Cap:    lineCap,
		Bounds: graphics.Rect{Width: float64(c.width), Height: float64(c.height)},
	}
	c.Fill(s.Outline(p), col)
}

// At returns the color of a pixel, or transparent outside the canvas.
func (c *Canvas) At(x, y int) color.Color {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.img.At(x, y)
	}
	return color.Transparent
}

// Close releases the label face.
func (c *Canvas) Close() error {
	if c.face != nil {
		err := c.face.Close()
		c.face = nil
		return err
	}
	return nil
}

// Package plot is the plotter core: the world-coordinate viewport, grid
// spacing, the render pass that samples an expression per pixel column,
// and the input controller that turns pointer and wheel events into
// viewport changes.
package plot

import (
	"errors"
	"fmt"
	"math"

	"grapher/pkg/graphics"
)

var (
	// ErrInvalidWindow is returned for bounds that are not finite or not
	// strictly increasing.
	ErrInvalidWindow = errors.New("invalid window")
	// ErrInvalidZoom is returned for a zoom factor that is not a finite
	// positive number.
	ErrInvalidZoom = errors.New("zoom factor must be finite and > 0")
	// ErrInvalidPan is returned for non-finite pan deltas or an empty surface.
	ErrInvalidPan = errors.New("invalid pan")
	// ErrDegenerate is returned when a zoom or pan would collapse the window
	// below floating-point resolution. The viewport is left unchanged.
	ErrDegenerate = errors.New("window collapsed below float precision")
)

// Viewport is the world-coordinate rectangle mapped onto the full surface.
// XMin < XMax and YMin < YMax hold after every successful operation.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultViewport returns the [-10, 10] x [-10, 10] window.
func DefaultViewport() *Viewport {
	return &Viewport{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
}

// NewViewport validates the bounds and returns a viewport.
func NewViewport(xMin, xMax, yMin, yMax float64) (*Viewport, error) {
	v := &Viewport{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v Viewport) validate() error {
	for _, f := range []float64{v.XMin, v.XMax, v.YMin, v.YMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound in %v", ErrInvalidWindow, v)
		}
	}
	if !(v.XMin < v.XMax) || !(v.YMin < v.YMax) {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, v)
	}
	return nil
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", v.XMin, v.XMax, v.YMin, v.YMax)
}

// Set replaces all four bounds after validating them.
func (v *Viewport) Set(xMin, xMax, yMin, yMax float64) error {
	next := Viewport{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	if err := next.validate(); err != nil {
		return err
	}
	*v = next
	return nil
}

// Width returns XMax - XMin.
func (v *Viewport) Width() float64 { return v.XMax - v.XMin }

// Height returns YMax - YMin.
func (v *Viewport) Height() float64 { return v.YMax - v.YMin }

// Center returns the world point in the middle of the window.
func (v *Viewport) Center() (x, y float64) {
	return v.XMin + v.Width()/2, v.YMin + v.Height()/2
}

// Project snapshots the mapping between the viewport and a surface of the
// given pixel size. Scale factors are recomputed on every call.
func (v *Viewport) Project(width, height int) Projection {
	w, h := float64(width), float64(height)
	sx := w / v.Width()
	sy := h / v.Height()

	toPixel := graphics.Translate(-v.XMin, -v.YMin).
		Multiply(graphics.Scale(sx, -sy)).
		Multiply(graphics.Translate(0, h))
	toWorld, _ := toPixel.Inverse()

	return Projection{
		Viewport: *v,
		Width:    width,
		Height:   height,
		ScaleX:   sx,
		ScaleY:   sy,
		toPixel:  toPixel,
		toWorld:  toWorld,
	}
}

// WorldToPixel maps a world point onto a surface of the given size.
func (v *Viewport) WorldToPixel(width, height int, x, y float64) (px, py float64) {
	return v.Project(width, height).WorldToPixel(x, y)
}

// PixelToWorld maps a surface pixel back to world coordinates.
func (v *Viewport) PixelToWorld(width, height int, px, py float64) (x, y float64) {
	return v.Project(width, height).PixelToWorld(px, py)
}

// ZoomAt scales the window by 1/factor about the world point (wx, wy),
// which keeps its pixel position. factor > 1 zooms in.
func (v *Viewport) ZoomAt(wx, wy, factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidZoom, factor)
	}
	if math.IsNaN(wx) || math.IsNaN(wy) || math.IsInf(wx, 0) || math.IsInf(wy, 0) {
		return fmt.Errorf("%w: anchor (%v, %v)", ErrInvalidZoom, wx, wy)
	}

	next := Viewport{
		XMin: wx + (v.XMin-wx)/factor,
		XMax: wx + (v.XMax-wx)/factor,
		YMin: wy + (v.YMin-wy)/factor,
		YMax: wy + (v.YMax-wy)/factor,
	}
	if err := next.validate(); err != nil {
		return fmt.Errorf("%w: zoom %v at (%v, %v)", ErrDegenerate, factor, wx, wy)
	}
	*v = next
	return nil
}

// PanByPixels shifts the window by a pixel drag of (dx, dy) on a surface
// of the given size. Dragging right moves the view left, so X is
// subtracted; pixel Y grows downward, so Y is added.
func (v *Viewport) PanByPixels(width, height int, dx, dy float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: surface %dx%d", ErrInvalidPan, width, height)
	}
	if math.IsNaN(dx) || math.IsNaN(dy) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return fmt.Errorf("%w: delta (%v, %v)", ErrInvalidPan, dx, dy)
	}

	shiftX := dx * v.Width() / float64(width)
	shiftY := dy * v.Height() / float64(height)
	next := Viewport{
		XMin: v.XMin - shiftX,
		XMax: v.XMax - shiftX,
		YMin: v.YMin + shiftY,
		YMax: v.YMax + shiftY,
	}
	if err := next.validate(); err != nil {
		return fmt.Errorf("%w: pan (%v, %v)", ErrDegenerate, dx, dy)
	}
	*v = next
	return nil
}

// Projection is a per-frame snapshot of the world/pixel mapping.
type Projection struct {
	Viewport      Viewport
	Width, Height int
	ScaleX        float64
	ScaleY        float64

	toPixel graphics.Matrix
	toWorld graphics.Matrix
}

// WorldToPixel computes px = (x-XMin)*scaleX, py = height - (y-YMin)*scaleY.
func (p Projection) WorldToPixel(x, y float64) (px, py float64) {
	return p.toPixel.Transform(x, y)
}

// WorldXToPixel maps a world x to a pixel column.
func (p Projection) WorldXToPixel(x float64) float64 {
	return (x - p.Viewport.XMin) * p.ScaleX
}

// WorldYToPixel maps a world y to a pixel row.
func (p Projection) WorldYToPixel(y float64) float64 {
	return float64(p.Height) - (y-p.Viewport.YMin)*p.ScaleY
}

// PixelToWorld is the inverse of WorldToPixel.
func (p Projection) PixelToWorld(px, py float64) (x, y float64) {
	return p.toWorld.Transform(px, py)
}

// PixelXToWorld maps a pixel column to world x as
// XMin + px/width*(XMax-XMin).
func (p Projection) PixelXToWorld(px float64) float64 {
	return p.Viewport.XMin + px/float64(p.Width)*p.Viewport.Width()
}

// PixelYToWorld maps a pixel row to world y.
func (p Projection) PixelYToWorld(py float64) float64 {
	return p.Viewport.YMin + (float64(p.Height)-py)/float64(p.Height)*p.Viewport.Height()
}

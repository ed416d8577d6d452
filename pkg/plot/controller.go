package plot

import (
	"errors"

	"grapher/pkg/expression"
	"grapher/pkg/graphics"
)

// DefaultZoomFactor is the per-notch wheel zoom.
const DefaultZoomFactor = 1.1

// WheelEvent is a wheel notch at pixel (X, Y). DeltaY < 0 means the wheel
// moved away from the user (zoom in), as in browser wheel events.
type WheelEvent struct {
	X, Y   float64
	DeltaY float64
}

// Source returns the current expression text, e.g. from an input field.
type Source func() string

// Notifier receives compile errors for display to the user.
type Notifier func(err error)

// Controller translates pointer and wheel input into viewport changes and
// redraws synchronously after each one. A controller is confined to one
// goroutine; front ends call it from their event loop.
type Controller struct {
	Viewport   *Viewport
	Renderer   *Renderer
	Surface    Surface
	Source     Source
	Notify     Notifier
	ZoomFactor float64

	initial Viewport

	panning bool
	last    graphics.Point

	cursor    graphics.Point
	hasCursor bool

	trace *Trace
}

// NewController wires a controller. The viewport's current bounds become
// the target of Reset.
func NewController(v *Viewport, r *Renderer, s Surface, src Source) *Controller {
	return &Controller{
		Viewport:   v,
		Renderer:   r,
		Surface:    s,
		Source:     src,
		ZoomFactor: DefaultZoomFactor,
		initial:    *v,
	}
}

// Redraw recompiles the source and renders a full frame. Compile errors
// go to Notify and leave the surface as it was.
func (c *Controller) Redraw() error {
	src := ""
	if c.Source != nil {
		src = c.Source()
	}
	trace, err := c.Renderer.Render(c.Surface, c.Viewport, src)
	if err != nil {
		var ce *expression.CompileError
		if errors.As(err, &ce) && c.Notify != nil {
			c.Notify(err)
		}
		return err
	}
	c.trace = trace
	return nil
}

// Wheel zooms about the world point under the cursor: by ZoomFactor when
// DeltaY < 0 and by 1/ZoomFactor when DeltaY > 0. DeltaY == 0 is ignored.
func (c *Controller) Wheel(ev WheelEvent) error {
	if ev.DeltaY == 0 {
		return nil
	}
	factor := c.zoomFactor()
	if ev.DeltaY > 0 {
		factor = 1 / factor
	}

	wx, wy := c.projection().PixelToWorld(ev.X, ev.Y)
	if err := c.Viewport.ZoomAt(wx, wy, factor); err != nil {
		Logger().Debug("zoom rejected", "err", err)
		return err
	}
	return c.Redraw()
}

// PointerDown starts a pan at pixel (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.panning = true
	c.last = graphics.Point{X: x, Y: y}
	c.setCursor(x, y)
}

// PointerMove pans by the distance moved since the last pointer event
// while a pan is active. Outside a pan it only tracks the cursor.
func (c *Controller) PointerMove(x, y float64) error {
	c.setCursor(x, y)
	if !c.panning {
		return nil
	}
	dx, dy := x-c.last.X, y-c.last.Y
	c.last = graphics.Point{X: x, Y: y}
	if dx == 0 && dy == 0 {
		return nil
	}
	if err := c.Viewport.PanByPixels(c.Surface.Width(), c.Surface.Height(), dx, dy); err != nil {
		Logger().Debug("pan rejected", "err", err)
		return err
	}
	return c.Redraw()
}

// PointerUp ends a pan.
func (c *Controller) PointerUp() {
	c.panning = false
}

// PointerLeave ends a pan and forgets the cursor.
func (c *Controller) PointerLeave() {
	c.panning = false
	c.hasCursor = false
}

// Panning reports whether a drag is in progress.
func (c *Controller) Panning() bool {
	return c.panning
}

// ZoomIn zooms in by one step about the window center.
func (c *Controller) ZoomIn() error {
	return c.zoomCenter(c.zoomFactor())
}

// ZoomOut zooms out by one step about the window center.
func (c *Controller) ZoomOut() error {
	return c.zoomCenter(1 / c.zoomFactor())
}

func (c *Controller) zoomCenter(factor float64) error {
	cx, cy := c.Viewport.Center()
	if err := c.Viewport.ZoomAt(cx, cy, factor); err != nil {
		return err
	}
	return c.Redraw()
}

// PanBy pans as if the pointer had been dragged by (dx, dy) pixels.
func (c *Controller) PanBy(dx, dy float64) error {
	if err := c.Viewport.PanByPixels(c.Surface.Width(), c.Surface.Height(), dx, dy); err != nil {
		return err
	}
	return c.Redraw()
}

// Reset restores the window the controller was created with.
func (c *Controller) Reset() error {
	*c.Viewport = c.initial
	return c.Redraw()
}

// Cursor returns the world coordinates under the last known pointer
// position. ok is false after the pointer left the surface.
func (c *Controller) Cursor() (x, y float64, ok bool) {
	if !c.hasCursor {
		return 0, 0, false
	}
	x, y = c.projection().PixelToWorld(c.cursor.X, c.cursor.Y)
	return x, y, true
}

// LastTrace returns the trace of the last successful render.
func (c *Controller) LastTrace() *Trace {
	return c.trace
}

func (c *Controller) setCursor(x, y float64) {
	c.cursor = graphics.Point{X: x, Y: y}
	c.hasCursor = true
}

func (c *Controller) zoomFactor() float64 {
	if c.ZoomFactor > 0 {
		return c.ZoomFactor
	}
	return DefaultZoomFactor
}

func (c *Controller) projection() Projection {
	return c.Viewport.Project(c.Surface.Width(), c.Surface.Height())
}

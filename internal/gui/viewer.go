package gui

import (
	"errors"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"grapher/pkg/api"
	"grapher/pkg/expression"
	"grapher/pkg/plot"
)

// PlotViewer is a custom widget that shows a plot and forwards wheel,
// drag and hover events to its controller.
type PlotViewer struct {
	widget.BaseWidget

	mu     sync.Mutex
	plot   *api.Plot
	raster *canvas.Raster

	// OnCursor receives the world point under the mouse; ok is false
	// when the mouse leaves the widget.
	OnCursor func(x, y float64, ok bool)
	// OnViewChange receives the window after every zoom or pan.
	OnViewChange func(v plot.Viewport)
	// OnError receives errors other than compile errors, which go to
	// the controller's Notify.
	OnError func(err error)
}

var (
	_ fyne.Draggable      = (*PlotViewer)(nil)
	_ fyne.Scrollable     = (*PlotViewer)(nil)
	_ desktop.Mouseable   = (*PlotViewer)(nil)
	_ desktop.Hoverable   = (*PlotViewer)(nil)
	_ fyne.WidgetRenderer = (*plotViewerRenderer)(nil)
)

// NewPlotViewer creates a viewer for p.
func NewPlotViewer(p *api.Plot) *PlotViewer {
	v := &PlotViewer{plot: p}
	v.ExtendBaseWidget(v)
	v.raster = canvas.NewRaster(v.Generate)
	return v
}

// Generate is the raster callback. It resizes the plot to the raster's
// pixel size and returns the current image.
func (v *PlotViewer) Generate(w, h int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()

	b := v.plot.Image().Bounds()
	if w > 0 && h > 0 && (b.Dx() != w || b.Dy() != h) {
		v.report(v.plot.Resize(w, h))
	}
	return v.plot.Image()
}

// Plot replaces the expression and repaints. On a compile error the
// previous image stays.
func (v *PlotViewer) Plot(source string) error {
	v.mu.Lock()
	_, err := v.plot.Render(source)
	v.mu.Unlock()
	v.refresh()
	return err
}

// Do runs fn with the controller while holding the viewer lock, then
// repaints. Keyboard shortcuts and toolbar buttons go through it.
func (v *PlotViewer) Do(fn func(c *plot.Controller) error) {
	v.mu.Lock()
	err := fn(v.plot.Controller())
	v.mu.Unlock()
	v.report(err)
	v.changed()
}

// CreateRenderer creates the renderer for this widget.
func (v *PlotViewer) CreateRenderer() fyne.WidgetRenderer {
	return &plotViewerRenderer{viewer: v}
}

// Scrolled zooms about the cursor. Fyne reports a positive DY when the
// wheel moves away from the user, the opposite of browser deltaY.
func (v *PlotViewer) Scrolled(event *fyne.ScrollEvent) {
	x, y := v.toPixels(event.Position)
	v.Do(func(c *plot.Controller) error {
		return c.Wheel(plot.WheelEvent{X: x, Y: y, DeltaY: -float64(event.Scrolled.DY)})
	})
}

// MouseDown starts a pan.
func (v *PlotViewer) MouseDown(event *desktop.MouseEvent) {
	if event.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := v.toPixels(event.Position)
	v.mu.Lock()
	v.plot.Controller().PointerDown(x, y)
	v.mu.Unlock()
}

// MouseUp ends a pan.
func (v *PlotViewer) MouseUp(*desktop.MouseEvent) {
	v.mu.Lock()
	v.plot.Controller().PointerUp()
	v.mu.Unlock()
}

// Dragged pans by the pointer movement.
func (v *PlotViewer) Dragged(event *fyne.DragEvent) {
	x, y := v.toPixels(event.Position)
	v.Do(func(c *plot.Controller) error {
		if !c.Panning() {
			// press happened outside a MouseDown, e.g. on touch devices
			c.PointerDown(x-float64(event.Dragged.DX)*v.scale(), y-float64(event.Dragged.DY)*v.scale())
		}
		return c.PointerMove(x, y)
	})
}

// DragEnd ends a pan.
func (v *PlotViewer) DragEnd() {
	v.mu.Lock()
	v.plot.Controller().PointerUp()
	v.mu.Unlock()
}

// MouseIn is part of desktop.Hoverable.
func (v *PlotViewer) MouseIn(event *desktop.MouseEvent) {
	v.MouseMoved(event)
}

// MouseMoved tracks the cursor for the status bar.
func (v *PlotViewer) MouseMoved(event *desktop.MouseEvent) {
	x, y := v.toPixels(event.Position)
	v.mu.Lock()
	err := v.plot.Controller().PointerMove(x, y)
	v.mu.Unlock()
	v.report(err)
	v.cursor()
}

// MouseOut ends any pan and clears the cursor readout.
func (v *PlotViewer) MouseOut() {
	v.mu.Lock()
	v.plot.Controller().PointerLeave()
	v.mu.Unlock()
	v.cursor()
}

func (v *PlotViewer) changed() {
	v.refresh()
	v.cursor()
	if v.OnViewChange != nil {
		v.mu.Lock()
		vp := *v.plot.Viewport()
		v.mu.Unlock()
		v.OnViewChange(vp)
	}
}

func (v *PlotViewer) cursor() {
	if v.OnCursor == nil {
		return
	}
	v.mu.Lock()
	x, y, ok := v.plot.Controller().Cursor()
	v.mu.Unlock()
	v.OnCursor(x, y, ok)
}

func (v *PlotViewer) refresh() {
	if v.raster != nil {
		v.raster.Refresh()
	}
}

func (v *PlotViewer) report(err error) {
	if err == nil {
		return
	}
	var ce *expression.CompileError
	if errors.As(err, &ce) {
		return
	}
	if v.OnError != nil {
		v.OnError(err)
	}
}

// toPixels converts a widget position to raster pixels.
func (v *PlotViewer) toPixels(pos fyne.Position) (float64, float64) {
	s := v.scale()
	return float64(pos.X) * s, float64(pos.Y) * s
}

func (v *PlotViewer) scale() float64 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	c := app.Driver().CanvasForObject(v)
	if c == nil || c.Scale() <= 0 {
		return 1
	}
	return float64(c.Scale())
}

// plotViewerRenderer renders the plot viewer.
type plotViewerRenderer struct {
	viewer *PlotViewer
}

func (r *plotViewerRenderer) Layout(size fyne.Size) {
	r.viewer.raster.Move(fyne.NewPos(0, 0))
	r.viewer.raster.Resize(size)
}

func (r *plotViewerRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *plotViewerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.viewer.raster}
}

func (r *plotViewerRenderer) Refresh() {
	r.viewer.raster.Refresh()
}

func (r *plotViewerRenderer) Destroy() {}

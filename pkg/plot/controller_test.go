package plot

import (
	"errors"
	"testing"

	"grapher/pkg/expression"
)

type harness struct {
	ctl     *Controller
	rec     *Recorder
	source  string
	notices []error
}

func newHarness(source string) *harness {
	h := &harness{rec: NewRecorder(500, 500), source: source}
	h.ctl = NewController(DefaultViewport(), NewRenderer(), h.rec, func() string { return h.source })
	h.ctl.Notify = func(err error) { h.notices = append(h.notices, err) }
	return h
}

func TestControllerWheel(t *testing.T) {
	tests := []struct {
		name   string
		deltaY float64
		want   float64
	}{
		{"zoom in", -100, 10 / 1.1},
		{"zoom out", 3, 10 * 1.1},
		{"no delta", 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness("x")
			if err := h.ctl.Wheel(WheelEvent{X: 250, Y: 250, DeltaY: tt.deltaY}); err != nil {
				t.Fatal(err)
			}
			if v := h.ctl.Viewport; !near(v.XMax, tt.want) || !near(v.YMin, -tt.want) {
				t.Errorf("viewport = %v, want ±%v", v, tt.want)
			}
			if tt.deltaY == 0 && len(h.rec.Ops) != 0 {
				t.Error("ignored wheel event redrew the surface")
			}
			if tt.deltaY != 0 && h.rec.Count(OpClearRect) != 1 {
				t.Error("wheel event did not redraw")
			}
		})
	}
}

func TestControllerWheelAnchorsCursor(t *testing.T) {
	h := newHarness("x")
	wx, wy := h.ctl.Viewport.PixelToWorld(500, 500, 100, 400)
	if err := h.ctl.Wheel(WheelEvent{X: 100, Y: 400, DeltaY: -1}); err != nil {
		t.Fatal(err)
	}
	px, py := h.ctl.Viewport.WorldToPixel(500, 500, wx, wy)
	if !near(px, 100) || !near(py, 400) {
		t.Errorf("anchor moved to (%v, %v)", px, py)
	}
}

func TestControllerDragPans(t *testing.T) {
	h := newHarness("x")

	// moves without a press only track the cursor
	if err := h.ctl.PointerMove(300, 300); err != nil {
		t.Fatal(err)
	}
	if *h.ctl.Viewport != *DefaultViewport() || len(h.rec.Ops) != 0 {
		t.Fatal("hover changed the view")
	}

	h.ctl.PointerDown(100, 100)
	if !h.ctl.Panning() {
		t.Fatal("PointerDown did not start a pan")
	}
	if err := h.ctl.PointerMove(125, 100); err != nil {
		t.Fatal(err)
	}
	if err := h.ctl.PointerMove(125, 150); err != nil {
		t.Fatal(err)
	}
	v := h.ctl.Viewport
	if !near(v.XMin, -11) || !near(v.XMax, 9) || !near(v.YMin, -8) || !near(v.YMax, 12) {
		t.Errorf("viewport after drag = %v, want [-11, 9]x[-8, 12]", v)
	}
	if n := h.rec.Count(OpClearRect); n != 2 {
		t.Errorf("redraws = %d, want 2", n)
	}

	h.ctl.PointerUp()
	before := *v
	if err := h.ctl.PointerMove(400, 400); err != nil {
		t.Fatal(err)
	}
	if *v != before {
		t.Error("move after PointerUp panned")
	}

	h.ctl.PointerDown(0, 0)
	h.ctl.PointerLeave()
	if h.ctl.Panning() {
		t.Error("PointerLeave did not end the pan")
	}
	if _, _, ok := h.ctl.Cursor(); ok {
		t.Error("cursor still known after PointerLeave")
	}
}

func TestControllerCompileErrorNotifies(t *testing.T) {
	h := newHarness("x +* ")
	err := h.ctl.Redraw()
	var ce *expression.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Redraw() error = %v, want CompileError", err)
	}
	if len(h.notices) != 1 {
		t.Errorf("notices = %d, want 1", len(h.notices))
	}
	if len(h.rec.Ops) != 0 {
		t.Errorf("surface received %d ops", len(h.rec.Ops))
	}
	if h.ctl.LastTrace() != nil {
		t.Error("trace recorded for failed render")
	}

	h.source = "x"
	if err := h.ctl.Redraw(); err != nil {
		t.Fatal(err)
	}
	if h.ctl.LastTrace() == nil {
		t.Error("no trace after successful render")
	}
}

func TestControllerKeyboardActions(t *testing.T) {
	h := newHarness("x")
	if err := h.ctl.ZoomIn(); err != nil {
		t.Fatal(err)
	}
	if !near(h.ctl.Viewport.XMax, 10/1.1) {
		t.Errorf("ZoomIn viewport = %v", h.ctl.Viewport)
	}
	if err := h.ctl.PanBy(-50, 0); err != nil {
		t.Fatal(err)
	}
	if err := h.ctl.ZoomOut(); err != nil {
		t.Fatal(err)
	}
	if err := h.ctl.Reset(); err != nil {
		t.Fatal(err)
	}
	if *h.ctl.Viewport != *DefaultViewport() {
		t.Errorf("Reset viewport = %v", h.ctl.Viewport)
	}
}

func TestControllerCursor(t *testing.T) {
	h := newHarness("x")
	if _, _, ok := h.ctl.Cursor(); ok {
		t.Error("cursor known before any pointer event")
	}
	_ = h.ctl.PointerMove(375, 125)
	x, y, ok := h.ctl.Cursor()
	if !ok || !near(x, 5) || !near(y, 5) {
		t.Errorf("Cursor() = (%v, %v, %v), want (5, 5, true)", x, y, ok)
	}
}

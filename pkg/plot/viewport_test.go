package plot

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func checkOrdered(t *testing.T, v *Viewport) {
	t.Helper()
	if !(v.XMin < v.XMax) || !(v.YMin < v.YMax) {
		t.Fatalf("viewport not ordered: %v", v)
	}
}

func TestNewViewport(t *testing.T) {
	tests := []struct {
		name                   string
		xMin, xMax, yMin, yMax float64
		wantErr                bool
	}{
		{"default", -10, 10, -10, 10, false},
		{"asymmetric", 0, 1, -3, 100, false},
		{"reversed x", 1, 0, 0, 1, true},
		{"empty y", 0, 1, 2, 2, true},
		{"nan", math.NaN(), 1, 0, 1, true},
		{"inf", 0, math.Inf(1), 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewViewport(tt.xMin, tt.xMax, tt.yMin, tt.yMax)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewViewport() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("error %v is not ErrInvalidWindow", err)
			}
		})
	}
}

func TestWorldToPixel(t *testing.T) {
	v := DefaultViewport()
	tests := []struct {
		x, y   float64
		px, py float64
	}{
		{-10, -10, 0, 500},
		{10, 10, 500, 0},
		{0, 0, 250, 250},
		{5, -5, 375, 375},
	}
	for _, tt := range tests {
		px, py := v.WorldToPixel(500, 500, tt.x, tt.y)
		if !near(px, tt.px) || !near(py, tt.py) {
			t.Errorf("WorldToPixel(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	v, err := NewViewport(-3.5, 12.25, 0.001, 0.002)
	if err != nil {
		t.Fatal(err)
	}
	proj := v.Project(640, 480)
	for _, p := range [][2]float64{{0, 0}, {640, 480}, {17.5, 333}, {-40, 900}} {
		x, y := proj.PixelToWorld(p[0], p[1])
		px, py := proj.WorldToPixel(x, y)
		if math.Abs(px-p[0]) > 1e-6 || math.Abs(py-p[1]) > 1e-6 {
			t.Errorf("round trip of %v = (%v, %v)", p, px, py)
		}
	}
}

func TestProjectionAxesAgree(t *testing.T) {
	proj := DefaultViewport().Project(400, 300)
	for _, x := range []float64{-10, -2.5, 0, 7} {
		px, py := proj.WorldToPixel(x, x)
		if !near(px, proj.WorldXToPixel(x)) || !near(py, proj.WorldYToPixel(x)) {
			t.Errorf("matrix and direct mapping disagree at %v", x)
		}
	}
	if got := proj.PixelXToWorld(200); !near(got, 0) {
		t.Errorf("PixelXToWorld(200) = %v, want 0", got)
	}
	if got := proj.PixelYToWorld(0); !near(got, 10) {
		t.Errorf("PixelYToWorld(0) = %v, want 10", got)
	}
}

func TestZoomAtOrigin(t *testing.T) {
	v := DefaultViewport()
	if err := v.ZoomAt(0, 0, 1.1); err != nil {
		t.Fatal(err)
	}
	want := 10 / 1.1
	if !near(v.XMin, -want) || !near(v.XMax, want) || !near(v.YMin, -want) || !near(v.YMax, want) {
		t.Errorf("after ZoomAt(0, 0, 1.1) viewport = %v, want ±%v", v, want)
	}
}

func TestZoomKeepsAnchorPixel(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		factor float64
	}{
		{"zoom in corner", 0, 0, 1.1},
		{"zoom out off-center", 123, 456, 1 / 1.1},
		{"deep zoom", 250, 250, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultViewport()
			wx, wy := v.PixelToWorld(500, 500, tt.px, tt.py)
			if err := v.ZoomAt(wx, wy, tt.factor); err != nil {
				t.Fatal(err)
			}
			px, py := v.WorldToPixel(500, 500, wx, wy)
			if math.Abs(px-tt.px) > 1e-6 || math.Abs(py-tt.py) > 1e-6 {
				t.Errorf("anchor moved to (%v, %v)", px, py)
			}
			checkOrdered(t, v)
		})
	}
}

func TestZoomRejectsBadFactor(t *testing.T) {
	for _, f := range []float64{0, -1.1, math.NaN(), math.Inf(1)} {
		v := DefaultViewport()
		err := v.ZoomAt(0, 0, f)
		if !errors.Is(err, ErrInvalidZoom) {
			t.Errorf("ZoomAt(factor=%v) error = %v, want ErrInvalidZoom", f, err)
		}
		if *v != *DefaultViewport() {
			t.Errorf("ZoomAt(factor=%v) modified viewport to %v", f, v)
		}
	}
}

func TestZoomDegenerateKeepsState(t *testing.T) {
	v := DefaultViewport()
	err := v.ZoomAt(1, 1, 1e300)
	if err == nil {
		err = v.ZoomAt(1, 1, 1e300)
	}
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("ZoomAt() error = %v, want ErrDegenerate", err)
	}
	checkOrdered(t, v)
}

func TestPanByPixels(t *testing.T) {
	v := DefaultViewport()
	// dragging right by a quarter of the surface moves the view left
	if err := v.PanByPixels(500, 500, 125, 0); err != nil {
		t.Fatal(err)
	}
	if !near(v.XMin, -15) || !near(v.XMax, 5) {
		t.Errorf("x range after pan = [%v, %v], want [-15, 5]", v.XMin, v.XMax)
	}
	// dragging down moves the view up
	if err := v.PanByPixels(500, 500, 0, 50); err != nil {
		t.Fatal(err)
	}
	if !near(v.YMin, -8) || !near(v.YMax, 12) {
		t.Errorf("y range after pan = [%v, %v], want [-8, 12]", v.YMin, v.YMax)
	}
}

func TestPanRejectsBadInput(t *testing.T) {
	v := DefaultViewport()
	if err := v.PanByPixels(0, 500, 1, 1); !errors.Is(err, ErrInvalidPan) {
		t.Errorf("zero width error = %v", err)
	}
	if err := v.PanByPixels(500, 500, math.NaN(), 1); !errors.Is(err, ErrInvalidPan) {
		t.Errorf("NaN delta error = %v", err)
	}
	if *v != *DefaultViewport() {
		t.Errorf("rejected pan modified viewport to %v", v)
	}
}

func TestViewportInvariantUnderSequences(t *testing.T) {
	v := DefaultViewport()
	steps := []func() error{
		func() error { return v.ZoomAt(3, -2, 1.1) },
		func() error { return v.PanByPixels(500, 500, -37, 81) },
		func() error { return v.ZoomAt(-100, 50, 1/1.1) },
		func() error { return v.PanByPixels(500, 500, 1e4, -1e4) },
		func() error { return v.ZoomAt(0, 0, 50) },
		func() error { return v.ZoomAt(0, 0, 1e-3) },
	}
	for i := 0; i < 20; i++ {
		for j, step := range steps {
			if err := step(); err != nil {
				t.Fatalf("round %d step %d: %v", i, j, err)
			}
			checkOrdered(t, v)
		}
	}
}

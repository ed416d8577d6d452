package plot

import (
	"math"
	"testing"
	"time"
)

func TestNiceStep(t *testing.T) {
	tests := []struct {
		min, max  float64
		divisions int
		want      float64
	}{
		{-10, 10, 10, 2},
		{0, 1, 10, 0.1},
		{0, 7, 10, 1},
		{0, 30, 10, 5},
		{0, 60, 10, 10},
		{-1e6, 1e6, 10, 200000},
		{0, 0.0003, 10, 0.00005},
		{5, 5, 10, 0},
		{1, 0, 10, 0},
		{0, 1, 0, 0},
	}
	for _, tt := range tests {
		got := NiceStep(tt.min, tt.max, tt.divisions)
		if !near(got, tt.want) {
			t.Errorf("NiceStep(%v, %v, %d) = %v, want %v", tt.min, tt.max, tt.divisions, got, tt.want)
		}
	}
}

func TestNiceStepForm(t *testing.T) {
	ranges := [][2]float64{
		{-10, 10}, {-9.0909, 9.0909}, {0.1, 0.13}, {-3e7, 4e8},
		{-1e-6, 2.2e-6}, {17, 18}, {-123.4, 567.8},
	}
	for _, r := range ranges {
		step := NiceStep(r[0], r[1], DefaultDivisions)
		exp := math.Floor(math.Log10(step))
		mantissa := step / math.Pow(10, exp)
		ok := false
		for _, m := range []float64{1, 2, 5, 10} {
			if math.Abs(mantissa-m) < 1e-6 {
				ok = true
			}
		}
		if !ok {
			t.Errorf("NiceStep(%v) = %v is not {1,2,5}x10^k", r, step)
		}
		n := len(GridLines(r[0], r[1], step))
		if n < 4 || n > 21 {
			t.Errorf("range %v with step %v gives %d lines", r, step, n)
		}
	}
}

func TestGridLines(t *testing.T) {
	got := GridLines(-10, 10, 2)
	if len(got) != 11 || got[0] != -10 || got[10] != 10 {
		t.Errorf("GridLines(-10, 10, 2) = %v", got)
	}
	if got := GridLines(0.5, 3.5, 1); len(got) != 3 || got[0] != 1 {
		t.Errorf("GridLines(0.5, 3.5, 1) = %v", got)
	}
	if got := GridLines(0, 1, 0); got != nil {
		t.Errorf("zero step = %v, want nil", got)
	}
	if got := GridLines(0, 1, 1e-12); got != nil {
		t.Errorf("runaway step returned %d lines", len(got))
	}
}

func TestGridLinesBeyondIntegerPrecision(t *testing.T) {
	tests := []struct {
		name           string
		min, max, step float64
	}{
		{"far right", 1e17, 1e17 + 16, 2},
		{"far left", -1e17 - 16, -1e17, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan []float64, 1)
			go func() { done <- GridLines(tt.min, tt.max, tt.step) }()
			select {
			case got := <-done:
				if got != nil {
					t.Errorf("GridLines(%v, %v, %v) = %d lines, want nil", tt.min, tt.max, tt.step, len(got))
				}
			case <-time.After(3 * time.Second):
				t.Fatalf("GridLines(%v, %v, %v) did not return", tt.min, tt.max, tt.step)
			}
		})
	}
}

func TestGridLinesStableUnderPan(t *testing.T) {
	v := DefaultViewport()
	for i := 0; i < 50; i++ {
		if err := v.PanByPixels(500, 500, 13.7, -7.3); err != nil {
			t.Fatal(err)
		}
		step := NiceStep(v.XMin, v.XMax, DefaultDivisions)
		for _, x := range GridLines(v.XMin, v.XMax, step) {
			k := x / step
			if math.Abs(k-math.Round(k)) > 1e-9 {
				t.Fatalf("gridline %v is not a multiple of %v after %d pans", x, step, i+1)
			}
			if x < v.XMin || x > v.XMax {
				t.Fatalf("gridline %v outside [%v, %v]", x, v.XMin, v.XMax)
			}
		}
	}
}

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		v    float64
		p    int
		want string
	}{
		{2, 2, "2.00"},
		{-10, 2, "-10.00"},
		{math.Copysign(0, -1), 2, "0.00"},
		{-0.0001, 2, "0.00"},
		{0.14, 1, "0.1"},
	}
	for _, tt := range tests {
		if got := FormatLabel(tt.v, tt.p); got != tt.want {
			t.Errorf("FormatLabel(%v, %d) = %q, want %q", tt.v, tt.p, got, tt.want)
		}
	}
}

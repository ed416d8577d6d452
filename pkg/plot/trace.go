package plot

import (
	"fmt"

	"grapher/pkg/expression"
	"grapher/pkg/graphics"
)

// Function is anything that can be sampled at x. *expression.Expression
// satisfies it.
type Function interface {
	Eval(x float64) expression.Result
}

// FunctionFunc adapts a plain Go function.
type FunctionFunc func(x float64) expression.Result

// Eval calls f(x).
func (f FunctionFunc) Eval(x float64) expression.Result { return f(x) }

// BreakReason says why a column did not extend the current segment.
type BreakReason int

const (
	BreakNone BreakReason = iota
	BreakEval
	BreakNonFinite
	BreakOutOfFrame
)

func (r BreakReason) String() string {
	switch r {
	case BreakNone:
		return "none"
	case BreakEval:
		return "eval"
	case BreakNonFinite:
		return "non-finite"
	case BreakOutOfFrame:
		return "out-of-frame"
	}
	return "unknown"
}

// classify is the path-break policy: a failed evaluation, a non-finite
// value, or a row outside [0, height] ends the current segment.
func classify(res expression.Result, py float64, height int) BreakReason {
	switch res.Fault {
	case expression.FaultEval:
		return BreakEval
	case expression.FaultNonFinite:
		return BreakNonFinite
	}
	if py < 0 || py > float64(height) {
		return BreakOutOfFrame
	}
	return BreakNone
}

// Trace is the sampled curve: disjoint polylines in pixel space.
type Trace struct {
	Segments [][]graphics.Point
	Samples  int
	Breaks   map[BreakReason]int
}

// Points returns the total number of plotted points.
func (t *Trace) Points() int {
	n := 0
	for _, s := range t.Segments {
		n += len(s)
	}
	return n
}

func (t *Trace) String() string {
	return fmt.Sprintf("%d samples, %d segments, %d points, breaks: eval=%d non-finite=%d out-of-frame=%d",
		t.Samples, len(t.Segments), t.Points(),
		t.Breaks[BreakEval], t.Breaks[BreakNonFinite], t.Breaks[BreakOutOfFrame])
}

// Sample evaluates fn at every integer pixel column in [0, width] and
// splits the result into segments at every break.
func Sample(fn Function, proj Projection) *Trace {
	t := &Trace{Breaks: make(map[BreakReason]int)}
	if proj.Width <= 0 || proj.Height <= 0 {
		return t
	}

	var seg []graphics.Point
	flush := func() {
		if len(seg) > 0 {
			t.Segments = append(t.Segments, seg)
			seg = nil
		}
	}

	for px := 0; px <= proj.Width; px++ {
		x := proj.PixelXToWorld(float64(px))
		res := fn.Eval(x)
		t.Samples++

		py := proj.WorldYToPixel(res.Value)
		if reason := classify(res, py, proj.Height); reason != BreakNone {
			t.Breaks[reason]++
			flush()
			continue
		}
		seg = append(seg, graphics.Point{X: float64(px), Y: py})
	}
	flush()
	return t
}

package plot

import (
	"math"
	"strconv"
)

// DefaultDivisions is the number of grid intervals NiceStep aims for.
const DefaultDivisions = 10

// snapTolerance absorbs the rounding in rough/10^exp so that a fraction of
// 2.0000000000000004 snaps to 2 and not to 5.
const snapTolerance = 1e-9

// maxGridLines caps GridLines against a step that is tiny relative to the
// range, which only happens when a caller bypasses NiceStep.
const maxGridLines = 10000

// NiceStep picks a grid spacing of the form {1, 2, 5} x 10^k close to
// (max-min)/divisions, rounding the fraction up. It returns 0 when
// max <= min, either bound is not finite, or divisions < 1.
func NiceStep(min, max float64, divisions int) float64 {
	if divisions < 1 || !(max > min) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return 0
	}

	rough := (max - min) / float64(divisions)
	if rough == 0 || math.IsInf(rough, 0) {
		return 0
	}
	exponent := math.Floor(math.Log10(rough))
	magnitude := math.Pow(10, exponent)
	fraction := rough / magnitude

	var nice float64
	switch {
	case fraction <= 1*(1+snapTolerance):
		nice = 1
	case fraction <= 2*(1+snapTolerance):
		nice = 2
	case fraction <= 5*(1+snapTolerance):
		nice = 5
	default:
		nice = 10
	}
	return nice * magnitude
}

// GridLines returns the multiples of step that fall in [min, max]. The
// first one is ceil(min/step)*step, so positions are absolute and do not
// move when the window is panned. It returns nil when the multiples are
// too large to tell apart, which happens for windows far beyond 2^53
// steps from the origin.
func GridLines(min, max, step float64) []float64 {
	if !(step > 0) || !(max >= min) || math.IsInf(step, 0) {
		return nil
	}

	first := math.Ceil(min / step)
	last := math.Floor(max / step)
	if math.IsNaN(first) || math.IsNaN(last) || math.IsInf(first, 0) || math.IsInf(last, 0) {
		return nil
	}
	if first+1 == first || last-first+1 > maxGridLines {
		return nil
	}

	n := int(last - first)
	lines := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		v := (first + float64(i)) * step
		if v > max {
			break
		}
		if v < min {
			continue
		}
		lines = append(lines, v)
	}
	return lines
}

// FormatLabel formats a gridline value with a fixed number of decimals.
// Negative zero and values that round to zero print as zero.
func FormatLabel(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if z := strconv.FormatFloat(0, 'f', precision, 64); s == "-"+z {
		return z
	}
	return s
}

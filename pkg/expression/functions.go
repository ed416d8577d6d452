package expression

import (
	"fmt"
	"math"
	"sort"
)

// newEnv returns the evaluation environment: the variable, constants and
// the math functions. abs, floor, ceil and round are engine builtins and
// are deliberately not shadowed here.
func newEnv() map[string]any {
	return map[string]any{
		Variable: 0.0,

		"pi": math.Pi,
		"e":  math.E,

		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"atan2": math.Atan2,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"exp":   math.Exp,
		"ln":    math.Log,
		"log":   math.Log,
		"log10": math.Log10,
		"log2":  math.Log2,
		"sqrt":  math.Sqrt,
		"cbrt":  math.Cbrt,
		"hypot": math.Hypot,
		"sign":  sign,
		"fact":  factorial,
	}
}

// Functions lists the names callable from an expression, builtins included.
func Functions() []string {
	names := []string{"abs", "floor", "ceil", "round"}
	for name, v := range newEnv() {
		if _, ok := v.(float64); ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// factorial extends n! to the reals through Gamma(n+1). Negative integers
// are poles of Gamma and are reported as domain errors.
func factorial(n float64) (float64, error) {
	if n < 0 && n == math.Trunc(n) {
		return 0, fmt.Errorf("fact(%v): domain error", n)
	}
	return math.Gamma(n + 1), nil
}

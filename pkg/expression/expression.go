// Package expression compiles single-variable math expressions in x and
// evaluates them sample by sample. It wraps github.com/expr-lang/expr.
package expression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Variable is the name of the independent variable.
const Variable = "x"

// ErrEmpty is wrapped by the CompileError returned for blank input.
var ErrEmpty = errors.New("empty expression")

// CompileError reports malformed expression text.
type CompileError struct {
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid expression %q: %v", e.Source, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Fault classifies a failed sample.
type Fault int

const (
	// FaultNone marks a usable sample.
	FaultNone Fault = iota
	// FaultEval marks an evaluation error such as a domain error raised by
	// a function.
	FaultEval
	// FaultNonFinite marks a NaN or infinite result.
	FaultNonFinite
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "ok"
	case FaultEval:
		return "eval"
	case FaultNonFinite:
		return "non-finite"
	}
	return "unknown"
}

// Result is the outcome of evaluating an expression at one x.
type Result struct {
	Value float64
	Fault Fault
	Err   error
}

// OK reports whether the sample produced a finite value.
func (r Result) OK() bool {
	return r.Fault == FaultNone
}

// Expression is a compiled expression. It reuses one environment map
// across calls and is not safe for concurrent use.
type Expression struct {
	source  string
	program *vm.Program
	env     map[string]any
}

// Option customises compilation.
type Option func(env map[string]any)

// WithFunc registers an extra function callable from the expression. fn
// must be a func value; a trailing error result is reported as FaultEval.
func WithFunc(name string, fn any) Option {
	return func(env map[string]any) {
		env[name] = fn
	}
}

// Compile parses and type-checks text. The result must be numeric.
func Compile(text string, opts ...Option) (*Expression, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &CompileError{Source: text, Err: ErrEmpty}
	}

	env := newEnv()
	for _, opt := range opts {
		opt(env)
	}

	program, err := expr.Compile(text, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, &CompileError{Source: text, Err: err}
	}

	return &Expression{
		source:  text,
		program: program,
		env:     env,
	}, nil
}

// Source returns the text the expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// Eval evaluates the expression at x.
func (e *Expression) Eval(x float64) Result {
	e.env[Variable] = x

	out, err := expr.Run(e.program, e.env)
	if err != nil {
		return Result{Value: math.NaN(), Fault: FaultEval, Err: err}
	}

	v, ok := toFloat(out)
	if !ok {
		return Result{Value: math.NaN(), Fault: FaultEval, Err: fmt.Errorf("non-numeric result %T", out)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Result{Value: v, Fault: FaultNonFinite}
	}
	return Result{Value: v}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

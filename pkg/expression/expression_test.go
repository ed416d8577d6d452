package expression

import (
	"errors"
	"math"
	"testing"
)

func TestEval(t *testing.T) {
	tests := []struct {
		src   string
		x     float64
		want  float64
		fault Fault
	}{
		{"x^2", 3, 9, FaultNone},
		{"2*x + 1", -2, -3, FaultNone},
		{"sin(x)", 0, 0, FaultNone},
		{"cos(pi*x)", 1, -1, FaultNone},
		{"abs(x)", -4, 4, FaultNone},
		{"log(e*x)", 1, 1, FaultNone},
		{"1/x", 0, math.Inf(1), FaultNonFinite},
		{"sqrt(x)", -1, math.NaN(), FaultNonFinite},
		{"ln(x)", -1, math.NaN(), FaultNonFinite},
		{"fact(x)", -2, math.NaN(), FaultEval},
		{"fact(x)", 4, 24, FaultNone},
		{"5", 100, 5, FaultNone},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Compile(tt.src)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.src, err)
			}
			res := e.Eval(tt.x)
			if res.Fault != tt.fault {
				t.Fatalf("Eval(%v).Fault = %v, want %v (err %v)", tt.x, res.Fault, tt.fault, res.Err)
			}
			if tt.fault == FaultNone && math.Abs(res.Value-tt.want) > 1e-9 {
				t.Errorf("Eval(%v) = %v, want %v", tt.x, res.Value, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []string{
		"x +* ",
		"",
		"   ",
		"y + 1",
		"x > 1",
		"sin(",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := Compile(src)
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("Compile(%q) error = %v, want *CompileError", src, err)
			}
			if ce.Source != src {
				t.Errorf("CompileError.Source = %q, want %q", ce.Source, src)
			}
		})
	}
}

func TestCompileEmptyWrapsErrEmpty(t *testing.T) {
	_, err := Compile("")
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Compile(\"\") error = %v, want ErrEmpty", err)
	}
}

func TestEvalRepeatedSamplesAreIndependent(t *testing.T) {
	e, err := Compile("1/x")
	if err != nil {
		t.Fatal(err)
	}
	if r := e.Eval(0); r.OK() {
		t.Fatalf("Eval(0) should fail, got %v", r.Value)
	}
	if r := e.Eval(2); !r.OK() || r.Value != 0.5 {
		t.Errorf("Eval(2) after a failure = %+v, want 0.5", r)
	}
}

func TestWithFunc(t *testing.T) {
	boom := errors.New("boom")
	e, err := Compile("fail(x) + 1", WithFunc("fail", func(v float64) (float64, error) {
		if v > 0 {
			return 0, boom
		}
		return v, nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if r := e.Eval(-1); !r.OK() || r.Value != 0 {
		t.Errorf("Eval(-1) = %+v", r)
	}
	if r := e.Eval(1); r.Fault != FaultEval {
		t.Errorf("Eval(1).Fault = %v, want eval", r.Fault)
	}
}

func TestFunctionsListsBuiltinsAndMath(t *testing.T) {
	names := Functions()
	want := map[string]bool{"abs": false, "sin": false, "fact": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
		if n == "pi" || n == Variable {
			t.Errorf("Functions() should not list %q", n)
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("Functions() missing %q", n)
		}
	}
}

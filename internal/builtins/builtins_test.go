package builtins

import (
	"testing"

	"github.com/fuzy112/golisp/internal/runtime"
)

// newTestEnv registers every native into a fresh top-level environment.
// Most tests pass nil for eval/apply since their natives never call back
// into them; the eval/apply-specific tests pass recording stubs.
func newTestEnv(t *testing.T, evalFn runtime.EvalFunc, applyFn runtime.ApplyFunc) (*runtime.Runtime, *runtime.Environment) {
	t.Helper()
	rt := runtime.New()
	global := runtime.NewGlobalEnvironment(rt.Manager)
	Register(rt, global, evalFn, applyFn)
	return rt, global
}

func call(t *testing.T, rt *runtime.Runtime, env *runtime.Environment, name string, args ...runtime.Value) runtime.Value {
	t.Helper()
	sym := rt.Symbols.Intern(name)
	v, err := env.Lookup(sym)
	if err != nil {
		t.Fatalf("native %q not registered: %v", name, err)
	}
	proc, ok := v.(*runtime.Procedure)
	if !ok {
		t.Fatalf("%q is not a procedure", name)
	}
	return proc.Native(rt, args)
}

func TestAddVariadic(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	tests := []struct {
		args []runtime.Value
		want runtime.Int
	}{
		{nil, 0},
		{[]runtime.Value{runtime.Int(5)}, 5},
		{[]runtime.Value{runtime.Int(1), runtime.Int(2), runtime.Int(3)}, 6},
	}
	for _, tt := range tests {
		got := call(t, rt, env, "+", tt.args...)
		if got != tt.want {
			t.Errorf("(+ %v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestSubUnaryNegatesAndNullaryIsZero(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	if got := call(t, rt, env, "-"); got != runtime.Int(0) {
		t.Errorf("(-) = %v, want 0", got)
	}
	if got := call(t, rt, env, "-", runtime.Int(5)); got != runtime.Int(-5) {
		t.Errorf("(- 5) = %v, want -5", got)
	}
	if got := call(t, rt, env, "-", runtime.Int(10), runtime.Int(3), runtime.Int(2)); got != runtime.Int(5) {
		t.Errorf("(- 10 3 2) = %v, want 5", got)
	}
}

func TestComparisonChains(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	if got := call(t, rt, env, "<", runtime.Int(1), runtime.Int(2), runtime.Int(3)); got != runtime.True {
		t.Errorf("(< 1 2 3) = %v, want #T", got)
	}
	if got := call(t, rt, env, "<", runtime.Int(1), runtime.Int(3), runtime.Int(2)); got != runtime.False {
		t.Errorf("(< 1 3 2) = %v, want #F", got)
	}
	if got := call(t, rt, env, "=", runtime.Int(4), runtime.Int(4)); got != runtime.True {
		t.Errorf("(= 4 4) = %v, want #T", got)
	}
	if got := call(t, rt, env, "!=", runtime.Int(4), runtime.Int(5)); got != runtime.True {
		t.Errorf("(!= 4 5) = %v, want #T", got)
	}
}

func TestDivisionAndModulo(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	if got := call(t, rt, env, "/", runtime.Int(7), runtime.Int(2)); got != runtime.Int(3) {
		t.Errorf("(/ 7 2) = %v, want 3", got)
	}
	if got := call(t, rt, env, "%", runtime.Int(7), runtime.Int(2)); got != runtime.Int(1) {
		t.Errorf("(%%%% 7 2) = %v, want 1", got)
	}
}

func TestDivisionByZeroRaises(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	got := call(t, rt, env, "/", runtime.Int(1), runtime.Int(0))
	if !runtime.IsException(got) {
		t.Fatal("(/ 1 0) must raise")
	}
	rt.Exceptions.Pop()

	got = call(t, rt, env, "%", runtime.Int(1), runtime.Int(0))
	if !runtime.IsException(got) {
		t.Fatal("(%% 1 0) must raise")
	}
}

func TestCarCdrConsList(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	pair := runtime.NewPair(rt.Manager, runtime.Int(1), runtime.Int(2))
	if got := call(t, rt, env, "car", pair); got != runtime.Int(1) {
		t.Errorf("car = %v, want 1", got)
	}
	if got := call(t, rt, env, "cdr", pair); got != runtime.Int(2) {
		t.Errorf("cdr = %v, want 2", got)
	}

	cons := call(t, rt, env, "cons", runtime.Int(9), runtime.Nil)
	p, ok := cons.(*runtime.Pair)
	if !ok || p.Car != runtime.Int(9) || !runtime.IsNil(p.Cdr) {
		t.Errorf("cons = %v, want (9)", cons)
	}

	list := call(t, rt, env, "list", runtime.Int(1), runtime.Int(2), runtime.Int(3))
	elems, ok := runtime.ListToSlice(list)
	if !ok || len(elems) != 3 {
		t.Fatalf("list = %v, want a 3-element proper list", list)
	}
}

func TestCarOfNonPairRaises(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	got := call(t, rt, env, "car", runtime.Nil)
	if !runtime.IsException(got) {
		t.Fatal("(car '()) must raise")
	}
}

func TestUnderArityNativeRaisesInsteadOfPanicking(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	got := call(t, rt, env, "car")
	if !runtime.IsException(got) {
		t.Fatal("(car) with zero arguments must raise, not panic")
	}
}

func TestPredicates(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	pair := runtime.NewPair(rt.Manager, runtime.Int(1), runtime.Nil)

	if got := call(t, rt, env, "null?", runtime.Nil); got != runtime.True {
		t.Errorf("(null? '()) = %v, want #T", got)
	}
	if got := call(t, rt, env, "null?", pair); got != runtime.False {
		t.Errorf("(null? pair) = %v, want #F", got)
	}
	if got := call(t, rt, env, "pair?", pair); got != runtime.True {
		t.Errorf("(pair? pair) = %v, want #T", got)
	}
	if got := call(t, rt, env, "atom?", runtime.Int(1)); got != runtime.True {
		t.Errorf("(atom? 1) = %v, want #T", got)
	}
	if got := call(t, rt, env, "zero?", runtime.Int(0)); got != runtime.True {
		t.Errorf("(zero? 0) = %v, want #T", got)
	}
}

func TestDisplayWritesToStdout(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	var buf stringWriter
	rt.Stdout = &buf
	call(t, rt, env, "display", runtime.Int(42))
	if buf.s != "42" {
		t.Errorf("display wrote %q, want %q", buf.s, "42")
	}
}

type stringWriter struct{ s string }

func (w *stringWriter) Write(p []byte) (int, error) {
	w.s += string(p)
	return len(p), nil
}

func TestEvalNativeDelegatesToEvalFunc(t *testing.T) {
	var gotEnv *runtime.Environment
	var gotVal runtime.Value
	stubEval := runtime.EvalFunc(func(rt *runtime.Runtime, env *runtime.Environment, v runtime.Value) runtime.Value {
		gotEnv = env
		gotVal = v
		return runtime.Int(123)
	})
	rt, env := newTestEnv(t, stubEval, nil)
	got := call(t, rt, env, "eval", runtime.Int(7))
	if got != runtime.Int(123) {
		t.Errorf("eval = %v, want 123", got)
	}
	if gotEnv != env {
		t.Error("eval must evaluate against the captured global environment")
	}
	if gotVal != runtime.Int(7) {
		t.Errorf("eval was called with %v, want 7", gotVal)
	}
}

func TestApplyNativeSpreadsLastArgument(t *testing.T) {
	var gotArgs []runtime.Value
	stubApply := runtime.ApplyFunc(func(rt *runtime.Runtime, proc *runtime.Procedure, args []runtime.Value) runtime.Value {
		gotArgs = args
		return runtime.Nil
	})
	rt, env := newTestEnv(t, nil, stubApply)

	target := runtime.NewNativeProcedure(rt.Manager, rt.Symbols.Intern("target"), -1, func(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
		return runtime.Nil
	})
	tail := runtime.SliceToList(rt.Manager, []runtime.Value{runtime.Int(2), runtime.Int(3)})
	call(t, rt, env, "apply", target, runtime.Int(1), tail)

	want := []runtime.Value{runtime.Int(1), runtime.Int(2), runtime.Int(3)}
	if len(gotArgs) != len(want) {
		t.Fatalf("apply spread %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Errorf("apply spread %v, want %v", gotArgs, want)
		}
	}
}

func TestMakeVectorAndRefSet(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	vec := call(t, rt, env, "make-vector", runtime.Int(3), runtime.Int(0))
	if got := call(t, rt, env, "vector-length", vec); got != runtime.Int(3) {
		t.Errorf("vector-length = %v, want 3", got)
	}
	call(t, rt, env, "vector-set!", vec, runtime.Int(1), runtime.Int(99))
	if got := call(t, rt, env, "vector-ref", vec, runtime.Int(1)); got != runtime.Int(99) {
		t.Errorf("vector-ref = %v, want 99", got)
	}
}

func TestVectorRefOutOfRangeRaises(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	vec := call(t, rt, env, "make-vector", runtime.Int(2), runtime.Int(0))
	got := call(t, rt, env, "vector-ref", vec, runtime.Int(5))
	if !runtime.IsException(got) {
		t.Fatal("out-of-range vector-ref must raise")
	}
}

func TestVectorLiteralAndCopy(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	vec := call(t, rt, env, "vector", runtime.Int(1), runtime.Int(2), runtime.Int(3))
	if got := call(t, rt, env, "vector-length", vec); got != runtime.Int(3) {
		t.Errorf("vector-length = %v, want 3", got)
	}
	cp := call(t, rt, env, "vector-copy", vec)
	if cp == vec {
		t.Error("vector-copy must allocate a distinct vector")
	}
	if got := call(t, rt, env, "vector-ref", cp, runtime.Int(2)); got != runtime.Int(3) {
		t.Errorf("vector-ref on copy = %v, want 3", got)
	}
}

func TestGCRunsWithoutError(t *testing.T) {
	rt, env := newTestEnv(t, nil, nil)
	if got := call(t, rt, env, "gc"); !runtime.IsNil(got) {
		t.Errorf("(gc) = %v, want Nil", got)
	}
}

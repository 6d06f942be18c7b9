// Package builtins registers the native procedures named in spec §4.4
// into a runtime's top-level environment. It depends only on
// internal/runtime (plus internal/errs and internal/printer for
// formatting): the `eval` and `apply` natives need to call back into the
// evaluator, so Register takes the evaluator's two entry points as
// runtime.EvalFunc/runtime.ApplyFunc parameters rather than importing
// internal/evaluator directly. internal/interp.NewTopLevel is the wiring
// point that passes evaluator.Eval and evaluator.Apply in here.
package builtins

import (
	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/printer"
	"github.com/fuzy112/golisp/internal/runtime"
)

// env bundles the state every native needs, avoiding a long parameter
// list on each handler.
type env struct {
	rt     *runtime.Runtime
	global *runtime.Environment
	eval   runtime.EvalFunc
	apply  runtime.ApplyFunc
}

// Register installs every native procedure in spec §4.4's minimum set
// (plus `!=`, `/` and `%`) into global.
func Register(rt *runtime.Runtime, global *runtime.Environment, eval runtime.EvalFunc, apply runtime.ApplyFunc) {
	e := &env{rt: rt, global: global, eval: eval, apply: apply}

	define := func(name string, argMax int, fn runtime.NativeFunc) {
		sym := rt.Symbols.Intern(name)
		proc := runtime.NewNativeProcedure(rt.Manager, sym, argMax, fn)
		if err := global.Define(rt.Manager, sym, proc); err != nil {
			panic(err)
		}
	}

	define("+", -1, e.add)
	define("-", -1, e.sub)
	define("<", -1, e.lt)
	define("=", -1, e.numEq)
	define("!=", -1, e.numNe)
	define("/", -1, e.quot)
	define("%", -1, e.rem)

	define("car", 1, e.car)
	define("cdr", 1, e.cdr)
	define("cons", 2, e.cons)
	define("list", -1, e.list)
	define("null?", 1, e.isNull)
	define("pair?", 1, e.isPair)
	define("atom?", 1, e.isAtom)
	define("zero?", 1, e.isZero)

	define("display", 1, e.display)
	define("eval", 1, e.evalNative)
	define("apply", -1, e.applyNative)
	define("gc", 0, e.gc)

	define("make-vector", 2, e.makeVector)
	define("vector", -1, e.vector)
	define("vector-copy", 1, e.vectorCopy)
	define("vector-length", 1, e.vectorLength)
	define("vector-capacity", 1, e.vectorCapacity)
	define("vector-ref", 2, e.vectorRef)
	define("vector-set!", 3, e.vectorSet)
}

func notANumber(v runtime.Value, proc string) *errs.Error {
	return errs.New(errs.KindType, errs.ErrMsgNotANumber, v.String(), proc)
}

func asInt(v runtime.Value, proc string) (runtime.Int, *errs.Error) {
	i, ok := v.(runtime.Int)
	if !ok {
		return 0, notANumber(v, proc)
	}
	return i, nil
}

func (e *env) add(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	var sum runtime.Int
	for _, a := range args {
		n, err := asInt(a, "+")
		if err != nil {
			return rt.Raise(err)
		}
		sum += n
	}
	return sum
}

func (e *env) sub(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if len(args) == 0 {
		// Non-standard: the source returns 0 for (-), retained per
		// spec §9's open-question resolution.
		return runtime.Int(0)
	}
	first, err := asInt(args[0], "-")
	if err != nil {
		return rt.Raise(err)
	}
	if len(args) == 1 {
		return -first
	}
	result := first
	for _, a := range args[1:] {
		n, err := asInt(a, "-")
		if err != nil {
			return rt.Raise(err)
		}
		result -= n
	}
	return result
}

func compareChain(rt *runtime.Runtime, args []runtime.Value, proc string, ok func(a, b runtime.Int) bool) runtime.Value {
	ints := make([]runtime.Int, len(args))
	for i, a := range args {
		n, err := asInt(a, proc)
		if err != nil {
			return rt.Raise(err)
		}
		ints[i] = n
	}
	for i := 0; i+1 < len(ints); i++ {
		if !ok(ints[i], ints[i+1]) {
			return runtime.False
		}
	}
	return runtime.True
}

func (e *env) lt(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	return compareChain(rt, args, "<", func(a, b runtime.Int) bool { return a < b })
}

func (e *env) numEq(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	return compareChain(rt, args, "=", func(a, b runtime.Int) bool { return a == b })
}

func (e *env) numNe(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	return compareChain(rt, args, "!=", func(a, b runtime.Int) bool { return a != b })
}

func (e *env) quot(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if len(args) != 2 {
		return rt.Raise(errs.New(errs.KindArity, errs.ErrMsgWrongArgCountMax, "/", len(args), 2))
	}
	a, err := asInt(args[0], "/")
	if err != nil {
		return rt.Raise(err)
	}
	b, err := asInt(args[1], "/")
	if err != nil {
		return rt.Raise(err)
	}
	if b == 0 {
		return rt.Raise(errs.New(errs.KindType, errs.ErrMsgDivisionByZero, "/"))
	}
	return a / b
}

func (e *env) rem(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if len(args) != 2 {
		return rt.Raise(errs.New(errs.KindArity, errs.ErrMsgWrongArgCountMax, "%", len(args), 2))
	}
	a, err := asInt(args[0], "%")
	if err != nil {
		return rt.Raise(err)
	}
	b, err := asInt(args[1], "%")
	if err != nil {
		return rt.Raise(err)
	}
	if b == 0 {
		return rt.Raise(errs.New(errs.KindType, errs.ErrMsgDivisionByZero, "%"))
	}
	return a % b
}

func exactArity(rt *runtime.Runtime, args []runtime.Value, proc string, want int) *errs.Error {
	if len(args) != want {
		return errs.New(errs.KindArity, errs.ErrMsgWrongArgCount, proc, len(args), want)
	}
	return nil
}

func (e *env) car(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "car", 1); err != nil {
		return rt.Raise(err)
	}
	p, ok := args[0].(*runtime.Pair)
	if !ok {
		return rt.Raise(errs.New(errs.KindType, errs.ErrMsgNotAPair, args[0].String(), "car"))
	}
	return p.Car
}

func (e *env) cdr(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "cdr", 1); err != nil {
		return rt.Raise(err)
	}
	p, ok := args[0].(*runtime.Pair)
	if !ok {
		return rt.Raise(errs.New(errs.KindType, errs.ErrMsgNotAPair, args[0].String(), "cdr"))
	}
	return p.Cdr
}

func (e *env) cons(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "cons", 2); err != nil {
		return rt.Raise(err)
	}
	return runtime.NewPair(rt.Manager, args[0], args[1])
}

func (e *env) list(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	return runtime.SliceToList(rt.Manager, args)
}

func (e *env) isNull(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "null?", 1); err != nil {
		return rt.Raise(err)
	}
	return runtime.Bool(runtime.IsNil(args[0]))
}

func (e *env) isPair(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "pair?", 1); err != nil {
		return rt.Raise(err)
	}
	return runtime.Bool(runtime.IsPair(args[0]))
}

func (e *env) isAtom(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "atom?", 1); err != nil {
		return rt.Raise(err)
	}
	return runtime.Bool(!runtime.IsPair(args[0]))
}

func (e *env) isZero(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "zero?", 1); err != nil {
		return rt.Raise(err)
	}
	n, err := asInt(args[0], "zero?")
	if err != nil {
		return rt.Raise(err)
	}
	return runtime.Bool(n == 0)
}

func (e *env) display(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "display", 1); err != nil {
		return rt.Raise(err)
	}
	if rt.Stdout != nil {
		_, _ = rt.Stdout.Write([]byte(printer.ToString(args[0])))
	}
	return runtime.Nil
}

func (e *env) evalNative(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "eval", 1); err != nil {
		return rt.Raise(err)
	}
	return e.eval(rt, e.global, args[0])
}

func (e *env) applyNative(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if len(args) == 0 {
		return rt.Raise(errs.New(errs.KindArity, errs.ErrMsgWrongArgCount, "apply", 0, 1))
	}
	proc, ok := args[0].(*runtime.Procedure)
	if !ok {
		return rt.Raise(errs.New(errs.KindType, errs.ErrMsgNotAProcedure, args[0].String()))
	}
	var callArgs []runtime.Value
	if len(args) > 1 {
		callArgs = append(callArgs, args[1:len(args)-1]...)
		tail, ok := runtime.ListToSlice(args[len(args)-1])
		if !ok {
			return rt.Raise(errs.New(errs.KindType, errs.ErrMsgNotAPair, args[len(args)-1].String(), "apply"))
		}
		callArgs = append(callArgs, tail...)
	}
	return e.apply(rt, proc, callArgs)
}

func (e *env) gc(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	rt.Manager.Collect()
	return runtime.Nil
}

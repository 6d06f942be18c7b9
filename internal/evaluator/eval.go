// Package evaluator implements the tree-walking evaluator named in spec
// §4.4: Eval dispatches on value shape, consulting the environment chain
// and invoking registered Syntax or Procedure objects. It is grounded on
// the teacher's internal/interp evaluator loop (dispatch on AST node
// kind, left-to-right argument evaluation, child-environment-per-call),
// generalized from DWScript's statement/expression tree to an
// S-expression call form.
package evaluator

import "github.com/fuzy112/golisp/internal/runtime"

// Eval evaluates value against env (spec §4.4). It never panics on user
// error: failures are reported through the Exception sentinel, with the
// detail pushed onto rt.Exceptions.
func Eval(rt *runtime.Runtime, env *runtime.Environment, value runtime.Value) runtime.Value {
	switch v := value.(type) {
	case *runtime.Symbol:
		val, err := env.Lookup(v)
		if err != nil {
			return rt.Raise(err)
		}
		return val
	case *runtime.Pair:
		return evalCall(rt, env, v)
	default:
		// Nil, Bool, Int, *StringValue, *Vector, *Procedure and *Syntax
		// are self-evaluating.
		return value
	}
}

func evalCall(rt *runtime.Runtime, env *runtime.Environment, form *runtime.Pair) runtime.Value {
	callee := Eval(rt, env, form.Car)
	if runtime.IsException(callee) {
		return callee
	}

	switch fn := callee.(type) {
	case *runtime.Syntax:
		return fn.Handler(rt, env, form.Cdr, fn.Magic, fn.Data)
	case *runtime.Procedure:
		args, failed := evalArgs(rt, env, form.Cdr)
		if failed != nil {
			return failed
		}
		defer releaseArgs(rt, args)
		return Apply(rt, fn, args)
	default:
		return rt.Raise(notAProcedure(callee))
	}
}

// evalArgs evaluates a call form's argument list left to right (spec
// §4.4: "argument evaluation is strictly left-to-right"). failed is
// non-nil (the Exception sentinel) if the argument list was malformed or
// evaluating an argument raised.
func evalArgs(rt *runtime.Runtime, env *runtime.Environment, rest runtime.Value) (args []runtime.Value, failed runtime.Value) {
	for {
		switch cur := rest.(type) {
		case runtime.NilValue:
			return args, nil
		case *runtime.Pair:
			v := Eval(rt, env, cur.Car)
			if runtime.IsException(v) {
				releaseArgs(rt, args)
				return nil, v
			}
			runtime.RetainValue(rt.Manager, v)
			args = append(args, v)
			rest = cur.Cdr
		default:
			releaseArgs(rt, args)
			return nil, rt.Raise(notAPair(rest))
		}
	}
}

// releaseArgs gives up the temporary stack hold evalArgs took on each
// argument as it was computed. Safe to call on a nil or partially built
// slice (an early failure releases only what was collected so far).
func releaseArgs(rt *runtime.Runtime, args []runtime.Value) {
	for _, v := range args {
		runtime.ReleaseValue(rt.Manager, v)
	}
}

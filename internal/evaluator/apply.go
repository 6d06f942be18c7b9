package evaluator

import "github.com/fuzy112/golisp/internal/runtime"

// Apply invokes proc with an already-evaluated argument vector (spec
// §4.4 / §3.4). Native procedures are checked against their declared
// ArgMax and called directly; interpreted procedures get a fresh child
// environment of their *captured* environment (not the caller's) with
// parameters bound, then evaluate their body sequentially, returning the
// value of the last form.
func Apply(rt *runtime.Runtime, proc *runtime.Procedure, args []runtime.Value) runtime.Value {
	if proc.IsNative {
		if proc.ArgMax >= 0 && len(args) > proc.ArgMax {
			return rt.Raise(wrongArgCountMax(proc, len(args)))
		}
		return proc.Native(rt, args)
	}

	name := "lambda"
	if proc.Name != nil {
		name = proc.Name.Name
	}
	callEnv := runtime.NewEnclosedEnvironment(rt.Manager, name, proc.Env)

	// callEnv is reachable only via this local variable until bindParams
	// and the body hand it off to a closure; root it for the duration of
	// the call so it enters the refcounting system at all, and release the
	// stack hold on every return path (including the early error return).
	rt.Manager.IncRef(callEnv)
	defer rt.Manager.DecRef(callEnv)

	if err := bindParams(rt, callEnv, proc, args); err != nil {
		return rt.Raise(err)
	}
	return evalBody(rt, callEnv, proc.Body)
}

// evalBody evaluates body forms sequentially in env, returning the value
// of the last one (Nil for an empty body).
func evalBody(rt *runtime.Runtime, env *runtime.Environment, body []runtime.Value) runtime.Value {
	var result runtime.Value = runtime.Nil
	for _, form := range body {
		result = Eval(rt, env, form)
		if runtime.IsException(result) {
			return result
		}
	}
	return result
}

package evaluator

import (
	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/runtime"
)

// bindParams binds args into callEnv according to proc.Params (spec
// §3.4): a fixed arity of positional names, optionally followed by a
// rest name collecting every remaining argument into a fresh proper
// list.
func bindParams(rt *runtime.Runtime, callEnv *runtime.Environment, proc *runtime.Procedure, args []runtime.Value) *errs.Error {
	names := proc.Params.Names
	if !proc.Params.HasRest && len(args) != len(names) {
		return wrongArgCountExact(proc, len(args), len(names))
	}
	if proc.Params.HasRest && len(args) < len(names) {
		return wrongArgCountExact(proc, len(args), len(names))
	}

	for i, name := range names {
		sym := rt.Symbols.Intern(name)
		if err := callEnv.Define(rt.Manager, sym, args[i]); err != nil {
			return err
		}
	}

	if proc.Params.HasRest {
		rest := runtime.SliceToList(rt.Manager, args[len(names):])
		sym := rt.Symbols.Intern(proc.Params.RestName)
		if err := callEnv.Define(rt.Manager, sym, rest); err != nil {
			return err
		}
	}

	return nil
}

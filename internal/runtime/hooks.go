package runtime

// EvalFunc and ApplyFunc are the evaluator's two entry points, named here
// (rather than in internal/evaluator) so internal/builtins can accept
// them as parameters without importing internal/evaluator — the native
// `eval` and `apply` procedures need to call back into the evaluator;
// internal/interp hands evaluator.Eval and evaluator.Apply to
// builtins.Register, so the builtins package never imports the evaluator.
type EvalFunc func(rt *Runtime, env *Environment, value Value) Value

// ApplyFunc invokes proc with already-evaluated arguments.
type ApplyFunc func(rt *Runtime, proc *Procedure, args []Value) Value

// Package interp wires the runtime, evaluator and builtins together into
// the single embedding entry point named in spec §6
// (env.new_top_level(runtime)). It is the only package allowed to import
// both internal/evaluator and internal/builtins; neither of those
// imports the other, so this is where they actually get connected.
package interp

import (
	"github.com/fuzy112/golisp/internal/builtins"
	"github.com/fuzy112/golisp/internal/evaluator"
	"github.com/fuzy112/golisp/internal/runtime"
)

// NewTopLevel creates <global>, registers every special form and native
// procedure into it, then returns a child "top-level" environment (spec
// §3.3: "<global> and a child top-level") ready for a driver to read and
// evaluate forms into.
func NewTopLevel(rt *runtime.Runtime) *runtime.Environment {
	global := runtime.NewGlobalEnvironment(rt.Manager)
	evaluator.RegisterSpecialForms(rt, global)
	builtins.Register(rt, global, evaluator.Eval, evaluator.Apply)
	return runtime.NewTopLevelChild(rt.Manager, global)
}

package runtime

import "fmt"

// SyntaxFunc implements a special form's behavior. args is the call
// form's unevaluated cdr (spec §4.4: "rest is not evaluated"); magic lets
// one handler serve several closely related forms (e.g. let/let*/letrec
// share a handler distinguished by magic), and data holds any static
// values the registration captured.
type SyntaxFunc func(rt *Runtime, env *Environment, args Value, magic int, data []Value) Value

// Syntax is the primitive handler for a special form (spec §3.5). Syntax
// values are immortal: registered once into the global environment at
// startup and never reclaimed, so — unlike Pair/Vector/Procedure — Syntax
// does not embed gc.Base; it cannot be part of a reclaimable cycle since
// the evaluator only ever reads it, never stores a reference to it
// anywhere but the global environment it was defined in.
type Syntax struct {
	Name    string
	Magic   int
	Data    []Value
	Handler SyntaxFunc
}

func (*Syntax) Type() string { return "SYNTAX" }

func (s *Syntax) String() string {
	return fmt.Sprintf("[Syntax %s]", s.Name)
}

// IsSyntax reports whether v is a Syntax handler.
func IsSyntax(v Value) bool {
	_, ok := v.(*Syntax)
	return ok
}

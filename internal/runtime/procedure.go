package runtime

import (
	"fmt"

	"github.com/fuzy112/golisp/internal/gc"
)

// ParamSpec describes a procedure's parameter list (spec §3.4): either a
// fixed arity of positional names, a bare rest name collecting every
// argument, or a mix of the two.
type ParamSpec struct {
	// Names holds the fixed, positional parameter names.
	Names []string
	// RestName is the name bound to the tail of extra arguments,
	// collected into a fresh proper list. Empty when HasRest is false.
	RestName string
	HasRest  bool
}

// NativeFunc is the Go implementation behind a native procedure. args has
// already been evaluated left-to-right by the caller; it must not be
// retained beyond the call.
type NativeFunc func(rt *Runtime, args []Value) Value

// Procedure is a first-class procedure value (spec §3.4): either
// interpreted (params + body + captured environment) or native (a Go
// callable plus a declared maximum arity). Because an interpreted
// procedure's captured Env can itself hold a binding for the procedure
// (a named lambda stored by `define`, or a letrec binding), procedures
// and environments routinely form reference cycles — the case the
// object manager's cycle collector exists to reclaim.
type Procedure struct {
	gc.Base

	Name   *Symbol
	Params ParamSpec

	// Interpreted procedure fields.
	Body []Value
	Env  *Environment

	// Native procedure fields. ArgMax < 0 means "no declared maximum".
	Native NativeFunc
	ArgMax int

	IsNative bool
}

// NewInterpretedProcedure allocates a closure over env through m.
func NewInterpretedProcedure(m *gc.Manager, name *Symbol, params ParamSpec, body []Value, env *Environment) *Procedure {
	p := &Procedure{Name: name, Params: params, Body: body, Env: env}
	m.Allocate(p)
	incRef(m, env)
	for _, form := range body {
		incRef(m, form)
	}
	return p
}

// NewNativeProcedure wraps fn as a native procedure with declared maximum
// arity argMax (negative for "unbounded"). Native procedures are
// registered once into the global environment at startup and live for
// the runtime's lifetime; they are still routed through m.Allocate for a
// uniform Value shape, but since nothing ever decrements their reference
// count to zero they are never finalized.
func NewNativeProcedure(m *gc.Manager, name *Symbol, argMax int, fn NativeFunc) *Procedure {
	p := &Procedure{Name: name, Native: fn, ArgMax: argMax, IsNative: true}
	m.Allocate(p)
	return p
}

func (*Procedure) Type() string { return "PROCEDURE" }

func (p *Procedure) String() string {
	name := "anonymous"
	if p.Name != nil {
		name = p.Name.Name
	}
	return fmt.Sprintf("[Procedure %s]", name)
}

// Trace visits the captured environment and every body form (interpreted
// procedures only; native procedures reference nothing).
func (p *Procedure) Trace(visit func(gc.Object)) {
	if p.IsNative {
		return
	}
	if p.Env != nil {
		visit(p.Env)
	}
	for _, form := range p.Body {
		if obj, ok := asObject(form); ok {
			visit(obj)
		}
	}
}

// Finalize is a no-op: procedures own no external resources.
func (p *Procedure) Finalize() {}

// IsProcedure reports whether v is a Procedure (native or interpreted).
func IsProcedure(v Value) bool {
	_, ok := v.(*Procedure)
	return ok
}

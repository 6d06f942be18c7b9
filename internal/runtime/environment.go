package runtime

import (
	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/gc"
	"github.com/fuzy112/golisp/pkg/ident"
)

// Environment is an ordered, case-insensitive map from Symbol name to
// mutable value cell, parent-linked for lexical scoping (spec §3.3). It
// is itself a heap object managed by the object manager: procedures
// capture the environment they were created in, and an environment that
// holds a binding for a procedure which in turn captured it is exactly
// the reference cycle the cycle collector exists to break.
type Environment struct {
	gc.Base

	// name is diagnostic only (spec §3.3).
	name   string
	store  *ident.Map[Value]
	parent *Environment

	// topLevel marks the frame where redefinition is tolerated (spec
	// §4.2: "rebinding is allowed in the top-level, redefining an
	// existing symbol in a local frame is a user error").
	topLevel bool
}

// NewGlobalEnvironment creates the root <global> environment with no
// parent, through m.
func NewGlobalEnvironment(m *gc.Manager) *Environment {
	e := &Environment{name: "<global>", store: ident.NewMap[Value](), topLevel: true}
	m.Allocate(e)
	return e
}

// NewTopLevelChild creates the "top-level" environment as a child of
// global, per spec §3.3's startup lifecycle ("<global> and a child
// top-level").
func NewTopLevelChild(m *gc.Manager, global *Environment) *Environment {
	e := NewEnclosedEnvironment(m, "top-level", global)
	e.topLevel = true
	return e
}

// NewEnclosedEnvironment creates a new environment enclosed by parent,
// through m, used for let/let*/letrec bindings and procedure entry.
func NewEnclosedEnvironment(m *gc.Manager, name string, parent *Environment) *Environment {
	e := &Environment{name: name, store: ident.NewMap[Value](), parent: parent}
	m.Allocate(e)
	incRef(m, parent)
	return e
}

func (*Environment) Type() string     { return "ENV" }
func (e *Environment) String() string { return "#<environment " + e.name + ">" }

// Trace visits the parent environment and every bound value.
func (e *Environment) Trace(visit func(gc.Object)) {
	if e.parent != nil {
		visit(e.parent)
	}
	e.store.Range(func(_ string, v Value) bool {
		if obj, ok := asObject(v); ok {
			visit(obj)
		}
		return true
	})
}

// Finalize is a no-op: environments own no external resources.
func (e *Environment) Finalize() {}

// Parent returns the enclosing environment, or nil for <global>.
func (e *Environment) Parent() *Environment { return e.parent }

// Name returns the environment's diagnostic name.
func (e *Environment) Name() string { return e.name }

// Define inserts a new binding for sym in this frame only (spec §4.2). A
// redefinition of an already-bound symbol is tolerated at the top-level
// and is a user error anywhere else.
func (e *Environment) Define(m *gc.Manager, sym *Symbol, val Value) *errs.Error {
	if old, exists := e.store.Get(sym.Name); exists {
		if !e.topLevel {
			return errs.New(errs.KindType, errs.ErrMsgDuplicateBinding, sym.Name)
		}
		decRef(m, old)
	}
	e.store.Set(sym.Name, val)
	incRef(m, val)
	return nil
}

// Lookup walks this frame then each parent in turn, returning the first
// binding found (spec §4.2). Unbound symbols raise KindUnboundVariable.
func (e *Environment) Lookup(sym *Symbol) (Value, *errs.Error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.store.Get(sym.Name); ok {
			return v, nil
		}
	}
	return nil, errs.New(errs.KindUnboundVariable, errs.ErrMsgUnboundVariable, sym.Name)
}

// Assign walks the parent chain for set!: if sym is bound anywhere, the
// cell is overwritten in place and nil is returned; otherwise it raises
// KindUnboundVariable and never creates a new binding (spec §4.2).
func (e *Environment) Assign(m *gc.Manager, sym *Symbol, val Value) *errs.Error {
	for env := e; env != nil; env = env.parent {
		if old, ok := env.store.Get(sym.Name); ok {
			env.store.Set(sym.Name, val)
			incRef(m, val)
			decRef(m, old)
			return nil
		}
	}
	return errs.New(errs.KindUnboundVariable, errs.ErrMsgUnboundVariable, sym.Name)
}

// Has reports whether sym is bound in this frame or any ancestor.
func (e *Environment) Has(sym *Symbol) bool {
	_, err := e.Lookup(sym)
	return err == nil
}

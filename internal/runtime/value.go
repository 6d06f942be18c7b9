// Package runtime implements the value model (spec §3) and the pieces
// that manage it: the symbol interner, the environment chain, and the
// wiring between heap-backed values and the object manager in
// internal/gc. It is grounded on the teacher's internal/interp/runtime
// package (the Value interface, Environment, and the heap-value shapes)
// generalized from DWScript's object/class model to pairs, symbols,
// vectors and closures.
package runtime

import (
	"strconv"

	"github.com/fuzy112/golisp/internal/gc"
)

// Value is the tagged union every other component passes around (spec
// §3.1). Every concrete variant below implements it.
type Value interface {
	// Type returns the variant's diagnostic name (e.g. "PAIR", "SYMBOL").
	Type() string
	// String returns a debug-oriented representation. Code that needs
	// the dialect's printed form must use the printer package instead:
	// String here is not guaranteed to round-trip or to match Lisp
	// read syntax, it exists for %v/error-message formatting.
	String() string
}

// Nil is the unique empty-list / false-list marker (spec §3.1). It is a
// singleton; compare with runtime.IsNil rather than ==nil.
type NilValue struct{}

// Nil is the interpreter's single Nil instance.
var Nil Value = NilValue{}

func (NilValue) Type() string   { return "NIL" }
func (NilValue) String() string { return "()" }

// IsNil reports whether v is the Nil value.
func IsNil(v Value) bool {
	_, ok := v.(NilValue)
	return ok
}

// Bool is #t / #f. Nil and false are distinct values (spec invariant).
type Bool bool

func (b Bool) Type() string { return "BOOLEAN" }
func (b Bool) String() string {
	if b {
		return "#T"
	}
	return "#F"
}

// True and False are the two Bool values, exported for convenience.
const (
	True  Bool = true
	False Bool = false
)

// Truthy implements the evaluator's notion of a true test value: only
// Bool(false) is false-like; everything else, including Nil, is true.
// (Scheme's "only #f is false" rule; the dialect has no separate falsy
// empty list.)
func Truthy(v Value) bool {
	b, ok := v.(Bool)
	return !ok || bool(b)
}

// Int is a 32-bit signed integer (spec §3.1: reader literals are 32-bit).
type Int int32

func (Int) Type() string { return "INTEGER" }
func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// ExceptionValue is the distinguished sentinel signalling "an error was
// raised" (spec §3.1). It carries no payload of its own; the payload
// lives on the Runtime's exception list. It must never appear inside a
// pair, vector element, environment binding, or procedure argument list:
// every operation that would construct such a value instead propagates
// the sentinel unchanged.
type ExceptionValue struct{}

// Exception is the interpreter's single exception sentinel.
var Exception Value = ExceptionValue{}

func (ExceptionValue) Type() string { return "EXCEPTION" }

// String panics: printing an Exception is a bug in the caller, per spec
// §4.5 ("must not be printable... abort").
func (ExceptionValue) String() string {
	panic("runtime: attempted to print the Exception sentinel")
}

// IsException reports whether v is the Exception sentinel.
func IsException(v Value) bool {
	_, ok := v.(ExceptionValue)
	return ok
}

// asObject type-asserts v to a heap-managed gc.Object, for code that
// needs to Inc/DecRef a value that may or may not be heap-backed (atoms
// such as Int, Bool, Nil, Symbol and String are not gc-managed and the
// assertion simply fails for them).
func asObject(v Value) (gc.Object, bool) {
	obj, ok := v.(gc.Object)
	return obj, ok
}

// incRef increments v's reference count if it is heap-managed; a no-op
// for atoms.
func incRef(m *gc.Manager, v Value) {
	if obj, ok := asObject(v); ok {
		m.IncRef(obj)
	}
}

// decRef decrements v's reference count if it is heap-managed; a no-op
// for atoms.
func decRef(m *gc.Manager, v Value) {
	if obj, ok := asObject(v); ok {
		m.DecRef(obj)
	}
}

// RetainValue takes a temporary stack-level reference on v, exported for
// internal/evaluator to root intermediates (evaluated arguments, frame
// environments) that are held only by a Go local variable and would
// otherwise never enter the refcounting system at all. A no-op for atoms.
func RetainValue(m *gc.Manager, v Value) {
	incRef(m, v)
}

// ReleaseValue gives up a stack-level reference taken by RetainValue. A
// no-op for atoms.
func ReleaseValue(m *gc.Manager, v Value) {
	decRef(m, v)
}

package runtime

import (
	"io"
	"os"

	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/gc"
)

// Runtime bundles the process-wide state shared by every component: the
// object manager, the symbol interner, and the pending-exception list
// (spec §5: "the runtime itself... is the only process-wide state").
// There is exactly one Runtime per interpreter instance; nothing in this
// package is safe for concurrent use from multiple goroutines (spec §5:
// "concurrent access from multiple threads is undefined").
type Runtime struct {
	Manager    *gc.Manager
	Symbols    *SymbolTable
	Exceptions *ExceptionList

	// Stdout is where `display` and Print write (spec §6:
	// "value.print(env) writes to_string plus newline to stdout").
	// Defaults to os.Stdout; tests substitute a buffer.
	Stdout io.Writer
}

// New creates a fresh Runtime with its own object manager and symbol
// table, corresponding to the external interface's runtime.new().
func New() *Runtime {
	return &Runtime{
		Manager:    gc.NewManager(),
		Symbols:    NewSymbolTable(),
		Exceptions: &ExceptionList{},
		Stdout:     os.Stdout,
	}
}

// NewWithGC creates a Runtime whose object manager uses an explicit
// collection threshold and GC_INTERVAL, as exposed by the CLI's
// --gc-threshold/--gc-interval flags.
func NewWithGC(m *gc.Manager) *Runtime {
	return &Runtime{
		Manager:    m,
		Symbols:    NewSymbolTable(),
		Exceptions: &ExceptionList{},
		Stdout:     os.Stdout,
	}
}

// Free drops the runtime's references to its own state. Go's garbage
// collector reclaims the memory; this exists only to round out the
// runtime.new()/runtime.free() pair named in the embedding surface (spec
// §6) and to give callers an explicit point to stop using the Runtime.
func (rt *Runtime) Free() {
	rt.Manager = nil
	rt.Symbols = nil
	rt.Exceptions = nil
}

// Raise pushes err onto the exception list and returns the Exception
// sentinel, the idiom every raising site in the evaluator/reader/builtins
// packages uses.
func (rt *Runtime) Raise(err *errs.Error) Value {
	return rt.Exceptions.Raise(err)
}

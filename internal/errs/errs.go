// Package errs defines the interpreter's closed error-kind taxonomy (spec
// §7) and the exception-list payload type that callers push raised errors
// onto. It mirrors the teacher's internal/interp/errors package: a small
// set of Kind constants plus a catalog of ErrMsg* format strings so every
// raising site produces consistently worded messages.
package errs

import "fmt"

// Kind is the closed set of error categories the interpreter can raise.
type Kind int

const (
	KindParse Kind = iota
	KindType
	KindUnboundVariable
	KindArity
	KindOutOfMemory
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindType:
		return "type error"
	case KindUnboundVariable:
		return "unbound variable"
	case KindArity:
		return "arity error"
	case KindOutOfMemory:
		return "out of memory"
	case KindInternal:
		return "internal error"
	default:
		return "error"
	}
}

// ParseSubKind distinguishes the parse-error sub-kinds named in spec §4.3/§7.
type ParseSubKind int

const (
	ParseSubKindNone ParseSubKind = iota
	ParseEOFAtTopLevel
	ParseUnexpectedEOF
	ParseUnexpectedDelimiter
	ParseInvalidNumber
	ParseInvalidBoolean
	ParseInvalidToken
	ParseInvalidEscape
)

// Error is the payload pushed onto the runtime's pending-exception list
// when an operation fails. The evaluator and reader never return this
// type directly to callers other than through the exception list; the
// observable propagation value is the Exception sentinel (see the
// runtime package).
type Error struct {
	Kind    Kind
	SubKind ParseSubKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New formats a message from the catalog and wraps it with kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewParse formats a parse error with the given sub-kind.
func NewParse(sub ParseSubKind, format string, args ...any) *Error {
	return &Error{Kind: KindParse, SubKind: sub, Message: fmt.Sprintf(format, args...)}
}

// ============================================================================
// Message catalog
//
// Type errors: "the object X, passed as ... to PROC, is not the correct type"
// Unbound errors: "unbound variable: NAME"
// Arity errors: "the procedure P has been called with N arguments; ..."
// Parse errors: a short description such as "unexpected close paren"
// ============================================================================

const (
	ErrMsgNotAPair          = "the object %s, passed as the first argument to %s, is not the correct type"
	ErrMsgNotAProcedure     = "the object %s is not applicable"
	ErrMsgNotANumber        = "the object %s, passed as an argument to %s, is not the correct type"
	ErrMsgNotAVector        = "the object %s, passed as the first argument to %s, is not the correct type"
	ErrMsgDivisionByZero    = "division by zero signalled by %s"
	ErrMsgIndexOutOfRange   = "the object %d, passed as the second argument to %s, is not in the correct range"
	ErrMsgUnboundVariable   = "unbound variable: %s"
	ErrMsgUnassignedVar     = "unassigned variable: %s"
	ErrMsgDuplicateBinding  = "already a variable bound in this frame: %s"
	ErrMsgWrongArgCount     = "the procedure %s has been called with %d arguments; it requires exactly %d arguments"
	ErrMsgWrongArgCountMax  = "the procedure %s has been called with %d arguments; it requires at most %d arguments"
	ErrMsgOutOfMemory       = "ran out of heap"
	ErrMsgInternal          = "internal error: %s"
	ErrMsgEOFAtTopLevel     = "end of file"
	ErrMsgUnexpectedEOF     = "unexpected end of file while reading a list"
	ErrMsgUnexpectedCloser  = "unexpected close paren"
	ErrMsgMismatchedCloser  = "mismatched close delimiter"
	ErrMsgInvalidNumber     = "invalid number literal: %s"
	ErrMsgInvalidBoolean    = "invalid boolean literal: #%s"
	ErrMsgInvalidToken      = "invalid token: %q"
	ErrMsgInvalidEscape     = "invalid escape sequence: \\%c"
	ErrMsgDotOutsideList    = "misplaced dot"
	ErrMsgMultipleDotValues = "at most one value is allowed after a dot"
	ErrMsgIllFormedForm     = "ill-formed special form: %s"
)

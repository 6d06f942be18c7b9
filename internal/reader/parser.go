package reader

import (
	"strconv"
	"strings"

	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/runtime"
)

// Reader is a one-token-lookahead recursive-descent parser (spec §4.3)
// that reads runtime.Value forms out of a string. Use New to construct
// one bound to a Runtime (for symbol interning and heap allocation
// through its object manager) and call ReadForm repeatedly.
type Reader struct {
	rt  *runtime.Runtime
	lex *Lexer
	tok Token
}

// New creates a Reader over input, bound to rt.
func New(rt *runtime.Runtime, input string) *Reader {
	r := &Reader{rt: rt, lex: NewLexer(input)}
	r.advance()
	return r
}

func (r *Reader) advance() {
	r.tok = r.lex.Next()
}

// ReadForm reads and returns the next top-level form. eof is true when
// the input is exhausted with no form to read (spec: "EOF at top level is
// reported to the driver", not an error); a parse error mid-read returns
// the Exception sentinel with the detail pushed to rt.Exceptions.
func (r *Reader) ReadForm() (value runtime.Value, eof bool) {
	if r.tok.Type == EOF {
		return nil, true
	}
	return r.parseForm(), false
}

func (r *Reader) raise(sub errs.ParseSubKind, format string, args ...any) runtime.Value {
	return r.rt.Raise(errs.NewParse(sub, format, args...))
}

func (r *Reader) parseForm() runtime.Value {
	tok := r.tok
	switch tok.Type {
	case EOF:
		return r.raise(errs.ParseUnexpectedEOF, errs.ErrMsgUnexpectedEOF)
	case LParen:
		return r.parseList(RParen)
	case LBracket:
		return r.parseList(RBracket)
	case RParen, RBracket:
		r.advance()
		return r.raise(errs.ParseUnexpectedDelimiter, errs.ErrMsgUnexpectedCloser)
	case Dot:
		r.advance()
		return r.raise(errs.ParseInvalidToken, errs.ErrMsgDotOutsideList)
	case Quote:
		r.advance()
		inner := r.parseForm()
		if runtime.IsException(inner) {
			return inner
		}
		quote := r.rt.Symbols.Intern("quote")
		return runtime.SliceToList(r.rt.Manager, []runtime.Value{quote, inner})
	case Int:
		r.advance()
		n, err := strconv.ParseInt(tok.Literal, 10, 32)
		if err != nil {
			return r.raise(errs.ParseInvalidNumber, errs.ErrMsgInvalidNumber, tok.Literal)
		}
		return runtime.Int(n)
	case Bool:
		r.advance()
		return runtime.Bool(strings.EqualFold(tok.Literal, "#t"))
	case String:
		r.advance()
		return runtime.NewString(tok.Literal)
	case Symbol:
		r.advance()
		return r.rt.Symbols.Intern(tok.Literal)
	case InvalidNumber:
		r.advance()
		return r.raise(errs.ParseInvalidNumber, errs.ErrMsgInvalidNumber, tok.Literal)
	case InvalidEscape:
		r.advance()
		ch := rune(0)
		if runes := []rune(tok.Literal); len(runes) > 0 {
			ch = runes[0]
		}
		return r.raise(errs.ParseInvalidEscape, errs.ErrMsgInvalidEscape, ch)
	case UnterminatedString:
		r.advance()
		return r.raise(errs.ParseUnexpectedEOF, errs.ErrMsgUnexpectedEOF)
	case ILLEGAL:
		r.advance()
		return r.raise(errs.ParseInvalidToken, errs.ErrMsgInvalidToken, tok.Literal)
	default:
		r.advance()
		return r.raise(errs.ParseInvalidToken, errs.ErrMsgInvalidToken, tok.Literal)
	}
}

// parseList reads the contents of a list opened by ( or [, expecting the
// matching closer (spec: "[" and "]" are interchangeable with ( and ) but
// must be balanced with their own kind).
func (r *Reader) parseList(closer TokenType) runtime.Value {
	r.advance() // consume the opener

	var elems []runtime.Value
	var tail runtime.Value = runtime.Nil

	for {
		switch r.tok.Type {
		case EOF:
			return r.raise(errs.ParseUnexpectedEOF, errs.ErrMsgUnexpectedEOF)
		case closer:
			r.advance()
			return buildList(r.rt, elems, tail)
		case RParen, RBracket:
			r.advance()
			return r.raise(errs.ParseUnexpectedDelimiter, errs.ErrMsgMismatchedCloser)
		case Dot:
			r.advance()
			tail = r.parseForm()
			if runtime.IsException(tail) {
				return tail
			}
			if r.tok.Type != closer {
				if r.tok.Type == RParen || r.tok.Type == RBracket {
					r.advance()
					return r.raise(errs.ParseUnexpectedDelimiter, errs.ErrMsgMismatchedCloser)
				}
				return r.raise(errs.ParseInvalidToken, errs.ErrMsgMultipleDotValues)
			}
			r.advance()
			return buildList(r.rt, elems, tail)
		default:
			v := r.parseForm()
			if runtime.IsException(v) {
				return v
			}
			elems = append(elems, v)
		}
	}
}

func buildList(rt *runtime.Runtime, elems []runtime.Value, tail runtime.Value) runtime.Value {
	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = runtime.NewPair(rt.Manager, elems[i], result)
	}
	return result
}

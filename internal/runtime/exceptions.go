package runtime

import (
	"fmt"
	"io"

	"github.com/fuzy112/golisp/internal/errs"
)

// ExceptionList is the runtime's pending-exception stack (spec §7): every
// raising site pushes an *errs.Error here before propagating the
// Exception sentinel; Pop removes and returns the most recent one.
type ExceptionList struct {
	stack []*errs.Error
}

// Push records e as the most recently raised error.
func (l *ExceptionList) Push(e *errs.Error) {
	l.stack = append(l.stack, e)
}

// Pop removes and returns the most recently raised error, or nil if the
// list is empty.
func (l *ExceptionList) Pop() *errs.Error {
	if len(l.stack) == 0 {
		return nil
	}
	n := len(l.stack) - 1
	e := l.stack[n]
	l.stack = l.stack[:n]
	return e
}

// Peek returns the most recently raised error without removing it, or nil
// if the list is empty.
func (l *ExceptionList) Peek() *errs.Error {
	if len(l.stack) == 0 {
		return nil
	}
	return l.stack[len(l.stack)-1]
}

// Len reports how many pending exceptions are queued.
func (l *ExceptionList) Len() int {
	return len(l.stack)
}

// Raise is the helper every raising site uses: it pushes err and returns
// the Exception sentinel, so callers can write `return rt.Exceptions.Raise(err)`.
func (l *ExceptionList) Raise(err *errs.Error) Value {
	l.Push(err)
	return Exception
}

// PrintTop formats the most recently raised exception to w, or writes
// nothing if the list is empty.
func (l *ExceptionList) PrintTop(w io.Writer) {
	if e := l.Peek(); e != nil {
		fmt.Fprintf(w, "%s: %s\n", e.Kind, e.Message)
	}
}

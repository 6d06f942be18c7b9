package evaluator

import (
	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/runtime"
)

func notAProcedure(v runtime.Value) *errs.Error {
	return errs.New(errs.KindType, errs.ErrMsgNotAProcedure, describe(v))
}

func notAPair(v runtime.Value) *errs.Error {
	return errs.New(errs.KindType, errs.ErrMsgNotAPair, describe(v), "the evaluator")
}

func wrongArgCountMax(proc *runtime.Procedure, got int) *errs.Error {
	return errs.New(errs.KindArity, errs.ErrMsgWrongArgCountMax, procName(proc), got, proc.ArgMax)
}

func wrongArgCountExact(proc *runtime.Procedure, got, want int) *errs.Error {
	return errs.New(errs.KindArity, errs.ErrMsgWrongArgCount, procName(proc), got, want)
}

func procName(proc *runtime.Procedure) string {
	if proc.Name != nil {
		return proc.Name.Name
	}
	return "anonymous"
}

// describe renders v for an error message. Exception must never reach
// here (callers check IsException before formatting).
func describe(v runtime.Value) string {
	return v.String()
}

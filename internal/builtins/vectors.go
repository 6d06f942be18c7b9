package builtins

import (
	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/runtime"
)

func asVector(v runtime.Value, proc string) (*runtime.Vector, *errs.Error) {
	vec, ok := v.(*runtime.Vector)
	if !ok {
		return nil, errs.New(errs.KindType, errs.ErrMsgNotAVector, v.String(), proc)
	}
	return vec, nil
}

func (e *env) makeVector(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if len(args) != 1 && len(args) != 2 {
		return rt.Raise(errs.New(errs.KindArity, errs.ErrMsgWrongArgCountMax, "make-vector", len(args), 2))
	}
	k, err := asInt(args[0], "make-vector")
	if err != nil {
		return rt.Raise(err)
	}
	var fill runtime.Value = runtime.Nil
	if len(args) == 2 {
		fill = args[1]
	}
	return runtime.NewVector(rt.Manager, int64(k), fill)
}

func (e *env) vector(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	elems := make([]runtime.Value, len(args))
	copy(elems, args)
	return runtime.NewVectorFromElements(rt.Manager, elems)
}

func (e *env) vectorCopy(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "vector-copy", 1); err != nil {
		return rt.Raise(err)
	}
	vec, err := asVector(args[0], "vector-copy")
	if err != nil {
		return rt.Raise(err)
	}
	elems := make([]runtime.Value, vec.Length())
	for i := int64(0); i < vec.Length(); i++ {
		elems[i], _ = vec.GetIndex(i)
	}
	return runtime.NewVectorFromElements(rt.Manager, elems)
}

func (e *env) vectorLength(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "vector-length", 1); err != nil {
		return rt.Raise(err)
	}
	vec, err := asVector(args[0], "vector-length")
	if err != nil {
		return rt.Raise(err)
	}
	return runtime.Int(vec.Length())
}

func (e *env) vectorCapacity(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "vector-capacity", 1); err != nil {
		return rt.Raise(err)
	}
	vec, err := asVector(args[0], "vector-capacity")
	if err != nil {
		return rt.Raise(err)
	}
	return runtime.Int(vec.Capacity())
}

func (e *env) vectorRef(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "vector-ref", 2); err != nil {
		return rt.Raise(err)
	}
	vec, err := asVector(args[0], "vector-ref")
	if err != nil {
		return rt.Raise(err)
	}
	idx, err := asInt(args[1], "vector-ref")
	if err != nil {
		return rt.Raise(err)
	}
	val, verr := vec.GetIndex(int64(idx))
	if verr != nil {
		return rt.Raise(verr.(*errs.Error))
	}
	return val
}

func (e *env) vectorSet(rt *runtime.Runtime, args []runtime.Value) runtime.Value {
	if err := exactArity(rt, args, "vector-set!", 3); err != nil {
		return rt.Raise(err)
	}
	vec, err := asVector(args[0], "vector-set!")
	if err != nil {
		return rt.Raise(err)
	}
	idx, err := asInt(args[1], "vector-set!")
	if err != nil {
		return rt.Raise(err)
	}
	if verr := vec.SetIndex(rt.Manager, int64(idx), args[2]); verr != nil {
		return rt.Raise(verr.(*errs.Error))
	}
	return runtime.Nil
}

package runtime

import (
	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/gc"
)

// Vector is a fixed-length, mutable sequence of values with separate
// length and capacity (spec §3.1). Unlike Pair, elements are mutated in
// place by SetIndex (vector-set!), so every mutation must re-balance
// reference counts between the old and new occupant of a slot.
type Vector struct {
	gc.Base
	elements []Value
	length   int64
}

// NewVector allocates a length-element vector (capacity == length) filled
// with fill, through m.
func NewVector(m *gc.Manager, length int64, fill Value) *Vector {
	elems := make([]Value, length)
	for i := range elems {
		elems[i] = fill
	}
	v := &Vector{elements: elems, length: length}
	m.Allocate(v)
	for i := int64(0); i < length; i++ {
		incRef(m, fill)
	}
	return v
}

// NewVectorFromElements allocates a vector holding exactly elems (used by
// the `vector` literal-construction builtin), through m.
func NewVectorFromElements(m *gc.Manager, elems []Value) *Vector {
	v := &Vector{elements: elems, length: int64(len(elems))}
	m.Allocate(v)
	for _, e := range elems {
		incRef(m, e)
	}
	return v
}

func (*Vector) Type() string { return "VECTOR" }

func (v *Vector) String() string {
	s := "#("
	for i, e := range v.elements[:v.length] {
		if i > 0 {
			s += " "
		}
		s += e.String()
	}
	return s + ")"
}

// Trace visits every live element.
func (v *Vector) Trace(visit func(gc.Object)) {
	for _, e := range v.elements[:v.length] {
		if obj, ok := asObject(e); ok {
			visit(obj)
		}
	}
}

// Finalize is a no-op: vectors own no external resources.
func (v *Vector) Finalize() {}

// Length returns the vector's element count.
func (v *Vector) Length() int64 { return v.length }

// Capacity returns the vector's backing capacity.
func (v *Vector) Capacity() int64 { return int64(cap(v.elements)) }

// GetIndex returns the element at idx, or a range error.
func (v *Vector) GetIndex(idx int64) (Value, error) {
	if idx < 0 || idx >= v.length {
		return nil, errs.New(errs.KindType, errs.ErrMsgIndexOutOfRange, idx, "vector-ref")
	}
	return v.elements[idx], nil
}

// SetIndex overwrites the element at idx with val, rebalancing the
// reference counts between the displaced and incoming value.
func (v *Vector) SetIndex(m *gc.Manager, idx int64, val Value) error {
	if idx < 0 || idx >= v.length {
		return errs.New(errs.KindType, errs.ErrMsgIndexOutOfRange, idx, "vector-set!")
	}
	old := v.elements[idx]
	v.elements[idx] = val
	incRef(m, val)
	decRef(m, old)
	return nil
}

// IsVector reports whether v is a Vector.
func IsVector(val Value) bool {
	_, ok := val.(*Vector)
	return ok
}

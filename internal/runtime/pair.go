package runtime

import "github.com/fuzy112/golisp/internal/gc"

// Pair is the ordered pair (car . cdr), heap-allocated and managed by the
// object manager (spec §3.1). Once constructed its Car/Cdr are never
// reassigned — the dialect exposes no set-car!/set-cdr! — so Pair needs
// no mutation-time ref-count bookkeeping beyond what NewPair does at
// construction.
type Pair struct {
	gc.Base
	Car, Cdr Value
}

// NewPair allocates a new Pair through m and increments the reference
// count of car and cdr (whichever are heap-managed).
func NewPair(m *gc.Manager, car, cdr Value) *Pair {
	p := &Pair{Car: car, Cdr: cdr}
	m.Allocate(p)
	incRef(m, car)
	incRef(m, cdr)
	return p
}

func (*Pair) Type() string { return "PAIR" }

func (p *Pair) String() string {
	return "(" + debugList(p) + ")"
}

func debugList(p *Pair) string {
	s := p.Car.String()
	switch cdr := p.Cdr.(type) {
	case NilValue:
		return s
	case *Pair:
		return s + " " + debugList(cdr)
	default:
		return s + " . " + cdr.String()
	}
}

// Trace visits Car and Cdr.
func (p *Pair) Trace(visit func(gc.Object)) {
	if obj, ok := asObject(p.Car); ok {
		visit(obj)
	}
	if obj, ok := asObject(p.Cdr); ok {
		visit(obj)
	}
}

// Finalize is a no-op: pairs own no external resources.
func (p *Pair) Finalize() {}

// IsPair reports whether v is a (possibly improper) Pair.
func IsPair(v Value) bool {
	_, ok := v.(*Pair)
	return ok
}

// ListToSlice flattens a proper list into a slice of its elements. It
// returns ok=false if the list is improper (does not end in Nil).
func ListToSlice(v Value) (elems []Value, ok bool) {
	for {
		switch cur := v.(type) {
		case NilValue:
			return elems, true
		case *Pair:
			elems = append(elems, cur.Car)
			v = cur.Cdr
		default:
			return elems, false
		}
	}
}

// SliceToList builds a proper list out of elems, allocating every Pair
// through m.
func SliceToList(m *gc.Manager, elems []Value) Value {
	var result Value = Nil
	for i := len(elems) - 1; i >= 0; i-- {
		result = NewPair(m, elems[i], result)
	}
	return result
}

package gc

import "testing"

// cell is a minimal two-slot heap object used to exercise the manager
// without depending on the runtime package's richer value types.
type cell struct {
	Base
	a, b     Object
	finalized *bool
}

func newCell(m *Manager, finalized *bool) *cell {
	c := &cell{finalized: finalized}
	m.Allocate(c)
	return c
}

func (c *cell) Trace(visit func(Object)) {
	if c.a != nil {
		visit(c.a)
	}
	if c.b != nil {
		visit(c.b)
	}
}

func (c *cell) Finalize() {
	if c.finalized != nil {
		*c.finalized = true
	}
}

func (c *cell) setA(m *Manager, v Object) {
	if c.a != nil {
		m.DecRef(c.a)
	}
	c.a = v
	if v != nil {
		m.IncRef(v)
	}
}

func (c *cell) setB(m *Manager, v Object) {
	if c.b != nil {
		m.DecRef(c.b)
	}
	c.b = v
	if v != nil {
		m.IncRef(v)
	}
}

func TestAcyclicReleaseIsImmediate(t *testing.T) {
	m := NewManager()
	var freed bool
	leaf := newCell(m, &freed)
	m.IncRef(leaf) // a root holds it

	if m.LiveCount() != 1 {
		t.Fatalf("LiveCount = %d, want 1", m.LiveCount())
	}

	m.DecRef(leaf)
	if !freed {
		t.Error("acyclic object with refcount reaching zero should be released immediately")
	}
	if m.LiveCount() != 0 {
		t.Errorf("LiveCount after release = %d, want 0", m.LiveCount())
	}
}

func TestCycleSurvivesUntilCollect(t *testing.T) {
	m := NewManager()
	var freedA, freedB bool
	a := newCell(m, &freedA)
	b := newCell(m, &freedB)

	// external root reference to a
	m.IncRef(a)
	// a -> b -> a, a cycle with no external reference to b
	a.setA(m, b)
	b.setA(m, a)

	// drop the external root
	m.DecRef(a)

	if freedA || freedB {
		t.Fatal("cyclic objects must not be reclaimed by plain refcounting")
	}

	m.Collect()

	if !freedA || !freedB {
		t.Errorf("cycle must be reclaimed by Collect: freedA=%v freedB=%v", freedA, freedB)
	}
	if m.LiveCount() != 0 {
		t.Errorf("LiveCount after Collect = %d, want 0", m.LiveCount())
	}
}

func TestLiveCountBoundedAcrossManyLeaks(t *testing.T) {
	m := NewManagerWithOptions(8, 0)

	for i := 0; i < 500; i++ {
		a := newCell(m, new(bool))
		b := newCell(m, new(bool))
		m.IncRef(a)
		a.setA(m, b)
		b.setA(m, a)
		m.DecRef(a) // leak a cycle each iteration; Allocate() throttles collection
	}
	m.Collect()

	if got := m.LiveCount(); got > 4 {
		t.Errorf("LiveCount after draining leaks = %d, want a small bounded number", got)
	}
}

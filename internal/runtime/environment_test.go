package runtime

import "testing"

func TestDefineLookup(t *testing.T) {
	rt := New()
	global := NewGlobalEnvironment(rt.Manager)
	x := rt.Symbols.Intern("x")

	if err := global.Define(rt.Manager, x, Int(42)); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	v, err := global.Lookup(x)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if v != Int(42) {
		t.Errorf("Lookup = %v, want 42", v)
	}
}

func TestCaseFoldedLookup(t *testing.T) {
	rt := New()
	global := NewGlobalEnvironment(rt.Manager)

	abcUpper := rt.Symbols.Intern("ABC")
	if err := global.Define(rt.Manager, abcUpper, Int(1)); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	abcLower := rt.Symbols.Intern("abc")
	if abcUpper != abcLower {
		t.Fatal("case-folded interning must return the same Symbol object")
	}

	v, err := global.Lookup(abcLower)
	if err != nil || v != Int(1) {
		t.Errorf("case-insensitive lookup failed: v=%v err=%v", v, err)
	}
}

func TestAssignRequiresExistingBinding(t *testing.T) {
	rt := New()
	global := NewGlobalEnvironment(rt.Manager)
	y := rt.Symbols.Intern("y")

	if err := global.Assign(rt.Manager, y, Int(1)); err == nil {
		t.Fatal("Assign on an unbound variable must raise unbound variable, not define it")
	}
	if global.Has(y) {
		t.Error("Assign must never create a new binding")
	}
}

func TestAssignWalksParentChain(t *testing.T) {
	rt := New()
	global := NewGlobalEnvironment(rt.Manager)
	child := NewEnclosedEnvironment(rt.Manager, "child", global)
	z := rt.Symbols.Intern("z")

	if err := global.Define(rt.Manager, z, Int(1)); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if err := child.Assign(rt.Manager, z, Int(99)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if _, ok := child.getLocal(z); ok {
		t.Error("Assign must overwrite the ancestor's binding, not create a local one")
	}
	v, _ := global.Lookup(z)
	if v != Int(99) {
		t.Errorf("global binding = %v, want 99 after child Assign", v)
	}
}

// getLocal is a tiny unexported test helper mirroring what Environment's
// redefinition check already relies on, kept private to this test file.
func (e *Environment) getLocal(sym *Symbol) (Value, bool) {
	return e.store.Get(sym.Name)
}

func TestRedefinitionAllowedAtTopLevelRejectedLocally(t *testing.T) {
	rt := New()
	global := NewGlobalEnvironment(rt.Manager)
	x := rt.Symbols.Intern("x")

	if err := global.Define(rt.Manager, x, Int(1)); err != nil {
		t.Fatalf("first Define failed: %v", err)
	}
	if err := global.Define(rt.Manager, x, Int(2)); err != nil {
		t.Errorf("redefinition at top-level should be tolerated, got %v", err)
	}

	child := NewEnclosedEnvironment(rt.Manager, "local", global)
	if err := child.Define(rt.Manager, x, Int(3)); err != nil {
		t.Fatalf("first local Define failed: %v", err)
	}
	if err := child.Define(rt.Manager, x, Int(4)); err == nil {
		t.Error("redefinition in a local frame must be a user error")
	}
}

func TestPairCarCdr(t *testing.T) {
	rt := New()
	p := NewPair(rt.Manager, Int(1), Int(2))
	if p.Car != Int(1) || p.Cdr != Int(2) {
		t.Errorf("Pair fields wrong: %v . %v", p.Car, p.Cdr)
	}
}

func TestVectorMakeAndSet(t *testing.T) {
	rt := New()
	v := NewVector(rt.Manager, 3, Nil)
	if v.Length() != 3 {
		t.Fatalf("Length = %d, want 3", v.Length())
	}
	for i := int64(0); i < 3; i++ {
		got, err := v.GetIndex(i)
		if err != nil || !IsNil(got) {
			t.Errorf("GetIndex(%d) = %v, %v, want Nil", i, got, err)
		}
	}
	if err := v.SetIndex(rt.Manager, 1, Int(7)); err != nil {
		t.Fatalf("SetIndex failed: %v", err)
	}
	got, _ := v.GetIndex(1)
	if got != Int(7) {
		t.Errorf("GetIndex(1) after SetIndex = %v, want 7", got)
	}
	if _, err := v.GetIndex(3); err == nil {
		t.Error("out-of-range GetIndex must raise an error")
	}
}

func TestCyclicEnvironmentReclaimedByCollect(t *testing.T) {
	rt := New()
	global := NewGlobalEnvironment(rt.Manager)

	// Builds the env-captures-procedure-captures-env cycle directly: a
	// closure bound under its own name in the environment it captured.
	child := NewEnclosedEnvironment(rt.Manager, "closure", global)
	loop := rt.Symbols.Intern("loop")
	proc := NewInterpretedProcedure(rt.Manager, loop, ParamSpec{}, nil, child)
	if err := child.Define(rt.Manager, loop, proc); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	// Simulate the one external reference a caller would hold (e.g. a
	// local variable during the call that built this closure).
	rt.Manager.IncRef(child)

	before := rt.Manager.LiveCount()

	// Drop the only external reference (as if the top-level binding that
	// created this closure went out of scope).
	rt.Manager.DecRef(child)

	if rt.Manager.LiveCount() < before {
		t.Fatal("a cyclic env/procedure pair must not be reclaimed by plain refcounting alone")
	}

	rt.Manager.Collect()

	if rt.Manager.LiveCount() >= before {
		t.Errorf("Collect must reclaim the env/procedure cycle: live before=%d after=%d", before, rt.Manager.LiveCount())
	}
}

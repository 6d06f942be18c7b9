// Package gc implements the object manager described by the interpreter's
// value model: a Bacon-Rajan synchronous cycle-collecting reference
// counter. Every heap-backed runtime value (pairs, vectors, environments,
// interpreted procedures) embeds a Header and is registered with a Manager
// at construction time; the Manager is the sole authority that frees them.
package gc

// Color is the Bacon-Rajan trial-deletion color of a managed object.
type Color int

const (
	// Black objects are assumed live (in use, or already proven acyclic).
	Black Color = iota
	// Gray objects are candidates whose true refcount is being recomputed
	// during trial deletion.
	Gray
	// White objects were not reached by any surviving external reference
	// during trial deletion and are garbage.
	White
	// Purple objects ("Hatch" in the source terminology) are possible
	// roots of a garbage cycle, buffered for the next collection.
	Purple
)

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case Gray:
		return "gray"
	case White:
		return "white"
	case Purple:
		return "purple"
	default:
		return "unknown"
	}
}

// Header is embedded in every heap-backed runtime value. It carries the
// bookkeeping the Manager needs and nothing else; it has no behavior of
// its own.
type Header struct {
	refCount int
	color    Color
	buffered bool
}

// RefCount returns the object's current reference count. Exposed for
// diagnostics and tests; callers should not mutate it directly.
func (h *Header) RefCount() int { return h.refCount }

// Color returns the object's current trial-deletion color.
func (h *Header) Color() Color { return h.color }

// Object is implemented by every heap-backed runtime value that the
// Manager can allocate, trace and reclaim.
type Object interface {
	// gcHeader returns the embedded bookkeeping header.
	gcHeader() *Header
	// Trace calls visit once for every Value this object directly
	// references (a pair's car/cdr, a vector's elements, an
	// environment's bindings, a closure's captured environment).
	Trace(visit func(Object))
	// Finalize is invoked exactly once, when the object is reclaimed.
	// Finalizers must not allocate and must not resurrect the object by
	// storing it somewhere reachable.
	Finalize()
}

// Base is embedded (alongside Header) by concrete heap types so they
// satisfy the unexported gcHeader accessor without repeating it.
type Base struct {
	Header
}

func (b *Base) gcHeader() *Header { return &b.Header }

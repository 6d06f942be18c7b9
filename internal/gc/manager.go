package gc

import "time"

// initialThreshold is the live-object count at which the manager performs
// its first opportunistic collection; it doubles after each sweep that
// collection triggers (spec: "doubles each sweep, initial 128").
const initialThreshold = 128

// DefaultInterval is GC_INTERVAL: collections are also triggered when more
// than this much time has passed since the last scan, independent of the
// live-object threshold.
const DefaultInterval = 2 * time.Second

// Manager is the object manager / cycle collector. It owns every Object it
// allocates and is the only component allowed to finalize one.
type Manager struct {
	live      map[Object]struct{}
	purple    []Object
	threshold int
	interval  time.Duration
	lastScan  time.Time
	now       func() time.Time

	allocCount     int64
	collectCount   int64
	lastCollected  int
	lastCollectLen int
}

// NewManager creates a Manager with the default threshold and interval.
func NewManager() *Manager {
	return NewManagerWithOptions(initialThreshold, DefaultInterval)
}

// NewManagerWithOptions creates a Manager with an explicit starting
// threshold and GC_INTERVAL, as exposed by the CLI's --gc-threshold and
// --gc-interval flags.
func NewManagerWithOptions(threshold int, interval time.Duration) *Manager {
	if threshold <= 0 {
		threshold = initialThreshold
	}
	return &Manager{
		live:      make(map[Object]struct{}),
		threshold: threshold,
		interval:  interval,
		lastScan:  time.Now(),
		now:       time.Now,
	}
}

// Allocate registers obj with the manager. The object starts with a
// reference count of zero; the caller (whatever constructor produced obj)
// is responsible for calling IncRef once the object is actually stored
// somewhere reachable (an environment binding, a pair field, a vector
// element, a closure's captured environment).
//
// Allocate is an allocation point: it may trigger a collection first, per
// the policy in §5 (collections only happen at allocation points).
func (m *Manager) Allocate(obj Object) {
	m.allocCount++
	if m.shouldCollect() {
		m.Collect()
	}
	h := obj.gcHeader()
	h.color = Black
	h.buffered = false
	m.live[obj] = struct{}{}
}

func (m *Manager) shouldCollect() bool {
	if len(m.live) >= m.threshold {
		return true
	}
	return m.now().Sub(m.lastScan) > m.interval
}

// IncRef increments obj's reference count and marks it Black (definitely
// live), matching the teacher's RefCountManager.IncrementRef contract.
func (m *Manager) IncRef(obj Object) {
	if obj == nil {
		return
	}
	h := obj.gcHeader()
	h.refCount++
	h.color = Black
}

// DecRef decrements obj's reference count. If the count reaches zero the
// object (and, transitively, anything only it referenced) is released
// immediately. If the count does not reach zero, obj becomes a suspected
// cycle root and is buffered for the next Collect.
func (m *Manager) DecRef(obj Object) {
	if obj == nil {
		return
	}
	h := obj.gcHeader()
	if h.refCount == 0 {
		return
	}
	h.refCount--
	if h.refCount == 0 {
		m.release(obj)
		return
	}
	m.possibleRoot(obj)
}

func (m *Manager) possibleRoot(obj Object) {
	h := obj.gcHeader()
	if h.color != Purple {
		h.color = Purple
		if !h.buffered {
			h.buffered = true
			m.purple = append(m.purple, obj)
		}
	}
}

// release frees an object whose refcount has reached zero outside of a
// cycle-collection scan: it decrements every object it references and
// recursively releases any of those that themselves reach zero. This is
// plain reference counting: it never observes cycles (those are left for
// Collect), but it reclaims everything acyclic without waiting for one.
func (m *Manager) release(obj Object) {
	h := obj.gcHeader()
	delete(m.live, obj)
	h.color = Black
	obj.Trace(func(child Object) {
		ch := child.gcHeader()
		if ch.refCount == 0 {
			return
		}
		ch.refCount--
		if ch.refCount == 0 {
			m.release(child)
		} else {
			m.possibleRoot(child)
		}
	})
	obj.Finalize()
}

// Collect runs one Bacon-Rajan trial-deletion cycle over the buffered
// suspect ("purple") objects. It is idempotent and safe to call at any
// quiescent point, per §4.1.
func (m *Manager) Collect() {
	m.collectCount++
	roots := m.purple
	m.purple = nil
	m.lastScan = m.now()

	for _, obj := range roots {
		h := obj.gcHeader()
		if h.color == Purple {
			markGray(obj)
		} else {
			h.buffered = false
		}
	}
	for _, obj := range roots {
		scan(obj)
	}
	collected := 0
	for _, obj := range roots {
		obj.gcHeader().buffered = false
		collected += m.collectWhite(obj)
	}

	m.lastCollected = collected
	m.lastCollectLen = len(roots)
	if len(m.live) >= m.threshold {
		m.threshold *= 2
	}
}

func markGray(obj Object) {
	h := obj.gcHeader()
	if h.color == Gray {
		return
	}
	h.color = Gray
	obj.Trace(func(child Object) {
		ch := child.gcHeader()
		ch.refCount--
		if ch.color != Gray {
			markGray(child)
		}
	})
}

func scan(obj Object) {
	h := obj.gcHeader()
	if h.color != Gray {
		return
	}
	if h.refCount > 0 {
		scanBlack(obj)
		return
	}
	h.color = White
	obj.Trace(func(child Object) {
		scan(child)
	})
}

func scanBlack(obj Object) {
	h := obj.gcHeader()
	h.color = Black
	obj.Trace(func(child Object) {
		ch := child.gcHeader()
		ch.refCount++
		if ch.color != Black {
			scanBlack(child)
		}
	})
}

// collectWhite reclaims obj and its White descendants, returning the
// number of objects finalized.
func (m *Manager) collectWhite(obj Object) int {
	h := obj.gcHeader()
	if h.color != White || h.buffered {
		return 0
	}
	h.color = Black
	count := 0
	obj.Trace(func(child Object) {
		count += m.collectWhite(child)
	})
	if _, ok := m.live[obj]; ok {
		delete(m.live, obj)
		obj.Finalize()
		count++
	}
	return count
}

// LiveCount returns the number of objects the manager currently considers
// reachable. It never grows without bound across arbitrarily many
// unreachable allocations, since Collect periodically reclaims cycles and
// Allocate triggers Collect once the threshold is crossed.
func (m *Manager) LiveCount() int {
	return len(m.live)
}

// Stats reports simple collector counters for diagnostics.
type Stats struct {
	Allocations    int64
	Collections    int64
	LastSweepCount int
	LastSweepRoots int
	CurrentLive    int
	CurrentPurple  int
	CurrentThresh  int
}

func (m *Manager) Stats() Stats {
	return Stats{
		Allocations:    m.allocCount,
		Collections:    m.collectCount,
		LastSweepCount: m.lastCollected,
		LastSweepRoots: m.lastCollectLen,
		CurrentLive:    len(m.live),
		CurrentPurple:  len(m.purple),
		CurrentThresh:  m.threshold,
	}
}

package ident

// Map is an ordered, case-insensitive map from identifier names to values
// of type V. It records the casing of the most recent spelling a key was
// stored under (see GetOriginalKey), and keeps insertion order for
// deterministic Range/Keys iteration.
type Map[V any] struct {
	values   map[string]V
	original map[string]string
	order    []string
}

// NewMap creates an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{
		values:   make(map[string]V),
		original: make(map[string]string),
	}
}

// NewMapWithCapacity creates an empty Map pre-sized for n entries.
func NewMapWithCapacity[V any](n int) *Map[V] {
	return &Map[V]{
		values:   make(map[string]V, n),
		original: make(map[string]string, n),
		order:    make([]string, 0, n),
	}
}

// Get looks up name case-insensitively.
func (m *Map[V]) Get(name string) (V, bool) {
	v, ok := m.values[Normalize(name)]
	return v, ok
}

// Has reports whether name is present.
func (m *Map[V]) Has(name string) bool {
	_, ok := m.values[Normalize(name)]
	return ok
}

// Set stores val under name, normalizing for lookup but recording name as
// the canonical (original-case) spelling, overwriting any prior spelling.
func (m *Map[V]) Set(name string, val V) {
	key := Normalize(name)
	if _, exists := m.values[key]; !exists {
		m.order = append(m.order, key)
	}
	m.values[key] = val
	m.original[key] = name
}

// SetIfAbsent stores val under name only if no entry exists yet for the
// normalized key, returning true if the store happened.
func (m *Map[V]) SetIfAbsent(name string, val V) bool {
	key := Normalize(name)
	if _, exists := m.values[key]; exists {
		return false
	}
	m.order = append(m.order, key)
	m.values[key] = val
	m.original[key] = name
	return true
}

// GetOriginalKey returns the original-case spelling under which name was
// most recently stored by Set (or first stored by SetIfAbsent), or "" if
// name is not present.
func (m *Map[V]) GetOriginalKey(name string) string {
	return m.original[Normalize(name)]
}

// Delete removes name, reporting whether it was present.
func (m *Map[V]) Delete(name string) bool {
	key := Normalize(name)
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	delete(m.original, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int {
	return len(m.values)
}

// Keys returns the original-case spellings of every stored key, in
// insertion order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, len(m.order))
	for _, key := range m.order {
		keys = append(keys, m.original[key])
	}
	return keys
}

// Range calls f for every entry in insertion order, stopping early if f
// returns false.
func (m *Map[V]) Range(f func(name string, value V) bool) {
	for _, key := range m.order {
		if !f(m.original[key], m.values[key]) {
			return
		}
	}
}

// Clear empties the map, keeping it usable for further Set calls.
func (m *Map[V]) Clear() {
	m.values = make(map[string]V)
	m.original = make(map[string]string)
	m.order = m.order[:0]
}

// Clone returns a shallow copy of m: values are shared, but mutating the
// clone's entries does not affect m.
func (m *Map[V]) Clone() *Map[V] {
	clone := NewMapWithCapacity[V](len(m.order))
	for _, key := range m.order {
		clone.order = append(clone.order, key)
		clone.values[key] = m.values[key]
		clone.original[key] = m.original[key]
	}
	return clone
}

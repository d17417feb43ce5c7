package store

// Keyed is any record with an immutable identifier.
type Keyed interface {
	Key() string
}

// Slice owns the cached collections of one resource and the lifecycle of
// every operation dispatched against it. Collections are named, e.g. "all"
// and "mine", and each keeps insertion order with unique keys.
type Slice[T Keyed] struct {
	tracker
	colls   map[string][]T
	current *T
}

func NewSlice[T Keyed](name string, opts ...Option) *Slice[T] {
	s := &Slice[T]{colls: make(map[string][]T)}
	s.setup(name, opts)
	return s
}

// Begin moves op to pending, clears the slice error and returns the ticket
// the completion must present.
func (s *Slice[T]) Begin(op string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begin(op)
}

// Resolve applies mutate and marks the operation succeeded. It returns false
// when the completion was dropped by the apply policy.
func (s *Slice[T]) Resolve(tk Ticket, mutate func(m *Mutator[T])) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settle(tk) {
		return false
	}
	if mutate != nil {
		mutate(&Mutator[T]{s: s})
	}
	s.succeed(tk.op)
	return true
}

// Fail marks the operation failed with msg. Cached data is untouched.
func (s *Slice[T]) Fail(tk Ticket, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settle(tk) {
		return false
	}
	s.fail(tk.op, msg)
	return true
}

// Items returns a copy of the named collection; never nil.
func (s *Slice[T]) Items(coll string) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.colls[coll]))
	copy(out, s.colls[coll])
	return out
}

func (s *Slice[T]) Len(coll string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.colls[coll])
}

func (s *Slice[T]) Find(coll, key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.colls[coll], key); i >= 0 {
		return s.colls[coll][i], true
	}
	var zero T
	return zero, false
}

func (s *Slice[T]) Current() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		var zero T
		return zero, false
	}
	return *s.current, true
}

// Reset drops every collection and the current record. Lifecycles are kept.
func (s *Slice[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colls = make(map[string][]T)
	s.current = nil
	s.notify()
}

// Mutator is the write side of a slice, only valid inside Resolve.
type Mutator[T Keyed] struct {
	s *Slice[T]
}

// ReplaceAll swaps the collection for items. A repeated key keeps its first
// position and its last value.
func (m *Mutator[T]) ReplaceAll(coll string, items []T) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if i := indexOf(out, item.Key()); i >= 0 {
			out[i] = item
			continue
		}
		out = append(out, item)
	}
	m.s.colls[coll] = out
}

// Append adds item to each collection. An item whose key is already present
// replaces the existing entry in place.
func (m *Mutator[T]) Append(item T, colls ...string) {
	for _, coll := range colls {
		items := m.s.colls[coll]
		if i := indexOf(items, item.Key()); i >= 0 {
			items[i] = item
			continue
		}
		m.s.colls[coll] = append(items, item)
	}
}

// ReplaceByKey swaps the entry with item's key; collections without it are
// left as they are.
func (m *Mutator[T]) ReplaceByKey(item T, colls ...string) {
	for _, coll := range colls {
		if i := indexOf(m.s.colls[coll], item.Key()); i >= 0 {
			m.s.colls[coll][i] = item
		}
	}
	if m.s.current != nil && (*m.s.current).Key() == item.Key() {
		m.s.current = &item
	}
}

// Remove deletes key from each collection. Unknown keys are ignored.
func (m *Mutator[T]) Remove(key string, colls ...string) {
	for _, coll := range colls {
		items := m.s.colls[coll]
		if i := indexOf(items, key); i >= 0 {
			m.s.colls[coll] = append(items[:i:i], items[i+1:]...)
		}
	}
	if m.s.current != nil && (*m.s.current).Key() == key {
		m.s.current = nil
	}
}

func (m *Mutator[T]) SetCurrent(item T) {
	m.s.current = &item
}

func (m *Mutator[T]) ClearCurrent() {
	m.s.current = nil
}

func indexOf[T Keyed](items []T, key string) int {
	for i, item := range items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}

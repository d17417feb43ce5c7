package store

// Value is a slice for a single non-keyed payload such as a profile or a
// stats summary.
type Value[V any] struct {
	tracker
	value *V
}

func NewValue[V any](name string, opts ...Option) *Value[V] {
	v := &Value[V]{}
	v.setup(name, opts)
	return v
}

func (v *Value[V]) Begin(op string) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.begin(op)
}

func (v *Value[V]) Resolve(tk Ticket, value V) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settle(tk) {
		return false
	}
	v.value = &value
	v.succeed(tk.op)
	return true
}

// Settle marks the operation succeeded without touching the stored value.
func (v *Value[V]) Settle(tk Ticket) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settle(tk) {
		return false
	}
	v.succeed(tk.op)
	return true
}

func (v *Value[V]) Fail(tk Ticket, msg string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.settle(tk) {
		return false
	}
	v.fail(tk.op, msg)
	return true
}

func (v *Value[V]) Get() (V, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.value == nil {
		var zero V
		return zero, false
	}
	return *v.value, true
}

func (v *Value[V]) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.value = nil
	v.notify()
}

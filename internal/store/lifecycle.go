package store

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Lifecycle is the request state of one operation on one slice.
type Lifecycle struct {
	Phase Phase
	Error string
}

// Policy decides what happens when two dispatches of the same operation
// overlap.
type Policy int

const (
	// LastResolved applies every completion in the order it arrives, so the
	// cache reflects whichever response resolved last.
	LastResolved Policy = iota
	// LatestDispatched drops completions that belong to a dispatch older than
	// the most recent one for the same operation.
	LatestDispatched
)

func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "last-resolved":
		return LastResolved, nil
	case "latest-dispatched":
		return LatestDispatched, nil
	default:
		return LastResolved, fmt.Errorf("unknown apply policy %q", value)
	}
}

// Ticket identifies one dispatch. It is handed back to Resolve or Fail.
type Ticket struct {
	op  string
	seq uint64
}

func (t Ticket) Op() string {
	return t.op
}

type Option func(*tracker)

func WithPolicy(p Policy) Option {
	return func(t *tracker) {
		t.policy = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *tracker) {
		t.logger = logger
	}
}

type opState struct {
	lifecycle Lifecycle
	latest    uint64
	inFlight  int
}

// tracker holds the lifecycle bookkeeping shared by Slice and Value. Its
// mutex also guards the cached data of the embedding container.
type tracker struct {
	mu      sync.RWMutex
	name    string
	policy  Policy
	logger  *slog.Logger
	seq     uint64
	ops     map[string]*opState
	lastErr string
	subs    map[chan struct{}]struct{}
}

func (t *tracker) setup(name string, opts []Option) {
	t.name = name
	t.logger = slog.Default()
	t.ops = make(map[string]*opState)
	t.subs = make(map[chan struct{}]struct{})
	for _, opt := range opts {
		opt(t)
	}
}

func (t *tracker) op(name string) *opState {
	state, ok := t.ops[name]
	if !ok {
		state = &opState{}
		t.ops[name] = state
	}
	return state
}

// begin must be called with mu held.
func (t *tracker) begin(op string) Ticket {
	t.seq++
	state := t.op(op)
	state.latest = t.seq
	state.inFlight++
	state.lifecycle = Lifecycle{Phase: PhasePending}
	t.lastErr = ""
	t.notify()
	return Ticket{op: op, seq: t.seq}
}

// settle must be called with mu held. It reports whether the completion of
// tk should be applied.
func (t *tracker) settle(tk Ticket) bool {
	state, ok := t.ops[tk.op]
	if !ok || tk.seq == 0 {
		return false
	}
	if state.inFlight > 0 {
		state.inFlight--
	}
	if t.policy == LatestDispatched && tk.seq < state.latest {
		t.logger.Debug("stale completion dropped", "slice", t.name, "op", tk.op, "ticket", tk.seq, "latest", state.latest)
		return false
	}
	return true
}

func (t *tracker) succeed(op string) {
	t.ops[op].lifecycle = Lifecycle{Phase: PhaseSucceeded}
	t.notify()
}

func (t *tracker) fail(op, msg string) {
	t.ops[op].lifecycle = Lifecycle{Phase: PhaseFailed, Error: msg}
	t.lastErr = msg
	t.notify()
}

func (t *tracker) notify() {
	for ch := range t.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Lifecycle returns the state of op; operations never dispatched are idle.
func (t *tracker) Lifecycle(op string) Lifecycle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if state, ok := t.ops[op]; ok {
		return state.lifecycle
	}
	return Lifecycle{}
}

// Loading reports whether any operation on the slice is still in flight.
func (t *tracker) Loading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, state := range t.ops {
		if state.inFlight > 0 {
			return true
		}
	}
	return false
}

// Err returns the message of the most recent failure, cleared by the next
// dispatch or by ClearError.
func (t *tracker) Err() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastErr
}

func (t *tracker) ClearError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastErr = ""
	for _, state := range t.ops {
		if state.lifecycle.Phase == PhaseFailed {
			state.lifecycle.Error = ""
		}
	}
	t.notify()
}

// Subscribe returns a channel that receives a signal after every state
// change. Signals coalesce; readers re-read the slice on wake-up.
func (t *tracker) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	t.mu.Lock()
	t.subs[ch] = struct{}{}
	t.mu.Unlock()
	return ch
}

func (t *tracker) Unsubscribe(ch <-chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for sub := range t.subs {
		if sub == ch {
			delete(t.subs, sub)
			return
		}
	}
}

func (t *tracker) Name() string {
	return t.name
}

// Package debounce coalesces rapid attribute changes into a single bridge
// write. Scrubbing a brightness slider produces a burst of values; only the
// one still pending when the quiet period ends may be applied.
package debounce

import "sync"

// Ledger tracks pending values per key with a global generation counter.
// Put records a value and returns its generation; Take hands the value back
// only if no newer Put for the same key happened in between. The caller
// pairs each Put with a delayed Take, so stale timers fall through silently.
type Ledger[V any] struct {
	mu      sync.Mutex
	gen     uint64
	pending map[string]entry[V]
}

type entry[V any] struct {
	value V
	gen   uint64
}

// NewLedger creates an empty ledger.
func NewLedger[V any]() *Ledger[V] {
	return &Ledger[V]{pending: make(map[string]entry[V])}
}

// Put records a pending value for key and returns the generation to pass to
// Take. A later Put for the same key supersedes this one.
func (l *Ledger[V]) Put(key string, value V) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.pending[key] = entry[V]{value: value, gen: l.gen}
	return l.gen
}

// Take removes and returns the pending value for key if gen is still the
// current generation. A superseded generation reports false and leaves the
// newer pending value in place.
func (l *Ledger[V]) Take(key string, gen uint64) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.pending[key]
	if !ok || e.gen != gen {
		var zero V
		return zero, false
	}

	delete(l.pending, key)
	return e.value, true
}

// Flush drains and returns all pending values. Used on shutdown so a value
// still inside its quiet period is not lost.
func (l *Ledger[V]) Flush() map[string]V {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]V, len(l.pending))
	for k, e := range l.pending {
		out[k] = e.value
	}
	l.pending = make(map[string]entry[V])
	return out
}

// Len returns the number of keys with a pending value.
func (l *Ledger[V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

package oregistry

import (
	"errors"
	"slices"
	"sync"
)

// Registry holds a single hub's subscriptions, keyed by index.
// The entry type E is whatever the owning hub needs to store
// per subscription: a bare callback for the stateless hub,
// a callback plus topic sets for the topic-filtered ones.
//
// All methods are safe for concurrent use.
type Registry[E any] struct {
	mu sync.Mutex

	entries map[uint64]E
	nextIdx uint64

	closed bool
}

func New[E any]() *Registry[E] {
	return &Registry[E]{
		entries: map[uint64]E{},
	}
}

// Add stores e under the next free index and returns that index.
// Indices are never reused for the lifetime of the registry.
//
// Add panics if the registry is closed.
func (r *Registry[E]) Add(e E) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		panic(errors.New("BUG: Add called on closed registry"))
	}

	idx := r.nextIdx
	r.nextIdx++
	r.entries[idx] = e
	return idx
}

// Remove deletes the entry stored under idx.
// Removing an absent index, or removing after Close, is a no-op.
func (r *Registry[E]) Remove(idx uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, idx)
}

// Snapshot returns the current entries, ordered by ascending index.
// The returned slice is a copy: Add and Remove calls made after
// Snapshot returns never affect a snapshot already taken.
//
// Snapshot panics if the registry is closed.
func (r *Registry[E]) Snapshot() []E {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		panic(errors.New("BUG: Snapshot called on closed registry"))
	}

	idxs := make([]uint64, 0, len(r.entries))
	for idx := range r.entries {
		idxs = append(idxs, idx)
	}
	slices.Sort(idxs)

	out := make([]E, len(idxs))
	for i, idx := range idxs {
		out[i] = r.entries[idx]
	}
	return out
}

// Len returns the number of live entries.
func (r *Registry[E]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Close drops every entry and marks the registry closed.
// Subsequent Add or Snapshot calls panic, while Remove stays a no-op
// so that outstanding unsubscribe handles remain safe to invoke.
// Close is idempotent.
func (r *Registry[E]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.entries = nil
}

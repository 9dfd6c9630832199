// Package ostate contains a hub that caches the most recently
// notified value, so late subscribers can read the current state
// instead of waiting for the next broadcast.
package ostate

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/yerTools/observer"
)

// Hub wraps a stateless [observer.Hub] with a value cell holding the
// most recently notified value. Delivery itself is delegated to the
// inner hub, so the concurrency and reentrancy behavior is the same.
type Hub[T any] struct {
	inner *observer.Hub[T]

	mu     sync.Mutex
	cur    T
	closed bool
}

// New returns a hub whose cell starts out holding initial.
// The caller owns the hub and must call [*Hub.Close] when done with it;
// [With] handles that automatically.
func New[T any](log *slog.Logger, initial T) *Hub[T] {
	return &Hub[T]{
		inner: observer.New[T](log),

		cur: initial,
	}
}

// With runs fn against a freshly created hub and returns fn's result.
// The hub is closed on every exit path out of fn, panicking ones included.
func With[T, R any](log *slog.Logger, initial T, fn func(*Hub[T]) R) R {
	h := New(log, initial)
	defer h.Close()

	return fn(h)
}

// State returns the value most recently written by [*Hub.Notify],
// or the initial value if Notify has not been called yet.
//
// State panics if the hub is closed.
func (h *Hub[T]) State() T {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		panic(errors.New("BUG: State called on closed hub"))
	}

	return h.cur
}

// Notify writes val into the cell and then delivers it to every
// current subscriber, blocking until all of them have finished.
// The cell write happens before fan-out begins, so State observes
// val no later than any callback does.
//
// Notify panics if the hub is closed.
func (h *Hub[T]) Notify(val T) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		panic(errors.New("BUG: Notify called on closed hub"))
	}
	h.cur = val
	h.mu.Unlock()

	h.inner.Notify(val)
}

// Subscribe registers cb to receive every subsequent notification.
//
// When withCurrent is true, the cell is read at subscribe time,
// cb is invoked once synchronously with that value, and the value is
// also returned. When false, no initial call is made and the zero
// value is returned. The flag affects only this initial read;
// later notifications deliver to cb normally either way.
//
// Subscribe panics if the hub is closed.
func (h *Hub[T]) Subscribe(withCurrent bool, cb func(T)) (T, func()) {
	unsubscribe := h.inner.Subscribe(cb)

	var cur T
	if withCurrent {
		h.mu.Lock()
		cur = h.cur
		h.mu.Unlock()

		cb(cur)
	}

	return cur, unsubscribe
}

// Len returns the number of live subscriptions.
func (h *Hub[T]) Len() int {
	return h.inner.Len()
}

// Close removes every subscription and marks the hub closed.
// State, Subscribe and Notify panic afterwards; outstanding
// unsubscribe handles become no-ops. Close is idempotent.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.inner.Close()
}

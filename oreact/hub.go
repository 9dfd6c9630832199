// Package oreact contains a hub whose broadcast value is recomputed
// by a producer function on every notify, rather than supplied by
// the notifying caller.
package oreact

import (
	"errors"
	"log/slog"

	"github.com/yerTools/observer"
)

// Hub wraps a stateless [observer.Hub] with a zero-argument producer.
// Each [*Hub.Notify] invokes the producer exactly once, synchronously,
// and broadcasts its return value. The producer may be impure;
// a wall-clock read is the archetypal use.
type Hub[T any] struct {
	inner   *observer.Hub[T]
	produce func() T
}

// New returns a hub that broadcasts produce's return value on every
// notify. produce must not be nil.
// The caller owns the hub and must call [*Hub.Close] when done with it;
// [With] handles that automatically.
func New[T any](log *slog.Logger, produce func() T) *Hub[T] {
	if produce == nil {
		panic(errors.New("BUG: produce must not be nil"))
	}

	return &Hub[T]{
		inner:   observer.New[T](log),
		produce: produce,
	}
}

// With runs fn against a freshly created hub and returns fn's result.
// The hub is closed on every exit path out of fn, panicking ones included.
func With[T, R any](log *slog.Logger, produce func() T, fn func(*Hub[T]) R) R {
	h := New(log, produce)
	defer h.Close()

	return fn(h)
}

// Subscribe registers cb to receive every subsequent notification,
// and returns the handle that removes the subscription again.
//
// Subscribe panics if the hub is closed.
func (h *Hub[T]) Subscribe(cb func(T)) (unsubscribe func()) {
	return h.inner.Subscribe(cb)
}

// Notify invokes the producer once, then delivers its return value to
// every current subscriber, blocking until all of them have finished.
// The producer runs before fan-out begins, never concurrently with
// itself across sequential Notify calls.
//
// Notify panics if the hub is closed.
func (h *Hub[T]) Notify() {
	h.inner.Notify(h.produce())
}

// Len returns the number of live subscriptions.
func (h *Hub[T]) Len() int {
	return h.inner.Len()
}

// Close removes every subscription and marks the hub closed.
// Subscribe and Notify panic afterwards; outstanding unsubscribe
// handles become no-ops. Close is idempotent.
func (h *Hub[T]) Close() {
	h.inner.Close()
}

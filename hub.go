package observer

import (
	"log/slog"

	"github.com/yerTools/observer/internal/ofanout"
	"github.com/yerTools/observer/internal/oregistry"
)

// Hub is a stateless publish/subscribe hub.
// Many producers and many subscribers may share one hub;
// all methods are safe for concurrent use.
//
// No lock is held while subscriber callbacks run,
// so a callback may call Subscribe, an unsubscribe handle,
// or even Notify on its own hub. Registry changes made during
// an in-flight Notify take effect for subsequent rounds only,
// and a reentrant Notify runs as an independent round.
type Hub[T any] struct {
	log *slog.Logger

	reg *oregistry.Registry[func(T)]
}

// New returns a hub ready for use.
// The caller owns the hub and must call [*Hub.Close] when done with it;
// [With] handles that automatically.
func New[T any](log *slog.Logger) *Hub[T] {
	return &Hub[T]{
		log: log,

		reg: oregistry.New[func(T)](),
	}
}

// With runs fn against a freshly created hub and returns fn's result.
// The hub is closed on every exit path out of fn, panicking ones included,
// so fn must not retain the hub beyond its own return.
func With[T, R any](log *slog.Logger, fn func(*Hub[T]) R) R {
	h := New[T](log)
	defer h.Close()

	return fn(h)
}

// Subscribe registers cb to receive every subsequent notification,
// and returns the handle that removes the subscription again.
// Invoking the handle more than once, or after the hub is closed,
// is a no-op and never affects other subscriptions.
//
// Subscribe panics if the hub is closed.
func (h *Hub[T]) Subscribe(cb func(T)) (unsubscribe func()) {
	idx := h.reg.Add(cb)

	return func() {
		h.reg.Remove(idx)
	}
}

// Notify delivers val to every currently subscribed callback,
// invoking them concurrently, and returns only once all of them
// have finished. With zero subscribers it returns immediately.
//
// The delivery set is a snapshot taken when Notify begins:
// subscriptions added or removed while the round is in flight
// are not part of it.
//
// Notify panics if the hub is closed.
func (h *Hub[T]) Notify(val T) {
	<-h.NotifyAsync(val)
}

// NotifyAsync starts the same delivery round as [*Hub.Notify]
// but does not wait for it: the returned channel is closed once
// every callback in the round has finished, letting the caller
// decide when, or whether, to block on completion.
func (h *Hub[T]) NotifyAsync(val T) <-chan struct{} {
	return ofanout.Start(h.log, h.reg.Snapshot(), val)
}

// Len returns the number of live subscriptions.
func (h *Hub[T]) Len() int {
	return h.reg.Len()
}

// Close removes every subscription and marks the hub closed.
// Subscribe and Notify panic afterwards; outstanding unsubscribe
// handles become no-ops. Close is idempotent.
func (h *Hub[T]) Close() {
	h.reg.Close()
}

package otopic

import (
	"log/slog"

	"github.com/bits-and-blooms/bitset"
	"github.com/yerTools/observer/internal/ofanout"
	"github.com/yerTools/observer/internal/oregistry"
)

type subscription[T any] struct {
	topics topicSet
	cb     func(T)
}

// Hub is a publish/subscribe hub whose notifications only reach
// subscriptions with at least one topic in common.
//
// Locking and reentrancy behave as in the stateless [observer.Hub]:
// no lock is held while callbacks run, and registry changes made
// during an in-flight Notify affect subsequent rounds only.
type Hub[T any] struct {
	log *slog.Logger

	reg *oregistry.Registry[subscription[T]]
}

// New returns a hub ready for use.
// The caller owns the hub and must call [*Hub.Close] when done with it;
// [With] handles that automatically.
func New[T any](log *slog.Logger) *Hub[T] {
	return &Hub[T]{
		log: log,

		reg: oregistry.New[subscription[T]](),
	}
}

// With runs fn against a freshly created hub and returns fn's result.
// The hub is closed on every exit path out of fn, panicking ones included.
func With[T, R any](log *slog.Logger, fn func(*Hub[T]) R) R {
	h := New[T](log)
	defer h.Close()

	return fn(h)
}

// Subscribe registers cb under the given topics and returns the handle
// that removes the subscription again. An empty topics slice is legal
// and means the subscription never matches any notification.
//
// Subscribe panics if the hub is closed.
func (h *Hub[T]) Subscribe(topics []string, cb func(T)) (unsubscribe func()) {
	idx := h.reg.Add(subscription[T]{
		topics: newTopicSet(topics),
		cb:     cb,
	})

	return func() {
		h.reg.Remove(idx)
	}
}

// Notify delivers val to every subscription whose topic set has a
// non-empty intersection with topics, concurrently, and returns only
// once all of those callbacks have finished.
//
// Notify panics if the hub is closed.
func (h *Hub[T]) Notify(topics []string, val T) {
	subs := h.reg.Snapshot()

	match := bitset.New(uint(len(subs)))
	for i, s := range subs {
		if s.topics.intersects(topics) {
			match.Set(uint(i))
		}
	}

	cbs := make([]func(T), 0, int(match.Count()))
	for i, ok := match.NextSet(0); ok; i, ok = match.NextSet(i + 1) {
		cbs = append(cbs, subs[i].cb)
	}

	ofanout.InvokeAll(h.log, cbs, val)
}

// Len returns the number of live subscriptions, matching or not.
func (h *Hub[T]) Len() int {
	return h.reg.Len()
}

// Close removes every subscription and marks the hub closed.
// Subscribe and Notify panic afterwards; outstanding unsubscribe
// handles become no-ops. Close is idempotent.
func (h *Hub[T]) Close() {
	h.reg.Close()
}

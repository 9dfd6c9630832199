package otopic

import (
	"log/slog"

	"github.com/bits-and-blooms/bitset"
	"github.com/yerTools/observer/internal/ofanout"
	"github.com/yerTools/observer/internal/oregistry"
)

type subscription2[T any] struct {
	d1, d2 topicSet
	cb     func(T)
}

// Hub2 is the two-dimensional form of [Hub]: each subscription and
// each notification carries two independent topic sets, and delivery
// requires a non-empty intersection in both dimensions.
// A table/column pair is the archetypal use, with the first dimension
// selecting tables and the second selecting columns.
type Hub2[T any] struct {
	log *slog.Logger

	reg *oregistry.Registry[subscription2[T]]
}

// New2 returns a two-dimensional hub ready for use.
// The caller owns the hub and must call [*Hub2.Close] when done with it;
// [With2] handles that automatically.
func New2[T any](log *slog.Logger) *Hub2[T] {
	return &Hub2[T]{
		log: log,

		reg: oregistry.New[subscription2[T]](),
	}
}

// With2 runs fn against a freshly created hub and returns fn's result.
// The hub is closed on every exit path out of fn, panicking ones included.
func With2[T, R any](log *slog.Logger, fn func(*Hub2[T]) R) R {
	h := New2[T](log)
	defer h.Close()

	return fn(h)
}

// Subscribe registers cb under one topic set per dimension and returns
// the handle that removes the subscription again. An empty set in
// either dimension means the subscription never matches.
//
// Subscribe panics if the hub is closed.
func (h *Hub2[T]) Subscribe(d1, d2 []string, cb func(T)) (unsubscribe func()) {
	idx := h.reg.Add(subscription2[T]{
		d1: newTopicSet(d1),
		d2: newTopicSet(d2),
		cb: cb,
	})

	return func() {
		h.reg.Remove(idx)
	}
}

// Notify delivers val to every subscription that intersects d1 in its
// first dimension AND d2 in its second, concurrently, returning only
// once all of those callbacks have finished.
//
// Notify panics if the hub is closed.
func (h *Hub2[T]) Notify(d1, d2 []string, val T) {
	subs := h.reg.Snapshot()

	// One match bitset per dimension over the snapshot positions;
	// the cross-dimension AND is their intersection.
	m1 := bitset.New(uint(len(subs)))
	m2 := bitset.New(uint(len(subs)))
	for i, s := range subs {
		if s.d1.intersects(d1) {
			m1.Set(uint(i))
		}
		if s.d2.intersects(d2) {
			m2.Set(uint(i))
		}
	}
	m1.InPlaceIntersection(m2)

	cbs := make([]func(T), 0, int(m1.Count()))
	for i, ok := m1.NextSet(0); ok; i, ok = m1.NextSet(i + 1) {
		cbs = append(cbs, subs[i].cb)
	}

	ofanout.InvokeAll(h.log, cbs, val)
}

// Len returns the number of live subscriptions, matching or not.
func (h *Hub2[T]) Len() int {
	return h.reg.Len()
}

// Close removes every subscription and marks the hub closed.
// Subscribe and Notify panic afterwards; outstanding unsubscribe
// handles become no-ops. Close is idempotent.
func (h *Hub2[T]) Close() {
	h.reg.Close()
}

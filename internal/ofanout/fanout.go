// Package ofanout is the delivery engine shared by all hub variants:
// it invokes a snapshot of callbacks concurrently and exposes
// a barrier that releases once every invocation has finished.
package ofanout

import (
	"log/slog"
	"sync"
)

// Start invokes every callback in cbs with val, each on its own goroutine.
// The returned channel is closed once all invocations have finished.
// With zero callbacks the channel is already closed and
// no goroutine is spawned.
//
// Callbacks must not rely on any execution order relative to siblings.
func Start[T any](log *slog.Logger, cbs []func(T), val T) <-chan struct{} {
	done := make(chan struct{})
	if len(cbs) == 0 {
		close(done)
		return done
	}

	var wg sync.WaitGroup
	wg.Add(len(cbs))
	for _, cb := range cbs {
		go invoke(log, &wg, cb, val)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	return done
}

// InvokeAll is the blocking form of [Start]:
// it returns only once every callback has finished.
func InvokeAll[T any](log *slog.Logger, cbs []func(T), val T) {
	<-Start(log, cbs, val)
}

// invoke runs one callback, containing any panic so that
// a failed subscriber neither reaches the notifying caller
// nor keeps the barrier from releasing.
func invoke[T any](log *slog.Logger, wg *sync.WaitGroup, cb func(T), val T) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Warn(
				"Subscriber callback panicked",
				"recovered", r,
			)
		}
	}()

	cb(val)
}

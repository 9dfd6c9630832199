// Package observer provides process-local publish/subscribe hubs.
//
// A [Hub] lets independent consumers register callbacks and lets
// producers broadcast a value to all of them at once: Notify invokes
// every subscribed callback concurrently and returns only after the
// last one has finished.
//
// The subpackages derive variants from the same engine:
// otopic filters delivery by topic-set intersection,
// ostate caches the most recently notified value,
// and oreact recomputes the value from a producer function
// on every notify.
package observer

package ecs

import "github.com/kamstrup/intmap"

// entityQueue is an ordered, de-duplicated buffer of deferred entity operations.
// Entities pushed while the queue is draining are processed in the same drain;
// an entity already seen during the current drain is not queued again.
type entityQueue struct {
	items []Entity
	seen  *intmap.Set[uint64]
}

func newEntityQueue(capacity int) *entityQueue {
	return &entityQueue{
		items: make([]Entity, 0, capacity),
		seen:  intmap.NewSet[uint64](capacity),
	}
}

// push appends e unless it is already pending. It reports whether e was added.
func (q *entityQueue) push(e Entity) bool {
	k := e.key()
	if q.seen.Has(k) {
		return false
	}
	q.seen.Add(k)
	q.items = append(q.items, e)
	return true
}

func (q *entityQueue) len() int {
	return len(q.items)
}

// drain calls fn for every queued entity in push order, including entities
// pushed by fn itself, then resets the queue.
func (q *entityQueue) drain(fn func(Entity)) {
	for i := 0; i < len(q.items); i++ {
		fn(q.items[i])
	}
	q.reset()
}

func (q *entityQueue) reset() {
	clear(q.items)
	q.items = q.items[:0]
	q.seen.Clear()
}

package ecs

// Queue is a per-tick event queue with one producer side and one designated
// consumer. It is not safe for concurrent use.
type Queue[T any] struct {
	items []T
}

// Push appends an event.
func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)
}

// Len returns the number of pending events.
func (q *Queue[T]) Len() int { return len(q.items) }

// Drain hands every pending event to fn in emission order and empties the
// queue. Events pushed from inside fn are kept for the next Drain.
func (q *Queue[T]) Drain(fn func(T)) {
	if len(q.items) == 0 {
		return
	}
	pending := q.items
	q.items = nil
	for _, v := range pending {
		fn(v)
	}
}

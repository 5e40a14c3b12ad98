package search

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// frontier is the set of not-yet-expanded nodes of a depth-first or
// breadth-first search.
type frontier[T any] interface {
	push(x T)
	pop() (T, bool)
	len() int
}

// lifoFrontier is a last-in-first-out frontier.
type lifoFrontier[T any] struct {
	stack *arraystack.Stack
}

func newLIFOFrontier[T any]() *lifoFrontier[T] {
	return &lifoFrontier[T]{stack: arraystack.New()}
}

func (f *lifoFrontier[T]) push(x T) {
	f.stack.Push(x)
}

func (f *lifoFrontier[T]) pop() (T, bool) {
	v, ok := f.stack.Pop()
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

func (f *lifoFrontier[T]) len() int {
	return f.stack.Size()
}

// fifoFrontier is a first-in-first-out frontier.
type fifoFrontier[T any] struct {
	queue *linkedlistqueue.Queue
}

func newFIFOFrontier[T any]() *fifoFrontier[T] {
	return &fifoFrontier[T]{queue: linkedlistqueue.New()}
}

func (f *fifoFrontier[T]) push(x T) {
	f.queue.Enqueue(x)
}

func (f *fifoFrontier[T]) pop() (T, bool) {
	v, ok := f.queue.Dequeue()
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

func (f *fifoFrontier[T]) len() int {
	return f.queue.Size()
}

type priorityEntry[K comparable, V any] struct {
	key      K
	item     V
	priority float64
	seq      uint64
}

// PriorityFrontier is a min-priority queue of keyed items with
// decrease-key semantics.
//
// It is implemented as a binary heap with lazy deletion: Update pushes a
// new entry rather than moving the old one, and entries that are no longer
// the live entry for their key are skipped by Pop. Entries with equal
// priority are popped in insertion order.
type PriorityFrontier[K comparable, V any] struct {
	heap *priorityqueue.Queue
	live map[K]*priorityEntry[K, V]
	seq  uint64
}

// NewPriorityFrontier returns an empty PriorityFrontier.
func NewPriorityFrontier[K comparable, V any]() *PriorityFrontier[K, V] {
	return &PriorityFrontier[K, V]{
		heap: priorityqueue.NewWith(byPriority[K, V]),
		live: make(map[K]*priorityEntry[K, V]),
	}
}

func byPriority[K comparable, V any](a, b interface{}) int {
	x := a.(*priorityEntry[K, V])
	y := b.(*priorityEntry[K, V])
	switch {
	case x.priority < y.priority:
		return -1
	case x.priority > y.priority:
		return 1
	case x.seq < y.seq:
		return -1
	case x.seq > y.seq:
		return 1
	}

	return 0
}

// Push inserts item under key with the given priority. The new entry
// replaces any existing entry for key, whatever its priority.
func (pf *PriorityFrontier[K, V]) Push(key K, item V, priority float64) {
	e := &priorityEntry[K, V]{
		key:      key,
		item:     item,
		priority: priority,
		seq:      pf.seq,
	}

	pf.seq++
	pf.live[key] = e
	pf.heap.Enqueue(e)
}

// Update inserts item under key unless key already has an entry with
// priority less than or equal to priority. It reports whether the
// frontier changed.
func (pf *PriorityFrontier[K, V]) Update(key K, item V, priority float64) bool {
	if e, ok := pf.live[key]; ok && e.priority <= priority {
		return false
	}

	pf.Push(key, item, priority)
	return true
}

// Pop removes and returns the entry with the lowest priority.
// ok is false if the frontier is empty.
func (pf *PriorityFrontier[K, V]) Pop() (key K, item V, priority float64, ok bool) {
	for {
		v, found := pf.heap.Dequeue()
		if !found {
			return key, item, 0, false
		}

		e := v.(*priorityEntry[K, V])
		if pf.live[e.key] != e {
			continue // Stale: superseded by a later Push or Update.
		}

		delete(pf.live, e.key)
		return e.key, e.item, e.priority, true
	}
}

// Priority returns the priority of the live entry for key, if any.
func (pf *PriorityFrontier[K, V]) Priority(key K) (float64, bool) {
	e, ok := pf.live[key]
	if !ok {
		return 0, false
	}

	return e.priority, true
}

// Len returns the number of live entries.
func (pf *PriorityFrontier[K, V]) Len() int {
	return len(pf.live)
}

// Empty returns true if there are no live entries.
func (pf *PriorityFrontier[K, V]) Empty() bool {
	return len(pf.live) == 0
}

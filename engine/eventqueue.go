package engine

import (
	"container/heap"
	"sync"
)

// EventQueue orders pending events by time.
type EventQueue interface {
	Push(evt Event)
	Pop() Event
	Peek() Event
	Len() int
}

type eventHeap []Event

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].Time() < h[j].Time() }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(Event)) }

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]

	return e
}

// eventQueueImpl is a thread-safe heap-backed EventQueue.
type eventQueueImpl struct {
	mu     sync.Mutex
	events eventHeap
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() EventQueue {
	q := &eventQueueImpl{events: make(eventHeap, 0)}
	heap.Init(&q.events)

	return q
}

func (q *eventQueueImpl) Push(evt Event) {
	q.mu.Lock()
	heap.Push(&q.events, evt)
	q.mu.Unlock()
}

func (q *eventQueueImpl) Pop() Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	return heap.Pop(&q.events).(Event)
}

func (q *eventQueueImpl) Peek() Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.events[0]
}

func (q *eventQueueImpl) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.events.Len()
}

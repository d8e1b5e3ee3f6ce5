package queue

import "context"

const (
	// QueueBufferSize represents the maximum size of a queue
	QueueBufferSize = 1024
)

// InMemoryQueue implements an in-memory queue on a buffered channel.
type InMemoryQueue struct {
	ch chan interface{}
}

// NewInMemoryQueue creates a new queue with the default capacity.
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		ch: make(chan interface{}, QueueBufferSize),
	}
}

// Enqueue adds an item to the end of the queue. It never blocks: a full
// queue returns ErrQueueFull.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	select {
	case q.ch <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

// Dequeue removes and returns the item from the front of the queue,
// waiting until one arrives or the context is canceled.
func (q *InMemoryQueue) Dequeue(ctx context.Context) (interface{}, error) {
	select {
	case item := <-q.ch:
		return item, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	return len(q.ch)
}

// Package queue decouples request handlers from the workers that run
// predictions in the background.
package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned when an enqueue would exceed the queue's
// capacity.
var ErrQueueFull = errors.New("queue is full")

// Queue represents a bounded FIFO job queue.
type Queue interface {
	// Enqueue adds an item to the end of the queue without blocking.
	Enqueue(item interface{}) error
	// Dequeue removes and returns the item at the front of the queue,
	// blocking until an item is available or the context is done.
	Dequeue(ctx context.Context) (interface{}, error)
	Size() int
}

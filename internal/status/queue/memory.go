package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrQueueFull is returned by MemoryQueue.Publish when the buffer is full.
var ErrQueueFull = errors.New("queue is full")

var _ Publisher = (*MemoryQueue)(nil)

// MemoryQueue is an in-process channel queue for single-node deployments.
// Messages still buffered at shutdown are lost.
type MemoryQueue struct {
	inbox chan string
}

func NewMemoryQueue(buffer int) *MemoryQueue {
	if buffer <= 0 {
		buffer = 1
	}
	return &MemoryQueue{inbox: make(chan string, buffer)}
}

// Publish enqueues without blocking.
func (q *MemoryQueue) Publish(ctx context.Context, subject string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case q.inbox <- subject:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run drains the queue with the given number of workers until ctx is done.
func (q *MemoryQueue) Run(ctx context.Context, workers int, p *Processor) error {
	if workers <= 0 {
		workers = 1
	}
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case subject := <-q.inbox:
					p.Handle(context.WithoutCancel(ctx), subject)
				}
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}

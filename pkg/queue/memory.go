package queue

import (
	"bytes"
	"context"
	"sync"
	"time"
)

// MemoryQueue is the in-process fallback. Jobs do not survive a restart.
type MemoryQueue struct {
	mu         sync.Mutex
	queues     map[string][][]byte
	processing map[string][][]byte
	signal     map[string]chan struct{}
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		queues:     make(map[string][][]byte),
		processing: make(map[string][][]byte),
		signal:     make(map[string]chan struct{}),
	}
}

// notifier returns the wake-up channel for queue. Caller holds mu.
func (q *MemoryQueue) notifier(queue string) chan struct{} {
	ch, ok := q.signal[queue]
	if !ok {
		ch = make(chan struct{}, 1)
		q.signal[queue] = ch
	}
	return ch
}

func (q *MemoryQueue) Enqueue(_ context.Context, queue string, payload []byte) error {
	job := make([]byte, len(payload))
	copy(job, payload)

	q.mu.Lock()
	q.queues[queue] = append(q.queues[queue], job)
	ch := q.notifier(queue)
	q.mu.Unlock()

	select {
	case ch <- struct{}{}:
	default:
	}
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context, queue string, timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		q.mu.Lock()
		if jobs := q.queues[queue]; len(jobs) > 0 {
			job := jobs[0]
			q.queues[queue] = jobs[1:]
			q.processing[queue] = append(q.processing[queue], job)
			q.mu.Unlock()
			return job, nil
		}
		ch := q.notifier(queue)
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, ErrEmpty
		case <-ch:
		}
	}
}

func (q *MemoryQueue) Ack(_ context.Context, queue string, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.processing[queue]
	for i, job := range pending {
		if bytes.Equal(job, payload) {
			q.processing[queue] = append(pending[:i:i], pending[i+1:]...)
			break
		}
	}
	return nil
}

// Requeue puts unacknowledged jobs back at the head of queue, oldest first.
func (q *MemoryQueue) Requeue(_ context.Context, queue string) (int, error) {
	q.mu.Lock()
	pending := q.processing[queue]
	delete(q.processing, queue)
	if len(pending) > 0 {
		q.queues[queue] = append(pending, q.queues[queue]...)
	}
	ch := q.notifier(queue)
	q.mu.Unlock()

	if len(pending) > 0 {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return len(pending), nil
}

func (q *MemoryQueue) Len(_ context.Context, queue string) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.queues[queue])), nil
}

// Package queue is a minimal durable work queue: producers push opaque payloads
// onto a named queue and a consumer pops them in FIFO order.
//
// A dequeued job stays on the queue's processing list until it is acknowledged,
// so a consumer that dies mid-job loses nothing: Requeue puts unacknowledged
// jobs back. Delivery is therefore at-least-once.
package queue

import (
	"context"
	"errors"
	"time"
)

// ErrEmpty is returned by Dequeue when no job arrived before the timeout.
var ErrEmpty = errors.New("queue: empty")

type Producer interface {
	Enqueue(ctx context.Context, queue string, payload []byte) error
}

type Consumer interface {
	// Dequeue blocks up to timeout waiting for a job on queue and moves it to
	// the processing list.
	Dequeue(ctx context.Context, queue string, timeout time.Duration) ([]byte, error)
	// Ack drops a dequeued job from the processing list.
	Ack(ctx context.Context, queue string, payload []byte) error
	// Requeue moves every unacknowledged job back onto queue and reports how many.
	Requeue(ctx context.Context, queue string) (int, error)
}

type Queue interface {
	Producer
	Consumer
	Len(ctx context.Context, queue string) (int64, error)
}

// ProcessingKey names the list holding queue's unacknowledged jobs.
func ProcessingKey(queue string) string {
	return queue + ":processing"
}

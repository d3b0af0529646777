package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueueFIFO(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue()

	require.NoError(t, q.Enqueue(ctx, "back_emails", []byte("first")))
	require.NoError(t, q.Enqueue(ctx, "back_emails", []byte("second")))
	require.NoError(t, q.Enqueue(ctx, "other", []byte("elsewhere")))

	n, err := q.Len(ctx, "back_emails")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	job, err := q.Dequeue(ctx, "back_emails", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", string(job))

	job, err = q.Dequeue(ctx, "back_emails", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "second", string(job))
}

func TestMemoryQueueTimeout(t *testing.T) {
	q := NewMemoryQueue()
	_, err := q.Dequeue(context.Background(), "back_emails", 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMemoryQueueWakesBlockedConsumer(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue()

	done := make(chan []byte, 1)
	go func() {
		job, err := q.Dequeue(ctx, "back_emails", 2*time.Second)
		if err == nil {
			done <- job
		}
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, q.Enqueue(ctx, "back_emails", []byte("late")))

	select {
	case job := <-done:
		assert.Equal(t, "late", string(job))
	case <-time.After(3 * time.Second):
		t.Fatal("consumer was not woken up")
	}
}

func TestMemoryQueueCancel(t *testing.T) {
	q := NewMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Dequeue(ctx, "back_emails", time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryQueueAckAndRequeue(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue()

	require.NoError(t, q.Enqueue(ctx, "back_emails", []byte("acked")))
	require.NoError(t, q.Enqueue(ctx, "back_emails", []byte("lost")))

	job, err := q.Dequeue(ctx, "back_emails", time.Second)
	require.NoError(t, err)
	require.NoError(t, q.Ack(ctx, "back_emails", job))

	_, err = q.Dequeue(ctx, "back_emails", time.Second)
	require.NoError(t, err)

	n, err := q.Requeue(ctx, "back_emails")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	job, err = q.Dequeue(ctx, "back_emails", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "lost", string(job))
}

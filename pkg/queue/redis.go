package queue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQueue stores each queue as a Redis list: LPUSH to enqueue, BLMOVE from
// the right into "<queue>:processing" to consume, LREM to acknowledge.
type RedisQueue struct {
	client *redis.Client
	prefix string
}

func NewRedisQueue(client *redis.Client, prefix string) *RedisQueue {
	return &RedisQueue{client: client, prefix: prefix}
}

func (q *RedisQueue) key(queue string) string {
	return q.prefix + queue
}

func (q *RedisQueue) Enqueue(ctx context.Context, queue string, payload []byte) error {
	return q.client.LPush(ctx, q.key(queue), payload).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context, queue string, timeout time.Duration) ([]byte, error) {
	res, err := q.client.BLMove(ctx, q.key(queue), q.key(ProcessingKey(queue)), "RIGHT", "LEFT", timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, err
	}
	return []byte(res), nil
}

func (q *RedisQueue) Ack(ctx context.Context, queue string, payload []byte) error {
	return q.client.LRem(ctx, q.key(ProcessingKey(queue)), 1, payload).Err()
}

// Requeue puts unacknowledged jobs back at the consuming end, oldest first.
func (q *RedisQueue) Requeue(ctx context.Context, queue string) (int, error) {
	moved := 0
	for {
		err := q.client.LMove(ctx, q.key(ProcessingKey(queue)), q.key(queue), "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}

func (q *RedisQueue) Len(ctx context.Context, queue string) (int64, error) {
	return q.client.LLen(ctx, q.key(queue)).Result()
}

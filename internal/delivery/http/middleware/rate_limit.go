package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-contacts-backend/internal/delivery/http/response"
	"go-contacts-backend/pkg/logger"
	"go-contacts-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig describes a fixed-window limit.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket for a request; defaults to the client IP.
	KeyFunc   func(*gin.Context) string
	KeyPrefix string
	// FailClosed rejects requests with 503 when Redis errors instead of
	// falling back to process-local counters.
	FailClosed bool
	// Client backs the counters; nil keeps them in memory.
	Client *goredis.Client
}

// fixedWindowScript increments the bucket and starts its TTL on first hit.
// Returns {count, ttl_seconds}.
var fixedWindowScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('TTL', KEYS[1])}
`)

// windowCounter counts hits in the current window of a bucket.
type windowCounter interface {
	hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

type redisCounter struct {
	client *goredis.Client
}

func (r redisCounter) hit(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	res, err := fixedWindowScript.Run(ctx, r.client, []string{key}, int(window.Seconds())).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	return int(res[0]), time.Now().Add(time.Duration(res[1]) * time.Second), nil
}

type bucket struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// memoryCounter is shared by every limiter in the process, so buckets from
// different prefixes never collide as long as prefixes differ.
type memoryCounter struct {
	buckets sync.Map
	sweep   sync.Once
}

var localCounter = &memoryCounter{}

func (m *memoryCounter) hit(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	m.sweep.Do(func() { go m.sweepLoop(5 * time.Minute) })

	now := time.Now()
	v, _ := m.buckets.LoadOrStore(key, &bucket{resetAt: now.Add(window)})
	b := v.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()
	if now.After(b.resetAt) {
		b.count = 0
		b.resetAt = now.Add(window)
	}
	b.count++
	return b.count, b.resetAt, nil
}

func (m *memoryCounter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for now := range ticker.C {
		m.buckets.Range(func(key, v interface{}) bool {
			b := v.(*bucket)
			b.mu.Lock()
			expired := now.After(b.resetAt)
			b.mu.Unlock()
			if expired {
				m.buckets.Delete(key)
			}
			return true
		})
	}
}

// ContactsRateLimitConfig limits the contacts API per client IP.
func ContactsRateLimitConfig(limit int, window time.Duration, client *goredis.Client) RateLimitConfig {
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contacts:",
		FailClosed: false,
		Client:     client,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware enforces cfg and reports the budget in X-RateLimit-* headers.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	var primary windowCounter = localCounter
	if cfg.Client != nil {
		primary = redisCounter{client: cfg.Client}
	}

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + cfg.KeyFunc(c)

		count, resetAt, err := primary.hit(c.Request.Context(), key, cfg.Window)
		if err != nil {
			logger.Log.Warn("Rate limit backend unavailable", "key_prefix", cfg.KeyPrefix, "error", err)
			if cfg.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Serviço temporariamente indisponível. Tente novamente.")
				c.Abort()
				return
			}
			count, resetAt, _ = localCounter.hit(c.Request.Context(), key, cfg.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if count <= cfg.Limit {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-count))
			c.Next()
			return
		}

		retryAfter := int(time.Until(resetAt).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("Retry-After", strconv.Itoa(retryAfter))

		metrics.RateLimitBlocks.WithLabelValues(cfg.KeyPrefix).Inc()
		logger.Log.Warn("Rate limit exceeded",
			"ip", c.ClientIP(),
			"path", c.FullPath(),
			"request_id", c.GetString("RequestID"),
		)

		response.Error(c, http.StatusTooManyRequests, "Muitas requisições. Tente novamente mais tarde.")
		c.Abort()
	}
}

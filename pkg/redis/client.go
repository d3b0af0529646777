// Package redis owns the process-wide Redis connection shared by the cache,
// the notification queue and the rate limiter.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

type Config struct {
	URL      string // redis://[:password@]host:port/db, rediss:// for TLS
	Password string // overrides the password embedded in URL
}

// Client returns the shared client, or nil when Initialize failed or was never called.
func Client() *redis.Client {
	return client
}

// Initialize connects once; later calls return the first result.
func Initialize(cfg Config) error {
	clientOnce.Do(func() {
		opts, err := options(cfg)
		if err != nil {
			clientErr = err
			return
		}

		c := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			clientErr = fmt.Errorf("redis: connection failed: %w", err)
			return
		}
		client = c
	})
	return clientErr
}

func options(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis: REDIS_URL not configured")
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if opts.TLSConfig != nil {
		opts.TLSConfig.MinVersion = tls.VersionTLS12
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	return opts, nil
}

func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings the shared client.
func HealthCheck(ctx context.Context) error {
	if client == nil {
		return errors.New("redis: client not initialized")
	}
	return client.Ping(ctx).Err()
}

// Package redis backs the capability cache. Like the run log, it is an
// optional dependency: without it every capability lookup goes to the CMS.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config locates the capability cache.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect dials the cache and confirms it is reachable with a ping. Callers
// treat a failure as "cache disabled", not a startup error.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
		ReadTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("capability cache: ping: %w", err)
	}

	return client, nil
}

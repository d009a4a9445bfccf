package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAddr    = "localhost:6379"
	defaultTimeout = 5 * time.Second
)

// Config carries the connection settings for the revocation store.
type Config struct {
	Addr string
	DB   int
	// Timeout bounds the initial connectivity check.
	Timeout time.Duration
}

// options maps Config onto go-redis client options. The revocation workload
// is one single-key read per authenticated request plus a rare write on
// logout, so a small pool with one idle connection is plenty.
func (c Config) options() *redis.Options {
	addr := c.Addr
	if addr == "" {
		addr = defaultAddr
	}
	return &redis.Options{
		Addr:         addr,
		DB:           c.DB,
		PoolSize:     8,
		MinIdleConns: 1,
	}
}

// Connect opens the client backing the session revocation list and verifies
// it is reachable before the server starts taking requests. Auth middleware
// consults Redis on every authenticated call, so failing here beats failing
// on the first login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

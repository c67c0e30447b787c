package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

type Options struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout also bounds the startup ping; zero means 5s.
	DialTimeout time.Duration
}

// OpenRedis connects and pings; the client backs idempotency records.
func OpenRedis(o Options) (*redis.Client, error) {
	timeout := o.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	r := redis.NewClient(&redis.Options{
		Addr:        o.Addr,
		Password:    o.Password,
		DB:          o.DB,
		DialTimeout: timeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis ping %s: %w", o.Addr, err)
	}
	return r, nil
}

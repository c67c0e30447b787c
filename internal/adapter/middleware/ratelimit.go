package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// IPLimiter keeps one token bucket per client IP and forgets idle ones.
type IPLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewIPLimiter(rps float64, burst int) *IPLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
		now:     time.Now,
	}
}

func (l *IPLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if ent, ok := l.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

// Allow consumes one token for key at the limiter's clock.
func (l *IPLimiter) Allow(key string) bool { return l.get(key).AllowN(l.now(), 1) }

func (l *IPLimiter) Cleanup() {
	cutoff := l.now().Add(-l.idleTTL)
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// StartJanitor runs Cleanup every interval until ctx ends.
func (l *IPLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

// RateLimit answers 429 once the caller's IP runs out of tokens.
func RateLimit(l *IPLimiter) echo.MiddlewareFunc {
	retry := "1"
	if l.rps > 0 {
		if secs := int(1/float64(l.rps) + 0.5); secs > 1 {
			retry = strconv.Itoa(secs)
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", retry)
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}

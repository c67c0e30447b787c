package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

// Pinger is a backing service probed by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handler struct {
	checks map[string]Pinger
}

// NewHandler builds the health handler; checks is keyed by dependency name.
func NewHandler(checks map[string]Pinger) *Handler { return &Handler{checks: checks} }

// Health reports ok only when every dependency answers within healthTimeout.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	code, status := http.StatusOK, "ok"
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			code, status = http.StatusServiceUnavailable, "degraded"
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}
	return c.JSON(code, map[string]any{
		"status": status,
		"checks": results,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

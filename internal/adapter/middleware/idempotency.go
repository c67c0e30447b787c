package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	// How long the "in-progress" marker lives if the handler never finishes.
	provisionalLockTTL = 60 * time.Second
	storeTimeout       = 2 * time.Second
)

type idempEntry struct {
	InProgress bool      `json:"in_progress"`
	Code       int       `json:"code"`
	Body       []byte    `json:"body"`
	BodySHA256 string    `json:"body_sha256"`
	CreatedAt  time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency replays the stored response when a mutating request repeats its
// Idempotency-Key. Keys are scoped by method, route and caller. Requests
// without the header pass through untouched; 5xx outcomes are not stored so
// the client may retry.
func Idempotency(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	store := idempStore{rdb: rdb, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			ikey := strings.ToLower(strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey)))
			if ikey == "" {
				return next(c)
			}
			if !validKey(ikey) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Idempotency-Key must be a UUID or 32 hex characters"})
			}

			owner := "anonymous"
			if usr := Actor(c); usr != nil {
				owner = usr.UserID
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := store.key(req.Method, c.Path(), owner, ikey)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			ok, err := store.reserve(ctx, key, bhash)
			if err != nil {
				log.Warn("idempotency: store unavailable", zap.Error(err))
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !ok {
				cur, err := store.load(ctx, key)
				if err != nil {
					log.Warn("idempotency: load entry", zap.String("key", key), zap.Error(err))
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, map[string]string{"error": "Idempotency-Key reused with a different body"})
				}
				if !cur.InProgress && cur.Code != 0 {
					c.Response().Header().Set("Idempotent-Replayed", "true")
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// request context may already be cancelled
			storeCtx, storeCancel := context.WithTimeout(context.WithoutCancel(req.Context()), storeTimeout)
			defer storeCancel()
			if rec.code >= http.StatusInternalServerError {
				if err := store.release(storeCtx, key); err != nil {
					log.Warn("idempotency: release key", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			if err := store.complete(storeCtx, key, rec.code, rec.buf.Bytes(), bhash); err != nil {
				log.Warn("idempotency: save response", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}

package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/pizza-order-service/internal/config"
)

// ResponseCache returns a middleware that serves successful GET
// responses from Redis for the configured TTL. It is applied only to
// read-mostly public routes (menu, franchise listing). When caching is
// disabled or no Redis client is available the middleware is a no-op.
// Authenticated requests bypass the cache entirely so admin-enriched
// listings are never served to anonymous callers.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet ||
				c.Request().Header.Get("Authorization") != "" {
				return next(c)
			}
			key := cfg.Prefix + ":" + c.Request().RequestURI
			ctx := c.Request().Context()

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				return err
			}
			if rec.status == http.StatusOK {
				// Best effort; a failed SET only costs the next request.
				_ = rdb.Set(ctx, key, rec.buf.Bytes(), cacheTTL(cfg)).Err()
			}
			return nil
		}
	}
}

// bodyRecorder tees the response body so it can be cached after the
// handler runs.
type bodyRecorder struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (r *bodyRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// cacheTTL floors the configured TTL at one second so pathological
// configs cannot hammer Redis with immediate expirations.
func cacheTTL(cfg config.CacheConfig) time.Duration {
	if cfg.TTL < time.Second {
		return time.Second
	}
	return cfg.TTL
}

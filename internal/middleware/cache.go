package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// UserCache caches successful GET responses in Redis, keyed per user. Every
// cache key embeds a per-user version counter; any successful write request
// (POST/PUT/DELETE) bumps the counter, so stale reads are impossible after a
// mutation. Responses for one user are never served to another.
//
// With a nil client the middleware is a pass-through, matching how the rest
// of the service degrades when Redis is unavailable.
func UserCache(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	if rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return next(c)
			}
			ctx := c.Request().Context()

			if c.Request().Method != http.MethodGet {
				err := next(c)
				// Invalidate by bumping the user's version after any
				// successful mutation.
				if err == nil && c.Response().Status < http.StatusBadRequest {
					_ = rdb.Incr(ctx, versionKey(user.ID)).Err()
				}
				return err
			}

			ver, _ := rdb.Get(ctx, versionKey(user.ID)).Result()
			key := entryKey(user.ID, ver, c.Request())

			if blob, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var ent cacheEntry
				if json.Unmarshal(blob, &ent) == nil {
					return c.JSONBlob(ent.Status, ent.Body)
				}
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK {
				if blob, err := json.Marshal(cacheEntry{Status: cw.status, Body: cw.buf.Bytes()}); err == nil {
					_ = rdb.Set(ctx, key, blob, ttl).Err()
				}
			}
			return nil
		}
	}
}

// cacheEntry is the stored envelope: status plus the raw JSON body.
type cacheEntry struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

func versionKey(userID uint64) string {
	return fmt.Sprintf("cache:ver:u%d", userID)
}

func entryKey(userID uint64, version string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.Method + ":" + r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("cache:u%d:v%s:%x", userID, version, sum[:])
}

// captureWriter duplicates the response body while forwarding it to the
// client so the entry can be stored after the handler runs.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

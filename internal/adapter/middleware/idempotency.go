package middleware

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	HeaderRequestID = "X-Request-Id"
	HeaderRequestAt = "X-Request-At"

	// inFlightTTL bounds a reservation whose handler never finished.
	inFlightTTL = 60 * time.Second
	// Allowed client/server clock skew for X-Request-At (UTC).
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

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

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware deduplicates mutating requests per path, acting user
// and X-Request-Id, replaying the first response for ttl. It must run after
// Identity. Server errors are not recorded so the client may retry with the
// same request id.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	s := store{rdb: rdb, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			p, ok := PrincipalFrom(c)
			if !ok {
				return jsonError(c, http.StatusUnauthorized, "missing "+HeaderUserID)
			}
			meta, err := readRequestMeta(req.Header, nowUTC())
			if err != nil {
				return jsonError(c, http.StatusBadRequest, err.Error())
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			bhash := bodyHash(body)

			// the concrete path, so ids carried only in the URL are part of the key
			key := buildKey(req.Method, req.URL.Path, p.UserID, meta.ID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			entry := replayEntry{
				BodySHA256: bhash,
				RequestID:  meta.ID,
				RequestAt:  meta.At,
				StoredAt:   nowUTC(),
			}
			reserved, err := s.reserve(ctx, key, entry)
			if err != nil {
				log.Printf("idempotency: reserve %s: %v", key, err)
				return jsonError(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !reserved {
				cur, err := s.load(ctx, key)
				if err != nil {
					log.Printf("idempotency: load %s: %v", key, err)
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return jsonError(c, http.StatusConflict, HeaderRequestID+" reused with different body")
				}
				if !cur.Pending && cur.Status != 0 {
					return cur.replay(c)
				}
				return jsonError(c, http.StatusConflict, "request is already in progress")
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be done once the handler returns
			bg, cancelBg := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelBg()
			if rec.code >= http.StatusInternalServerError {
				if err := s.release(bg, key); err != nil {
					log.Printf("idempotency: release %s: %v", key, err)
				}
				return nil
			}
			entry.Status = rec.code
			entry.ContentType = rec.Header().Get(echo.HeaderContentType)
			entry.Body = rec.buf.Bytes()
			entry.StoredAt = nowUTC()
			if err := s.commit(bg, key, entry); err != nil {
				log.Printf("idempotency: save %s: %v", key, err)
			}
			return nil
		}
	}
}

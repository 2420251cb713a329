package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

var (
	errMissingRequestID = errors.New("missing " + HeaderRequestID)
	errInvalidRequestID = errors.New("invalid " + HeaderRequestID + " format")
	errMissingRequestAt = errors.New("missing " + HeaderRequestAt)
	errInvalidRequestAt = errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
	errSkewedRequestAt  = errors.New(HeaderRequestAt + " too skewed")
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// requestMeta identifies one client attempt at a mutation.
type requestMeta struct {
	ID string
	At time.Time
}

// readRequestMeta validates the request id and timestamp headers against now.
// Request ids are compared lower-cased.
func readRequestMeta(h http.Header, now time.Time) (requestMeta, error) {
	id := strings.ToLower(strings.TrimSpace(h.Get(HeaderRequestID)))
	if id == "" {
		return requestMeta{}, errMissingRequestID
	}
	if !validReqID(id) {
		return requestMeta{}, errInvalidRequestID
	}
	at, err := parseRequestAt(h.Get(HeaderRequestAt))
	if err != nil {
		return requestMeta{}, err
	}
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return requestMeta{}, errSkewedRequestAt
	}
	return requestMeta{ID: id, At: at}, nil
}

func validReqID(id string) bool {
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339 with
// an explicit offset. Naive local timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissingRequestAt
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errInvalidRequestAt
}

// replayEntry is what the store keeps per request key. Pending entries are
// reservations held while the handler runs.
type replayEntry struct {
	Pending     bool      `json:"pending"`
	Status      int       `json:"status"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAt   time.Time `json:"request_at"`
	StoredAt    time.Time `json:"stored_at"`
}

func (e replayEntry) replay(c echo.Context) error {
	if len(e.Body) == 0 {
		return c.NoContent(e.Status)
	}
	ct := e.ContentType
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	return c.Blob(e.Status, ct, e.Body)
}

// store keeps replay entries in redis under idemp:<method>:<path>:<user>:<request id>.
type store struct {
	rdb *redis.Client
	ttl time.Duration
}

func buildKey(method, path, userID, requestID string) string {
	return "idemp:" + strings.ToLower(method) + ":" + path + ":" + userID + ":" + requestID
}

// reserve claims key for a request in flight; false means it is taken.
func (s store) reserve(ctx context.Context, key string, e replayEntry) (bool, error) {
	e.Pending = true
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, inFlightTTL).Result()
}

func (s store) load(ctx context.Context, key string) (replayEntry, error) {
	var e replayEntry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return replayEntry{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return e, nil
}

// commit replaces the reservation with the final response for s.ttl.
func (s store) commit(ctx context.Context, key string, e replayEntry) error {
	e.Pending = false
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

func (s store) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

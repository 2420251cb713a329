package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	testUser  = "user-1"
	testReqID = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

// helper: new Echo with identity + idempotency and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Identity(), IdempotencyMiddleware(rdb, ttl))
	e.POST("/loans", handler)
	e.GET("/loans", handler) // for non-mutating bypass test
	e.POST("/loans/:id/apply", handler)
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func validHeaders() map[string]string {
	return map[string]string{
		HeaderUserID:    testUser,
		HeaderRequestID: testReqID,
		HeaderRequestAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// simple handler to exercise respRecorder capture & commit
func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func Test_BypassOnGET_NoIdempotencyHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/loans", nil, map[string]string{HeaderUserID: testUser})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	tests := []struct {
		name   string
		mutate func(h map[string]string)
		want   int
	}{
		{"missing request id", func(h map[string]string) { delete(h, HeaderRequestID) }, http.StatusBadRequest},
		{"invalid request id", func(h map[string]string) { h[HeaderRequestID] = "NOT-VALID" }, http.StatusBadRequest},
		{"missing request at", func(h map[string]string) { delete(h, HeaderRequestAt) }, http.StatusBadRequest},
		{"invalid request at", func(h map[string]string) { h[HeaderRequestAt] = "not-a-time" }, http.StatusBadRequest},
		{"request at skewed", func(h map[string]string) {
			h[HeaderRequestAt] = time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339)
		}, http.StatusBadRequest},
		{"missing user", func(h map[string]string) { delete(h, HeaderUserID) }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHeaders()
			tt.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]int{"x": 1}), h)
			if rec.Code != tt.want {
				t.Fatalf("want %d, got %d body=%s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		calls++
		return okCreatedHandler(c)
	})

	h := validHeaders()
	rec1 := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]any{"amount": "5000.00"}), h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	// Second request with SAME headers & body -> replay stored response (also 201)
	rec2 := doReq(t, e, http.MethodPost, "/loans", mkJSONBody(t, map[string]any{"amount": "5000.00"}), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func Test_Replay_NoContent(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusNoContent)
	})

	h := validHeaders()
	for i := 0; i < 2; i++ {
		rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("attempt %d => want 204, got %d body=%s", i, rec.Code, rec.Body.String())
		}
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func Test_KeyIsScopedToUser(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusNoContent)
	})

	h := validHeaders()
	doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h)
	h[HeaderUserID] = "user-2"
	doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h)
	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func Test_KeyIncludesPathParams(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	var applied []string
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		applied = append(applied, c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	})

	h := validHeaders()
	for _, path := range []string{"/loans/L1/apply", "/loans/L2/apply", "/loans/L1/apply"} {
		if rec := doReq(t, e, http.MethodPost, path, nil, h); rec.Code != http.StatusNoContent {
			t.Fatalf("%s => want 204, got %d body=%s", path, rec.Code, rec.Body.String())
		}
	}
	if len(applied) != 2 || applied[0] != "L1" || applied[1] != "L2" {
		t.Fatalf("applied = %v, want [L1 L2]", applied)
	}
	if !mr.Exists(buildKey(http.MethodPost, "/loans/L2/apply", testUser, testReqID)) {
		t.Fatal("second resource must have its own entry")
	}
}

func Test_ServerErrorIsNotRecorded(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, time.Minute, func(c echo.Context) error {
		calls++
		if calls == 1 {
			return echo.NewHTTPError(http.StatusInternalServerError, "boom")
		}
		return c.NoContent(http.StatusNoContent)
	})

	h := validHeaders()
	if rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h); rec.Code != http.StatusInternalServerError {
		t.Fatalf("first => want 500, got %d", rec.Code)
	}
	if rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), h); rec.Code != http.StatusNoContent {
		t.Fatalf("retry => want 204, got %d", rec.Code)
	}
	if mr.Exists(buildKey(http.MethodPost, "/loans", testUser, testReqID)) == false {
		t.Fatal("successful retry must be recorded")
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	body := []byte(`{"x":1}`)

	// Seed a reservation so the request finds the key taken and pending
	s := store{rdb: rdb, ttl: time.Minute}
	key := buildKey(http.MethodPost, "/loans", testUser, testReqID)
	entry := replayEntry{
		BodySHA256: bodyHash(body),
		RequestID:  testReqID,
		RequestAt:  time.Now().UTC(),
		StoredAt:   time.Now().UTC(),
	}
	if ok, err := s.reserve(context.Background(), key, entry); err != nil || !ok {
		t.Fatalf("seed reservation failed, ok=%v err=%v", ok, err)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader(body), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	// Seed a final entry recorded for a different body
	s := store{rdb: rdb, ttl: 5 * time.Minute}
	key := buildKey(http.MethodPost, "/loans", testUser, testReqID)
	final := replayEntry{
		Status:     http.StatusCreated,
		Body:       []byte(`{"ok":true}`),
		BodySHA256: bodyHash([]byte(`{"x":1}`)),
		RequestID:  testReqID,
		RequestAt:  time.Now().UTC(),
		StoredAt:   time.Now().UTC(),
	}
	if err := s.commit(context.Background(), key, final); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{"x":2}`)), validHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same reqID => want 409, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	// Create a client that points to a closed address → SetNX error
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, time.Minute, okCreatedHandler)

	rec := doReq(t, e, http.MethodPost, "/loans", bytes.NewReader([]byte(`{}`)), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}

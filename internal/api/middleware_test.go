package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestTimingMiddlewareSetsHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	TimingMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	got := rec.Header().Get("X-Process-Time")
	if !strings.HasSuffix(got, "ms") {
		t.Errorf("X-Process-Time = %q, want a ms duration", got)
	}
}

func TestTimingMiddlewareExplicitStatus(t *testing.T) {
	h := TimingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Process-Time") == "" {
		t.Error("missing X-Process-Time")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	// 2 per minute gives a burst of 1 and a refill far slower than the test.
	h := RateLimitMiddleware(2, time.Minute)(okHandler())

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("192.0.2.1:1000"); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", rec.Code)
	}
	rec := send("192.0.2.1:1001")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}
	if !strings.Contains(rec.Body.String(), "RATE_LIMITED") {
		t.Errorf("body = %s", rec.Body.String())
	}

	// Other clients have their own bucket.
	if rec := send("198.51.100.7:1000"); rec.Code != http.StatusOK {
		t.Errorf("other ip = %d, want 200", rec.Code)
	}
}

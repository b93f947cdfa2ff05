package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// ------------------------------------------------------------
// SecurityHeaders
// ------------------------------------------------------------

func TestSecurityHeaders(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	SecurityHeaders(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/estimates/x/report", nil))

	if !called || rec.Code != http.StatusTeapot {
		t.Errorf("expected inner status 418, got %d called=%v", rec.Code, called)
	}
	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	}
	for name, v := range want {
		if got := rec.Header().Get(name); got != v {
			t.Errorf("%s: want %q, got %q", name, v, got)
		}
	}
	if !strings.Contains(rec.Header().Get("Strict-Transport-Security"), "max-age=") {
		t.Error("HSTS missing max-age")
	}
}

func TestSecurityHeaders_CSPAllowsInlineReportStyles(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	csp := rec.Header().Get("Content-Security-Policy")
	for _, d := range []string{"default-src 'none'", "style-src 'unsafe-inline'", "frame-ancestors 'none'"} {
		if !strings.Contains(csp, d) {
			t.Errorf("CSP missing %q: %s", d, csp)
		}
	}
	if strings.Contains(csp, "script-src") {
		t.Errorf("CSP should not allow any script: %s", csp)
	}
}

// ------------------------------------------------------------
// RateLimiter
// ------------------------------------------------------------

func newTestLimiter(t *testing.T, limit, proxies int) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, proxies)
	t.Cleanup(rl.Close)
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }
	return rl, &clock
}

func postFrom(h http.Handler, remote, xff string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/estimates", nil)
	req.RemoteAddr = remote
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, 0)
	h := rl.Middleware(okHandler)

	for i := 0; i < 3; i++ {
		if rec := postFrom(h, "192.168.1.1:12345", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	rec := postFrom(h, "192.168.1.1:12345", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"rate_limited"`) {
		t.Errorf("unexpected body %s", rec.Body)
	}
	if rec.Header().Get("Retry-After") != "61" {
		t.Errorf("expected Retry-After 61, got %q", rec.Header().Get("Retry-After"))
	}
	if rec := postFrom(h, "192.168.1.2:12345", ""); rec.Code != http.StatusOK {
		t.Errorf("another client should not be limited, got %d", rec.Code)
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	rl, clock := newTestLimiter(t, 1, 0)
	h := rl.Middleware(okHandler)

	postFrom(h, "10.0.0.1:1234", "")
	*clock = clock.Add(30 * time.Second)
	if rec := postFrom(h, "10.0.0.1:1234", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 inside the window, got %d", rec.Code)
	}
	*clock = clock.Add(31 * time.Second)
	if rec := postFrom(h, "10.0.0.1:1234", ""); rec.Code != http.StatusOK {
		t.Errorf("expected 200 after the window, got %d", rec.Code)
	}
}

func TestRateLimiter_ForwardedFor(t *testing.T) {
	tests := []struct {
		name    string
		proxies int
		first   string
		second  string
		limited bool
	}{
		{"spoofed leftmost entry ignored", 1, "203.0.113.50", "9.9.9.9, 203.0.113.50", true},
		{"different real clients", 1, "203.0.113.50", "203.0.113.51", false},
		{"two proxies", 2, "203.0.113.50, 10.1.0.1", "1.2.3.4, 203.0.113.50, 10.1.0.2", true},
		{"header ignored without proxies", 0, "203.0.113.50", "203.0.113.51", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, _ := newTestLimiter(t, 1, tt.proxies)
			h := rl.Middleware(okHandler)
			postFrom(h, "10.0.0.99:1234", tt.first)
			rec := postFrom(h, "10.0.0.99:1234", tt.second)
			if limited := rec.Code == http.StatusTooManyRequests; limited != tt.limited {
				t.Errorf("expected limited=%v, got status %d", tt.limited, rec.Code)
			}
		})
	}
}

func TestRateLimiter_PruneForgetsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(t, 5, 0)
	rl.allow("10.0.0.1")
	*clock = clock.Add(2 * time.Minute)

	rl.mu.Lock()
	rl.prune("10.0.0.1", clock.Add(-rateWindow))
	_, kept := rl.clients["10.0.0.1"]
	rl.mu.Unlock()
	if kept {
		t.Error("expected idle client to be forgotten")
	}
}

package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// reportCSP covers the only documents the API serves besides JSON: the HTML
// report, which carries its stylesheet inline and runs no script.
const reportCSP = "default-src 'none'; style-src 'unsafe-inline'; img-src data:; frame-ancestors 'none'; base-uri 'none'"

// SecurityHeaders adds the response headers every API response carries.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", reportCSP)
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

const (
	rateWindow      = time.Minute
	cleanupInterval = 5 * time.Minute
)

// RateLimiter caps POST traffic per client IP with a sliding one-minute window.
type RateLimiter struct {
	maxPerMinute   int
	trustedProxies int
	now            func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewRateLimiter starts a limiter. trustedProxies is the number of reverse
// proxies that append to X-Forwarded-For; zero ignores the header. Call Close
// to stop the background cleanup.
func NewRateLimiter(maxPerMinute, trustedProxies int) *RateLimiter {
	rl := &RateLimiter{
		maxPerMinute:   maxPerMinute,
		trustedProxies: trustedProxies,
		now:            time.Now,
		clients:        make(map[string][]time.Time),
		stop:           make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := rl.now().Add(-rateWindow)
			for ip := range rl.clients {
				rl.prune(ip, cutoff)
			}
			rl.mu.Unlock()
		}
	}
}

// prune drops timestamps at or before cutoff and forgets idle clients.
// rl.mu must be held.
func (rl *RateLimiter) prune(ip string, cutoff time.Time) []time.Time {
	hits := rl.clients[ip]
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	hits = hits[i:]
	if len(hits) == 0 {
		delete(rl.clients, ip)
		return nil
	}
	rl.clients[ip] = hits
	return hits
}

// allow records a hit for ip. When the window is full it returns false and the
// time until the oldest hit leaves the window.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	hits := rl.prune(ip, now.Add(-rateWindow))
	if len(hits) >= rl.maxPerMinute {
		return false, hits[0].Add(rateWindow).Sub(now)
	}
	rl.clients[ip] = append(hits, now)
	return true, 0
}

// Middleware rejects requests over the limit with 429 and Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		ok, wait := rl.allow(ip)
		if !ok {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP reads the X-Forwarded-For entry written by the outermost trusted
// proxy. Entries to its left are client supplied and ignored.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxies > 0 {
		parts := strings.Split(xff, ",")
		if idx := len(parts) - rl.trustedProxies; idx >= 0 {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

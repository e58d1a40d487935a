package security

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimiter gives each client key a fixed budget of requests per window.
// The budget refills all at once when the window since the last refill ends.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*bucket
	rate     int
	window   time.Duration
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	remaining int
	refillAt  time.Time
}

// NewRateLimiter allows rate requests per window for each key and starts a
// goroutine that drops idle keys until Stop is called.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go rl.evictIdle()
	return rl
}

// Stop ends the eviction goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Allow spends one request from key's budget. The returned duration is how
// long a refused client should wait before its budget refills.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.clients[key]
	if !ok || !now.Before(b.refillAt) {
		b = &bucket{remaining: rl.rate, refillAt: now.Add(rl.window)}
		rl.clients[key] = b
	}

	if b.remaining > 0 {
		b.remaining--
		return true, 0
	}
	return false, b.refillAt.Sub(now)
}

// evictIdle drops keys whose window ended at least one window ago
func (rl *RateLimiter) evictIdle() {
	interval := max(rl.window*2, time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.evict()
		}
	}
}

func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.window)
	for key, b := range rl.clients {
		if b.refillAt.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// size is the number of tracked keys
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// GetClientIP extracts the client IP from the request.
// Only the first X-Forwarded-For hop is used and any port is dropped.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

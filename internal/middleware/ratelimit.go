package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP.
//
// Buckets that have refilled completely are dropped by a background sweep,
// so memory tracks recently active clients only. Call Stop when the server
// shuts down to end the sweep.
type IPRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
	logger   *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewIPRateLimiter allows each IP r requests per second with bursts of b,
// sweeping idle buckets every interval.
func NewIPRateLimiter(r rate.Limit, b int, interval time.Duration, logger *slog.Logger) *IPRateLimiter {
	l := &IPRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go l.sweep(interval)
	return l
}

// Limiter returns the bucket for ip, creating it on first use.
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[ip]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Another request may have created it between the two locks.
	if lim, ok = l.limiters[ip]; !ok {
		lim = rate.NewLimiter(l.r, l.b)
		l.limiters[ip] = lim
	}
	return lim
}

// Len reports how many IPs currently hold a bucket.
func (l *IPRateLimiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.limiters)
}

// Stop ends the sweep goroutine and waits for it. Safe to call twice.
func (l *IPRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
}

func (l *IPRateLimiter) sweep(interval time.Duration) {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.prune(now)
		}
	}
}

// prune drops every bucket that is full at now.
func (l *IPRateLimiter) prune(now time.Time) {
	l.mu.Lock()
	removed := 0
	for ip, lim := range l.limiters {
		if lim.TokensAt(now) >= float64(lim.Burst()) {
			delete(l.limiters, ip)
			removed++
		}
	}
	remaining := len(l.limiters)
	l.mu.Unlock()

	if removed > 0 {
		l.logger.Debug("rate limiter sweep",
			slog.Int("removed", removed),
			slog.Int("active", remaining),
		)
	}
}

// Middleware answers 429 with a JSON error once an IP exceeds its rate.
// It keys on r.RemoteAddr, so mount it after chi's RealIP.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Limiter(ip).Allow() {
			l.logger.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "rate_limited",
				"message": "Too many requests. Please slow down and try again.",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if ip == "" {
		return "unknown"
	}
	return ip
}

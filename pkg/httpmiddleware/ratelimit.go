package httpmiddleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures per-client token buckets. A client may burst up
// to Max requests and regains Max tokens per Window.
type RateLimitConfig struct {
	Max    int
	Window time.Duration
	// KeyFunc identifies the client. Defaults to ClientIP.
	KeyFunc func(*http.Request) string
}

// Interval is the time to regain one token. It is zero when limiting is
// disabled, including when Window is shorter than Max nanoseconds.
func (c RateLimitConfig) Interval() time.Duration {
	if c.Max <= 0 || c.Window <= 0 {
		return 0
	}
	return c.Window / time.Duration(c.Max)
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterSet struct {
	cfg   RateLimitConfig
	every rate.Limit

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = ClientIP
	}
	return &limiterSet{
		cfg:     cfg,
		every:   rate.Every(cfg.Interval()),
		clients: make(map[string]*clientLimiter),
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(s.every, s.cfg.Max)}
		s.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter
}

// evict drops clients idle for longer than a window; their buckets are full
// again by then.
func (s *limiterSet) evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for key, c := range s.clients {
		if now.Sub(c.lastSeen) > s.cfg.Window {
			delete(s.clients, key)
			n++
		}
	}
	return n
}

func (s *limiterSet) runEviction(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.evict(now)
		}
	}
}

// RateLimit rejects clients exceeding the configured rate with 429. Limiting
// is disabled when cfg.Interval is zero.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.Interval() <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return newLimiterSet(cfg).middleware
}

// RateLimitWithCleanup is RateLimit with idle clients evicted in the
// background until ctx is done.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	if cfg.Interval() <= 0 {
		return RateLimit(cfg)
	}
	s := newLimiterSet(cfg)
	go s.runEviction(ctx)
	return s.middleware
}

func (s *limiterSet) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		lim := s.get(s.cfg.KeyFunc(r), now)
		allowed := lim.AllowN(now, 1)
		tokens := lim.TokensAt(now)

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(s.cfg.Max))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, int(tokens))))

		if !allowed {
			wait := (1 - tokens) / float64(lim.Limit())
			h.Set("Retry-After", strconv.Itoa(int(math.Ceil(wait))))
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then the
// remote address host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

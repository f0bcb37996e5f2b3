package httpmiddleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hit(h http.Handler, remote string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimit_Burst(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 3, Window: time.Minute})(okHandler())

	for i := range 3 {
		w := hit(h, "10.0.0.1:1000")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}

	w := hit(h, "10.0.0.1:1001")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"code":429,"error":"RATE_LIMITED","message":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimit_PerClient(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:2").Code)
}

func TestRateLimit_ForwardedFor(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1", "X-Forwarded-For", "203.0.113.50, 70.41.3.18").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "192.168.1.2:1", "X-Forwarded-For", "203.0.113.50").Code)
}

func TestRateLimit_CustomKey(t *testing.T) {
	h := RateLimit(RateLimitConfig{
		Max:     1,
		Window:  time.Minute,
		KeyFunc: func(r *http.Request) string { return r.Header.Get("X-Client") },
	})(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "1.1.1.1:1", "X-Client", "a").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "2.2.2.2:1", "X-Client", "a").Code)
	assert.Equal(t, http.StatusOK, hit(h, "1.1.1.1:1", "X-Client", "b").Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	for _, tt := range []struct {
		name string
		cfg  RateLimitConfig
	}{
		{name: "Zero", cfg: RateLimitConfig{}},
		{name: "NoWindow", cfg: RateLimitConfig{Max: 10}},
		{name: "SubNanosecondInterval", cfg: RateLimitConfig{Max: 1000, Window: 500 * time.Nanosecond}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, tt.cfg.Interval())
			h := RateLimitWithCleanup(context.Background(), tt.cfg)(okHandler())

			for range 10 {
				w := hit(h, "10.0.0.1:1")
				require.Equal(t, http.StatusOK, w.Code)
				assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
			}
		})
	}
}

func TestRateLimitConfig_Interval(t *testing.T) {
	assert.Equal(t, 600*time.Millisecond, RateLimitConfig{Max: 100, Window: time.Minute}.Interval())
	assert.Equal(t, time.Nanosecond, RateLimitConfig{Max: 2, Window: 3 * time.Nanosecond}.Interval())
}

func TestLimiterSet_Evict(t *testing.T) {
	s := newLimiterSet(RateLimitConfig{Max: 1, Window: time.Minute})
	now := time.Now()
	s.get("stale", now.Add(-2*time.Minute))
	s.get("fresh", now)

	assert.Equal(t, 1, s.evict(now))
	assert.Len(t, s.clients, 1)
	assert.Contains(t, s.clients, "fresh")
}

func TestClientIP(t *testing.T) {
	for _, tt := range []struct {
		name   string
		remote string
		header [2]string
		want   string
	}{
		{name: "RemoteAddr", remote: "10.1.1.1:5555", want: "10.1.1.1"},
		{name: "NoPort", remote: "10.1.1.1", want: "10.1.1.1"},
		{name: "RealIP", remote: "10.1.1.1:1", header: [2]string{"X-Real-IP", "198.51.100.7"}, want: "198.51.100.7"},
		{name: "ForwardedFor", remote: "10.1.1.1:1", header: [2]string{"X-Forwarded-For", " 203.0.113.9 , 10.0.0.1"}, want: "203.0.113.9"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.header[0] != "" {
				req.Header.Set(tt.header[0], tt.header[1])
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

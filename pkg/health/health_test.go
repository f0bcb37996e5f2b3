package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func passing() CheckFunc {
	return func(context.Context) error { return nil }
}

func failing(msg string) CheckFunc {
	return func(context.Context) error { return errors.New(msg) }
}

func probe(t *testing.T, endpoint http.HandlerFunc) (int, statusBody) {
	t.Helper()

	w := httptest.NewRecorder()
	endpoint(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body statusBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return w.Code, body
}

func TestLiveEndpoint(t *testing.T) {
	for _, tt := range []struct {
		name     string
		checks   map[string]CheckFunc
		code     int
		failures map[string]string
	}{
		{name: "NoChecks", code: http.StatusOK},
		{
			name:   "AllPassing",
			checks: map[string]CheckFunc{"a": passing(), "b": passing()},
			code:   http.StatusOK,
		},
		{
			name:     "OneFailing",
			checks:   map[string]CheckFunc{"a": passing(), "db": failing("connection refused")},
			code:     http.StatusServiceUnavailable,
			failures: map[string]string{"db": "connection refused"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			for name, fn := range tt.checks {
				h.AddLivenessCheck(name, time.Second, fn)
			}

			code, body := probe(t, h.LiveEndpoint)
			assert.Equal(t, tt.code, code)
			if tt.failures == nil {
				assert.Equal(t, "ok", body.Status)
				assert.Empty(t, body.Checks)
				return
			}
			assert.Equal(t, "unhealthy", body.Status)
			assert.Equal(t, tt.failures, body.Checks)
		})
	}
}

func TestReadyEndpoint(t *testing.T) {
	h := New()
	h.AddReadinessCheck("catalog", time.Second, passing())

	code, body := probe(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code, "not ready before SetReady")
	assert.Contains(t, body.Checks, "ready")

	h.SetReady(true)
	code, body = probe(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)

	h.SetReady(false)
	code, _ = probe(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code, "draining")
}

func TestReadyEndpoint_FailingCheck(t *testing.T) {
	h := New()
	h.AddReadinessCheck("catalog", time.Second, failing("empty"))
	h.SetReady(true)

	code, body := probe(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, map[string]string{"catalog": "empty"}, body.Checks)
	assert.False(t, h.Ready(context.Background()))
}

func TestCheckTimeout(t *testing.T) {
	h := New()
	h.AddLivenessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	code, body := probe(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body.Checks["slow"], "timed out")
}

func TestReady(t *testing.T) {
	h := New()
	assert.False(t, h.Ready(context.Background()))

	h.SetReady(true)
	assert.True(t, h.Ready(context.Background()))
}

type counter struct{ products, articles int }

func (c counter) Len() (int, int) { return c.products, c.articles }

func TestCatalogCheck(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, CatalogCheck(counter{products: 1}, 1)(ctx))
	require.NoError(t, CatalogCheck(counter{articles: 2}, 2)(ctx))
	require.NoError(t, CatalogCheck(counter{}, 0)(ctx))

	err := CatalogCheck(counter{}, 1)(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 entries")
}

func TestGoroutineCountCheck(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, GoroutineCountCheck(1_000_000)(ctx))
	require.Error(t, GoroutineCountCheck(0)(ctx))
}

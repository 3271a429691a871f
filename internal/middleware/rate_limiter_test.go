package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(mw echo.MiddlewareFunc) echo.HandlerFunc {
	return mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func hitFrom(t *testing.T, e *echo.Echo, handler echo.HandlerFunc, remoteAddr string) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()

	// SendError writes the 429 response itself and returns nil
	assert.NoError(t, handler(e.NewContext(req, rec)))
	return rec.Code
}

func TestRateLimiterAllowsBurstThenRejects(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiterWithConfig(2, 4))

	for i := 0; i < 4; i++ {
		assert.Equal(t, http.StatusOK, hitFrom(t, e, handler, "10.0.0.1:4000"))
	}

	assert.Equal(t, http.StatusTooManyRequests, hitFrom(t, e, handler, "10.0.0.1:4000"))
}

func TestRateLimiterDefaultBurst(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiter())

	rejected := false
	for i := 0; i < 2*defaultBurst; i++ {
		if hitFrom(t, e, handler, "10.0.0.2:4000") == http.StatusTooManyRequests {
			rejected = true
			break
		}
	}

	assert.True(t, rejected, "sustained traffic from one IP should hit the limit")
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiterWithConfig(2, 3))

	// Each client gets its own bucket, so three bursts do not interfere
	for _, addr := range []string{"10.0.0.3:1", "10.0.0.4:1", "10.0.0.5:1"} {
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, hitFrom(t, e, handler, addr))
		}
	}
}

func TestClientIPResolution(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded-for wins",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "203.0.113.8"},
			remoteAddr: "127.0.0.1:9999",
			want:       "203.0.113.7",
		},
		{
			name:       "real-ip when no forwarded-for",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			remoteAddr: "127.0.0.1:9999",
			want:       "203.0.113.8",
		},
		{
			name:       "socket address as last resort",
			remoteAddr: "203.0.113.9:9999",
			want:       "203.0.113.9",
		},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			assert.Equal(t, tt.want, clientIP(c))
		})
	}
}

func TestEvictStaleClients(t *testing.T) {
	l := newIPRateLimiter(5, 10)
	l.allow("10.0.0.6")
	l.allow("10.0.0.7")

	l.mu.Lock()
	l.clients["10.0.0.6"].lastSeen = time.Now().Add(-10 * time.Minute)
	l.mu.Unlock()

	l.evictStale(staleClientAfter)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.clients, "10.0.0.6")
	assert.Contains(t, l.clients, "10.0.0.7")
}

func TestRateLimiterConcurrentRequests(t *testing.T) {
	e := echo.New()
	handler := rateLimitedHandler(RateLimiterWithConfig(5, 10))

	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := make(map[int]int)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
			req.RemoteAddr = "10.0.0.8:4000"
			rec := httptest.NewRecorder()
			err := handler(e.NewContext(req, rec))

			mu.Lock()
			defer mu.Unlock()
			assert.NoError(t, err)
			codes[rec.Code]++
		}()
	}
	wg.Wait()

	assert.Greater(t, codes[http.StatusOK], 0)
	assert.Greater(t, codes[http.StatusTooManyRequests], 0)
	assert.Equal(t, 20, codes[http.StatusOK]+codes[http.StatusTooManyRequests])
}

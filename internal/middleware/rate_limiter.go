package middleware

import (
	"sync"
	"time"

	apperrors "finledger/internal/errors"
	"finledger/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerSecond = 5
	defaultBurst             = 10

	staleClientAfter = 3 * time.Minute
	sweepInterval    = time.Minute
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter tracks one token bucket per client IP. Buckets for clients
// that stop sending requests are swept out periodically.
type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rps     rate.Limit
	burst   int
}

func newIPRateLimiter(rps, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		clients: make(map[string]*clientBucket),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.clients[ip]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

func (l *ipRateLimiter) evictStale(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, b := range l.clients {
		if time.Since(b.lastSeen) > maxIdle {
			delete(l.clients, ip)
		}
	}
}

func (l *ipRateLimiter) sweep() {
	for {
		time.Sleep(sweepInterval)
		l.evictStale(staleClientAfter)
	}
}

// clientIP resolves the requesting client's address, trusting the proxy
// headers the load balancer sets before falling back to the socket address.
func clientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Request().Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.RealIP()
}

// RateLimiter creates a per-IP rate limiting middleware with default limits
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWithConfig(defaultRequestsPerSecond, defaultBurst)
}

// RateLimiterWithConfig creates a per-IP rate limiting middleware. Requests
// beyond the burst are rejected with a 429 error response.
func RateLimiterWithConfig(rps, burst int) echo.MiddlewareFunc {
	limiter := newIPRateLimiter(rps, burst)
	go limiter.sweep()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(clientIP(c)) {
				return handlers.SendError(c, apperrors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

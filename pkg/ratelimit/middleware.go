package ratelimit

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/campushq/classroom-idm/pkg/login"
)

// Config holds per-client throttle settings.
type Config struct {
	// Capacity is the burst of requests a single client may make before
	// throttling kicks in.
	Capacity int `env:"RATE_LIMIT_CAPACITY" env-default:"10"`
	// RefillPerMinute is how many requests per minute a throttled client
	// earns back.
	RefillPerMinute float64 `env:"RATE_LIMIT_REFILL_PER_MINUTE" env-default:"10"`
	// BucketTTL is how long an idle client's bucket stays in memory.
	BucketTTL time.Duration `env:"RATE_LIMIT_BUCKET_TTL" env-default:"1h"`
}

// Middleware throttles requests per client IP.
type Middleware struct {
	limiter *Limiter
}

func NewMiddleware(config Config) *Middleware {
	return &Middleware{
		limiter: NewLimiter(config.Capacity, config.RefillPerMinute/60.0, config.BucketTTL),
	}
}

// Handler rejects requests from clients that have exhausted their bucket.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !m.limiter.Allow(ip) {
			slog.Warn("Rate limit exceeded", "ip", ip, "path", r.URL.Path, "method", r.Method)
			w.Header().Set("Retry-After", "60")
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, login.MessageResponse{Message: "Too many requests. Please try again later."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers proxy-set headers over the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// The first entry is the originating client.
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "IP:port"; strip the port.
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}

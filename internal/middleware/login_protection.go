// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// LoginProtection provides per-IP rate limiting for the login endpoint.
type LoginProtection struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	limit rate.Limit
	burst int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is requests per second per IP (default: 0.5 = 1 request per 2 seconds)
	IPRateLimit float64
	// IPBurst is the maximum burst size for IP rate limiting (default: 5)
	IPBurst int
}

// DefaultLoginProtectionConfig returns sensible defaults.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit: 0.5, // 1 request per 2 seconds
		IPBurst:     5,   // Allow burst of 5 requests
	}
}

// NewLoginProtection creates a new login protection instance.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = 0.5
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = 5
	}

	return &LoginProtection{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(cfg.IPRateLimit),
		burst:    cfg.IPBurst,
	}
}

// Allow reports whether a login attempt from the given IP may proceed.
func (lp *LoginProtection) Allow(ip string) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	// Bound the map so a scan across many source addresses cannot grow it
	// without limit.
	if len(lp.limiters) > 10000 {
		lp.limiters = make(map[string]*rate.Limiter)
		slog.Info("cleared IP rate limiters due to size")
	}

	limiter, ok := lp.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(lp.limit, lp.burst)
		lp.limiters[ip] = limiter
	}
	return limiter.Allow()
}

// Middleware returns HTTP middleware for IP rate limiting on login.
// This should be applied to the login POST route.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			if !lp.Allow(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip)
				writeMessage(w, http.StatusTooManyRequests, "Too many login attempts")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	// Check X-Real-IP header (set by reverse proxies)
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	// X-Forwarded-For can contain multiple IPs; take the first one
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	return r.RemoteAddr
}

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taskdeck/taskdeck/internal/cache"
)

// RateLimitConfig holds configuration for login rate limiting.
type RateLimitConfig struct {
	Logger *slog.Logger
	Cache  *cache.Cache
	// Enabled toggles the limiter without removing it from the chain.
	Enabled bool
	// AttemptsPerMinute is the sustained allowance per client IP.
	AttemptsPerMinute int
	// Burst is the bucket capacity for short spikes.
	Burst int
}

// RateLimitLogin returns middleware that throttles credential attempts
// per client IP, protecting the login endpoint against online password
// guessing. Authenticated endpoints are not throttled.
func RateLimitLogin(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || cfg.Cache == nil {
				next.ServeHTTP(w, r)
				return
			}

			result, err := cfg.Cache.CheckLoginRateLimit(
				r.Context(),
				r.RemoteAddr,
				cfg.AttemptsPerMinute,
				cfg.Burst,
			)
			if err != nil {
				cfg.Logger.Error("rate limit check failed",
					slog.String("error", err.Error()),
				)
				// Fail open - allow request
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				cfg.Logger.Warn("login rate limit exceeded",
					slog.String("ip", r.RemoteAddr),
					slog.Int64("retry_after_seconds", int64(result.RetryAfter.Seconds())),
					slog.String("request_id", GetRequestID(r.Context())),
				)

				w.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"Too many login attempts","code":"RATE_LIMITED"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/platform/ratelimit"
)

// RateLimitRecorder counts limiter decisions.
type RateLimitRecorder interface {
	RecordRateLimit(endpoint string, blocked bool)
}

// RateLimit allows at most limit requests per client IP and path in each
// window. A nil counter disables limiting. Counter errors let the request
// through.
func RateLimit(
	counter ratelimit.Counter,
	limit int,
	window time.Duration,
	rec RateLimitRecorder,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Path + ":" + clientIP(r)

			n, err := counter.Hit(r.Context(), key, window)
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limiter unavailable, allowing request",
					"error", err.Error())
				w.Header().Set("X-RateLimit-Error", "redis-error")
				next.ServeHTTP(w, r)
				return
			}

			blocked := n > int64(limit)
			if rec != nil {
				rec.RecordRateLimit(r.URL.Path, blocked)
			}
			if blocked {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. chi's RealIP rewrites RemoteAddr
// from forwarding headers only when the server is configured to trust a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/auth"
	"github.com/hrtools/employee-directory/internal/core/events"
	"github.com/hrtools/employee-directory/internal/ratelimit"
	"github.com/hrtools/employee-directory/internal/transport"
)

// RateLimit gates authenticated requests through the sliding-window limiter.
// Must sit behind the auth middleware: the window key is the authenticated
// username, so unauthenticated requests never reach it.
func RateLimit(limiter *ratelimit.Limiter, bus *events.EventBus, logger *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.UserFromContext(r.Context())
			if !ok || u == nil {
				base.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			if err := limiter.Admit(u.Username); err != nil {
				retryAfter := limiter.RetryAfterSeconds()
				logger.Warn("request rejected by rate limiter", "username", u.Username, "retry_after_seconds", retryAfter)
				if bus != nil {
					bus.Publish(r.Context(), events.NewRateLimitExceededEvent(u.Username, retryAfter))
				}
				base.WriteAppError(w, internal.NewRateLimitError(
					"Too many requests. Try again in a moment", retryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

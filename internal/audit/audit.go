package audit

import (
	"context"
	"log/slog"

	"github.com/hrtools/employee-directory/internal/core/events"
)

// RegisterSubscribers wires the audit trail: every security-relevant event
// becomes a structured log entry under the "audit" group.
func RegisterSubscribers(bus *events.EventBus, logger *slog.Logger) {
	auditLog := logger.WithGroup("audit")

	log := func(level slog.Level, msg string) events.Handler {
		return func(ctx context.Context, event events.Event) error {
			attrs := []any{
				"event_id", event.EventID(),
				"occurred_at", event.OccurredAt(),
			}
			if data, ok := event.Payload().(map[string]interface{}); ok {
				for k, v := range data {
					attrs = append(attrs, k, v)
				}
			}
			auditLog.Log(ctx, level, msg, attrs...)
			return nil
		}
	}

	bus.Subscribe(events.EventLoginFailed, log(slog.LevelWarn, "login failed"))
	bus.Subscribe(events.EventRateLimitExceeded, log(slog.LevelWarn, "rate limit exceeded"))
	bus.Subscribe(events.EventSearchExecuted, log(slog.LevelInfo, "directory search executed"))
}

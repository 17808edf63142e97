package events

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types published by the auth and search pipeline.
const (
	EventLoginFailed       = "auth.login_failed"
	EventRateLimitExceeded = "ratelimit.exceeded"
	EventSearchExecuted    = "directory.search_executed"
)

func NewLoginFailedEvent(username string) BaseEvent {
	return newEvent(EventLoginFailed, map[string]interface{}{
		"username": username,
	})
}

func NewRateLimitExceededEvent(username string, retryAfterSeconds int) BaseEvent {
	return newEvent(EventRateLimitExceeded, map[string]interface{}{
		"username":            username,
		"retry_after_seconds": retryAfterSeconds,
	})
}

func NewSearchExecutedEvent(username, searchStr string, totalCount int64, columns []string) BaseEvent {
	return newEvent(EventSearchExecuted, map[string]interface{}{
		"username":    username,
		"search_str":  searchStr,
		"total_count": totalCount,
		"columns":     columns,
	})
}

func newEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

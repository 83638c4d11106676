package http

import (
	"context"
	"log/slog"

	"github.com/example/slotshare/internal/logging"
)

type contextKey string

const scheduleIDContextKey contextKey = "schedule_id"

// ContextWithScheduleID injects the schedule identifier resolved from the
// request path.
func ContextWithScheduleID(ctx context.Context, scheduleID int64) context.Context {
	return context.WithValue(ctx, scheduleIDContextKey, scheduleID)
}

// ScheduleIDFromContext extracts a schedule identifier previously associated
// with the context.
func ScheduleIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(scheduleIDContextKey).(int64)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts a logger previously attached to the context.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

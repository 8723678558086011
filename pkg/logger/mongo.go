package logger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/event"
	"go.uber.org/zap"
)

// NewMongoMonitor returns a command monitor that logs driver round-trips.
// Successful commands are logged at debug, slow ones at warn, failures at error.
func NewMongoMonitor(l *zap.Logger, slowQuerySeconds float64) *event.CommandMonitor {
	slow := time.Duration(slowQuerySeconds * float64(time.Second))

	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, e *event.CommandSucceededEvent) {
			fields := []zap.Field{
				zap.String("command", e.CommandName),
				zap.String("database", e.DatabaseName),
				zap.Int64("mongo_request_id", e.RequestID),
				zap.Duration("elapsed", e.Duration),
			}
			log := WithContext(ctx, l)
			if slow > 0 && e.Duration > slow {
				log.Warn("mongo slow command", append(fields, zap.Duration("threshold", slow))...)
				return
			}
			log.Debug("mongo command", fields...)
		},
		Failed: func(ctx context.Context, e *event.CommandFailedEvent) {
			WithContext(ctx, l).Error("mongo command failed",
				zap.String("command", e.CommandName),
				zap.String("database", e.DatabaseName),
				zap.Int64("mongo_request_id", e.RequestID),
				zap.Duration("elapsed", e.Duration),
				zap.String("failure", e.Failure),
			)
		},
	}
}

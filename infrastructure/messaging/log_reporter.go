package messaging

import (
	"context"

	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	"consolidator-backend/domain/events"
)

// LogReporter is a Reporter that writes to the structured log instead of an
// external bus. It backs local development and tests, where EventBridge is
// not configured.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a log-backed reporter
func NewLogReporter(logger *zap.Logger) *LogReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogReporter{logger: logger}
}

// ReportError logs the failure report
func (r *LogReporter) ReportError(ctx context.Context, title, message string, details map[string]interface{}) {
	r.logger.Error("analysis error reported",
		zap.String("title", title),
		zap.String("message", message),
		zap.Any("details", details),
	)
}

// ReportEvent logs the lifecycle event
func (r *LogReporter) ReportEvent(ctx context.Context, event events.DomainEvent) {
	r.logger.Info("analysis event reported",
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateId", event.GetAggregateID()),
	)
}

var _ ports.Reporter = (*LogReporter)(nil)

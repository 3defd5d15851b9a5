package ports

import (
	"context"

	"consolidator-backend/domain/events"
)

// Reporter receives every surfaced analysis failure. Implementations must
// never block the analysis pass; the error is always still returned to the
// caller after reporting.
type Reporter interface {
	// ReportError forwards a failure with its human-readable title and details
	ReportError(ctx context.Context, title, message string, details map[string]interface{})

	// ReportEvent forwards an analysis lifecycle event
	ReportEvent(ctx context.Context, event events.DomainEvent)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

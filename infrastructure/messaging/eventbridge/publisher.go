package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	"consolidator-backend/domain/events"
)

// eventSource identifies this service in EventBridge entries
const eventSource = "consolidator.analysis"

// PutEventsAPI is the subset of the EventBridge client the publisher needs
type PutEventsAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// Publisher implements the EventPublisher and Reporter ports using AWS
// EventBridge. Reporting is fire-and-forget: publish failures are logged,
// never propagated into the analysis pass.
type Publisher struct {
	client       PutEventsAPI
	eventBusName string
	source       string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(
	client PutEventsAPI,
	eventBusName string,
	logger *zap.Logger,
) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		source:       eventSource,
		logger:       logger,
	}
}

// Publish sends a single event to EventBridge
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends multiple events to EventBridge
func (p *Publisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	// EventBridge limits to 10 events per PutEvents call
	const batchSize = 10

	for i := 0; i < len(domainEvents); i += batchSize {
		end := i + batchSize
		if end > len(domainEvents) {
			end = len(domainEvents)
		}

		if err := p.publishWithRetry(ctx, domainEvents[i:end]); err != nil {
			return err
		}
	}

	return nil
}

// ReportEvent publishes an analysis lifecycle event without surfacing failures
func (p *Publisher) ReportEvent(ctx context.Context, event events.DomainEvent) {
	if err := p.Publish(ctx, event); err != nil {
		p.logger.Warn("failed to report event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err),
		)
	}
}

// ReportError publishes a failure report as an analysis.error entry
func (p *Publisher) ReportError(ctx context.Context, title, message string, details map[string]interface{}) {
	detail := map[string]interface{}{
		"title":   title,
		"message": message,
	}
	if len(details) > 0 {
		detail["details"] = details
	}

	data, err := json.Marshal(detail)
	if err != nil {
		p.logger.Warn("failed to marshal error report", zap.Error(err))
		return
	}

	input := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(p.source),
				DetailType:   aws.String("analysis.error"),
				Detail:       aws.String(string(data)),
				Time:         aws.Time(time.Now()),
			},
		},
	}

	if _, err := p.client.PutEvents(ctx, input); err != nil {
		p.logger.Warn("failed to report error",
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

// publishBatch publishes a batch of events (max 10). Marshal failures skip
// the event, so the source events are tracked in parallel with the entries
// to keep result attribution aligned.
func (p *Publisher) publishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	entries := make([]types.PutEventsRequestEntry, 0, len(domainEvents))
	sources := make([]events.DomainEvent, 0, len(domainEvents))

	for _, event := range domainEvents {
		eventData, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("failed to marshal event",
				zap.Error(err),
				zap.String("eventType", event.GetEventType()),
			)
			continue
		}

		entry := types.PutEventsRequestEntry{
			EventBusName: aws.String(p.eventBusName),
			Source:       aws.String(p.source),
			DetailType:   aws.String(event.GetEventType()),
			Detail:       aws.String(string(eventData)),
			Time:         aws.Time(event.GetTimestamp()),
			Resources: []string{
				fmt.Sprintf("arn:aws:consolidator::%s", event.GetAggregateID()),
			},
		}

		entries = append(entries, entry)
		sources = append(sources, event)
	}

	if len(entries) == 0 {
		return nil
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to publish events to EventBridge: %w", err)
	}

	if result.FailedEntryCount > 0 {
		for i, entry := range result.Entries {
			if entry.ErrorCode != nil && i < len(sources) {
				p.logger.Error("failed to publish event",
					zap.String("eventType", sources[i].GetEventType()),
					zap.String("errorCode", *entry.ErrorCode),
					zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
				)
			}
		}
		return fmt.Errorf("%d events failed to publish", result.FailedEntryCount)
	}

	p.logger.Debug("events published",
		zap.Int("count", len(entries)),
		zap.String("eventBus", p.eventBusName),
	)

	return nil
}

// publishWithRetry publishes events with exponential backoff
func (p *Publisher) publishWithRetry(ctx context.Context, domainEvents []events.DomainEvent) error {
	const maxRetries = 3
	backoff := 100 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = p.publishBatch(ctx, domainEvents)
		if lastErr == nil {
			return nil
		}

		if attempt < maxRetries-1 {
			p.logger.Warn("retrying event publication",
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
				zap.Duration("backoff", backoff),
			)

			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("failed to publish events after %d attempts: %w", maxRetries, lastErr)
}

var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.Reporter       = (*Publisher)(nil)
)

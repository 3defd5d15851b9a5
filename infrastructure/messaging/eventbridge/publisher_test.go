package eventbridge

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"consolidator-backend/domain/events"
)

// fakeEventsClient captures PutEvents inputs and optionally fails the first
// entry of every call
type fakeEventsClient struct {
	inputs    []*awseventbridge.PutEventsInput
	failFirst bool
}

func (f *fakeEventsClient) PutEvents(ctx context.Context, params *awseventbridge.PutEventsInput, optFns ...func(*awseventbridge.Options)) (*awseventbridge.PutEventsOutput, error) {
	f.inputs = append(f.inputs, params)

	out := &awseventbridge.PutEventsOutput{
		Entries: make([]types.PutEventsResultEntry, len(params.Entries)),
	}
	if f.failFirst && len(out.Entries) > 0 {
		out.FailedEntryCount = 1
		out.Entries[0].ErrorCode = aws.String("InternalFailure")
		out.Entries[0].ErrorMessage = aws.String("simulated failure")
	}
	return out, nil
}

// unmarshalableEvent cannot be serialized, so the publisher must skip it
type unmarshalableEvent struct {
	events.BaseEvent
	Blocker chan int `json:"blocker"`
}

func newTestEvent(collection string) events.CollectionFetched {
	return events.NewCollectionFetched(collection, 3, 2, false, time.Now())
}

func TestPublisher_BatchesOfTen(t *testing.T) {
	client := &fakeEventsClient{}
	publisher := NewPublisher(client, "test-bus", zap.NewNop())

	batch := make([]events.DomainEvent, 0, 12)
	for i := 0; i < 12; i++ {
		batch = append(batch, newTestEvent("notes"))
	}

	err := publisher.PublishBatch(context.Background(), batch)

	require.NoError(t, err)
	require.Len(t, client.inputs, 2)
	assert.Len(t, client.inputs[0].Entries, 10)
	assert.Len(t, client.inputs[1].Entries, 2)
	assert.Equal(t, "test-bus", aws.ToString(client.inputs[0].Entries[0].EventBusName))
	assert.Equal(t, "consolidator.analysis", aws.ToString(client.inputs[0].Entries[0].Source))
}

func TestPublisher_FailedEntryNamesTheSentEvent(t *testing.T) {
	client := &fakeEventsClient{failFirst: true}
	core, logs := observer.New(zap.ErrorLevel)
	publisher := NewPublisher(client, "test-bus", zap.New(core))

	// The first event cannot be marshaled and is skipped; the second is the
	// only entry actually sent, so the failed-entry log must name it.
	skipped := unmarshalableEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: "notes",
			EventType:   "analysis.failed",
			Timestamp:   time.Now(),
			Version:     1,
		},
		Blocker: make(chan int),
	}
	sent := newTestEvent("notes")

	err := publisher.publishBatch(context.Background(), []events.DomainEvent{skipped, sent})

	require.Error(t, err)
	require.Len(t, client.inputs, 1)
	assert.Len(t, client.inputs[0].Entries, 1)

	failures := logs.FilterMessage("failed to publish event").All()
	require.Len(t, failures, 1)
	assert.Equal(t, sent.GetEventType(), failures[0].ContextMap()["eventType"])
}

func TestPublisher_AllEventsUnmarshalableIsNoOp(t *testing.T) {
	client := &fakeEventsClient{}
	publisher := NewPublisher(client, "test-bus", zap.NewNop())

	bad := unmarshalableEvent{
		BaseEvent: events.BaseEvent{EventType: "analysis.failed"},
		Blocker:   make(chan int),
	}

	err := publisher.publishBatch(context.Background(), []events.DomainEvent{bad})

	require.NoError(t, err)
	assert.Empty(t, client.inputs)
}

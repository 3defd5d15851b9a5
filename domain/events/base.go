package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBaseEvent(aggregateID, eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		EventID:     uuid.NewString(),
		AggregateID: aggregateID,
		EventType:   eventType,
		Timestamp:   timestamp,
		Version:     1,
	}
}

// Analysis Events

// AnalysisCompleted is raised when an analysis pass over a collection finishes
type AnalysisCompleted struct {
	BaseEvent
	Collection      string        `json:"collection"`
	RecordCount     int           `json:"record_count"`
	SuggestionCount int           `json:"suggestion_count"`
	ClusterCount    int           `json:"cluster_count"`
	Comparisons     int           `json:"comparisons"`
	Duration        time.Duration `json:"duration_ms"`
}

// NewAnalysisCompleted creates an AnalysisCompleted event
func NewAnalysisCompleted(collection string, recordCount, suggestionCount, clusterCount, comparisons int, duration time.Duration, timestamp time.Time) AnalysisCompleted {
	return AnalysisCompleted{
		BaseEvent:       newBaseEvent(collection, "analysis.completed", timestamp),
		Collection:      collection,
		RecordCount:     recordCount,
		SuggestionCount: suggestionCount,
		ClusterCount:    clusterCount,
		Comparisons:     comparisons,
		Duration:        duration,
	}
}

// AnalysisFailed is raised when an analysis pass surfaces an error
type AnalysisFailed struct {
	BaseEvent
	Collection string                 `json:"collection"`
	ErrorType  string                 `json:"error_type"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// NewAnalysisFailed creates an AnalysisFailed event
func NewAnalysisFailed(collection, errorType, title, message string, details map[string]interface{}, timestamp time.Time) AnalysisFailed {
	return AnalysisFailed{
		BaseEvent:  newBaseEvent(collection, "analysis.failed", timestamp),
		Collection: collection,
		ErrorType:  errorType,
		Title:      title,
		Message:    message,
		Details:    details,
	}
}

// Collection Events

// CollectionFetched is raised when a record batch is loaded from the store
type CollectionFetched struct {
	BaseEvent
	Collection    string `json:"collection"`
	ItemCount     int    `json:"item_count"`
	MergedRecords int    `json:"merged_records"`
	FromCache     bool   `json:"from_cache"`
}

// NewCollectionFetched creates a CollectionFetched event
func NewCollectionFetched(collection string, itemCount, mergedRecords int, fromCache bool, timestamp time.Time) CollectionFetched {
	return CollectionFetched{
		BaseEvent:     newBaseEvent(collection, "collection.fetched", timestamp),
		Collection:    collection,
		ItemCount:     itemCount,
		MergedRecords: mergedRecords,
		FromCache:     fromCache,
	}
}

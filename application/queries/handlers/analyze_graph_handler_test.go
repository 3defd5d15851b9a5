package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"consolidator-backend/application/queries"
	"consolidator-backend/domain/config"
	"consolidator-backend/domain/events"
	"consolidator-backend/domain/services"
	"consolidator-backend/infrastructure/persistence/memory"
	pkgerrors "consolidator-backend/pkg/errors"
)

// recordingReporter captures reported errors and events for assertions
type recordingReporter struct {
	mu     sync.Mutex
	errors []string
	events []events.DomainEvent
}

func (r *recordingReporter) ReportError(ctx context.Context, title, message string, details map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, title)
}

func (r *recordingReporter) ReportEvent(ctx context.Context, event events.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingReporter) eventTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.GetEventType())
	}
	return types
}

func newGraphHandler(t *testing.T, store *memory.RecordStore, reporter *recordingReporter) *AnalyzeGraphHandler {
	t.Helper()
	cfg := config.DefaultAnalysisConfig()
	logger := zap.NewNop()
	return NewAnalyzeGraphHandler(
		store,
		services.NewDefaultConvergenceDetector(cfg),
		services.NewDefaultSuggestionRanker(cfg, services.NewDefaultConnectionScorer(cfg), logger),
		services.NewDefaultLayoutGenerator(cfg),
		reporter,
		logger,
	)
}

func seededStore(t *testing.T) *memory.RecordStore {
	t.Helper()
	store := memory.NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("notes", []map[string]interface{}{
		{
			"id":         "rec-1",
			"fileName":   "alpha.md",
			"keywords":   []interface{}{"strategy", "planning"},
			"categories": []interface{}{"business"},
		},
		{
			"id":         "rec-2",
			"fileName":   "beta.md",
			"keywords":   []interface{}{"strategy", "planning"},
			"categories": []interface{}{"business"},
		},
		{
			"id":         "rec-3",
			"fileName":   "gamma.md",
			"keywords":   []interface{}{"gardening"},
			"categories": []interface{}{"hobby"},
		},
	})
	return store
}

func TestAnalyzeGraphHandler_FullPass(t *testing.T) {
	store := seededStore(t)
	reporter := &recordingReporter{}
	handler := newGraphHandler(t, store, reporter)

	result, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: "notes"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Nodes, 3)
	assert.Equal(t, 3, result.Stats.RecordCount)
	assert.Equal(t, 3, result.Stats.Comparisons)

	// rec-1 and rec-2 share two keywords and a category
	require.NotEmpty(t, result.Edges)
	edge := result.Edges[0]
	assert.Equal(t, "rec-1", edge.Source)
	assert.Equal(t, "rec-2", edge.Target)
	assert.InDelta(t, 0.8, edge.Confidence, 1e-9)
	assert.Equal(t, "multiple", edge.Reason)

	assert.Contains(t, reporter.eventTypes(), "analysis.completed")
	assert.Empty(t, reporter.errors)
}

func TestAnalyzeGraphHandler_EmptyCollection(t *testing.T) {
	store := memory.NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("empty", []map[string]interface{}{})
	reporter := &recordingReporter{}
	handler := newGraphHandler(t, store, reporter)

	result, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: "empty"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.Nodes)
	assert.Empty(t, result.Edges)
	assert.Empty(t, result.Clusters)
	assert.Equal(t, 0, result.Stats.RecordCount)
}

func TestAnalyzeGraphHandler_MissingCollectionIsReported(t *testing.T) {
	store := seededStore(t)
	reporter := &recordingReporter{}
	handler := newGraphHandler(t, store, reporter)

	result, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: "unknown"})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsNotFound(err))

	appErr := pkgerrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details, "available_collections")

	require.NotEmpty(t, reporter.errors)
	assert.Contains(t, reporter.eventTypes(), "analysis.failed")
}

func TestAnalyzeGraphHandler_InvalidQuery(t *testing.T) {
	store := seededStore(t)
	reporter := &recordingReporter{}
	handler := newGraphHandler(t, store, reporter)

	_, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: ""})

	require.Error(t, err)
	// Validation failures are returned directly, not reported
	assert.Empty(t, reporter.errors)
	assert.Empty(t, reporter.events)
}

func TestAnalyzeGraphHandler_Density(t *testing.T) {
	store := seededStore(t)
	reporter := &recordingReporter{}
	handler := newGraphHandler(t, store, reporter)

	result, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: "notes"})

	require.NoError(t, err)
	// one edge out of three possible pairs
	assert.InDelta(t, 1.0/3.0, result.Stats.Density, 1e-9)
}

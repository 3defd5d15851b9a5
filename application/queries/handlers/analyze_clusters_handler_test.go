package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"consolidator-backend/application/queries"
	"consolidator-backend/domain/config"
	"consolidator-backend/domain/services"
	"consolidator-backend/infrastructure/persistence/memory"
	pkgerrors "consolidator-backend/pkg/errors"
)

func newClustersHandler(t *testing.T, store *memory.RecordStore) *AnalyzeClustersHandler {
	t.Helper()
	cfg := config.DefaultAnalysisConfig()
	return NewAnalyzeClustersHandler(
		store,
		services.NewDefaultConvergenceDetector(cfg),
		zap.NewNop(),
	)
}

func TestAnalyzeClustersHandler_GroupsByTheme(t *testing.T) {
	store := memory.NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("research", []map[string]interface{}{
		{
			"id":       "rec-1",
			"fileName": "alpha.md",
			"convergenceChains": []interface{}{
				map[string]interface{}{
					"theme":        "Emergence",
					"participants": []interface{}{"beta.md"},
					"strength":     0.9,
				},
			},
		},
		{
			"id":       "rec-2",
			"fileName": "beta.md",
			"convergenceChains": []interface{}{
				map[string]interface{}{
					"theme":        "emergence",
					"participants": []interface{}{"alpha.md"},
					"strength":     0.7,
				},
			},
		},
		{
			"id":       "rec-3",
			"fileName": "gamma.md",
		},
	})

	handler := newClustersHandler(t, store)
	result, err := handler.Handle(context.Background(), queries.AnalyzeClustersQuery{Collection: "research"})

	require.NoError(t, err)
	assert.Equal(t, "research", result.Collection)
	assert.Equal(t, 3, result.RecordCount)

	require.Len(t, result.Clusters, 1)
	cluster := result.Clusters[0]
	assert.Equal(t, "emergence", cluster.Theme)
	assert.ElementsMatch(t, []string{"alpha.md", "beta.md"}, cluster.Participants)
	assert.InDelta(t, 0.8, cluster.Strength, 1e-9)
}

func TestAnalyzeClustersHandler_EmptyCollection(t *testing.T) {
	store := memory.NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("empty", []map[string]interface{}{})

	handler := newClustersHandler(t, store)
	result, err := handler.Handle(context.Background(), queries.AnalyzeClustersQuery{Collection: "empty"})

	require.NoError(t, err)
	assert.Equal(t, "empty", result.Collection)
	assert.Equal(t, 0, result.RecordCount)
	assert.Empty(t, result.Clusters)
}

func TestAnalyzeClustersHandler_MissingCollection(t *testing.T) {
	store := memory.NewRecordStore(nil, nil, zap.NewNop())
	handler := newClustersHandler(t, store)

	_, err := handler.Handle(context.Background(), queries.AnalyzeClustersQuery{Collection: "nowhere"})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestListCollectionsHandler_Pagination(t *testing.T) {
	store := memory.NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("alpha", nil)
	store.Seed("beta", nil)
	store.Seed("gamma", nil)

	handler := NewListCollectionsHandler(store, zap.NewNop())

	result, err := handler.Handle(context.Background(), queries.ListCollectionsQuery{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Collections, 2)
	assert.Equal(t, "alpha", result.Collections[0].Name)
	assert.Equal(t, "beta", result.Collections[1].Name)

	result, err = handler.Handle(context.Background(), queries.ListCollectionsQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, result.Collections, 1)
	assert.Equal(t, "gamma", result.Collections[0].Name)
}

func TestListCollectionsHandler_Defaults(t *testing.T) {
	store := memory.NewRecordStore(nil, nil, zap.NewNop())
	store.Seed("alpha", nil)

	handler := NewListCollectionsHandler(store, zap.NewNop())
	result, err := handler.Handle(context.Background(), queries.ListCollectionsQuery{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.NotZero(t, result.PageSize)
	assert.Len(t, result.Collections, 1)
}

package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"consolidator-backend/application/queries"
	queries_handlers "consolidator-backend/application/queries/handlers"
	"consolidator-backend/domain/config"
	"consolidator-backend/domain/services"
	"consolidator-backend/infrastructure/messaging"
	"consolidator-backend/infrastructure/persistence/memory"
)

// buildStack wires the full analysis pipeline against the in-memory store,
// the same composition the DI container produces for production
func buildStack(t *testing.T) (*memory.RecordStore, *queries_handlers.AnalyzeGraphHandler) {
	t.Helper()

	cfg := config.DefaultAnalysisConfig()
	logger := zap.NewNop()

	analyzer := services.NewDefaultTextAnalyzer()
	extractor := services.NewDefaultFieldExtractor(cfg, analyzer, logger)
	builder := services.NewDefaultRecordBuilder(extractor, logger)
	store := memory.NewRecordStore(cfg, builder, logger)

	handler := queries_handlers.NewAnalyzeGraphHandler(
		store,
		services.NewDefaultConvergenceDetector(cfg),
		services.NewDefaultSuggestionRanker(cfg, services.NewDefaultConnectionScorer(cfg), logger),
		services.NewDefaultLayoutGenerator(cfg),
		messaging.NewLogReporter(logger),
		logger,
	)

	return store, handler
}

func TestAnalysisPass_EndToEnd(t *testing.T) {
	store, handler := buildStack(t)

	store.Seed("research", []map[string]interface{}{
		{
			"id":         "frag-1",
			"fileName":   "emergence.md",
			"filePath":   "notes/emergence.md",
			"keywords":   []interface{}{"complexity", "systems"},
			"categories": []interface{}{"science"},
			"relevanceScore": 12.5,
			"convergenceChains": []interface{}{
				map[string]interface{}{
					"theme":        "Self Organization",
					"participants": []interface{}{"feedback.md"},
					"strength":     0.8,
				},
			},
		},
		{
			// second fragment of the same file, merged on fetch
			"id":         "frag-2",
			"fileName":   "emergence.md",
			"keywords":   []interface{}{"feedback"},
			"categories": []interface{}{"science"},
			"relevanceScore": 7.0,
		},
		{
			"id":         "frag-3",
			"fileName":   "feedback.md",
			"keywords":   []interface{}{"complexity", "feedback"},
			"categories": []interface{}{"science"},
			"relevanceScore": 9.0,
			"convergenceChains": []interface{}{
				map[string]interface{}{
					"theme":        "self organization",
					"participants": []interface{}{"emergence.md"},
					"strength":     0.6,
				},
			},
		},
		{
			"id":         "frag-4",
			"fileName":   "gardening.md",
			"keywords":   []interface{}{"soil"},
			"categories": []interface{}{"hobby"},
		},
	})

	result, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: "research"})
	require.NoError(t, err)

	// Four fragments collapse into three records
	require.Len(t, result.Nodes, 3)
	assert.Equal(t, 3, result.Stats.RecordCount)

	var merged queries.GraphNode
	for _, node := range result.Nodes {
		if node.FileName == "emergence.md" {
			merged = node
		}
	}
	require.NotEmpty(t, merged.ID)
	assert.Equal(t, 2, merged.FragmentCount)
	assert.InDelta(t, 12.5, merged.RelevanceScore, 1e-9)
	assert.ElementsMatch(t, []string{"complexity", "systems", "feedback"}, merged.Keywords)

	// emergence.md and feedback.md connect through keywords, category, and theme
	require.NotEmpty(t, result.Edges)
	top := result.Edges[0]
	assert.Equal(t, "multiple", top.Reason)
	assert.True(t, top.Confidence >= 0.3)
	assert.Equal(t, "self organization", top.Theme)

	// One convergence cluster from the shared theme
	require.Len(t, result.Clusters, 1)
	cluster := result.Clusters[0]
	assert.Equal(t, "self organization", cluster.Theme)
	assert.ElementsMatch(t, []string{"emergence.md", "feedback.md"}, cluster.Participants)
	assert.InDelta(t, 0.7, cluster.Strength, 1e-9)

	// Every node sits at a valid position and every edge references real nodes
	ids := make(map[string]bool, len(result.Nodes))
	for _, node := range result.Nodes {
		ids[node.ID] = true
	}
	for _, edge := range result.Edges {
		assert.True(t, ids[edge.Source], "edge source %s not in nodes", edge.Source)
		assert.True(t, ids[edge.Target], "edge target %s not in nodes", edge.Target)
	}
}

func TestAnalysisPass_DeterministicAcrossRuns(t *testing.T) {
	store, handler := buildStack(t)

	payloads := make([]map[string]interface{}, 0, 12)
	categories := []string{"alpha", "beta", "gamma"}
	for i := 0; i < 12; i++ {
		id := fmt.Sprintf("rec-%02d", i)
		payloads = append(payloads, map[string]interface{}{
			"id":         id,
			"fileName":   id + ".md",
			"keywords":   []interface{}{"shared", id},
			"categories": []interface{}{categories[i%3]},
		})
	}
	store.Seed("batch", payloads)

	first, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: "batch"})
	require.NoError(t, err)

	second, err := handler.Handle(context.Background(), queries.AnalyzeGraphQuery{Collection: "batch"})
	require.NoError(t, err)

	assert.Equal(t, first.Nodes, second.Nodes)
	assert.Equal(t, first.Edges, second.Edges)
	assert.Equal(t, first.Clusters, second.Clusters)
}

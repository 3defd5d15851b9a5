package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	"consolidator-backend/application/queries"
	"consolidator-backend/domain/core/entities"
	"consolidator-backend/domain/events"
	"consolidator-backend/domain/services"
	pkgerrors "consolidator-backend/pkg/errors"
)

// AnalyzeGraphHandler runs the full analysis pass for one collection:
// store fetch, convergence detection, ranking, and layout
type AnalyzeGraphHandler struct {
	store    ports.RecordStore
	detector services.ConvergenceDetector
	ranker   services.SuggestionRanker
	layout   services.LayoutGenerator
	reporter ports.Reporter
	logger   *zap.Logger
}

// NewAnalyzeGraphHandler creates a new analysis handler
func NewAnalyzeGraphHandler(
	store ports.RecordStore,
	detector services.ConvergenceDetector,
	ranker services.SuggestionRanker,
	layout services.LayoutGenerator,
	reporter ports.Reporter,
	logger *zap.Logger,
) *AnalyzeGraphHandler {
	return &AnalyzeGraphHandler{
		store:    store,
		detector: detector,
		ranker:   ranker,
		layout:   layout,
		reporter: reporter,
		logger:   logger,
	}
}

// Handle executes the analysis query. Every surfaced failure is logged,
// handed to the reporter, and still returned to the caller; no stage ever
// substitutes placeholder data.
func (h *AnalyzeGraphHandler) Handle(ctx context.Context, query queries.AnalyzeGraphQuery) (*queries.GraphData, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	start := time.Now()

	records, err := h.store.FetchRecords(ctx, query.Collection, query.Limit)
	if err != nil {
		// The adapter reports an existing-but-empty collection as a typed
		// error; for the graph query an empty batch is a valid empty graph.
		if pkgerrors.IsEmptyCollection(err) {
			h.logger.Info("collection is empty, returning empty graph",
				zap.String("collection", query.Collection))
			return emptyGraphData(), nil
		}
		return nil, h.fail(ctx, query.Collection, "record fetch failed", err)
	}

	clusters := h.detector.DetectConvergences(records)
	ranking := h.ranker.Rank(records)

	layout, err := h.layout.Layout(records, ranking.Suggestions)
	if err != nil {
		return nil, h.fail(ctx, query.Collection, "layout generation failed", err)
	}

	result := buildGraphData(records, layout, clusters, ranking, time.Since(start))

	h.reporter.ReportEvent(ctx, events.NewAnalysisCompleted(
		query.Collection,
		result.Stats.RecordCount,
		result.Stats.SuggestionCount,
		result.Stats.ClusterCount,
		result.Stats.Comparisons,
		time.Since(start),
		time.Now(),
	))

	h.logger.Info("analysis pass completed",
		zap.String("collection", query.Collection),
		zap.Int("records", result.Stats.RecordCount),
		zap.Int("suggestions", result.Stats.SuggestionCount),
		zap.Int("clusters", result.Stats.ClusterCount),
		zap.Int("comparisons", result.Stats.Comparisons),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// fail logs the error, forwards it to the reporter, and returns it unchanged
func (h *AnalyzeGraphHandler) fail(ctx context.Context, collection, stage string, err error) error {
	h.logger.Error(stage,
		zap.String("collection", collection),
		zap.Error(err),
	)

	title := "Analysis Failed"
	errorType := string(pkgerrors.ErrorTypeInternal)
	var details map[string]interface{}
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		if appErr.Title != "" {
			title = appErr.Title
		}
		errorType = string(appErr.Type)
		details = appErr.Details
	}

	h.reporter.ReportError(ctx, title, err.Error(), details)
	h.reporter.ReportEvent(ctx, events.NewAnalysisFailed(
		collection, errorType, title, err.Error(), details, time.Now(),
	))

	return err
}

// emptyGraphData is the canonical result for an empty record batch
func emptyGraphData() *queries.GraphData {
	return &queries.GraphData{
		Nodes:    []queries.GraphNode{},
		Edges:    []queries.GraphEdge{},
		Clusters: []queries.ClusterSummary{},
	}
}

// buildGraphData converts domain results into the rendering contract
func buildGraphData(
	records []*entities.Record,
	layout services.GraphLayout,
	clusters []*entities.ConvergenceCluster,
	ranking services.RankingResult,
	duration time.Duration,
) *queries.GraphData {
	result := &queries.GraphData{
		Nodes:    make([]queries.GraphNode, 0, len(layout.Nodes)),
		Edges:    make([]queries.GraphEdge, 0, len(layout.Edges)),
		Clusters: make([]queries.ClusterSummary, 0, len(clusters)),
	}

	for _, node := range layout.Nodes {
		result.Nodes = append(result.Nodes, queries.GraphNode{
			ID:             node.ID,
			FileName:       node.Record.FileName(),
			Position:       queries.Position{X: node.X, Y: node.Y},
			Categories:     node.Record.Categories(),
			Keywords:       node.Record.Keywords(),
			RelevanceScore: node.Record.RelevanceScore(),
			FragmentCount:  node.Record.FragmentCount(),
		})
	}

	for _, edge := range layout.Edges {
		result.Edges = append(result.Edges, queries.GraphEdge{
			ID:                edge.ID,
			Source:            edge.Source,
			Target:            edge.Target,
			Reason:            string(edge.Suggestion.Reason()),
			Confidence:        edge.Suggestion.Confidence(),
			Strength:          edge.Suggestion.Strength(),
			Color:             edge.Style.Color,
			StrokeWidth:       edge.Style.StrokeWidth,
			Animated:          edge.Animated,
			MatchedKeywords:   edge.Suggestion.MatchedKeywords(),
			MatchedCategories: edge.Suggestion.MatchedCategories(),
			Theme:             edge.Suggestion.Theme(),
		})
	}

	for _, cluster := range clusters {
		result.Clusters = append(result.Clusters, queries.ClusterSummary{
			Theme:        cluster.Theme(),
			Participants: cluster.Participants(),
			Count:        cluster.Count(),
			Strength:     cluster.Strength(),
		})
	}

	result.Stats = queries.AnalysisStats{
		RecordCount:     len(records),
		SuggestionCount: len(result.Edges),
		ClusterCount:    len(result.Clusters),
		Comparisons:     ranking.Comparisons,
		BudgetExhausted: ranking.BudgetExhausted,
		DurationMs:      duration.Milliseconds(),
	}
	if len(result.Nodes) > 1 {
		maxPossibleEdges := len(result.Nodes) * (len(result.Nodes) - 1) / 2
		result.Stats.Density = float64(len(result.Edges)) / float64(maxPossibleEdges)
	}

	return result
}

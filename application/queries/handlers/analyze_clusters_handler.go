package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	"consolidator-backend/application/queries"
	"consolidator-backend/domain/services"
	pkgerrors "consolidator-backend/pkg/errors"
)

// AnalyzeClustersHandler runs the clustering stage only
type AnalyzeClustersHandler struct {
	store    ports.RecordStore
	detector services.ConvergenceDetector
	logger   *zap.Logger
}

// NewAnalyzeClustersHandler creates a new clustering handler
func NewAnalyzeClustersHandler(
	store ports.RecordStore,
	detector services.ConvergenceDetector,
	logger *zap.Logger,
) *AnalyzeClustersHandler {
	return &AnalyzeClustersHandler{
		store:    store,
		detector: detector,
		logger:   logger,
	}
}

// Handle executes the clustering query
func (h *AnalyzeClustersHandler) Handle(ctx context.Context, query queries.AnalyzeClustersQuery) (*queries.ClustersResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	records, err := h.store.FetchRecords(ctx, query.Collection, query.Limit)
	if err != nil {
		if pkgerrors.IsEmptyCollection(err) {
			h.logger.Info("collection is empty, returning no clusters",
				zap.String("collection", query.Collection))
			return &queries.ClustersResult{
				Collection: query.Collection,
				Clusters:   []queries.ClusterSummary{},
			}, nil
		}
		h.logger.Error("record fetch failed",
			zap.String("collection", query.Collection),
			zap.Error(err),
		)
		return nil, err
	}

	clusters := h.detector.DetectConvergences(records)

	result := &queries.ClustersResult{
		Collection:  query.Collection,
		RecordCount: len(records),
		Clusters:    make([]queries.ClusterSummary, 0, len(clusters)),
	}
	for _, cluster := range clusters {
		result.Clusters = append(result.Clusters, queries.ClusterSummary{
			Theme:        cluster.Theme(),
			Participants: cluster.Participants(),
			Count:        cluster.Count(),
			Strength:     cluster.Strength(),
		})
	}

	h.logger.Debug("clusters detected",
		zap.String("collection", query.Collection),
		zap.Int("records", result.RecordCount),
		zap.Int("clusters", len(result.Clusters)),
	)

	return result, nil
}

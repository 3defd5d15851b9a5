package handlers

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"consolidator-backend/application/queries"
	querybus "consolidator-backend/application/queries/bus"
	"consolidator-backend/pkg/common"
	pkgerrors "consolidator-backend/pkg/errors"
	"consolidator-backend/pkg/observability"
)

// AnalysisHandler serves the analysis endpoints
type AnalysisHandler struct {
	queryBus     *querybus.QueryBus
	tracer       *observability.Tracer
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(queryBus *querybus.QueryBus, tracer *observability.Tracer, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		queryBus:     queryBus,
		tracer:       tracer,
		errorHandler: pkgerrors.NewErrorHandler(logger, false),
		logger:       logger,
	}
}

// AnalyzeGraph handles GET /analysis/graph
func (h *AnalysisHandler) AnalyzeGraph(w http.ResponseWriter, r *http.Request) {
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("collection query parameter is required"))
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	query := queries.AnalyzeGraphQuery{
		Collection: collection,
		Limit:      limit,
	}

	var result interface{}
	reqCtx := common.WithCollection(r.Context(), collection)
	traceErr := h.tracer.TraceFunction(reqCtx, "analyze_graph", func(ctx context.Context) error {
		h.tracer.Annotate(ctx, "collection", collection)
		var askErr error
		result, askErr = h.queryBus.Ask(ctx, query)
		return askErr
	})
	if traceErr != nil {
		h.logger.Error("graph analysis failed",
			zap.String("collection", collection),
			zap.Error(traceErr),
		)
		h.errorHandler.Handle(w, r, traceErr)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// AnalyzeClusters handles GET /analysis/clusters
func (h *AnalysisHandler) AnalyzeClusters(w http.ResponseWriter, r *http.Request) {
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("collection query parameter is required"))
		return
	}

	limit, err := parseLimit(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	query := queries.AnalyzeClustersQuery{
		Collection: collection,
		Limit:      limit,
	}

	var result interface{}
	reqCtx := common.WithCollection(r.Context(), collection)
	traceErr := h.tracer.TraceFunction(reqCtx, "analyze_clusters", func(ctx context.Context) error {
		h.tracer.Annotate(ctx, "collection", collection)
		var askErr error
		result, askErr = h.queryBus.Ask(ctx, query)
		return askErr
	})
	if traceErr != nil {
		h.logger.Error("cluster analysis failed",
			zap.String("collection", collection),
			zap.Error(traceErr),
		)
		h.errorHandler.Handle(w, r, traceErr)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// parseLimit reads the optional limit query parameter
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, pkgerrors.NewValidationError("limit must be a non-negative integer")
	}
	return limit, nil
}

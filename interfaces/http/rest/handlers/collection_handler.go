package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"consolidator-backend/application/queries"
	querybus "consolidator-backend/application/queries/bus"
	"consolidator-backend/pkg/common"
	pkgerrors "consolidator-backend/pkg/errors"
	"consolidator-backend/pkg/utils"
)

// CollectionHandler serves the collection registry endpoints
type CollectionHandler struct {
	queryBus     *querybus.QueryBus
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *CollectionHandler {
	return &CollectionHandler{
		queryBus:     queryBus,
		errorHandler: pkgerrors.NewErrorHandler(logger, false),
		logger:       logger,
	}
}

// ListCollections handles GET /collections
func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractPaginationParams(r)

	query := queries.ListCollectionsQuery{
		Page:     params.Page,
		PageSize: params.PageSize,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to list collections", zap.Error(err))
		h.errorHandler.Handle(w, r, err)
		return
	}

	listing, ok := result.(*queries.ListCollectionsResult)
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewInternalError("unexpected listing result"))
		return
	}

	common.RespondWithMeta(w, http.StatusOK, listing.Collections, &common.MetaInfo{
		RequestID:  common.ExtractRequestID(r),
		Timestamp:  utils.NowRFC3339(),
		Version:    "v2",
		Pagination: common.BuildPaginationMeta(listing.Page, listing.PageSize, listing.Total),
	})
}

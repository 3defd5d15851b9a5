package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	"consolidator-backend/application/queries"
	"consolidator-backend/pkg/common"
)

// ListCollectionsHandler lists the collections registered in the store
type ListCollectionsHandler struct {
	store  ports.RecordStore
	logger *zap.Logger
}

// NewListCollectionsHandler creates a new collection listing handler
func NewListCollectionsHandler(store ports.RecordStore, logger *zap.Logger) *ListCollectionsHandler {
	return &ListCollectionsHandler{
		store:  store,
		logger: logger,
	}
}

// Handle executes the listing query with in-memory pagination; the registry
// is small enough that the store returns it whole
func (h *ListCollectionsHandler) Handle(ctx context.Context, query queries.ListCollectionsQuery) (*queries.ListCollectionsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	names, err := h.store.ListCollections(ctx)
	if err != nil {
		h.logger.Error("failed to list collections", zap.Error(err))
		return nil, err
	}

	page := query.Page
	if page == 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize == 0 {
		pageSize = common.DefaultPaginationParams().PageSize
	}

	start := (page - 1) * pageSize
	if start > len(names) {
		start = len(names)
	}
	end := start + pageSize
	if end > len(names) {
		end = len(names)
	}

	collections := make([]queries.CollectionInfo, 0, end-start)
	for _, name := range names[start:end] {
		collections = append(collections, queries.CollectionInfo{Name: name})
	}

	return &queries.ListCollectionsResult{
		Collections: collections,
		Total:       len(names),
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  common.CalculateTotalPages(len(names), pageSize),
	}, nil
}
